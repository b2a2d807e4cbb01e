package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go-chordpad/theory"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadPartialAndClamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "bpm: 400\nvolume: 1.5\ninstrument: organ\ndevice:\n  keyboards: true\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BPM != 240 || cfg.Volume != 1 || cfg.Instrument != "organ" {
		t.Errorf("got %+v", cfg)
	}
	if !cfg.Device.Keyboards || cfg.Device.Match != "launchpad" {
		t.Errorf("device %+v", cfg.Device)
	}
	if cfg.BaseNote != 36 || cfg.Chord != "maj" || !cfg.Audio.Enabled {
		t.Errorf("defaults lost: %+v", cfg)
	}

	st := cfg.State()
	if st.Instrument != "organ" || st.BPM != 240 || st.ShowChord != true {
		t.Errorf("state %+v", st)
	}
}

func TestLoadRejectsUnknownChord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("chord: maj13\n"), 0644)
	if _, err := LoadFile(path); !errors.Is(err, theory.ErrUnknownChord) {
		t.Errorf("err = %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.Scale = "dorian"
	cfg.Palette = "/tmp/p.gpl"
	if err := cfg.SaveFile(path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}
