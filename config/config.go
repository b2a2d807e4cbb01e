package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"go-chordpad/controller"
	"go-chordpad/grid"
	"go-chordpad/synth"
	"go-chordpad/theory"
)

// DeviceConfig selects the MIDI ports to open
type DeviceConfig struct {
	// Match is a case-insensitive substring of the grid controller's port name
	Match string `yaml:"match"`

	// Keyboards also opens every other input as a plain keyboard
	Keyboards bool `yaml:"keyboards"`
}

// AudioConfig controls the built-in synth
type AudioConfig struct {
	Enabled    bool `yaml:"enabled"`
	SampleRate int  `yaml:"sample_rate,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	BaseNote   int     `yaml:"base_note"`
	Chord      string  `yaml:"chord"`
	Scale      string  `yaml:"scale"`
	Instrument string  `yaml:"instrument"`
	Volume     float64 `yaml:"volume"`
	BPM        int     `yaml:"bpm"`

	Device DeviceConfig `yaml:"device"`
	Audio  AudioConfig  `yaml:"audio"`

	// Palette is an optional GIMP .gpl file for the UI chrome
	Palette string `yaml:"palette,omitempty"`

	Debug bool `yaml:"debug"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	st := controller.DefaultState()
	return &Config{
		BaseNote:   st.BaseNote,
		Chord:      st.ChordType,
		Scale:      st.Scale,
		Instrument: st.Instrument,
		Volume:     st.Volume,
		BPM:        st.BPM,
		Device: DeviceConfig{
			Match: "launchpad",
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: synth.DefaultSampleRate,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-chordpad"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config file. A missing file yields the defaults; keys
// absent from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate clamps numeric settings into range and rejects unknown keys
func (c *Config) Validate() error {
	if c.BaseNote < 0 || c.BaseNote > grid.MaxBaseCapo {
		c.BaseNote = grid.DefaultBaseNote
	}
	c.BPM = controller.ClampBPM(c.BPM)
	c.Volume = controller.ClampVolume(c.Volume)
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = synth.DefaultSampleRate
	}

	if _, ok := theory.Chord(c.Chord); !ok {
		return fmt.Errorf("chord: %w: %q", theory.ErrUnknownChord, c.Chord)
	}
	if _, ok := theory.ScaleByKey(c.Scale); !ok {
		return fmt.Errorf("scale: %w: %q", theory.ErrUnknownScale, c.Scale)
	}
	if _, err := synth.Lookup(c.Instrument); err != nil {
		return fmt.Errorf("instrument: %w", err)
	}
	return nil
}

// State is the controller state this config starts with
func (c *Config) State() controller.State {
	st := controller.DefaultState()
	st.BaseNote = c.BaseNote
	st.ChordType = c.Chord
	st.Scale = c.Scale
	st.Instrument = c.Instrument
	st.Volume = c.Volume
	st.BPM = c.BPM
	return st
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
