package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"go-chordpad/midi"
)

func TestParseGPL(t *testing.T) {
	src := "GIMP Palette\nName: test\nColumns: 2\n# comment\n  0   0   0\tblack\n255 128 0 orange\nbad line\n"
	p, err := ParseGPL(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "test" || len(p.Colors) != 2 || p.Colors[1] != (RGB{255, 128, 0}) {
		t.Errorf("got %+v", p)
	}
	if got := p.Lookup(0.5); got != (RGB{127, 64, 0}) {
		t.Errorf("Lookup(0.5) = %v", got)
	}
	if p.Index(9) != p.Colors[1] {
		t.Error("Index does not clamp")
	}
}

func TestParseGPLEmpty(t *testing.T) {
	if _, err := ParseGPL(strings.NewReader("GIMP Palette\nName: empty\n")); err == nil {
		t.Error("empty palette accepted")
	}
}

func TestBuiltin(t *testing.T) {
	p, err := Builtin(DefaultPaletteName)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Colors) <= SlotSuccess {
		t.Errorf("default palette has %d colors", len(p.Colors))
	}
	if _, err := Builtin("missing"); err == nil {
		t.Error("missing palette loaded")
	}
}

func TestLEDColor(t *testing.T) {
	th := New(MustBuiltin(DefaultPaletteName))
	if got := th.LED(midi.ColorPressed); got != lipgloss.Color("#ffffff") {
		t.Errorf("pressed = %s", got)
	}
	if th.LED(midi.ColorOff) != th.Muted() {
		t.Error("off pads should use the muted slot")
	}
}
