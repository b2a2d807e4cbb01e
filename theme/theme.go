package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"go-chordpad/midi"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Pad      rune // ■ lit pad
	PadOff   rune // □ dark pad
	Held     rune // ● pad of a held pitch class
	Button   rune // ● round control button
	Beat     rune // ♪ metronome beat
	NoDevice rune // ✕ no controller
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Pad:      '■',
			PadOff:   '□',
			Held:     '●',
			Button:   '●',
			Beat:     '♪',
			NoDevice: '✕',
		},
	}
}

// Color roles mapped to palette slots
const (
	SlotBG = iota
	SlotSurface
	SlotMuted
	SlotDim
	SlotFG
	SlotAccent
	SlotCursor
	SlotActive
	SlotWarning
	SlotSuccess
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Index(SlotBG))
}

func (t *Theme) Surface() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Index(SlotSurface))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Index(SlotFG))
}

func (t *Theme) Dim() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Index(SlotDim))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Index(SlotAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Index(SlotMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Index(SlotActive))
}

func (t *Theme) Cursor() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Index(SlotCursor))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Index(SlotWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Index(SlotSuccess))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// LED renders a 7-bit device color on screen. Dark pads use the muted slot
// so the grid stays visible.
func (t *Theme) LED(c midi.Color) lipgloss.Color {
	if c == midi.ColorOff {
		return t.Muted()
	}
	return rgbToLipgloss(RGB(c.RGB8()))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
