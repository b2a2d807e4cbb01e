// Package grid maps the 8x8 pad grid to notes and device addresses and
// decides which role each pad plays for the current chord/scale.
package grid

import "go-chordpad/theory"

const (
	Rows = 8
	Cols = 8

	// RowInterval is the semitone step between rows (a fourth, like guitar strings)
	RowInterval = 5

	// Base note bounds for octave and capo shifts
	MaxBaseOctave = 108
	MaxBaseCapo   = 115

	DefaultBaseNote = 36 // C2
)

// Pad is one cell of the grid. Row 0 is the bottom row.
type Pad struct {
	Row, Col   int
	Semitone   int // MIDI note this pad plays
	PitchClass int
	DeviceNote uint8 // Programmer-mode note number, 11..88
}

// Pads is the full grid in row-major order (index = row*8+col)
type Pads [Rows * Cols]Pad

// DeviceNote returns the Launchpad Programmer-mode note for a grid cell
func DeviceNote(row, col int) uint8 {
	return uint8((row+1)*10 + (col + 1))
}

// RowCol is the inverse of DeviceNote. ok is false outside the 8x8 grid.
func RowCol(note uint8) (row, col int, ok bool) {
	row = int(note/10) - 1
	col = int(note%10) - 1
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return -1, -1, false
	}
	return row, col, true
}

// BuildPads lays the grid out from baseNote: +1 semitone per column,
// +RowInterval per row.
func BuildPads(baseNote int) Pads {
	var p Pads
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			st := baseNote + row*RowInterval + col
			p[row*Cols+col] = Pad{
				Row:        row,
				Col:        col,
				Semitone:   st,
				PitchClass: theory.PC(st),
				DeviceNote: DeviceNote(row, col),
			}
		}
	}
	return p
}

// At returns the pad at row, col
func (p *Pads) At(row, col int) (Pad, bool) {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return Pad{}, false
	}
	return p[row*Cols+col], true
}

// SemitoneForDeviceNote resolves an incoming device note to the semitone it
// plays. ok is false when no pad has that address (control buttons etc).
func (p *Pads) SemitoneForDeviceNote(note uint8) (int, bool) {
	for _, pad := range p {
		if pad.DeviceNote == note {
			return pad.Semitone, true
		}
	}
	return 0, false
}

// SamePitchClass returns every pad sharing pc (octave duplicates included)
func (p *Pads) SamePitchClass(pc int) []Pad {
	pc = theory.PC(pc)
	var out []Pad
	for _, pad := range p {
		if pad.PitchClass == pc {
			out = append(out, pad)
		}
	}
	return out
}

// CanShiftOctave reports whether base + delta octaves stays in range
func CanShiftOctave(base, delta int) bool {
	nb := base + delta*12
	return nb >= 0 && nb <= MaxBaseOctave
}

// CanShiftCapo reports whether base + delta semitones stays in range
func CanShiftCapo(base, delta int) bool {
	nb := base + delta
	return nb >= 0 && nb <= MaxBaseCapo
}
