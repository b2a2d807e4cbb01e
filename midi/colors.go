package midi

import "go-chordpad/grid"

// Color is a Launchpad RGB value, 7 bits per channel (0-127)
type Color [3]uint8

// RGB8 scales the color to 8 bits per channel for screen rendering
func (c Color) RGB8() [3]uint8 {
	return [3]uint8{scale7(c[0]), scale7(c[1]), scale7(c[2])}
}

func scale7(v uint8) uint8 {
	v &= 0x7F
	return uint8(int(v) * 255 / 127)
}

// Pad role colors
var (
	ColorRoot    = Color{127, 0, 40}
	ColorChord   = Color{0, 100, 127}
	ColorScale   = Color{0, 127, 60}
	ColorBass    = Color{127, 80, 0}
	ColorOff     = Color{0, 0, 0}
	ColorPressed = Color{127, 127, 127}
)

// Top row function buttons
var (
	ColorFnActive = Color{60, 30, 0} // OCT/capo buttons
	ColorFnIdle   = Color{3, 3, 3}
)

// Status (logo) LED
var (
	StatusConnected = Color{0, 100, 0}
	StatusAccent    = Color{127, 127, 127}
	StatusBeat      = Color{60, 80, 100}
	StatusOff       = Color{0, 0, 0}
)

// RoleColor maps a classifier role to its LED color
func RoleColor(r grid.Role) Color {
	switch r {
	case grid.RoleRoot:
		return ColorRoot
	case grid.RoleBass:
		return ColorBass
	case grid.RoleChord:
		return ColorChord
	case grid.RoleScale:
		return ColorScale
	}
	return ColorOff
}

// GridColors resolves the LED color of every pad. Pads whose pitch class is
// held show the pressed color instead of their role color.
func GridColors(p *grid.Pads, roles [grid.Rows * grid.Cols]grid.Role, pressed map[int]bool) [grid.Rows * grid.Cols]Color {
	var out [grid.Rows * grid.Cols]Color
	for i, pad := range p {
		if pressed[pad.PitchClass] {
			out[i] = ColorPressed
			continue
		}
		out[i] = RoleColor(roles[i])
	}
	return out
}
