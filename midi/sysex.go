package midi

import (
	"errors"
	"fmt"

	"go-chordpad/grid"
)

// Launchpad X SysEx lighting, Programmer mode:
//
//	F0 00 20 29 02 0C 03  [03 <led> <r> <g> <b>]...  F7
//
// Byte layout is fixed by the device firmware.
var lightingHeader = []byte{0xF0, 0x00, 0x20, 0x29, 0x02, 0x0C, 0x03}

const (
	sysexEnd = 0xF7

	// ledTypeRGB marks a record as an RGB color
	ledTypeRGB = 0x03

	// HeaderLen and RecordLen describe the lighting message layout
	HeaderLen = 7
	RecordLen = 5
)

// GridMessageLen is the size of a full-grid lighting message:
// 64 pads + 8 top-row buttons + footer
const GridMessageLen = HeaderLen + (grid.Rows*grid.Cols+len(grid.TopRowCCs))*RecordLen + 1

// ErrMalformed is returned when a lighting message does not parse
var ErrMalformed = errors.New("malformed lighting message")

// ProgrammerMode switches the Launchpad X into Programmer mode
// F0 00 20 29 02 0C 0E 01 F7
func ProgrammerMode() []byte {
	return []byte{0xF0, 0x00, 0x20, 0x29, 0x02, 0x0C, 0x0E, 0x01, sysexEnd}
}

type lightingBuilder struct {
	buf []byte
}

func newLighting(records int) *lightingBuilder {
	b := &lightingBuilder{buf: make([]byte, 0, HeaderLen+records*RecordLen+1)}
	b.buf = append(b.buf, lightingHeader...)
	return b
}

func (b *lightingBuilder) add(led uint8, c Color) {
	b.buf = append(b.buf, ledTypeRGB, led&0x7F, c[0]&0x7F, c[1]&0x7F, c[2]&0x7F)
}

func (b *lightingBuilder) done() []byte {
	return append(b.buf, sysexEnd)
}

// EncodeGrid builds the full-grid update: every pad with its color, then
// the top row (OCT/capo buttons lit, the rest dimmed).
func EncodeGrid(p *grid.Pads, colors [grid.Rows * grid.Cols]Color) []byte {
	b := newLighting(len(p) + len(grid.TopRowCCs))
	for i, pad := range p {
		b.add(pad.DeviceNote, colors[i])
	}
	for i, cc := range grid.TopRowCCs {
		c := ColorFnIdle
		if i < 4 {
			c = ColorFnActive
		}
		b.add(cc, c)
	}
	return b.done()
}

// EncodePad lights a single LED without resending the grid
func EncodePad(led uint8, c Color) []byte {
	b := newLighting(1)
	b.add(led, c)
	return b.done()
}

// EncodeStatus sets the logo LED
func EncodeStatus(c Color) []byte {
	return EncodePad(grid.StatusLED, c)
}

// EncodeClearAll turns off every pad, top-row and right-column LED. The
// status LED is left alone.
func EncodeClearAll(p *grid.Pads) []byte {
	b := newLighting(len(p) + len(grid.TopRowCCs) + len(grid.RightColNotes))
	for _, pad := range p {
		b.add(pad.DeviceNote, ColorOff)
	}
	for _, cc := range grid.TopRowCCs {
		b.add(cc, ColorOff)
	}
	for _, n := range grid.RightColNotes {
		b.add(n, ColorOff)
	}
	return b.done()
}

// LEDRecord is one decoded lighting record
type LEDRecord struct {
	LED   uint8
	Color Color
}

// ParseLighting decodes a lighting message produced by the encoders above
func ParseLighting(msg []byte) ([]LEDRecord, error) {
	if len(msg) < HeaderLen+1 {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformed, len(msg))
	}
	for i, b := range lightingHeader {
		if msg[i] != b {
			return nil, fmt.Errorf("%w: header byte %d is %#02x", ErrMalformed, i, msg[i])
		}
	}
	if msg[len(msg)-1] != sysexEnd {
		return nil, fmt.Errorf("%w: missing F7", ErrMalformed)
	}
	body := msg[HeaderLen : len(msg)-1]
	if len(body)%RecordLen != 0 {
		return nil, fmt.Errorf("%w: body of %d bytes", ErrMalformed, len(body))
	}

	recs := make([]LEDRecord, 0, len(body)/RecordLen)
	for i := 0; i < len(body); i += RecordLen {
		if body[i] != ledTypeRGB {
			return nil, fmt.Errorf("%w: record %d type %#02x", ErrMalformed, i/RecordLen, body[i])
		}
		recs = append(recs, LEDRecord{
			LED:   body[i+1],
			Color: Color{body[i+2], body[i+3], body[i+4]},
		})
	}
	return recs, nil
}
