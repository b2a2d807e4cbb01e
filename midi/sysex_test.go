package midi

import (
	"bytes"
	"errors"
	"testing"

	"go-chordpad/grid"

	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestProgrammerMode(t *testing.T) {
	want := []byte{0xF0, 0x00, 0x20, 0x29, 0x02, 0x0C, 0x0E, 0x01, 0xF7}
	if got := ProgrammerMode(); !bytes.Equal(got, want) {
		t.Errorf("got % X", got)
	}
}

func TestEncodeGrid(t *testing.T) {
	p := grid.BuildPads(36)
	var colors [64]Color
	for i := range colors {
		colors[i] = Color{uint8(i), 1, 2}
	}
	msg := EncodeGrid(&p, colors)

	if len(msg) != 7+64*5+8*5+1 || len(msg) != GridMessageLen {
		t.Fatalf("len = %d, want %d", len(msg), GridMessageLen)
	}
	if !bytes.Equal(msg[:7], []byte{0xF0, 0x00, 0x20, 0x29, 0x02, 0x0C, 0x03}) {
		t.Errorf("header % X", msg[:7])
	}
	if msg[len(msg)-1] != 0xF7 {
		t.Errorf("footer %X", msg[len(msg)-1])
	}

	recs, err := ParseLighting(msg)
	if err != nil {
		t.Fatal(err)
	}
	for i, pad := range p {
		if recs[i].LED != pad.DeviceNote {
			t.Errorf("record %d led %d, want %d", i, recs[i].LED, pad.DeviceNote)
		}
		if recs[i].Color != colors[i] {
			t.Errorf("record %d color %v", i, recs[i].Color)
		}
	}
	for i, cc := range grid.TopRowCCs {
		rec := recs[64+i]
		want := ColorFnIdle
		if i < 4 {
			want = ColorFnActive
		}
		if rec.LED != cc || rec.Color != want {
			t.Errorf("top row %d: %+v", i, rec)
		}
	}
}

func TestEncodePadAndStatus(t *testing.T) {
	want := []byte{0xF0, 0x00, 0x20, 0x29, 0x02, 0x0C, 0x03, 0x03, 45, 127, 127, 127, 0xF7}
	if got := EncodePad(45, ColorPressed); !bytes.Equal(got, want) {
		t.Errorf("EncodePad = % X", got)
	}
	st := EncodeStatus(StatusConnected)
	if st[8] != 99 || st[9] != 0 || st[10] != 100 || st[11] != 0 {
		t.Errorf("EncodeStatus = % X", st)
	}
}

func TestColorsMaskedTo7Bits(t *testing.T) {
	msg := EncodePad(11, Color{255, 128, 0x7F})
	if msg[9] != 0x7F || msg[10] != 0 || msg[11] != 0x7F {
		t.Errorf("got % X", msg[9:12])
	}
}

func TestEncodeClearAll(t *testing.T) {
	p := grid.BuildPads(50)
	msg := EncodeClearAll(&p)
	if len(msg) != 7+80*5+1 {
		t.Fatalf("len = %d", len(msg))
	}
	recs, err := ParseLighting(msg)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[uint8]bool{}
	for _, r := range recs {
		if r.Color != ColorOff {
			t.Errorf("led %d not off", r.LED)
		}
		seen[r.LED] = true
	}
	if seen[grid.StatusLED] {
		t.Error("clear all must not touch the status LED")
	}
	for _, n := range grid.RightColNotes {
		if !seen[n] {
			t.Errorf("right column %d not cleared", n)
		}
	}
}

func TestParseLightingRejects(t *testing.T) {
	bad := [][]byte{
		{0xF0, 0xF7},
		{0xF0, 0x00, 0x20, 0x29, 0x02, 0x0D, 0x03, 0xF7},
		{0xF0, 0x00, 0x20, 0x29, 0x02, 0x0C, 0x03, 0x03, 11, 0, 0xF7},
		{0xF0, 0x00, 0x20, 0x29, 0x02, 0x0C, 0x03, 0x03, 11, 0, 0, 0},
		{0xF0, 0x00, 0x20, 0x29, 0x02, 0x0C, 0x03, 0x01, 11, 0, 0, 0, 0xF7},
	}
	for _, msg := range bad {
		if _, err := ParseLighting(msg); !errors.Is(err, ErrMalformed) {
			t.Errorf("% X: err = %v", msg, err)
		}
	}
}

func TestGridColorsPressedOverride(t *testing.T) {
	p := grid.BuildPads(36)
	v := grid.View{Root: 0, Chord: []int{0, 4, 7}, ShowChord: true}
	roles := grid.Roles(&p, v)

	colors := GridColors(&p, roles, map[int]bool{4: true})
	for i, pad := range p {
		want := RoleColor(roles[i])
		if pad.PitchClass == 4 {
			want = ColorPressed
		}
		if colors[i] != want {
			t.Errorf("pad %d pc %d: %v, want %v", i, pad.PitchClass, colors[i], want)
		}
	}
}

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  gomidi.Message
		ok   bool
		want Event
	}{
		{"note on", gomidi.NoteOn(0, 11, 100), true, Event{Kind: EventNoteOn, Number: 11, Value: 100}},
		{"zero velocity", gomidi.NoteOn(0, 11, 0), true, Event{Kind: EventNoteOff, Number: 11}},
		{"note off", gomidi.NoteOff(0, 12), true, Event{Kind: EventNoteOff, Number: 12}},
		{"cc", gomidi.ControlChange(0, 91, 127), true, Event{Kind: EventCC, Number: 91, Value: 127}},
		{"short", gomidi.Message{0x90, 11}, false, Event{}},
		{"program change", gomidi.ProgramChange(0, 3), false, Event{}},
	}
	for _, tt := range tests {
		got, ok := ParseMessage(tt.msg)
		if ok != tt.ok || got != tt.want {
			t.Errorf("%s: got %+v,%v want %+v,%v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
