package controller

import (
	"fmt"
	"strings"

	"go-chordpad/theory"
)

// Display is the readout for the selected chord
type Display struct {
	ChordName  string   // "C", "Am7/G"
	NoteNames  []string // in inversion order
	Intervals  []string // "R", "b3", "5"...
	ScaleLabel string   // "C Major Scale", empty when the scale is hidden
	BaseLabel  string   // "[Base: C2]"
}

func (d Display) Notes() string {
	return strings.Join(d.NoteNames, "  ")
}

func (d Display) IntervalLine() string {
	return strings.Join(d.Intervals, " - ")
}

// KeyLabel is the scale label followed by the base note, as shown under
// the chord name
func (d Display) KeyLabel() string {
	if d.ScaleLabel == "" {
		return d.BaseLabel
	}
	return d.ScaleLabel + "  " + d.BaseLabel
}

// ChordDisplay describes the selected chord for the screen
func (c *Controller) ChordDisplay() Display {
	c.mu.Lock()
	st := c.st
	c.mu.Unlock()

	ct, _ := theory.Chord(st.ChordType)
	pcs, _ := theory.ChordPitchClasses(st.Root, st.ChordType, st.Inversion, st.ShowInversion)

	d := Display{
		ChordName: theory.NoteName(st.Root) + ct.Symbol,
		BaseLabel: fmt.Sprintf("[Base: %s]", theory.NoteWithOctave(st.BaseNote)),
	}
	if pcs.HasBass {
		d.ChordName += "/" + theory.NoteName(pcs.Bass)
	}
	for _, pc := range pcs.Inverted {
		d.NoteNames = append(d.NoteNames, theory.NoteName(pc))
	}
	for _, iv := range ct.Intervals {
		d.Intervals = append(d.Intervals, theory.IntervalName(iv))
	}
	if st.ShowScale {
		sc, _ := theory.ScaleByKey(st.Scale)
		d.ScaleLabel = fmt.Sprintf("%s %s Scale", theory.NoteName(st.Root), sc.Label)
	}
	return d
}
