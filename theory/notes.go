// Package theory holds the pitch-class math and the chord/scale tables.
// Everything here is pure: no state, no I/O.
package theory

import (
	"fmt"
	"math"
)

// NoteNames indexed by pitch class (C=0)
var NoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PC reduces any integer to a pitch class 0-11 (never negative)
func PC(x int) int {
	return ((x % 12) + 12) % 12
}

// NoteName returns the name of a pitch class (or of any note number, reduced)
func NoteName(pc int) string {
	return NoteNames[PC(pc)]
}

// Octave returns the scientific octave of a MIDI note (36 -> 2, 60 -> 4)
func Octave(note int) int {
	return int(math.Floor(float64(note)/12)) - 1
}

// NoteWithOctave formats a MIDI note as "C2", "F#4"...
func NoteWithOctave(note int) string {
	return fmt.Sprintf("%s%d", NoteName(note), Octave(note))
}

// MIDIToFreq converts a MIDI note number to equal-tempered Hz (A4 = 440)
func MIDIToFreq(note int) float64 {
	return 440 * math.Pow(2, float64(note-69)/12)
}

var intervalNames = []string{"R", "b2", "2", "b3", "3", "4", "#4", "5", "b6", "6", "b7", "7", "(8)", "b9", "9"}

// IntervalName labels a semitone offset from the root. Offsets past the
// table render as "+N".
func IntervalName(offset int) string {
	if offset >= 0 && offset < len(intervalNames) {
		return intervalNames[offset]
	}
	return fmt.Sprintf("+%d", offset)
}
