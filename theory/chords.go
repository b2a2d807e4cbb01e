package theory

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownChord = errors.New("unknown chord type")
	ErrUnknownScale = errors.New("unknown scale")
)

// ChordType describes a chord as semitone offsets from its root.
// Intervals may exceed 11 (9ths use 14); Intervals[0] is always 0.
type ChordType struct {
	Key       string
	Intervals []int
	Label     string
	Symbol    string
}

// Chord types in display order
var chordTypes = []ChordType{
	{Key: "maj", Intervals: []int{0, 4, 7}, Label: "Major", Symbol: ""},
	{Key: "min", Intervals: []int{0, 3, 7}, Label: "Minor", Symbol: "m"},
	{Key: "7", Intervals: []int{0, 4, 7, 10}, Label: "Dom 7", Symbol: "7"},
	{Key: "maj7", Intervals: []int{0, 4, 7, 11}, Label: "Maj 7", Symbol: "M7"},
	{Key: "min7", Intervals: []int{0, 3, 7, 10}, Label: "Min 7", Symbol: "m7"},
	{Key: "dim", Intervals: []int{0, 3, 6}, Label: "Dim", Symbol: "°"},
	{Key: "dim7", Intervals: []int{0, 3, 6, 9}, Label: "Dim 7", Symbol: "°7"},
	{Key: "aug", Intervals: []int{0, 4, 8}, Label: "Aug", Symbol: "+"},
	{Key: "m7b5", Intervals: []int{0, 3, 6, 10}, Label: "Half-Dim", Symbol: "ø7"},
	{Key: "sus2", Intervals: []int{0, 2, 7}, Label: "Sus2", Symbol: "sus2"},
	{Key: "sus4", Intervals: []int{0, 5, 7}, Label: "Sus4", Symbol: "sus4"},
	{Key: "7sus4", Intervals: []int{0, 5, 7, 10}, Label: "7 Sus4", Symbol: "7sus4"},
	{Key: "add9", Intervals: []int{0, 4, 7, 14}, Label: "Add9", Symbol: "add9"},
	{Key: "9", Intervals: []int{0, 4, 7, 10, 14}, Label: "Dom 9", Symbol: "9"},
	{Key: "maj9", Intervals: []int{0, 4, 7, 11, 14}, Label: "Maj 9", Symbol: "M9"},
	{Key: "min9", Intervals: []int{0, 3, 7, 10, 14}, Label: "Min 9", Symbol: "m9"},
	{Key: "6", Intervals: []int{0, 4, 7, 9}, Label: "Maj 6", Symbol: "6"},
	{Key: "min6", Intervals: []int{0, 3, 7, 9}, Label: "Min 6", Symbol: "m6"},
}

var chordIndex = func() map[string]int {
	m := make(map[string]int, len(chordTypes))
	for i, ct := range chordTypes {
		m[ct.Key] = i
	}
	return m
}()

// ChordTypes returns the built-in chord table in display order.
// The slice is shared; callers must not modify it.
func ChordTypes() []ChordType {
	return chordTypes
}

// Chord looks up a chord type by key
func Chord(key string) (ChordType, bool) {
	i, ok := chordIndex[key]
	if !ok {
		return ChordType{}, false
	}
	return chordTypes[i], true
}

// PitchClassSet returns the chord's distinct pitch classes for a root, in
// interval order.
func (ct ChordType) PitchClassSet(root int) []int {
	seen := make(map[int]bool, len(ct.Intervals))
	out := make([]int, 0, len(ct.Intervals))
	for _, iv := range ct.Intervals {
		pc := PC(root + iv)
		if seen[pc] {
			continue
		}
		seen[pc] = true
		out = append(out, pc)
	}
	return out
}

// ChordPCs is the pitch-class breakdown of the selected chord
type ChordPCs struct {
	All      []int // interval order, duplicates kept
	Inverted []int // All rotated left by the inversion
	Bass     int   // valid only when HasBass
	HasBass  bool  // true iff the effective inversion is > 0
}

// Contains reports whether pc is one of the chord's pitch classes
func (c ChordPCs) Contains(pc int) bool {
	for _, p := range c.All {
		if p == pc {
			return true
		}
	}
	return false
}

// ChordPitchClasses computes the pitch classes of a chord. When
// applyInversion is false the inversion index is ignored. Out-of-range
// inversions wrap around the interval count.
func ChordPitchClasses(root int, chordKey string, inversion int, applyInversion bool) (ChordPCs, error) {
	ct, ok := Chord(chordKey)
	if !ok {
		return ChordPCs{}, fmt.Errorf("%w: %q", ErrUnknownChord, chordKey)
	}

	raw := make([]int, len(ct.Intervals))
	for i, iv := range ct.Intervals {
		raw[i] = PC(PC(iv) + root)
	}

	inv := 0
	if applyInversion {
		inv = inversion % len(raw)
		if inv < 0 {
			inv += len(raw)
		}
	}

	inverted := make([]int, 0, len(raw))
	inverted = append(inverted, raw[inv:]...)
	inverted = append(inverted, raw[:inv]...)

	res := ChordPCs{All: raw, Inverted: inverted}
	if inv > 0 {
		res.Bass = inverted[0]
		res.HasBass = true
	}
	return res, nil
}
