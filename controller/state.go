package controller

import (
	"time"

	"go-chordpad/grid"
	"go-chordpad/synth"
	"go-chordpad/theory"
)

const (
	MinBPM     = 40
	MaxBPM     = 240
	DefaultBPM = 120

	DefaultVolume = 0.7

	// ClickVelocity is used for pad presses that carry no velocity
	ClickVelocity = 80

	// BeatsPerBar sets the accent cycle; the first beat of each bar is accented
	BeatsPerBar = 4

	// StatusFlash is how long the status LED shows a beat
	StatusFlash = 80 * time.Millisecond
)

// State is everything the player can change. The zero value is not
// usable; start from DefaultState.
type State struct {
	BaseNote  int
	Root      int // pitch class
	Capo      int // cumulative transpose from the capo buttons
	ChordType string
	Inversion int // < interval count of ChordType
	Scale     string

	ShowChord     bool
	ShowScale     bool
	ShowInversion bool

	Instrument string
	Volume     float64 // 0..1
	BPM        int

	Metronome bool
	Beat      int // next beat in the bar, 0 is the accent
}

// DefaultState is the startup state: C major on a C2 grid
func DefaultState() State {
	return State{
		BaseNote:   grid.DefaultBaseNote,
		ChordType:  "maj",
		Scale:      "major",
		ShowChord:  true,
		ShowScale:  true,
		Instrument: synth.DefaultPreset,
		Volume:     DefaultVolume,
		BPM:        DefaultBPM,
	}
}

// normalize forces s back inside its invariants. Unknown keys fall back to
// the defaults.
func (s State) normalize() State {
	d := DefaultState()
	s.Root = theory.PC(s.Root)
	if s.BaseNote < 0 || s.BaseNote > grid.MaxBaseCapo {
		s.BaseNote = d.BaseNote
	}
	if _, ok := theory.Chord(s.ChordType); !ok {
		s.ChordType = d.ChordType
	}
	if _, ok := theory.ScaleByKey(s.Scale); !ok {
		s.Scale = d.Scale
	}
	if _, err := synth.Lookup(s.Instrument); err != nil {
		s.Instrument = d.Instrument
	}
	ct, _ := theory.Chord(s.ChordType)
	if s.Inversion < 0 || s.Inversion >= len(ct.Intervals) {
		s.Inversion = 0
	}
	s.BPM = ClampBPM(s.BPM)
	s.Volume = ClampVolume(s.Volume)
	s.Metronome = false
	s.Beat = 0
	return s
}

// ClampBPM limits a tempo to MinBPM..MaxBPM
func ClampBPM(bpm int) int {
	return min(max(bpm, MinBPM), MaxBPM)
}

// ClampVolume limits a volume to 0..1
func ClampVolume(v float64) float64 {
	return min(max(v, 0), 1)
}

// BeatPeriod is the metronome interval for a tempo
func BeatPeriod(bpm int) time.Duration {
	return time.Duration(60000/ClampBPM(bpm)) * time.Millisecond
}
