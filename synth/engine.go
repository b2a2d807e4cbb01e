// Package synth is a small polyphonic software synth: one voice per MIDI
// note, a per-note envelope, and a metronome click. The engine is pulled
// for samples by the audio output.
package synth

import (
	"encoding/binary"
	"math"
	"sync"

	"go-chordpad/debug"
)

const DefaultSampleRate = 48000

// FrameSize is one interleaved stereo float32 frame in bytes
const FrameSize = 2 * 4

// Engine mixes the sounding voices. Held notes are keyed by MIDI note;
// released notes move to a tail list until their release has finished.
type Engine struct {
	mu     sync.Mutex
	rate   int
	voices map[int]*Voice
	tails  []*Voice
	clicks []*click
}

// NewEngine creates an engine rendering at sampleRate (0 means default)
func NewEngine(sampleRate int) *Engine {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Engine{
		rate:   sampleRate,
		voices: make(map[int]*Voice),
	}
}

func (e *Engine) SampleRate() int {
	return e.rate
}

// Start begins a note. A note already sounding is released first. Nothing
// sounds (nil) when volume or velocity is zero.
func (e *Engine) Start(note, velocity int, volume float64, p Preset) *Voice {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked(note)
	if volume*float64(velocity)/127 <= 0 {
		return nil
	}

	v := newVoice(note, velocity, volume, p, e.rate)
	e.voices[note] = v
	debug.Log("synth", "start %d vel=%d %s peak=%.3f", note, velocity, p.Key, v.Peak)
	return v
}

// Stop releases a note. No-op when the note is not sounding.
func (e *Engine) Stop(note int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked(note)
}

func (e *Engine) stopLocked(note int) {
	v, ok := e.voices[note]
	if !ok {
		return
	}
	delete(e.voices, note)
	v.stop()
	e.tails = append(e.tails, v)
}

// StopAll releases every held note
func (e *Engine) StopAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for note := range e.voices {
		e.stopLocked(note)
	}
}

// Active reports whether a note is held (not releasing)
func (e *Engine) Active(note int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.voices[note]
	return ok
}

// ActiveCount is the number of held notes
func (e *Engine) ActiveCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.voices)
}

// ActiveNotes returns the held notes in no particular order
func (e *Engine) ActiveNotes() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	notes := make([]int, 0, len(e.voices))
	for n := range e.voices {
		notes = append(notes, n)
	}
	return notes
}

// Click schedules a metronome tick
func (e *Engine) Click(accent bool) {
	e.mu.Lock()
	e.clicks = append(e.clicks, newClick(accent, e.rate))
	e.mu.Unlock()
}

// Read renders interleaved stereo float32 little-endian frames into p.
// It never returns an error; silence is rendered when nothing sounds.
func (e *Engine) Read(p []byte) (int, error) {
	frames := len(p) / FrameSize

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := 0; i < frames; i++ {
		s := float32(clamp(e.nextLocked()))
		bits := math.Float32bits(s)
		off := i * FrameSize
		binary.LittleEndian.PutUint32(p[off:], bits)
		binary.LittleEndian.PutUint32(p[off+4:], bits)
	}
	e.reapLocked()
	return frames * FrameSize, nil
}

// Render fills buf with mono samples, for offline use and tests
func (e *Engine) Render(buf []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range buf {
		buf[i] = e.nextLocked()
	}
	e.reapLocked()
}

func (e *Engine) nextLocked() float64 {
	var out float64
	for _, v := range e.voices {
		out += v.next()
	}
	for _, v := range e.tails {
		if !v.finished() {
			out += v.next()
		}
	}
	for _, c := range e.clicks {
		if !c.finished() {
			out += c.next()
		}
	}
	return out
}

func (e *Engine) reapLocked() {
	tails := e.tails[:0]
	for _, v := range e.tails {
		if !v.finished() {
			tails = append(tails, v)
		}
	}
	clear(e.tails[len(tails):])
	e.tails = tails

	clicks := e.clicks[:0]
	for _, c := range e.clicks {
		if !c.finished() {
			clicks = append(clicks, c)
		}
	}
	clear(e.clicks[len(clicks):])
	e.clicks = clicks
}

// Sounding is the number of voices and clicks still producing output
func (e *Engine) Sounding() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.voices) + len(e.tails) + len(e.clicks)
}

func clamp(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
