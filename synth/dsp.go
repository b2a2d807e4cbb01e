package synth

import "math"

// Waveform names an oscillator shape
type Waveform string

const (
	Sine     Waveform = "sine"
	Triangle Waveform = "triangle"
	Sawtooth Waveform = "sawtooth"
	Square   Waveform = "square"
)

func (w Waveform) valid() bool {
	switch w {
	case Sine, Triangle, Sawtooth, Square:
		return true
	}
	return false
}

// sample evaluates one period at phase p in [0,1). All shapes start at 0
// (sine, triangle) or at their rising edge.
func (w Waveform) sample(p float64) float64 {
	switch w {
	case Triangle:
		switch {
		case p < 0.25:
			return 4 * p
		case p < 0.75:
			return 2 - 4*p
		default:
			return 4*p - 4
		}
	case Sawtooth:
		return 2*p - 1
	case Square:
		if p < 0.5 {
			return 1
		}
		return -1
	}
	return math.Sin(2 * math.Pi * p)
}

// detuned applies a pitch offset in cents
func detuned(freq, cents float64) float64 {
	if cents == 0 {
		return freq
	}
	return freq * math.Pow(2, cents/1200)
}

type oscillator struct {
	wave  Waveform
	inc   float64 // phase increment per sample
	gain  float64
	phase float64
}

func newOscillator(wave Waveform, freq, gain float64, rate int) oscillator {
	return oscillator{wave: wave, inc: freq / float64(rate), gain: gain}
}

func (o *oscillator) next() float64 {
	v := o.wave.sample(o.phase) * o.gain
	o.phase += o.inc
	if o.phase >= 1 {
		o.phase -= math.Floor(o.phase)
	}
	return v
}

// biquad is an RBJ cookbook lowpass, direct form I. Q is resonance in dB.
type biquad struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

func newLowpass(freq, qdB float64, rate int) *biquad {
	nyquist := float64(rate) / 2
	if freq >= nyquist {
		freq = nyquist * 0.999
	}
	w0 := 2 * math.Pi * freq / float64(rate)
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * math.Pow(10, qdB/20))

	a0 := 1 + alpha
	return &biquad{
		b0: (1 - cosw) / 2 / a0,
		b1: (1 - cosw) / a0,
		b2: (1 - cosw) / 2 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// silence is the floor exponential ramps head for
const silence = 0.001

// expRamp interpolates exponentially from v0 to v1 at fraction t in [0,1].
// A start at or below zero falls back to linear.
func expRamp(v0, v1, t float64) float64 {
	if t >= 1 {
		return v1
	}
	if v0 <= 0 || v1 <= 0 {
		return v0 + (v1-v0)*t
	}
	return v0 * math.Pow(v1/v0, t)
}
