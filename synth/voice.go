package synth

import "go-chordpad/theory"

// envelope is a linear attack, optional linear decay to sustain, and an
// exponential release from whatever level the note had reached.
type envelope struct {
	peak    float64
	sustain float64 // already floored at 0.0001
	attack  float64
	decay   float64 // 0 holds at peak after the attack

	t float64 // seconds since start

	releasing bool
	relFrom   float64
	relTime   float64
	relT      float64
}

func (e *envelope) level() float64 {
	if e.releasing {
		if e.relTime <= 0 {
			return 0
		}
		return expRamp(e.relFrom, silence, e.relT/e.relTime)
	}
	switch {
	case e.attack > 0 && e.t < e.attack:
		return e.peak * e.t / e.attack
	case e.decay > 0 && e.t < e.attack+e.decay:
		return e.peak + (e.sustain-e.peak)*(e.t-e.attack)/e.decay
	case e.decay > 0:
		return e.sustain
	}
	return e.peak
}

func (e *envelope) advance(dt float64) {
	if e.releasing {
		e.relT += dt
		return
	}
	e.t += dt
}

func (e *envelope) release(releaseTime float64) {
	if e.releasing {
		return
	}
	e.relFrom = e.level()
	e.relTime = releaseTime
	e.releasing = true
}

// done reports the release has run its full length
func (e *envelope) done() bool {
	return e.releasing && e.relT >= e.relTime
}

// Voice is one sounding note. The exported fields are fixed at creation.
type Voice struct {
	Note     int
	Velocity int
	Peak     float64 // peak gain: volume * vel/127 * PeakVolFactor
	Attack   float64 // seconds
	Preset   string

	oscs    []oscillator
	env     envelope
	filter  *biquad
	release float64
	dt      float64
}

func newVoice(note, velocity int, volume float64, p Preset, rate int) *Voice {
	vel := float64(velocity) / 127
	peak := volume * vel * p.PeakVolFactor
	env := p.Envelope
	attack := env.AttackBase + (1-vel)*env.AttackVelRange

	v := &Voice{
		Note:     note,
		Velocity: velocity,
		Peak:     peak,
		Attack:   attack,
		Preset:   p.Key,
		env: envelope{
			peak:    peak,
			sustain: max(peak*env.SustainRatio, 0.0001),
			attack:  attack,
			decay:   env.DecayTime,
		},
		release: env.ReleaseTime,
		dt:      1 / float64(rate),
	}

	freq := theory.MIDIToFreq(note)
	if len(p.Harmonics) > 0 {
		for i, mult := range p.Harmonics {
			v.oscs = append(v.oscs, newOscillator(Sine, freq*mult, p.HarmonicGains[i], rate))
		}
	} else {
		v.oscs = append(v.oscs, newOscillator(p.Osc1.Wave, detuned(freq, p.Osc1.Detune), 1, rate))
		if p.Osc2 != nil {
			v.oscs = append(v.oscs, newOscillator(p.Osc2.Wave, detuned(freq, p.Osc2.Detune), p.Osc2.VolRatio, rate))
		}
	}
	if p.Filter != nil {
		q := p.Filter.Q
		if q == 0 {
			q = 1
		}
		v.filter = newLowpass(p.Filter.Frequency, q, rate)
	}
	return v
}

// next renders one mono sample: oscillators into the envelope gain, then
// through the filter.
func (v *Voice) next() float64 {
	var sum float64
	for i := range v.oscs {
		sum += v.oscs[i].next()
	}
	out := sum * v.env.level()
	v.env.advance(v.dt)
	if v.filter != nil {
		out = v.filter.process(out)
	}
	return out
}

func (v *Voice) stop() {
	v.env.release(v.release)
}

// releasing reports whether the note is in its release tail
func (v *Voice) releasing() bool {
	return v.env.releasing
}

func (v *Voice) finished() bool {
	return v.env.done()
}

// click is the metronome tick: a sine with a 2 ms linear attack and an
// exponential decay to silence.
type click struct {
	osc   oscillator
	vol   float64
	decay float64
	t, dt float64
}

const clickAttack = 0.002

type clickSpec struct {
	freq, vol, decay float64
}

var (
	accentClick = clickSpec{freq: 1200, vol: 0.35, decay: 0.055}
	normalClick = clickSpec{freq: 700, vol: 0.18, decay: 0.04}
)

func newClick(accent bool, rate int) *click {
	s := normalClick
	if accent {
		s = accentClick
	}
	return &click{
		osc:   newOscillator(Sine, s.freq, 1, rate),
		vol:   s.vol,
		decay: s.decay,
		dt:    1 / float64(rate),
	}
}

func (c *click) level() float64 {
	switch {
	case c.t < clickAttack:
		return c.vol * c.t / clickAttack
	case c.t < c.decay:
		return expRamp(c.vol, silence, (c.t-clickAttack)/(c.decay-clickAttack))
	}
	return silence
}

func (c *click) next() float64 {
	out := c.osc.next() * c.level()
	c.t += c.dt
	return out
}

// the oscillator runs 10 ms past the decay, as a scheduled stop would
func (c *click) finished() bool {
	return c.t >= c.decay+0.01
}
