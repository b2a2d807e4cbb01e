package synth

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetData []byte

// DefaultPreset is the instrument selected at startup
const DefaultPreset = "piano"

// ErrUnknownPreset is returned for an instrument key not in the table
var ErrUnknownPreset = errors.New("unknown instrument")

type (
	// Osc is one oscillator of a two-oscillator preset
	Osc struct {
		Wave     Waveform `yaml:"wave"`
		Detune   float64  `yaml:"detune"`   // cents
		VolRatio float64  `yaml:"volRatio"` // gain relative to osc1
	}

	// Envelope timings are in seconds. Attack shortens with velocity:
	// attack = AttackBase + (1 - vel/127) * AttackVelRange.
	Envelope struct {
		AttackBase     float64 `yaml:"attackBase"`
		AttackVelRange float64 `yaml:"attackVelRange"`
		DecayTime      float64 `yaml:"decayTime"`
		SustainRatio   float64 `yaml:"sustainRatio"`
		ReleaseTime    float64 `yaml:"releaseTime"`
	}

	Filter struct {
		Type      string  `yaml:"type"`
		Frequency float64 `yaml:"frequency"`
		Q         float64 `yaml:"q"`
	}

	// Preset describes an instrument. Either Harmonics (additive sine bank)
	// or Osc1 (with optional Osc2) is set.
	Preset struct {
		Key           string    `yaml:"key"`
		Label         string    `yaml:"label"`
		Osc1          *Osc      `yaml:"osc1,omitempty"`
		Osc2          *Osc      `yaml:"osc2,omitempty"`
		Harmonics     []float64 `yaml:"harmonics,omitempty"`
		HarmonicGains []float64 `yaml:"harmonicGains,omitempty"`
		Envelope      Envelope  `yaml:"envelope"`
		PeakVolFactor float64   `yaml:"peakVolFactor"`
		Filter        *Filter   `yaml:"filter,omitempty"`
	}
)

var builtin = mustParse(presetData)

func mustParse(data []byte) []Preset {
	ps, err := ParsePresets(data)
	if err != nil {
		panic(fmt.Sprintf("built-in presets: %v", err))
	}
	return ps
}

// ParsePresets decodes and validates a YAML preset list
func ParsePresets(data []byte) ([]Preset, error) {
	var ps []Preset
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	seen := make(map[string]bool, len(ps))
	for i := range ps {
		if err := ps[i].validate(); err != nil {
			return nil, err
		}
		if seen[ps[i].Key] {
			return nil, fmt.Errorf("preset %q: duplicate key", ps[i].Key)
		}
		seen[ps[i].Key] = true
	}
	return ps, nil
}

func (p *Preset) validate() error {
	if p.Key == "" {
		return errors.New("preset without key")
	}
	if len(p.Harmonics) > 0 {
		if len(p.Harmonics) != len(p.HarmonicGains) {
			return fmt.Errorf("preset %q: %d harmonics, %d gains", p.Key, len(p.Harmonics), len(p.HarmonicGains))
		}
	} else if p.Osc1 == nil {
		return fmt.Errorf("preset %q: needs osc1 or harmonics", p.Key)
	}
	for _, o := range []*Osc{p.Osc1, p.Osc2} {
		if o != nil && !o.Wave.valid() {
			return fmt.Errorf("preset %q: unknown wave %q", p.Key, o.Wave)
		}
	}
	if p.Filter != nil && p.Filter.Type != "lowpass" {
		return fmt.Errorf("preset %q: unsupported filter %q", p.Key, p.Filter.Type)
	}
	if p.Envelope.ReleaseTime <= 0 {
		return fmt.Errorf("preset %q: release time must be positive", p.Key)
	}
	return nil
}

// Presets returns the built-in instruments in display order
func Presets() []Preset {
	out := make([]Preset, len(builtin))
	copy(out, builtin)
	return out
}

// Lookup returns the built-in preset with the given key
func Lookup(key string) (Preset, error) {
	for _, p := range builtin {
		if p.Key == key {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, key)
}
