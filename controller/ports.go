package controller

import (
	"sync"
	"time"

	"go-chordpad/synth"
)

// Transport sends device commands. midi.Controller satisfies it.
type Transport interface {
	Send(msg []byte) error
}

// Clock schedules callbacks. The returned stop function cancels further
// calls; a callback already running is not interrupted.
type Clock interface {
	Every(d time.Duration, fn func()) (stop func())
	After(d time.Duration, fn func()) (stop func())
}

// Sound plays notes. *synth.Engine satisfies it.
type Sound interface {
	Start(note, velocity int, volume float64, p synth.Preset) *synth.Voice
	Stop(note int)
	Click(accent bool)
}

// SystemClock is a Clock on the runtime timers
type SystemClock struct{}

func (SystemClock) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

func (SystemClock) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

type silent struct{}

func (silent) Start(int, int, float64, synth.Preset) *synth.Voice { return nil }
func (silent) Stop(int)                                          {}
func (silent) Click(bool)                                        {}
