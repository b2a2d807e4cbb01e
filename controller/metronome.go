package controller

import (
	"go-chordpad/debug"
	"go-chordpad/midi"
)

// StartMetronome starts clicking at the current BPM. The first beat sounds
// immediately and is accented; a running metronome restarts from beat 0.
func (c *Controller) StartMetronome() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startMetronomeLocked()
	c.notify()
}

func (c *Controller) StopMetronome() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.st.Metronome {
		return
	}
	c.stopMetronomeLocked()
	c.notify()
}

// ToggleMetronome returns whether the metronome is now running
func (c *Controller) ToggleMetronome() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.Metronome {
		c.stopMetronomeLocked()
	} else {
		c.startMetronomeLocked()
	}
	c.notify()
	return c.st.Metronome
}

func (c *Controller) startMetronomeLocked() {
	c.cancelTimersLocked()
	c.metroGen++
	gen := c.metroGen
	c.st.Metronome = true
	c.st.Beat = 0
	debug.Log("metro", "start %d bpm", c.st.BPM)

	c.beatLocked()
	c.stopMetro = c.clock.Every(BeatPeriod(c.st.BPM), func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// a tick racing a stop or restart belongs to the old run
		if gen != c.metroGen || !c.st.Metronome {
			return
		}
		c.beatLocked()
		c.notify()
	})
}

func (c *Controller) stopMetronomeLocked() {
	c.cancelTimersLocked()
	c.metroGen++
	c.st.Metronome = false
	c.st.Beat = 0
	debug.Log("metro", "stop")
	c.sendLocked(midi.EncodeStatus(midi.StatusConnected), "status led")
}

func (c *Controller) cancelTimersLocked() {
	if c.stopMetro != nil {
		c.stopMetro()
		c.stopMetro = nil
	}
	if c.stopFlash != nil {
		c.stopFlash()
		c.stopFlash = nil
	}
}

// beatLocked clicks, flashes the status LED and advances the bar
func (c *Controller) beatLocked() {
	accent := c.st.Beat == 0
	c.st.Beat = (c.st.Beat + 1) % BeatsPerBar
	debug.LogEvery(BeatsPerBar, "metro", "beat accent=%v", accent)

	color := midi.StatusBeat
	if accent {
		color = midi.StatusAccent
	}
	c.sendLocked(midi.EncodeStatus(color), "status led")

	if c.stopFlash != nil {
		c.stopFlash()
	}
	gen := c.metroGen
	c.stopFlash = c.clock.After(StatusFlash, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.metroGen {
			return
		}
		c.sendLocked(midi.EncodeStatus(midi.StatusConnected), "status led")
	})

	c.sound.Click(accent)
}
