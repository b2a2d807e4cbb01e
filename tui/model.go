package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"go-chordpad/controller"
	"go-chordpad/debug"
	"go-chordpad/midi"
	"go-chordpad/synth"
	"go-chordpad/theme"
	"go-chordpad/theory"
)

const (
	bpmStep    = 5
	volumeStep = 0.05
)

type Model struct {
	Controller *controller.Controller
	DeviceMgr  *midi.DeviceManager
	Theme      *theme.Theme

	launchpad midi.Controller // current grid controller (may be nil)
	labels    bool            // note names on the pad grid
	showHelp  bool
	quitting  bool
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

// NewModel creates the UI model. deviceMgr may be nil when no MIDI
// backend is available.
func NewModel(c *controller.Controller, deviceMgr *midi.DeviceManager, th *theme.Theme) Model {
	return Model{
		Controller: c,
		DeviceMgr:  deviceMgr,
		Theme:      th,
		labels:     true,
	}
}

func ListenForUpdates(c *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		<-c.Updates()
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Controller)}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.handleKey(msg.String()) {
			m.quitting = true
			m.Controller.StopMetronome()
			return m, tea.Quit
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Controller)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		switch event.Type {
		case midi.DeviceConnected:
			dev := event.Controller
			if dev.Type() == midi.ControllerLaunchpad {
				m.launchpad = dev
				if err := m.Controller.Connect(dev); err != nil {
					debug.Log("tui", "connect %s: %v", dev.ID(), err)
				}
			}
			go Forward(m.Controller, dev)

		case midi.DeviceDisconnected:
			if m.launchpad != nil && m.launchpad.ID() == event.ID {
				m.launchpad = nil
				m.Controller.Disconnect()
			}
		}
		if m.DeviceMgr == nil {
			return m, nil
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

// handleKey applies a key binding; it reports whether the key quits
func (m *Model) handleKey(key string) bool {
	c := m.Controller
	st := c.Snapshot()

	switch key {
	case "q", "ctrl+c":
		return true

	case "right", "l":
		c.SelectRoot(st.Root + 1)
	case "left", "h":
		c.SelectRoot(st.Root + 11)

	case "up", "k":
		c.SelectChordType(cycle(chordKeys(), st.ChordType, -1))
	case "down", "j":
		c.SelectChordType(cycle(chordKeys(), st.ChordType, +1))

	case "s":
		c.SelectScale(cycle(scaleKeys(), st.Scale, +1))
	case "S":
		c.SelectScale(cycle(scaleKeys(), st.Scale, -1))

	case "i":
		c.SelectInstrument(cycle(presetKeys(), st.Instrument, +1))
	case "I":
		c.SelectInstrument(cycle(presetKeys(), st.Instrument, -1))

	case "c":
		c.ToggleChord()
	case "x":
		c.ToggleScale()
	case "v":
		c.ToggleInversion()
	case "tab":
		if ct, ok := theory.Chord(st.ChordType); ok {
			c.SetInversion((st.Inversion + 1) % len(ct.Intervals))
		}

	case "pgup", "o":
		c.ShiftOctave(+1)
	case "pgdown", "O":
		c.ShiftOctave(-1)
	case ">", ".":
		c.ShiftCapo(+1)
	case "<", ",":
		c.ShiftCapo(-1)
	case "0":
		c.ResetCapo()

	case "+", "=":
		c.SetBPM(st.BPM + bpmStep)
	case "-", "_":
		c.SetBPM(st.BPM - bpmStep)
	case "m":
		c.ToggleMetronome()

	case "]":
		c.SetVolume(st.Volume + volumeStep)
	case "[":
		c.SetVolume(st.Volume - volumeStep)

	case "n":
		m.labels = !m.labels
	case "r":
		if err := c.Refresh(); err != nil {
			debug.Log("tui", "refresh: %v", err)
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	return false
}

// Forward feeds a device's input to the controller until the device
// closes. Grid controllers are routed as pads and buttons; keyboards play
// their notes directly.
func Forward(c *controller.Controller, dev midi.Controller) {
	for ev := range dev.Events() {
		if dev.Type() == midi.ControllerLaunchpad {
			c.HandleMessage(ev)
			continue
		}
		switch ev.Kind {
		case midi.EventNoteOn:
			c.NoteOn(int(ev.Number), int(ev.Value))
		case midi.EventNoteOff:
			c.NoteOff(int(ev.Number))
		}
	}
	debug.Log("tui", "%s input closed", dev.ID())
}

// cycle steps through keys from cur, wrapping at both ends. An unknown cur
// starts from the first key.
func cycle(keys []string, cur string, delta int) string {
	if len(keys) == 0 {
		return cur
	}
	idx := -1
	for i, k := range keys {
		if k == cur {
			idx = i
			break
		}
	}
	if idx < 0 {
		return keys[0]
	}
	n := len(keys)
	return keys[((idx+delta)%n+n)%n]
}

func chordKeys() []string {
	var keys []string
	for _, ct := range theory.ChordTypes() {
		keys = append(keys, ct.Key)
	}
	return keys
}

func scaleKeys() []string {
	var keys []string
	for _, s := range theory.Scales() {
		keys = append(keys, s.Key)
	}
	return keys
}

func presetKeys() []string {
	var keys []string
	for _, p := range synth.Presets() {
		keys = append(keys, p.Key)
	}
	return keys
}
