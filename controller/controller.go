// Package controller owns the player state and the pad grid. It turns UI
// calls and device input into sound, LED commands and chord readouts.
package controller

import (
	"fmt"
	"sort"
	"sync"

	"go-chordpad/debug"
	"go-chordpad/detect"
	"go-chordpad/grid"
	"go-chordpad/midi"
	"go-chordpad/synth"
	"go-chordpad/theory"
)

// Controller serializes the device callback, the metronome timers and the
// UI behind one mutex. Every exported method leaves the state consistent.
type Controller struct {
	mu    sync.Mutex
	st    State
	pads  grid.Pads
	sound Sound
	clock Clock

	transport Transport

	held    map[int]int   // semitone -> velocity
	heldPC  [12]int       // held semitones per pitch class
	padHeld map[uint8]int // device note -> semitone it started

	stopMetro func()
	stopFlash func()
	metroGen  int

	lastControl string
	lastErr     error

	updates chan struct{}
}

// New creates a controller. sound may be nil for silent operation; clock
// nil uses the system clock.
func New(initial State, sound Sound, clock Clock) *Controller {
	if sound == nil {
		sound = silent{}
	}
	if clock == nil {
		clock = SystemClock{}
	}
	st := initial.normalize()
	return &Controller{
		st:      st,
		pads:    grid.BuildPads(st.BaseNote),
		sound:   sound,
		clock:   clock,
		held:    make(map[int]int),
		padHeld: make(map[uint8]int),
		updates: make(chan struct{}, 1),
	}
}

// Updates signals state changes. Signals coalesce; read Snapshot after one.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

func (c *Controller) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// changedLocked pushes the new grid to the device and wakes the UI
func (c *Controller) changedLocked() {
	c.refreshLocked()
	c.notify()
}

// SelectRoot sets the chord/scale root and resets the inversion
func (c *Controller) SelectRoot(pc int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.Root = theory.PC(pc)
	c.st.Inversion = 0
	debug.Log("state", "root %s", theory.NoteName(c.st.Root))
	c.changedLocked()
}

// SelectChordType sets the chord type and resets the inversion
func (c *Controller) SelectChordType(key string) error {
	if _, ok := theory.Chord(key); !ok {
		return fmt.Errorf("select chord: %w: %q", theory.ErrUnknownChord, key)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.ChordType = key
	c.st.Inversion = 0
	debug.Log("state", "chord %s", key)
	c.changedLocked()
	return nil
}

func (c *Controller) SelectScale(key string) error {
	if _, ok := theory.ScaleByKey(key); !ok {
		return fmt.Errorf("select scale: %w: %q", theory.ErrUnknownScale, key)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.Scale = key
	debug.Log("state", "scale %s", key)
	c.changedLocked()
	return nil
}

// SelectInstrument changes the preset for notes started from now on
func (c *Controller) SelectInstrument(key string) error {
	if _, err := synth.Lookup(key); err != nil {
		return fmt.Errorf("select instrument: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.Instrument = key
	debug.Log("state", "instrument %s", key)
	c.notify()
	return nil
}

func (c *Controller) ToggleChord() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.ShowChord = !c.st.ShowChord
	c.changedLocked()
	return c.st.ShowChord
}

func (c *Controller) ToggleScale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.ShowScale = !c.st.ShowScale
	c.changedLocked()
	return c.st.ShowScale
}

func (c *Controller) ToggleInversion() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.ShowInversion = !c.st.ShowInversion
	c.changedLocked()
	return c.st.ShowInversion
}

// SetInversion selects an inversion of the current chord. Indexes outside
// the chord's interval count are rejected.
func (c *Controller) SetInversion(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ct, _ := theory.Chord(c.st.ChordType)
	if i < 0 || i >= len(ct.Intervals) {
		debug.Log("state", "inversion %d out of range for %s", i, ct.Key)
		return false
	}
	c.st.Inversion = i
	c.changedLocked()
	return true
}

// ShiftOctave moves the grid by whole octaves. Rejected (false) when the
// base note would leave 0..108.
func (c *Controller) ShiftOctave(delta int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shiftOctaveLocked(delta)
}

func (c *Controller) shiftOctaveLocked(delta int) bool {
	if !grid.CanShiftOctave(c.st.BaseNote, delta) {
		debug.Log("state", "octave %+d rejected at base %d", delta, c.st.BaseNote)
		return false
	}
	c.st.BaseNote += delta * 12
	c.rebuildLocked()
	debug.Log("state", "octave -> %s (base=%d)", theory.NoteWithOctave(c.st.BaseNote), c.st.BaseNote)
	c.changedLocked()
	return true
}

// ShiftCapo transposes the grid and the root together by delta semitones.
// Rejected (false) when the base note would leave 0..115.
func (c *Controller) ShiftCapo(delta int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shiftCapoLocked(delta)
}

// ResetCapo undoes the accumulated capo
func (c *Controller) ResetCapo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.Capo == 0 {
		return true
	}
	return c.shiftCapoLocked(-c.st.Capo)
}

func (c *Controller) shiftCapoLocked(delta int) bool {
	if !grid.CanShiftCapo(c.st.BaseNote, delta) {
		debug.Log("state", "capo %+d rejected at base %d", delta, c.st.BaseNote)
		return false
	}
	c.st.BaseNote += delta
	c.st.Root = theory.PC(c.st.Root + delta)
	c.st.Capo += delta
	c.st.Inversion = 0
	c.rebuildLocked()
	debug.Log("state", "capo %+d -> %s (base=%d)", c.st.Capo, theory.NoteName(c.st.Root), c.st.BaseNote)
	c.changedLocked()
	return true
}

// rebuildLocked swaps in the grid for the current base note. Held pads keep
// the semitone they started with so their release still finds the voice.
func (c *Controller) rebuildLocked() {
	c.pads = grid.BuildPads(c.st.BaseNote)
}

// SetBPM sets the metronome tempo (clamped to 40..240), restarting a
// running metronome on the new period.
func (c *Controller) SetBPM(bpm int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.BPM = ClampBPM(bpm)
	if c.st.Metronome {
		c.startMetronomeLocked()
	}
	c.notify()
	return c.st.BPM
}

// SetVolume sets the note volume (clamped to 0..1)
func (c *Controller) SetVolume(v float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.Volume = ClampVolume(v)
	c.notify()
	return c.st.Volume
}

// PressPad plays the pad at row, col. A velocity of 0 means ClickVelocity.
func (c *Controller) PressPad(row, col, velocity int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	pad, ok := c.pads.At(row, col)
	if !ok {
		return false
	}
	if velocity <= 0 {
		velocity = ClickVelocity
	}
	c.pressLocked(pad, velocity)
	return true
}

// ReleasePad releases the pad at row, col
func (c *Controller) ReleasePad(row, col int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	pad, ok := c.pads.At(row, col)
	if !ok {
		return false
	}
	c.releaseLocked(pad.DeviceNote)
	return true
}

func (c *Controller) pressLocked(pad grid.Pad, velocity int) {
	if prev, ok := c.padHeld[pad.DeviceNote]; ok && prev != pad.Semitone {
		c.noteOffLocked(prev)
	}
	c.padHeld[pad.DeviceNote] = pad.Semitone
	c.noteOnLocked(pad.Semitone, velocity)
}

func (c *Controller) releaseLocked(deviceNote uint8) {
	st, ok := c.padHeld[deviceNote]
	if !ok {
		return
	}
	delete(c.padHeld, deviceNote)
	c.noteOffLocked(st)
}

// NoteOn plays a semitone directly, for keyboards and on-screen keys.
// Velocity 0 is a note-off.
func (c *Controller) NoteOn(semitone, velocity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.noteOnLocked(semitone, velocity)
}

func (c *Controller) NoteOff(semitone int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.noteOffLocked(semitone)
}

func (c *Controller) noteOnLocked(semitone, velocity int) {
	if velocity <= 0 {
		c.noteOffLocked(semitone)
		return
	}
	p, err := synth.Lookup(c.st.Instrument)
	if err != nil {
		p, _ = synth.Lookup(synth.DefaultPreset)
	}
	c.sound.Start(semitone, min(velocity, 127), c.st.Volume, p)

	pc := theory.PC(semitone)
	if _, ok := c.held[semitone]; !ok {
		c.heldPC[pc]++
	}
	c.held[semitone] = velocity
	debug.Log("note", "on %s vel=%d", theory.NoteWithOctave(semitone), velocity)

	c.flashLocked(pc, midi.ColorPressed)
	c.notify()
}

func (c *Controller) noteOffLocked(semitone int) {
	c.sound.Stop(semitone)
	if _, ok := c.held[semitone]; !ok {
		return
	}
	delete(c.held, semitone)
	pc := theory.PC(semitone)
	c.heldPC[pc]--
	debug.Log("note", "off %s", theory.NoteWithOctave(semitone))

	if c.heldPC[pc] == 0 {
		role := grid.Classify(pc, c.viewLocked())
		c.flashLocked(pc, midi.RoleColor(role))
	}
	c.notify()
}

// flashLocked recolors every pad of a pitch class with single-pad commands
func (c *Controller) flashLocked(pc int, color midi.Color) {
	if c.transport == nil {
		return
	}
	for _, pad := range c.pads.SamePitchClass(pc) {
		if err := c.sendLocked(midi.EncodePad(pad.DeviceNote, color), "pad led"); err != nil {
			return
		}
	}
}

// HandleMessage routes one parsed device message
func (c *Controller) HandleMessage(ev midi.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Kind {
	case midi.EventCC:
		if ev.Value == 0 {
			return // button release
		}
		t := grid.RouteCC(ev.Number)
		switch t.Kind {
		case grid.TargetTopRow:
			c.topRowLocked(t.Index)
		case grid.TargetRightCol:
			c.rightColLocked(t.Index)
		default:
			debug.Log("midi", "unrecognized CC%d val=%d", ev.Number, ev.Value)
		}

	case midi.EventNoteOn:
		t := grid.RouteNote(ev.Number)
		switch t.Kind {
		case grid.TargetRightCol:
			c.rightColLocked(t.Index)
		case grid.TargetPad:
			c.pressLocked(c.pads[t.Index], int(ev.Value))
		default:
			debug.Log("midi", "unrecognized note %d vel=%d", ev.Number, ev.Value)
		}

	case midi.EventNoteOff:
		if t := grid.RouteNote(ev.Number); t.Kind == grid.TargetPad {
			c.releaseLocked(ev.Number)
		}
	}
}

func (c *Controller) topRowLocked(index int) {
	switch cc := grid.TopRowCCs[index]; cc {
	case grid.CCOctaveUp:
		c.shiftOctaveLocked(+1)
	case grid.CCOctaveDown:
		c.shiftOctaveLocked(-1)
	case grid.CCCapoDown:
		c.shiftCapoLocked(-1)
	case grid.CCCapoUp:
		c.shiftCapoLocked(+1)
	default:
		c.lastControl = fmt.Sprintf("top row CC%d", cc)
		debug.Log("midi", "top row CC%d pressed", cc)
		c.notify()
	}
}

func (c *Controller) rightColLocked(index int) {
	c.lastControl = fmt.Sprintf("right column %d (note %d)", index+1, grid.RightColNotes[index])
	debug.Log("midi", "right col note %d pressed", grid.RightColNotes[index])
	c.notify()
}

func (c *Controller) viewLocked() grid.View {
	chord, err := theory.ChordPitchClasses(c.st.Root, c.st.ChordType, c.st.Inversion, c.st.ShowInversion)
	if err != nil {
		debug.Log("state", "chord: %v", err)
	}
	scale, err := theory.ScalePitchClasses(c.st.Root, c.st.Scale)
	if err != nil {
		debug.Log("state", "scale: %v", err)
	}
	return grid.View{
		Root:      c.st.Root,
		Chord:     chord.All,
		Scale:     scale,
		Bass:      chord.Bass,
		HasBass:   chord.HasBass,
		ShowChord: c.st.ShowChord,
		ShowScale: c.st.ShowScale,
	}
}

func (c *Controller) pressedLocked() map[int]bool {
	pressed := make(map[int]bool)
	for pc, n := range c.heldPC {
		if n > 0 {
			pressed[pc] = true
		}
	}
	return pressed
}

// Roles classifies every pad for the current state
func (c *Controller) Roles() [grid.Rows * grid.Cols]grid.Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return grid.Roles(&c.pads, c.viewLocked())
}

// Colors is what the LEDs show, held pitch classes included
func (c *Controller) Colors() [grid.Rows * grid.Cols]midi.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.colorsLocked()
}

func (c *Controller) colorsLocked() [grid.Rows * grid.Cols]midi.Color {
	roles := grid.Roles(&c.pads, c.viewLocked())
	return midi.GridColors(&c.pads, roles, c.pressedLocked())
}

// Pads returns a copy of the current grid
func (c *Controller) Pads() grid.Pads {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pads
}

// Held returns the held semitones in ascending order
func (c *Controller) Held() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.heldLocked()
}

func (c *Controller) heldLocked() []int {
	notes := make([]int, 0, len(c.held))
	for n := range c.held {
		notes = append(notes, n)
	}
	sort.Ints(notes)
	return notes
}

// Detected names the chord formed by the held notes
func (c *Controller) Detected() []detect.Match {
	c.mu.Lock()
	defer c.mu.Unlock()
	return detect.Detect(c.heldLocked())
}

// Snapshot is a consistent copy of the controller for rendering
type Snapshot struct {
	State
	Connected   bool
	Held        []int
	LastControl string
	LastError   error
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:       c.st,
		Connected:   c.transport != nil,
		Held:        c.heldLocked(),
		LastControl: c.lastControl,
		LastError:   c.lastErr,
	}
}

// Connect attaches a device and pushes the full grid and the connected
// status to it.
func (c *Controller) Connect(t Transport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transport = t
	c.lastErr = nil
	debug.Log("ctrl", "device connected")
	defer c.notify()

	if err := c.refreshLocked(); err != nil {
		return err
	}
	return c.sendLocked(midi.EncodeStatus(midi.StatusConnected), "status led")
}

// Disconnect detaches the device and stops the metronome. The device is
// already gone, so nothing is sent and earlier send errors are dropped.
func (c *Controller) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transport = nil
	c.lastErr = nil
	if c.st.Metronome {
		c.stopMetronomeLocked()
	}
	debug.Log("ctrl", "device disconnected")
	c.notify()
}

// Refresh resends the full grid
func (c *Controller) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked()
}

func (c *Controller) refreshLocked() error {
	return c.sendLocked(midi.EncodeGrid(&c.pads, c.colorsLocked()), "grid")
}

// ClearLEDs turns every LED off, status included
func (c *Controller) ClearLEDs() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.sendLocked(midi.EncodeClearAll(&c.pads), "clear"); err != nil {
		return err
	}
	return c.sendLocked(midi.EncodeStatus(midi.StatusOff), "status led")
}

// sendLocked writes to the device if one is connected. Failures are logged
// and kept for Snapshot; state is never rolled back since every command is a
// resend of current state.
func (c *Controller) sendLocked(msg []byte, what string) error {
	if c.transport == nil {
		return nil
	}
	if err := c.transport.Send(msg); err != nil {
		err = fmt.Errorf("send %s: %w", what, err)
		debug.Log("ctrl", "%v", err)
		c.lastErr = err
		return err
	}
	return nil
}
