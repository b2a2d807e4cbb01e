package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-chordpad/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceManager handles hot-plug detection of MIDI controllers
type DeviceManager struct {
	controllers map[string]Controller
	mu          sync.RWMutex
	scanMu      sync.Mutex
	events      chan DeviceEvent
	pollRate    time.Duration

	match     string // lowercase substring identifying the grid controller
	keyboards bool   // also open other inputs as keyboards
}

// NewDeviceManager creates a device manager. match selects the grid
// controller's ports by name (case-insensitive); empty means "launchpad".
func NewDeviceManager(match string, keyboards bool) *DeviceManager {
	if match == "" {
		match = "launchpad"
	}
	return &DeviceManager{
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
		match:       strings.ToLower(match),
		keyboards:   keyboards,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Controllers returns a snapshot of connected controllers
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	copy := make(map[string]Controller, len(dm.controllers))
	for k, v := range dm.controllers {
		copy[k] = v
	}
	return copy
}

// GetLaunchpad returns the first connected Launchpad (or nil)
func (dm *DeviceManager) GetLaunchpad() Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	for _, c := range dm.controllers {
		if c.Type() == ControllerLaunchpad {
			return c
		}
	}
	return nil
}

// Rescan forces a scan outside the polling cycle
func (dm *DeviceManager) Rescan() {
	dm.scan()
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

// ListPorts returns input and output port names, or ok=false when the
// driver does not answer in time (CoreMIDI can hang)
func ListPorts(timeout time.Duration) (ins, outs []string, ok bool) {
	inPorts, outPorts, ok := getPorts(timeout)
	if !ok {
		return nil, nil, false
	}
	for _, p := range inPorts {
		ins = append(ins, p.String())
	}
	for _, p := range outPorts {
		outs = append(outs, p.String())
	}
	return ins, outs, true
}

func getPorts(timeout time.Duration) ([]drivers.In, []drivers.Out, bool) {
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		inPorts := gomidi.GetInPorts()
		outPorts := gomidi.GetOutPorts()
		ch <- portsResult{inPorts: inPorts, outPorts: outPorts}
	}()

	select {
	case result := <-ch:
		return result.inPorts, result.outPorts, true
	case <-time.After(timeout):
		return nil, nil, false
	}
}

func (dm *DeviceManager) scan() {
	dm.scanMu.Lock()
	defer dm.scanMu.Unlock()

	inPorts, outPorts, ok := getPorts(3 * time.Second)
	if !ok {
		// User needs to run: sudo killall coreaudiod midiserver
		debug.Log("devices", "port scan timed out")
		return
	}

	seenIDs := make(map[string]bool)

	for i, inPort := range inPorts {
		name := strings.ToLower(inPort.String())
		id := inPort.String()
		isGrid := dm.isGridController(name)
		if !isGrid && (!dm.keyboards || strings.Contains(name, dm.match)) {
			continue
		}
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		var ctrl Controller
		var err error
		if isGrid {
			// Find matching output port
			var outPort drivers.Out
			for j, op := range outPorts {
				if strings.ToLower(op.String()) == name {
					outPort = outPorts[j]
					break
				}
			}
			ctrl, err = NewLaunchpadController(id, inPorts[i], outPort)
		} else {
			ctrl, err = NewKeyboardController(id, inPorts[i])
		}
		if err != nil {
			debug.Log("devices", "open %s: %v", id, err)
			continue
		}

		dm.mu.Lock()
		dm.controllers[id] = ctrl
		dm.mu.Unlock()

		debug.Log("devices", "connected %s (%s)", id, ctrl.Type())
		dm.events <- DeviceEvent{
			Type:       DeviceConnected,
			Controller: ctrl,
			ID:         id,
		}
	}

	// Check for disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.controllers {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		c := dm.controllers[id]
		c.Close()
		delete(dm.controllers, id)
		debug.Log("devices", "disconnected %s", id)
		dm.events <- DeviceEvent{
			Type: DeviceDisconnected,
			ID:   id,
		}
	}
	dm.mu.Unlock()
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

// isGridController matches the Launchpad's MIDI port. The Launchpad X
// also exposes a DAW port, which is skipped.
func (dm *DeviceManager) isGridController(name string) bool {
	name = strings.ToLower(name)
	if !strings.Contains(name, dm.match) {
		return false
	}
	if dm.match == "launchpad" || strings.Contains(dm.match, "lpx") {
		return strings.Contains(name, "midi") && !strings.Contains(name, "daw")
	}
	return true
}
