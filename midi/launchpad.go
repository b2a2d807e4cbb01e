package midi

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go-chordpad/debug"
	"go-chordpad/grid"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var ledSendCount uint64

// ProgrammerModeSettle is how long the device needs after the mode switch
// before it takes lighting messages
const ProgrammerModeSettle = 150 * time.Millisecond

var sleep = time.Sleep

// LaunchpadController handles a Novation Launchpad X in Programmer mode
type LaunchpadController struct {
	id       string
	outPort  drivers.Out
	inPort   drivers.In
	send     func(msg gomidi.Message) error
	sendMu   sync.Mutex
	stopFunc func()

	events    *inbox
	closeOnce sync.Once
}

// NewLaunchpadController opens the ports and switches the device into
// Programmer mode. Either port may be nil.
func NewLaunchpadController(id string, inPort drivers.In, outPort drivers.Out) (*LaunchpadController, error) {
	lp := &LaunchpadController{
		id:      id,
		inPort:  inPort,
		outPort: outPort,
		events:  newInbox(64),
	}

	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		lp.send = send

		if err := lp.enterProgrammerMode(); err != nil {
			return nil, err
		}
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			ev, ok := ParseMessage(msg)
			if !ok {
				debug.Log("lp-in", "dropped %d byte message", len(msg))
				return
			}
			if !lp.events.push(ev) {
				debug.Log("lp-in", "dropped %s", ev)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		lp.stopFunc = stop
	}

	return lp, nil
}

func (lp *LaunchpadController) enterProgrammerMode() error {
	if err := lp.Send(ProgrammerMode()); err != nil {
		return fmt.Errorf("programmer mode: %w", err)
	}
	debug.Log("lp", "%s: programmer mode", lp.id)
	sleep(ProgrammerModeSettle)
	return nil
}

func (lp *LaunchpadController) ID() string {
	return lp.id
}

func (lp *LaunchpadController) Type() ControllerType {
	return ControllerLaunchpad
}

func (lp *LaunchpadController) Events() <-chan Event {
	return lp.events.ch
}

// Send writes a raw message. The buffers built in sysex.go already carry
// F0/F7, so they go out as-is.
func (lp *LaunchpadController) Send(msg []byte) error {
	if lp.send == nil {
		return ErrNoOutput
	}
	lp.sendMu.Lock()
	err := lp.send(gomidi.Message(msg))
	lp.sendMu.Unlock()
	if err != nil {
		return fmt.Errorf("send to %s: %w", lp.id, err)
	}

	count := atomic.AddUint64(&ledSendCount, 1)
	debug.LogEvery(100, "lp-send", "sent %d bytes (total %d)", len(msg), count)
	return nil
}

func (lp *LaunchpadController) Close() error {
	lp.closeOnce.Do(func() {
		if lp.send != nil {
			p := grid.BuildPads(grid.DefaultBaseNote)
			if err := lp.Send(EncodeClearAll(&p)); err != nil {
				debug.Log("lp", "clear on close: %v", err)
			}
			lp.Send(EncodeStatus(StatusOff))
		}
		if lp.stopFunc != nil {
			lp.stopFunc()
		}
		lp.events.close()
	})
	return nil
}
