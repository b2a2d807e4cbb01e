package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// KeyboardController handles a plain MIDI keyboard (input only). Its notes
// are played as-is, not routed through the pad grid.
type KeyboardController struct {
	id       string
	inPort   drivers.In
	stopFunc func()

	events    *inbox
	closeOnce sync.Once
}

// NewKeyboardController creates a keyboard controller
func NewKeyboardController(id string, inPort drivers.In) (*KeyboardController, error) {
	kb := &KeyboardController{
		id:     id,
		inPort: inPort,
		events: newInbox(64),
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			ev, ok := ParseMessage(msg)
			if !ok || ev.Kind == EventCC {
				return
			}
			kb.events.push(ev)
		})
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		kb.stopFunc = stop
	}

	return kb, nil
}

func (kb *KeyboardController) ID() string {
	return kb.id
}

func (kb *KeyboardController) Type() ControllerType {
	return ControllerKeyboard
}

func (kb *KeyboardController) Events() <-chan Event {
	return kb.events.ch
}

// Send is a no-op: keyboards have no LEDs
func (kb *KeyboardController) Send(msg []byte) error {
	return nil
}

func (kb *KeyboardController) Close() error {
	kb.closeOnce.Do(func() {
		if kb.stopFunc != nil {
			kb.stopFunc()
		}
		kb.events.close()
	})
	return nil
}
