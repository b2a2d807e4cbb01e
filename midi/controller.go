package midi

import "errors"

// ErrNoOutput is returned when sending to a device without an output port
var ErrNoOutput = errors.New("device has no output port")

// ControllerType identifies the kind of controller
type ControllerType int

const (
	ControllerUnknown ControllerType = iota
	ControllerLaunchpad
	ControllerKeyboard
)

func (t ControllerType) String() string {
	switch t {
	case ControllerLaunchpad:
		return "launchpad"
	case ControllerKeyboard:
		return "keyboard"
	}
	return "unknown"
}

// Controller is a connected MIDI device
type Controller interface {
	ID() string
	Type() ControllerType

	// Events delivers parsed input; closed when the controller closes
	Events() <-chan Event

	// Send writes a raw message (SysEx buffers from this package)
	Send(msg []byte) error

	Close() error
}
