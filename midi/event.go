package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// EventKind is the type of an incoming channel message
type EventKind uint8

const (
	EventNoteOn EventKind = iota + 1
	EventNoteOff
	EventCC
)

func (k EventKind) String() string {
	switch k {
	case EventNoteOn:
		return "note-on"
	case EventNoteOff:
		return "note-off"
	case EventCC:
		return "cc"
	}
	return "unknown"
}

// Event is an incoming device message reduced to what the core routes on
type Event struct {
	Kind    EventKind
	Channel uint8
	Number  uint8 // note or controller number
	Value   uint8 // velocity or controller value
}

func (e Event) String() string {
	return fmt.Sprintf("%s ch=%d n=%d v=%d", e.Kind, e.Channel, e.Number, e.Value)
}

// ParseMessage converts a raw message. Note-on with velocity 0 is a
// note-off. Anything that is not a complete note or CC message is dropped.
func ParseMessage(msg gomidi.Message) (Event, bool) {
	if len(msg) < 3 {
		return Event{}, false
	}
	var ch, a, b uint8
	switch {
	case msg.GetNoteOn(&ch, &a, &b):
		if b == 0 {
			return Event{Kind: EventNoteOff, Channel: ch, Number: a}, true
		}
		return Event{Kind: EventNoteOn, Channel: ch, Number: a, Value: b}, true
	case msg.GetNoteOff(&ch, &a, &b):
		return Event{Kind: EventNoteOff, Channel: ch, Number: a, Value: b}, true
	case msg.GetControlChange(&ch, &a, &b):
		return Event{Kind: EventCC, Channel: ch, Number: a, Value: b}, true
	}
	return Event{}, false
}
