package model

import (
	"errors"
	"fmt"
	"strings"
)

// EventType identifies the shape of a mutation.
type EventType uint8

const (
	// eventUnset is the zero value: no event type assigned.
	eventUnset EventType = iota

	// EventAdd is a single element inserted into a List.
	EventAdd

	// EventAddMany is a batch of elements appended to a List.
	EventAddMany

	// EventMove is a single element moved within a List.
	EventMove

	// EventMoveMany is a reordering of a whole List (sort, reverse).
	EventMoveMany

	// EventRemove is a single element or key removed.
	EventRemove

	// EventRemoveMany is a batch of elements or keys removed.
	EventRemoveMany

	// EventSet is a single attribute, slot or key replaced.
	EventSet

	// EventSetMany is a batch of slots or keys replaced.
	EventSetMany
)

// ErrUnknownEventType is returned when parsing an unknown event type name.
var ErrUnknownEventType = errors.New("unknown event type")

// eventTypeNames is indexed by EventType; index 0 is eventUnset.
var eventTypeNames = [...]string{
	"UNSET", "ADD", "ADD_MANY", "MOVE", "MOVE_MANY",
	"REMOVE", "REMOVE_MANY", "SET", "SET_MANY",
}

// String returns the event type name.
func (e EventType) String() string {
	if e.valid() || e == eventUnset {
		return eventTypeNames[e]
	}
	return "UNKNOWN"
}

// IsSet returns false for the zero EventType.
func (e EventType) IsSet() bool {
	return e != eventUnset
}

func (e EventType) valid() bool {
	return e > eventUnset && int(e) < len(eventTypeNames)
}

// IsMany returns true for the batch variants.
func (e EventType) IsMany() bool {
	switch e {
	case EventAddMany, EventMoveMany, EventRemoveMany, EventSetMany:
		return true
	default:
		return false
	}
}

// ParseEventType parses an event type name such as "ADD_MANY".
// Matching is case-insensitive; "-" is accepted in place of "_".
func ParseEventType(s string) (EventType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "-", "_")
	for i, n := range eventTypeNames {
		if n == name && EventType(i).valid() {
			return EventType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEventType, s)
}

// EventTypeSet is a set of event types stored as a bitmask.
type EventTypeSet uint16

// AllEventTypes contains every event type.
const AllEventTypes EventTypeSet = 0x1FE

// NewEventTypeSet returns a set holding the given types.
// With no arguments it returns AllEventTypes.
func NewEventTypeSet(types ...EventType) EventTypeSet {
	if len(types) == 0 {
		return AllEventTypes
	}
	var s EventTypeSet
	for _, t := range types {
		s = s.With(t)
	}
	return s
}

// With returns the set extended by t.
func (s EventTypeSet) With(t EventType) EventTypeSet {
	if !t.valid() {
		return s
	}
	return s | 1<<t
}

// Has returns true if t is in the set.
func (s EventTypeSet) Has(t EventType) bool {
	return t.valid() && s&(1<<t) != 0
}

// Types returns the members in declaration order.
func (s EventTypeSet) Types() []EventType {
	var types []EventType
	for i := range eventTypeNames {
		if s.Has(EventType(i)) {
			types = append(types, EventType(i))
		}
	}
	return types
}

// String returns the members joined by "|", or "-" for the empty set.
func (s EventTypeSet) String() string {
	types := s.Types()
	if len(types) == 0 {
		return "-"
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, "|")
}
