package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Position locates a mutation inside its notifier: an Index or Range for
// Lists, a Key or Keys for Maps.
type Position interface {
	position()
	String() string
}

// Index is a single List index.
type Index int

// Key is a single Map key.
type Key string

// Range is a half-open span [Start, Stop) of List indexes.
type Range struct {
	Start int
	Stop  int
}

// Keys is a set of Map keys, in map order.
type Keys []string

func (Index) position() {}
func (Key) position()   {}
func (Range) position() {}
func (Keys) position()  {}

func (i Index) String() string { return strconv.Itoa(int(i)) }
func (k Key) String() string   { return strconv.Quote(string(k)) }
func (r Range) String() string { return fmt.Sprintf("[%d:%d]", r.Start, r.Stop) }

// Len returns the number of indexes covered.
func (r Range) Len() int { return r.Stop - r.Start }

func (k Keys) String() string {
	quoted := make([]string, len(k))
	for i, key := range k {
		quoted[i] = strconv.Quote(key)
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

// Pair is a Map entry. SET_MANY and REMOVE_MANY notifications from a Map
// carry their values as []Pair.
type Pair struct {
	Key   string
	Value any
}

func (p Pair) String() string {
	return fmt.Sprintf("(%q, %s)", p.Key, FormatValue(p.Value))
}

// Notification describes one mutation. Fields that do not apply to the event
// are left nil or empty.
type Notification struct {
	// Notifier is the Node, List or Map that changed.
	Notifier Notifier

	// EventType is the shape of the mutation.
	EventType EventType

	// NewValue is the value (or []any / []Pair batch) written.
	NewValue any

	// OldValue is the value (or batch) replaced or removed.
	OldValue any

	// Position locates the change within a collection.
	Position Position

	// Feature is the dotted Type.attribute name the change happened under.
	Feature string
}

// String renders the populated fields only.
func (n Notification) String() string {
	fields := make([]string, 0, 6)
	if n.Notifier != nil {
		fields = append(fields, "notifier="+FormatValue(n.Notifier))
	}
	if n.EventType.IsSet() {
		fields = append(fields, "eventType="+n.EventType.String())
	}
	if n.NewValue != nil {
		fields = append(fields, "newValue="+FormatValue(n.NewValue))
	}
	if n.OldValue != nil {
		fields = append(fields, "oldValue="+FormatValue(n.OldValue))
	}
	if n.Position != nil {
		fields = append(fields, "position="+n.Position.String())
	}
	if n.Feature != "" {
		fields = append(fields, "feature="+n.Feature)
	}
	return "Notification(" + strings.Join(fields, ", ") + ")"
}

// FormatValue renders a value for debug output: strings quoted, nil as
// "null", batches element by element.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(val)
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = FormatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []Pair:
		parts := make([]string, len(val))
		for i, p := range val {
			parts[i] = p.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
