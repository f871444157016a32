package log

import (
	"fmt"
	"time"

	"github.com/mash-protocol/objwatch/pkg/model"
)

// Event is one recorded change.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the change was recorded (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the Recorder that captured the event (UUID).
	SessionID string `cbor:"2,keyasint,omitempty"`

	// NodeID is the id of the changed Node, or of the owner of the changed
	// List or Map.
	NodeID string `cbor:"3,keyasint,omitempty"`

	// NodeType is the type name of that Node.
	NodeType string `cbor:"4,keyasint,omitempty"`

	// Notifier is the kind of object that changed.
	Notifier NotifierKind `cbor:"5,keyasint"`

	// EventType is the shape of the mutation.
	EventType model.EventType `cbor:"6,keyasint"`

	// Feature is the dotted Type.attribute name.
	Feature string `cbor:"7,keyasint,omitempty"`

	// Position is the rendered position, e.g. "3", "[0:2]" or "\"key\"".
	Position string `cbor:"8,keyasint,omitempty"`

	NewValue *Value `cbor:"9,keyasint,omitempty"`
	OldValue *Value `cbor:"10,keyasint,omitempty"`

	// Error is set when the observer that received the change failed.
	Error *ErrorData `cbor:"11,keyasint,omitempty"`
}

// NotifierKind indicates what kind of object emitted a change.
type NotifierKind uint8

const (
	// NotifierNode is a Node attribute write.
	NotifierNode NotifierKind = 0
	// NotifierList is a List mutation.
	NotifierList NotifierKind = 1
	// NotifierMap is a Map mutation.
	NotifierMap NotifierKind = 2
	// NotifierOther is any other Notifier implementation.
	NotifierOther NotifierKind = 3
)

// String returns the notifier kind name.
func (k NotifierKind) String() string {
	switch k {
	case NotifierNode:
		return "NODE"
	case NotifierList:
		return "LIST"
	case NotifierMap:
		return "MAP"
	case NotifierOther:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// ParseNotifierKind parses a notifier kind name.
func ParseNotifierKind(s string) (NotifierKind, error) {
	for _, k := range []NotifierKind{NotifierNode, NotifierList, NotifierMap, NotifierOther} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown notifier kind %q", s)
}

// Value summarises a notification value.
type Value struct {
	// Kind classifies the value.
	Kind ValueKind `cbor:"1,keyasint"`

	// Text is the rendered value (scalars, Node ids).
	Text string `cbor:"2,keyasint,omitempty"`

	// Len is the element count for collections and batches.
	Len int `cbor:"3,keyasint,omitempty"`

	// NodeIDs lists the Nodes referenced by the value, in order.
	NodeIDs []string `cbor:"4,keyasint,omitempty"`
}

// ValueKind classifies a summarised value.
type ValueKind uint8

const (
	// ValueScalar is a plain value rendered as text.
	ValueScalar ValueKind = 0
	// ValueNode is a model Node.
	ValueNode ValueKind = 1
	// ValueList is a List.
	ValueList ValueKind = 2
	// ValueMap is a Map.
	ValueMap ValueKind = 3
	// ValueBatch is a []any or []Pair batch from a *_MANY event.
	ValueBatch ValueKind = 4
)

// String returns the value kind name.
func (k ValueKind) String() string {
	switch k {
	case ValueScalar:
		return "SCALAR"
	case ValueNode:
		return "NODE"
	case ValueList:
		return "LIST"
	case ValueMap:
		return "MAP"
	case ValueBatch:
		return "BATCH"
	default:
		return "UNKNOWN"
	}
}

func (v *Value) String() string {
	if v == nil {
		return "null"
	}
	switch v.Kind {
	case ValueList, ValueMap, ValueBatch:
		return fmt.Sprintf("%s(len=%d)", v.Kind, v.Len)
	default:
		return v.Text
	}
}

// ErrorData captures an observer failure.
type ErrorData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes which observer failed.
	Context string `cbor:"2,keyasint,omitempty"`
}

// FromNotification builds an Event for n, timestamped now.
func FromNotification(n model.Notification) Event {
	event := Event{
		Timestamp: time.Now(),
		Notifier:  kindOf(n.Notifier),
		EventType: n.EventType,
		Feature:   n.Feature,
		NewValue:  Summarize(n.NewValue),
		OldValue:  Summarize(n.OldValue),
	}
	if n.Position != nil {
		event.Position = n.Position.String()
	}
	if node := ownerOf(n.Notifier); node != nil {
		event.NodeID = node.ID().String()
		event.NodeType = node.Type().Name()
	}
	return event
}

// Summarize returns the summary of v, or nil for a nil value.
func Summarize(v any) *Value {
	switch val := v.(type) {
	case nil:
		return nil
	case *model.List:
		return &Value{Kind: ValueList, Len: val.Len(), NodeIDs: nodeIDs(val.Values())}
	case *model.Map:
		return &Value{Kind: ValueMap, Len: val.Len(), NodeIDs: nodeIDs(val.Elements())}
	case []any, []model.Pair:
		elems := model.Expand(val)
		return &Value{Kind: ValueBatch, Text: model.FormatValue(val), Len: len(elems), NodeIDs: nodeIDs(elems)}
	}
	if node, ok := model.AsNode(v); ok {
		id := node.ID().String()
		return &Value{Kind: ValueNode, Text: node.String(), NodeIDs: []string{id}}
	}
	return &Value{Kind: ValueScalar, Text: model.FormatValue(v)}
}

func nodeIDs(values []any) []string {
	var ids []string
	for _, v := range values {
		if node, ok := model.AsNode(v); ok {
			ids = append(ids, node.ID().String())
		}
	}
	return ids
}

func kindOf(n model.Notifier) NotifierKind {
	switch n.(type) {
	case *model.Node:
		return NotifierNode
	case *model.List:
		return NotifierList
	case *model.Map:
		return NotifierMap
	default:
		return NotifierOther
	}
}

func ownerOf(n model.Notifier) *model.Node {
	if node, ok := n.(*model.Node); ok {
		return node
	}
	if c, ok := n.(model.Collection); ok {
		return c.Owner()
	}
	return nil
}
