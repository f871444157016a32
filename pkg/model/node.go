package model

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// ErrInternalAttribute is returned when writing an attribute whose name is
// empty or starts with "_".
var ErrInternalAttribute = errors.New("internal attribute")

// Object is implemented by *Node and by application types that embed it.
// Containers and adapters use it to recognize model objects.
type Object interface {
	ModelNode() *Node
}

// AsNode returns the Node behind v if v is a model object.
func AsNode(v any) (*Node, bool) {
	o, ok := v.(Object)
	if !ok {
		return nil, false
	}
	n := o.ModelNode()
	return n, n != nil
}

// Node is a generic mutable model object.
type Node struct {
	delegate

	id        uuid.UUID
	typ       *Type
	attrs     map[string]any
	names     []string
	container *Node
}

// NewNode creates an empty Node of type t. A nil t gives an anonymous type
// named "Node" without containment edges.
func NewNode(t *Type) *Node {
	if t == nil {
		t = NewType("Node")
	}
	n := &Node{
		id:    uuid.New(),
		typ:   t,
		attrs: make(map[string]any),
	}
	n.owner = n
	return n
}

// ModelNode returns n.
func (n *Node) ModelNode() *Node {
	return n
}

// ID returns the node identity.
func (n *Node) ID() uuid.UUID {
	return n.id
}

// Type returns the node type.
func (n *Node) Type() *Type {
	return n.typ
}

// Container returns the node holding n under a containment edge, or nil.
func (n *Node) Container() *Node {
	return n.container
}

// Get returns the value of an attribute.
func (n *Node) Get(name string) (any, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Has returns true if the attribute has been assigned.
func (n *Node) Has(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// Names returns the assigned attribute names in first-assignment order.
func (n *Node) Names() []string {
	return slices.Clone(n.names)
}

// List returns the attribute as a List, or nil if it holds something else.
func (n *Node) List(name string) *List {
	l, _ := n.attrs[name].(*List)
	return l
}

// Map returns the attribute as a Map, or nil if it holds something else.
func (n *Node) Map(name string) *Map {
	m, _ := n.attrs[name].(*Map)
	return m
}

// Set writes an attribute and emits a SET notification.
//
// A slice value is stored as a List and a string-keyed map (or []Pair) as a
// Map, both bound to n under the attribute's feature name. If the attribute is a
// containment edge, the previous Node value is released and the new one is
// contained by n.
//
// A callback error is returned wrapped in ErrCallbackFailed; the write has
// already happened at that point.
func (n *Node) Set(name string, value any) error {
	if !isPublic(name) {
		return fmt.Errorf("%w: %q", ErrInternalAttribute, name)
	}
	stored, old := n.assign(name, value)
	return n.Notify(Notification{
		Notifier:  n,
		EventType: EventSet,
		NewValue:  stored,
		OldValue:  old,
		Feature:   n.typ.Feature(name),
	})
}

// assign performs the write without notifying.
func (n *Node) assign(name string, value any) (stored, old any) {
	old, seen := n.attrs[name]
	contained := n.typ.IsContainment(name)

	if contained && !equal(old, value) {
		n.release(old)
	}

	stored = n.wrap(name, value, contained)
	if !seen {
		n.names = append(n.names, name)
	}
	n.attrs[name] = stored

	if contained {
		if child, ok := AsNode(stored); ok {
			child.container = n
		}
	}
	return stored, old
}

// wrap turns raw slices and string-keyed maps into collections bound to n.
// Byte slices and arrays are stored as they are; []Pair becomes a Map.
func (n *Node) wrap(name string, value any, contained bool) any {
	feature := n.typ.Feature(name)
	switch v := value.(type) {
	case []any:
		return NewList(n, contained, feature, v...)
	case map[string]any:
		return newMapFrom(n, contained, feature, v)
	case []Pair:
		return NewMap(n, contained, feature, v...)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return value
		}
		values := make([]any, rv.Len())
		for i := range values {
			values[i] = rv.Index(i).Interface()
		}
		return NewList(n, contained, feature, values...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return value
		}
		raw := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			raw[iter.Key().String()] = iter.Value().Interface()
		}
		return newMapFrom(n, contained, feature, raw)
	default:
		return value
	}
}

// release drops the containment edge to a value leaving a containment slot.
// A Node that has since been contained elsewhere keeps its new container.
func (n *Node) release(v any) {
	switch old := v.(type) {
	case *List:
		old.unbind()
	case *Map:
		old.unbind()
	default:
		if child, ok := AsNode(v); ok && child.container == n {
			child.container = nil
		}
	}
}

// ContainmentEdge reports whether n travelled along a containment edge: a
// containment attribute of a Node, or a containment List or Map.
func ContainmentEdge(n Notification) bool {
	switch src := n.Notifier.(type) {
	case *Node:
		attr, ok := strings.CutPrefix(n.Feature, src.typ.name+".")
		return ok && src.typ.IsContainment(attr)
	case Collection:
		return src.Containment()
	default:
		return false
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(%s)", n.typ.name, n.id.String()[:8])
}

func isPublic(name string) bool {
	return name != "" && !strings.HasPrefix(name, "_")
}
