package model

import (
	"fmt"
	"slices"
	"strings"
)

// AttributeKind describes the initial value of a declared attribute.
type AttributeKind uint8

const (
	// KindValue starts out unset.
	KindValue AttributeKind = iota

	// KindList starts out as an empty List.
	KindList

	// KindMap starts out as an empty Map.
	KindMap
)

// String returns the kind name.
func (k AttributeKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// ParseAttributeKind parses "value", "list" or "map". An empty string is
// KindValue.
func ParseAttributeKind(s string) (AttributeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "value":
		return KindValue, nil
	case "list":
		return KindList, nil
	case "map":
		return KindMap, nil
	default:
		return KindValue, fmt.Errorf("%w: unknown attribute kind %q", ErrInvalidSchema, s)
	}
}

// AttributeDecl declares an attribute that a new Node is created with.
type AttributeDecl struct {
	Name string
	Kind AttributeKind
}

// Type is the static metadata shared by all Nodes of one model class.
type Type struct {
	name        string
	containment map[string]struct{}
	attributes  []AttributeDecl
}

// NewType creates a type whose containment edges are the given attributes.
func NewType(name string, containment ...string) *Type {
	t := &Type{
		name:        name,
		containment: make(map[string]struct{}, len(containment)),
	}
	for _, attr := range containment {
		t.containment[attr] = struct{}{}
	}
	return t
}

// Declare adds an attribute that New initializes. It returns t for chaining.
func (t *Type) Declare(name string, kind AttributeKind) *Type {
	t.attributes = append(t.attributes, AttributeDecl{Name: name, Kind: kind})
	return t
}

// Name returns the type name.
func (t *Type) Name() string {
	return t.name
}

// IsContainment returns true if attr is a containment edge.
func (t *Type) IsContainment(attr string) bool {
	_, ok := t.containment[attr]
	return ok
}

// Containment returns the containment attribute names, sorted.
func (t *Type) Containment() []string {
	names := make([]string, 0, len(t.containment))
	for name := range t.containment {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Attributes returns the declared attributes in declaration order.
func (t *Type) Attributes() []AttributeDecl {
	return slices.Clone(t.attributes)
}

// Feature returns the dotted feature name for attr.
func (t *Type) Feature(attr string) string {
	return t.name + "." + attr
}

// New creates a Node of this type with its declared attributes initialized.
// Initialization emits no notifications.
func (t *Type) New() *Node {
	n := NewNode(t)
	for _, attr := range t.attributes {
		switch attr.Kind {
		case KindList:
			n.assign(attr.Name, []any{})
		case KindMap:
			n.assign(attr.Name, map[string]any{})
		default:
			n.assign(attr.Name, nil)
		}
	}
	return n
}

func (t *Type) String() string {
	return t.name
}
