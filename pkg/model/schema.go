package model

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSchema is returned for malformed type declarations.
var ErrInvalidSchema = errors.New("invalid schema")

// ErrTypeNotFound is returned when a schema has no type of the given name.
var ErrTypeNotFound = errors.New("type not found")

// schemaFile is the YAML layout of a schema:
//
//	types:
//	  - name: PurchaseOrder
//	    containment: [items]
//	    attributes:
//	      - name: shipTo
//	      - name: items
//	        kind: list
type schemaFile struct {
	Types []typeDef `yaml:"types"`
}

type typeDef struct {
	Name        string    `yaml:"name"`
	Containment []string  `yaml:"containment"`
	Attributes  []attrDef `yaml:"attributes"`
}

type attrDef struct {
	Name string        `yaml:"name"`
	Kind AttributeKind `yaml:"kind"`
}

// UnmarshalYAML decodes a kind name.
func (k *AttributeKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	kind, err := ParseAttributeKind(s)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// MarshalYAML encodes a kind by name.
func (k AttributeKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Schema is a set of types loaded from a declaration file.
type Schema struct {
	types map[string]*Type
	order []string
}

// LoadSchema parses a YAML schema.
func LoadSchema(data []byte) (*Schema, error) {
	var file schemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	s := &Schema{types: make(map[string]*Type, len(file.Types))}
	for _, def := range file.Types {
		t, err := def.build()
		if err != nil {
			return nil, err
		}
		if _, exists := s.types[t.name]; exists {
			return nil, fmt.Errorf("%w: duplicate type %q", ErrInvalidSchema, t.name)
		}
		s.types[t.name] = t
		s.order = append(s.order, t.name)
	}
	return s, nil
}

func (def typeDef) build() (*Type, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("%w: type without name", ErrInvalidSchema)
	}
	for _, attr := range def.Containment {
		if !isPublic(attr) {
			return nil, fmt.Errorf("%w: %s: invalid containment attribute %q", ErrInvalidSchema, def.Name, attr)
		}
	}

	t := NewType(def.Name, def.Containment...)
	seen := make(map[string]bool, len(def.Attributes))
	for _, attr := range def.Attributes {
		if !isPublic(attr.Name) {
			return nil, fmt.Errorf("%w: %s: invalid attribute %q", ErrInvalidSchema, def.Name, attr.Name)
		}
		if seen[attr.Name] {
			return nil, fmt.Errorf("%w: %s: duplicate attribute %q", ErrInvalidSchema, def.Name, attr.Name)
		}
		seen[attr.Name] = true
		t.Declare(attr.Name, attr.Kind)
	}
	return t, nil
}

// Type returns the named type.
func (s *Schema) Type(name string) (*Type, error) {
	t, ok := s.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, name)
	}
	return t, nil
}

// MustType is like Type but panics if the type is missing. It is intended
// for package-level type variables.
func (s *Schema) MustType(name string) *Type {
	t, err := s.Type(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Types returns all types in declaration order.
func (s *Schema) Types() []*Type {
	types := make([]*Type, len(s.order))
	for i, name := range s.order {
		types[i] = s.types[name]
	}
	return types
}

// New creates an initialized Node of the named type.
func (s *Schema) New(name string) (*Node, error) {
	t, err := s.Type(name)
	if err != nil {
		return nil, err
	}
	return t.New(), nil
}
