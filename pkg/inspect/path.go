// Package inspect provides model inspection and attribute manipulation
// utilities.
//
// The inspect package offers a unified interface for:
//   - Parsing path expressions (e.g., "items/0/upc")
//   - Resolving paths against a Node tree
//   - Reading and writing attributes, List slots and Map keys
//   - Formatting a tree for display
package inspect

import (
	"errors"
	"fmt"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath    = errors.New("empty path")
	ErrInvalidPath  = errors.New("invalid path format")
	ErrPathNotFound = errors.New("path not found")
)

// Path is a parsed inspection path: a sequence of attribute names, List
// indexes and Map keys separated by "/".
type Path struct {
	// Segments are the path components in order.
	Segments []string

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string.
//
// Examples:
//   - "comment" - an attribute of the root
//   - "items/0/upc" - an attribute of the first element of a List
//   - "items/-1" - the last element of a List
//   - "tags/color" - a Map entry
//
// Leading, trailing and doubled separators are rejected.
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	if strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") || strings.Contains(input, "//") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, input)
	}

	return &Path{
		Segments: strings.Split(input, "/"),
		Raw:      input,
	}, nil
}

// String returns the path as a string.
func (p *Path) String() string {
	return strings.Join(p.Segments, "/")
}

// Len returns the number of segments.
func (p *Path) Len() int {
	return len(p.Segments)
}

// Parent returns the path without its last segment, or nil for a
// single-segment path.
func (p *Path) Parent() *Path {
	if len(p.Segments) <= 1 {
		return nil
	}
	parent := p.Segments[:len(p.Segments)-1]
	return &Path{Segments: parent, Raw: strings.Join(parent, "/")}
}

// Last returns the final segment.
func (p *Path) Last() string {
	return p.Segments[len(p.Segments)-1]
}
