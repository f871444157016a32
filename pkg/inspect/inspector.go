package inspect

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/mash-protocol/objwatch/pkg/model"
)

// ErrNotWritable is returned when writing through a path whose parent is
// not a Node, List or Map.
var ErrNotWritable = errors.New("path is not writable")

// Inspector reads and writes a model through paths rooted at one Node.
type Inspector struct {
	root *model.Node
}

// NewInspector creates a new Inspector for the given root.
func NewInspector(root *model.Node) *Inspector {
	return &Inspector{root: root}
}

// Root returns the root node.
func (i *Inspector) Root() *model.Node {
	return i.root
}

// Read resolves a path string against the root.
func (i *Inspector) Read(path string) (any, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return Resolve(i.root, p)
}

// Write stores value at path: a Node attribute, a List slot or a Map key.
// The write goes through the model and notifies like any other mutation.
func (i *Inspector) Write(path string, value any) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}

	var parent any = i.root
	if pp := p.Parent(); pp != nil {
		if parent, err = Resolve(i.root, pp); err != nil {
			return err
		}
	}

	last := p.Last()
	switch c := parent.(type) {
	case *model.List:
		idx, err := parseIndex(last)
		if err != nil {
			return err
		}
		return c.SetItem(idx, value)
	case *model.Map:
		return c.Set(last, value)
	}
	if node, ok := model.AsNode(parent); ok {
		return node.Set(last, value)
	}
	return fmt.Errorf("%w: %s", ErrNotWritable, p)
}

// Resolve walks path from root: Node segments are attribute names, List
// segments are indexes (negative from the end) and Map segments are keys.
func Resolve(root *model.Node, path *Path) (any, error) {
	if path == nil || len(path.Segments) == 0 {
		return nil, ErrEmptyPath
	}

	var current any = root
	for n, seg := range path.Segments {
		next, err := step(current, seg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s (at %q)", err, path, path.Segments[:n+1])
		}
		current = next
	}
	return current, nil
}

func step(current any, seg string) (any, error) {
	switch c := current.(type) {
	case *model.List:
		idx, err := parseIndex(seg)
		if err != nil {
			return nil, err
		}
		v, err := c.At(idx)
		if err != nil {
			return nil, ErrPathNotFound
		}
		return v, nil
	case *model.Map:
		v, ok := c.Get(seg)
		if !ok {
			return nil, ErrPathNotFound
		}
		return v, nil
	}
	if node, ok := model.AsNode(current); ok {
		v, ok := node.Get(seg)
		if !ok {
			return nil, ErrPathNotFound
		}
		return v, nil
	}
	return nil, ErrPathNotFound
}

func parseIndex(seg string) (int, error) {
	idx, err := strconv.Atoi(seg)
	if err != nil {
		return 0, fmt.Errorf("%w: list index %q", ErrInvalidPath, seg)
	}
	return idx, nil
}
