package model

import (
	"errors"
	"fmt"
	"slices"
)

// ErrKeyNotFound is returned when removing a key that is not present.
var ErrKeyNotFound = errors.New("key not found")

// Map is a string-keyed collection that notifies on every mutation. Keys
// keep their insertion order.
//
// Like List, a Map is bound to an owning Node, a containment flag and a
// feature name. A containment Map contains the Nodes stored in it.
type Map struct {
	delegate

	owner       *Node
	containment bool
	feature     string
	keys        []string
	values      map[string]any
}

// NewMap creates a Map holding pairs, in order. If containment is set, Node
// values are contained by owner right away, without notification.
func NewMap(owner *Node, containment bool, feature string, pairs ...Pair) *Map {
	m := &Map{
		owner:       owner,
		containment: containment,
		feature:     feature,
		values:      make(map[string]any, len(pairs)),
	}
	m.delegate.owner = m
	for _, p := range pairs {
		if _, exists := m.values[p.Key]; !exists {
			m.keys = append(m.keys, p.Key)
		}
		m.values[p.Key] = p.Value
	}
	for _, k := range m.keys {
		m.adopt(m.values[k])
	}
	return m
}

// newMapFrom builds a Map from a raw map, keys sorted for a stable order.
func newMapFrom(owner *Node, containment bool, feature string, raw map[string]any) *Map {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	pairs := make([]Pair, len(keys))
	for i, k := range keys {
		pairs[i] = Pair{Key: k, Value: raw[k]}
	}
	return NewMap(owner, containment, feature, pairs...)
}

// Owner returns the Node the map is bound to.
func (m *Map) Owner() *Node { return m.owner }

// Containment reports whether the map is a containment edge.
func (m *Map) Containment() bool { return m.containment }

// Feature returns the feature name used in notifications.
func (m *Map) Feature() string { return m.feature }

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Get returns the value stored under k.
func (m *Map) Get(k string) (any, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Has returns true if k is present.
func (m *Map) Has(k string) bool {
	_, ok := m.values[k]
	return ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string { return slices.Clone(m.keys) }

// Pairs returns the entries in insertion order.
func (m *Map) Pairs() []Pair {
	pairs := make([]Pair, len(m.keys))
	for i, k := range m.keys {
		pairs[i] = Pair{Key: k, Value: m.values[k]}
	}
	return pairs
}

// Elements returns the values in key order.
func (m *Map) Elements() []any {
	values := make([]any, len(m.keys))
	for i, k := range m.keys {
		values[i] = m.values[k]
	}
	return values
}

// Set stores v under k. Emits SET with the previous value, if any.
func (m *Map) Set(k string, v any) error {
	old, had := m.values[k]
	if !had {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
	if had {
		m.release(old)
	}
	m.adopt(v)
	return m.emit(EventSet, v, old, Key(k))
}

// SetDefault stores v under k unless k is present, and returns the value
// now stored. Emits SET with that value.
func (m *Map) SetDefault(k string, v any) (any, error) {
	old, had := m.values[k]
	stored := old
	if !had {
		m.keys = append(m.keys, k)
		m.values[k] = v
		stored = v
	}
	m.adopt(stored)
	return stored, m.emit(EventSet, stored, old, Key(k))
}

// Update stores every pair. A key given twice keeps its last value. Emits a
// single SET_MANY whose values are []Pair: the written pairs and the
// previous values of keys that already existed.
func (m *Map) Update(pairs ...Pair) error {
	written := make([]Pair, 0, len(pairs))
	slot := make(map[string]int, len(pairs))
	for _, p := range pairs {
		if i, dup := slot[p.Key]; dup {
			written[i].Value = p.Value
			continue
		}
		slot[p.Key] = len(written)
		written = append(written, p)
	}

	previous := make([]Pair, 0, len(written))
	keys := make(Keys, len(written))
	for i, p := range written {
		keys[i] = p.Key
		if old, had := m.values[p.Key]; had {
			previous = append(previous, Pair{Key: p.Key, Value: old})
		} else {
			m.keys = append(m.keys, p.Key)
		}
		m.values[p.Key] = p.Value
	}
	for _, p := range previous {
		m.release(p.Value)
	}
	for _, p := range written {
		m.adopt(p.Value)
	}
	return m.emit(EventSetMany, written, previous, keys)
}

// Pop removes k and returns its value. Emits REMOVE.
func (m *Map) Pop(k string) (any, error) {
	old, had := m.values[k]
	if !had {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, k)
	}
	m.drop(k)
	m.release(old)
	return old, m.emit(EventRemove, nil, old, Key(k))
}

// PopItem removes and returns the most recently inserted entry. Emits
// REMOVE.
func (m *Map) PopItem() (Pair, error) {
	if len(m.keys) == 0 {
		return Pair{}, fmt.Errorf("%w: map is empty", ErrKeyNotFound)
	}
	k := m.keys[len(m.keys)-1]
	old := m.values[k]
	m.drop(k)
	m.release(old)
	return Pair{Key: k, Value: old}, m.emit(EventRemove, nil, old, Key(k))
}

// Delete removes k. Emits REMOVE.
func (m *Map) Delete(k string) error {
	_, err := m.Pop(k)
	return err
}

// Clear removes every entry. Emits a single REMOVE_MANY with the previous
// entries as []Pair.
func (m *Map) Clear() error {
	previous := m.Pairs()
	keys := Keys(slices.Clone(m.keys))
	m.keys = nil
	m.values = make(map[string]any)
	for _, p := range previous {
		m.release(p.Value)
	}
	return m.emit(EventRemoveMany, nil, previous, keys)
}

func (m *Map) String() string {
	return fmt.Sprintf("Map(%s, len=%d)", m.feature, len(m.keys))
}

func (m *Map) emit(eventType EventType, newValue, oldValue any, pos Position) error {
	return m.Notify(Notification{
		Notifier:  m,
		EventType: eventType,
		NewValue:  newValue,
		OldValue:  oldValue,
		Position:  pos,
		Feature:   m.feature,
	})
}

func (m *Map) drop(k string) {
	delete(m.values, k)
	if i := slices.Index(m.keys, k); i >= 0 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
}

func (m *Map) adopt(v any) {
	if !m.containment || m.owner == nil {
		return
	}
	if child, ok := AsNode(v); ok {
		child.container = m.owner
	}
}

// release clears the container of a Node that has left the map, unless
// the map still holds it or it has been contained elsewhere meanwhile.
func (m *Map) release(v any) {
	if !m.containment {
		return
	}
	child, ok := AsNode(v)
	if !ok || child.container != m.owner || holds(m.Elements(), child) {
		return
	}
	child.container = nil
}

func (m *Map) unbind() {
	for _, v := range m.values {
		if child, ok := AsNode(v); ok && m.containment && child.container == m.owner {
			child.container = nil
		}
	}
	m.owner = nil
	m.containment = false
}
