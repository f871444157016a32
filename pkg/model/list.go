package model

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// List errors.
var (
	ErrOutOfRange    = errors.New("index out of range")
	ErrValueNotFound = errors.New("value not found")
)

// List is an ordered collection that notifies on every mutation.
//
// A List is bound to an owning Node, a containment flag and a feature name.
// When the flag is set, Nodes inserted into the list are contained by the
// owner and Nodes removed from it are released.
type List struct {
	delegate

	owner       *Node
	containment bool
	feature     string
	items       []any
}

// NewList creates a List holding a copy of values. If containment is set,
// Node values are contained by owner right away, without notification.
func NewList(owner *Node, containment bool, feature string, values ...any) *List {
	l := &List{
		owner:       owner,
		containment: containment,
		feature:     feature,
		items:       slices.Clone(values),
	}
	l.delegate.owner = l
	for _, v := range l.items {
		l.adopt(v)
	}
	return l
}

// Owner returns the Node the list is bound to.
func (l *List) Owner() *Node { return l.owner }

// Containment reports whether the list is a containment edge.
func (l *List) Containment() bool { return l.containment }

// Feature returns the feature name used in notifications.
func (l *List) Feature() string { return l.feature }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// Values returns a copy of the elements.
func (l *List) Values() []any { return slices.Clone(l.items) }

// Elements returns a copy of the elements.
func (l *List) Elements() []any { return l.Values() }

// At returns the element at i. Negative indexes count from the end.
func (l *List) At(i int) (any, error) {
	idx, err := l.index(i)
	if err != nil {
		return nil, err
	}
	return l.items[idx], nil
}

// Index returns the position of the first element equal to v, or -1.
func (l *List) Index(v any) int {
	return slices.IndexFunc(l.items, func(e any) bool { return equal(e, v) })
}

// Append adds v at the end. Emits ADD.
func (l *List) Append(v any) error {
	l.items = append(l.items, v)
	l.adopt(v)
	return l.emit(EventAdd, v, nil, Index(len(l.items)-1))
}

// Extend appends all values. Emits a single ADD_MANY.
func (l *List) Extend(values ...any) error {
	start := len(l.items)
	l.items = append(l.items, values...)
	for _, v := range values {
		l.adopt(v)
	}
	return l.emit(EventAddMany, slices.Clone(values), nil, Range{Start: start, Stop: len(l.items)})
}

// Insert places v before index i. Indexes are clamped to the list bounds;
// negative indexes count from the end. Emits ADD at the resulting index.
func (l *List) Insert(i int, v any) error {
	if i < 0 {
		i = max(i+len(l.items), 0)
	}
	i = min(i, len(l.items))
	l.items = slices.Insert(l.items, i, v)
	l.adopt(v)
	return l.emit(EventAdd, v, nil, Index(i))
}

// Pop removes and returns the element at i. Emits REMOVE.
func (l *List) Pop(i int) (any, error) {
	idx, err := l.index(i)
	if err != nil {
		return nil, err
	}
	old := l.items[idx]
	l.items = slices.Delete(l.items, idx, idx+1)
	l.release(old)
	return old, l.emit(EventRemove, nil, old, Index(idx))
}

// Remove deletes the first element equal to v. Emits REMOVE.
func (l *List) Remove(v any) error {
	idx := l.Index(v)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrValueNotFound, FormatValue(v))
	}
	old := l.items[idx]
	l.items = slices.Delete(l.items, idx, idx+1)
	l.release(old)
	return l.emit(EventRemove, nil, old, Index(idx))
}

// Reverse reverses the list in place. Emits MOVE_MANY over the whole list.
func (l *List) Reverse() error {
	slices.Reverse(l.items)
	return l.emit(EventMoveMany, nil, nil, Range{Start: 0, Stop: len(l.items)})
}

// Sort sorts the list in place with a stable sort. Emits MOVE_MANY over the
// whole list.
func (l *List) Sort(cmp func(a, b any) int) error {
	slices.SortStableFunc(l.items, cmp)
	return l.emit(EventMoveMany, nil, nil, Range{Start: 0, Stop: len(l.items)})
}

// SetRange replaces the elements in [i, j) with values. Emits SET_MANY.
func (l *List) SetRange(i, j int, values ...any) error {
	if err := l.checkRange(i, j); err != nil {
		return err
	}
	old := slices.Clone(l.items[i:j])
	l.items = slices.Replace(l.items, i, j, slices.Clone(values)...)
	for _, v := range old {
		l.release(v)
	}
	for _, v := range values {
		l.adopt(v)
	}
	return l.emit(EventSetMany, slices.Clone(values), old, Range{Start: i, Stop: j})
}

// SetItem replaces the element at i. Emits SET.
func (l *List) SetItem(i int, v any) error {
	idx, err := l.index(i)
	if err != nil {
		return err
	}
	old := l.items[idx]
	l.items[idx] = v
	l.release(old)
	l.adopt(v)
	return l.emit(EventSet, v, old, Index(idx))
}

// DeleteRange removes the elements in [i, j). Emits REMOVE_MANY.
func (l *List) DeleteRange(i, j int) error {
	if err := l.checkRange(i, j); err != nil {
		return err
	}
	old := slices.Clone(l.items[i:j])
	l.items = slices.Delete(l.items, i, j)
	for _, v := range old {
		l.release(v)
	}
	return l.emit(EventRemoveMany, nil, old, Range{Start: i, Stop: j})
}

// DeleteItem removes the element at i. Emits REMOVE.
func (l *List) DeleteItem(i int) error {
	_, err := l.Pop(i)
	return err
}

func (l *List) String() string {
	return fmt.Sprintf("List(%s, len=%d)", l.feature, len(l.items))
}

func (l *List) emit(eventType EventType, newValue, oldValue any, pos Position) error {
	return l.Notify(Notification{
		Notifier:  l,
		EventType: eventType,
		NewValue:  newValue,
		OldValue:  oldValue,
		Position:  pos,
		Feature:   l.feature,
	})
}

func (l *List) index(i int) (int, error) {
	idx := i
	if idx < 0 {
		idx += len(l.items)
	}
	if idx < 0 || idx >= len(l.items) {
		return 0, fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, i, len(l.items))
	}
	return idx, nil
}

func (l *List) checkRange(i, j int) error {
	if i < 0 || j < i || j > len(l.items) {
		return fmt.Errorf("%w: range [%d:%d], length %d", ErrOutOfRange, i, j, len(l.items))
	}
	return nil
}

func (l *List) adopt(v any) {
	if !l.containment || l.owner == nil {
		return
	}
	if child, ok := AsNode(v); ok {
		child.container = l.owner
	}
}

// release clears the container of a Node that has left the list, unless
// the list still holds it or it has been contained elsewhere meanwhile.
func (l *List) release(v any) {
	if !l.containment {
		return
	}
	child, ok := AsNode(v)
	if !ok || child.container != l.owner || holds(l.items, child) {
		return
	}
	child.container = nil
}

// unbind detaches the list from its owner once it leaves the owner's
// attribute, releasing every contained Node.
func (l *List) unbind() {
	for _, v := range l.items {
		if child, ok := AsNode(v); ok && l.containment && child.container == l.owner {
			child.container = nil
		}
	}
	l.owner = nil
	l.containment = false
}

// holds reports whether values contains the Node child.
func holds(values []any, child *Node) bool {
	return slices.ContainsFunc(values, func(v any) bool {
		n, ok := AsNode(v)
		return ok && n == child
	})
}

// equal compares two values without panicking on uncomparable types.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
