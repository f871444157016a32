package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoundMap(pairs ...Pair) (*Map, *recorder) {
	owner := NewNode(itemType)
	m := NewMap(owner, false, "Item.tags", pairs...)
	return m, observe(m)
}

func TestMapUpdateOnEmpty(t *testing.T) {
	m, rec := newBoundMap()

	require.NoError(t, m.Update(Pair{"a", 1}, Pair{"b", 2}))

	require.Len(t, rec.received, 1)
	n := rec.received[0]
	assert.Equal(t, EventSetMany, n.EventType)
	assert.Equal(t, []Pair{{"a", 1}, {"b", 2}}, n.NewValue)
	assert.Empty(t, n.OldValue)
	assert.Equal(t, Keys{"a", "b"}, n.Position)
	assert.Equal(t, "Item.tags", n.Feature)
}

func TestMapOperations(t *testing.T) {
	tests := []struct {
		name      string
		initial   []Pair
		op        func(m *Map) error
		eventType EventType
		newValue  any
		oldValue  any
		position  Position
		after     []Pair
	}{
		{
			name:      "SetNew",
			op:        func(m *Map) error { return m.Set("a", 1) },
			eventType: EventSet,
			newValue:  1,
			position:  Key("a"),
			after:     []Pair{{"a", 1}},
		},
		{
			name:      "SetExisting",
			initial:   []Pair{{"a", 1}},
			op:        func(m *Map) error { return m.Set("a", 2) },
			eventType: EventSet,
			newValue:  2,
			oldValue:  1,
			position:  Key("a"),
			after:     []Pair{{"a", 2}},
		},
		{
			name:      "SetDefaultMissing",
			op:        func(m *Map) error { _, err := m.SetDefault("a", 1); return err },
			eventType: EventSet,
			newValue:  1,
			position:  Key("a"),
			after:     []Pair{{"a", 1}},
		},
		{
			name:      "SetDefaultPresent",
			initial:   []Pair{{"a", 1}},
			op:        func(m *Map) error { _, err := m.SetDefault("a", 9); return err },
			eventType: EventSet,
			newValue:  1,
			oldValue:  1,
			position:  Key("a"),
			after:     []Pair{{"a", 1}},
		},
		{
			name:      "UpdateMixed",
			initial:   []Pair{{"a", 1}},
			op:        func(m *Map) error { return m.Update(Pair{"b", 2}, Pair{"a", 3}, Pair{"b", 4}) },
			eventType: EventSetMany,
			newValue:  []Pair{{"b", 4}, {"a", 3}},
			oldValue:  []Pair{{"a", 1}},
			position:  Keys{"b", "a"},
			after:     []Pair{{"a", 3}, {"b", 4}},
		},
		{
			name:      "Pop",
			initial:   []Pair{{"a", 1}, {"b", 2}},
			op:        func(m *Map) error { _, err := m.Pop("a"); return err },
			eventType: EventRemove,
			oldValue:  1,
			position:  Key("a"),
			after:     []Pair{{"b", 2}},
		},
		{
			name:      "PopItem",
			initial:   []Pair{{"a", 1}, {"b", 2}},
			op:        func(m *Map) error { _, err := m.PopItem(); return err },
			eventType: EventRemove,
			oldValue:  2,
			position:  Key("b"),
			after:     []Pair{{"a", 1}},
		},
		{
			name:      "Delete",
			initial:   []Pair{{"a", 1}, {"b", 2}},
			op:        func(m *Map) error { return m.Delete("b") },
			eventType: EventRemove,
			oldValue:  2,
			position:  Key("b"),
			after:     []Pair{{"a", 1}},
		},
		{
			name:      "Clear",
			initial:   []Pair{{"a", 1}, {"b", 2}},
			op:        func(m *Map) error { return m.Clear() },
			eventType: EventRemoveMany,
			oldValue:  []Pair{{"a", 1}, {"b", 2}},
			position:  Keys{"a", "b"},
			after:     []Pair{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, rec := newBoundMap(tt.initial...)

			require.NoError(t, tt.op(m))

			require.Len(t, rec.received, 1)
			n := rec.received[0]
			assert.Equal(t, tt.eventType, n.EventType)
			assert.Equal(t, tt.newValue, n.NewValue)
			assert.Equal(t, tt.oldValue, n.OldValue)
			assert.Equal(t, tt.position, n.Position)
			assert.Equal(t, tt.after, m.Pairs())
		})
	}
}

func TestMapReturnValues(t *testing.T) {
	m := NewMap(nil, false, "", Pair{"a", 1}, Pair{"b", 2})

	v, err := m.SetDefault("a", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = m.Pop("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	p, err := m.PopItem()
	require.NoError(t, err)
	assert.Equal(t, Pair{"b", 2}, p)
	assert.Zero(t, m.Len())
}

func TestMapKeyNotFound(t *testing.T) {
	m, rec := newBoundMap(Pair{"a", 1})

	_, err := m.Pop("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	err = m.Delete("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, m.Delete("a"))
	rec.received = nil

	_, err = m.PopItem()
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.Empty(t, rec.received)
}

// Containment-flagged maps contain their Node values, like Lists.
func TestMapContainment(t *testing.T) {
	owner := NewNode(orderType)
	m := NewMap(owner, true, "PurchaseOrder.lines")
	a, b := NewNode(itemType), NewNode(itemType)

	require.NoError(t, m.Set("a", a))
	assert.Same(t, owner, a.Container())

	require.NoError(t, m.Set("a", b))
	assert.Nil(t, a.Container())
	assert.Same(t, owner, b.Container())

	_, err := m.SetDefault("c", a)
	require.NoError(t, err)
	assert.Same(t, owner, a.Container())

	require.NoError(t, m.Delete("c"))
	assert.Nil(t, a.Container())

	require.NoError(t, m.Update(Pair{"a", a}, Pair{"d", NewNode(itemType)}))
	assert.Nil(t, b.Container())
	assert.Same(t, owner, a.Container())

	require.NoError(t, m.Clear())
	assert.Nil(t, a.Container())

	plain := NewMap(owner, false, "PurchaseOrder.tags")
	require.NoError(t, plain.Set("x", b))
	assert.Nil(t, b.Container())
}

func TestMapContainmentMovedElement(t *testing.T) {
	a, b := NewNode(orderType), NewNode(orderType)
	from := NewMap(a, true, "PurchaseOrder.lines")
	to := NewMap(b, true, "PurchaseOrder.lines")
	x := NewNode(itemType)

	require.NoError(t, from.Set("first", x))
	require.NoError(t, to.Set("first", x))
	require.NoError(t, from.Delete("first"))
	assert.Same(t, b, x.Container())

	require.NoError(t, to.Set("second", x))
	require.NoError(t, to.Set("first", "gone"))
	assert.Same(t, b, x.Container(), "still held under another key")

	require.NoError(t, to.Update(Pair{"second", "gone"}))
	assert.Nil(t, x.Container())
}

func TestNodeMapAttributeContainment(t *testing.T) {
	po := NewNode(orderType)
	item := NewNode(itemType)

	require.NoError(t, po.Set("lines", map[string]any{"first": item}))
	assert.Same(t, po, item.Container())
	assert.True(t, po.Map("lines").Containment())

	require.NoError(t, po.Set("lines", nil))
	assert.Nil(t, item.Container())
}
