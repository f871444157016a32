package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/objwatch/pkg/model"
)

var (
	orderType   = model.NewType("PurchaseOrder", "items", "billTo")
	itemType    = model.NewType("Item")
	addressType = model.NewType("Address")
)

type fixture struct {
	po, item, ship, bill *model.Node
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		po:   model.NewNode(orderType),
		item: model.NewNode(itemType),
		ship: model.NewNode(addressType),
		bill: model.NewNode(addressType),
	}
	require.NoError(t, f.item.Set("productName", "Lawnmower"))
	require.NoError(t, f.item.Set("quantity", 1))
	require.NoError(t, f.ship.Set("city", "Mill Valley"))
	require.NoError(t, f.bill.Set("city", "Old Town"))
	require.NoError(t, f.po.Set("comment", "rush"))
	require.NoError(t, f.po.Set("items", []any{f.item}))
	require.NoError(t, f.po.Set("shipTo", f.ship))
	require.NoError(t, f.po.Set("billTo", f.bill))
	require.NoError(t, f.po.Set("tags", map[string]any{"priority": "high"}))
	return f
}

func TestInspectorRead(t *testing.T) {
	f := newFixture(t)
	insp := NewInspector(f.po)
	assert.Same(t, f.po, insp.Root())

	tests := []struct {
		path string
		want any
	}{
		{"comment", "rush"},
		{"items/0/productName", "Lawnmower"},
		{"items/-1/quantity", 1},
		{"shipTo/city", "Mill Valley"},
		{"billTo/city", "Old Town"},
		{"tags/priority", "high"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := insp.Read(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := insp.Read("items/0")
	require.NoError(t, err)
	assert.Same(t, f.item, got)
}

func TestInspectorReadErrors(t *testing.T) {
	insp := NewInspector(newFixture(t).po)

	tests := []struct {
		path    string
		wantErr error
	}{
		{"", ErrEmptyPath},
		{"missing", ErrPathNotFound},
		{"items/5", ErrPathNotFound},
		{"items/first", ErrInvalidPath},
		{"tags/absent", ErrPathNotFound},
		{"comment/length", ErrPathNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := insp.Read(tt.path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolveNilPath(t *testing.T) {
	_, err := Resolve(model.NewNode(nil), nil)
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestInspectorWriteNotifies(t *testing.T) {
	f := newFixture(t)
	insp := NewInspector(f.po)

	var got []model.Notification
	cb := &callbackAdapter{fn: func(n model.Notification) error {
		got = append(got, n)
		return nil
	}}
	f.po.AddAdapter(cb)
	f.po.List("items").AddAdapter(cb)
	f.po.Map("tags").AddAdapter(cb)
	f.item.AddAdapter(cb)

	require.NoError(t, insp.Write("comment", "standard"))
	require.NoError(t, insp.Write("items/0/quantity", 3))
	require.NoError(t, insp.Write("items/0", model.NewNode(itemType)))
	require.NoError(t, insp.Write("tags/priority", "low"))

	require.Len(t, got, 4)
	assert.Equal(t, "PurchaseOrder.comment", got[0].Feature)
	assert.Equal(t, 3, got[1].NewValue)
	assert.Same(t, f.item, got[1].Notifier)
	assert.Equal(t, model.Index(0), got[2].Position)
	assert.Same(t, f.item, got[2].OldValue)
	assert.Equal(t, model.Key("priority"), got[3].Position)

	assert.Nil(t, f.item.Container(), "replaced element is released")
}

func TestInspectorWriteErrors(t *testing.T) {
	insp := NewInspector(newFixture(t).po)

	assert.ErrorIs(t, insp.Write("comment/x", 1), ErrNotWritable)
	assert.ErrorIs(t, insp.Write("items/9", 1), model.ErrOutOfRange)
	assert.ErrorIs(t, insp.Write("items/x", 1), ErrInvalidPath)
	assert.ErrorIs(t, insp.Write("nothing/x", 1), ErrPathNotFound)
	assert.ErrorIs(t, insp.Write("_hidden", 1), model.ErrInternalAttribute)
}

type callbackAdapter struct {
	target model.Notifier
	fn     model.Callback
}

func (c *callbackAdapter) Notify(n model.Notification) error { return c.fn(n) }
func (c *callbackAdapter) Target() model.Notifier            { return c.target }
func (c *callbackAdapter) SetTarget(t model.Notifier)        { c.target = t }
