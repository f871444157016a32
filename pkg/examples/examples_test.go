package examples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/objwatch/pkg/adapter"
	"github.com/mash-protocol/objwatch/pkg/model"
)

func TestSchemaTypes(t *testing.T) {
	assert.Equal(t, []string{"items"}, PurchaseOrderType.Containment())
	assert.Len(t, Schema.Types(), 3)
	assert.Empty(t, ItemType.Containment())
}

func TestPurchaseOrderConstruction(t *testing.T) {
	po := NewPurchaseOrder()
	require.NotNil(t, po.ItemList())
	assert.True(t, po.ItemList().Containment())
	assert.Empty(t, po.Items())
	assert.Nil(t, po.ShipTo())
	assert.Equal(t, "", po.Comment())

	item := NewItem(ItemConfig{ProductName: "Lawnmower", Quantity: 2, USPrice: 148.95, UPC: "0123-4567"})
	assert.Equal(t, "Lawnmower", item.ProductName())
	assert.Equal(t, 2, item.Quantity())
	assert.Equal(t, "0123-4567", item.UPC())
	assert.Nil(t, item.Container())
}

func TestPurchaseOrderContainment(t *testing.T) {
	po := NewPurchaseOrder()
	mower := NewItem(ItemConfig{ProductName: "Lawnmower", Quantity: 1, USPrice: 148.95})
	monitor := NewItem(ItemConfig{ProductName: "Baby Monitor", Quantity: 2, USPrice: 39.98})

	require.NoError(t, po.AddItem(mower))
	require.NoError(t, po.AddItem(monitor))
	assert.Same(t, po.Node, mower.Container())
	assert.Same(t, po.Node, monitor.Container())
	assert.Equal(t, []*Item{mower, monitor}, po.Items())
	assert.InDelta(t, 228.91, po.Total(), 1e-9)

	require.NoError(t, po.RemoveItem(mower))
	assert.Nil(t, mower.Container())

	// Addresses are references.
	addr := NewAddress(AddressConfig{Name: "Alice Smith", City: "Mill Valley"})
	require.NoError(t, po.SetShipTo(addr))
	require.NoError(t, po.SetBillTo(addr))
	assert.Nil(t, addr.Container())
	assert.Same(t, addr, po.ShipTo())
	assert.Same(t, addr, po.BillTo())
}

func TestObservedPurchaseOrder(t *testing.T) {
	po := NewPurchaseOrder()

	var direct, all []model.Notification
	po.AddAdapter(adapter.NewDirect(func(n model.Notification) error {
		direct = append(direct, n)
		return nil
	}, model.EventSet))
	po.AddAdapter(adapter.NewAllContent(func(n model.Notification) error {
		all = append(all, n)
		return nil
	}))

	item := NewItem(ItemConfig{ProductName: "Lawnmower", Quantity: 1, UPC: "0123-4567"})
	require.NoError(t, po.AddItem(item))

	assert.Empty(t, direct, "ADD is not accepted by the SET-only adapter")
	require.Len(t, all, 1)
	assert.Equal(t, model.EventAdd, all[0].EventType)
	assert.Same(t, item, all[0].NewValue)

	require.NoError(t, item.SetUPC("1111-1111"))

	assert.Empty(t, direct, "the item is not the direct adapter's target")
	require.Len(t, all, 2)
	assert.Equal(t, model.EventSet, all[1].EventType)
	assert.Equal(t, "Item.upc", all[1].Feature)
	assert.Equal(t, "1111-1111", all[1].NewValue)
	assert.Equal(t, "0123-4567", all[1].OldValue)

	require.NoError(t, po.SetComment("rush"))
	assert.Len(t, direct, 1)
	assert.Len(t, all, 3)
}
