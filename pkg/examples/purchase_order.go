package examples

import (
	"github.com/mash-protocol/objwatch/pkg/model"
)

// PurchaseOrder is an order of Items shipped to an Address.
type PurchaseOrder struct {
	*model.Node
}

// NewPurchaseOrder creates an empty order.
func NewPurchaseOrder() *PurchaseOrder {
	return &PurchaseOrder{Node: PurchaseOrderType.New()}
}

// ItemList returns the contained item list.
func (po *PurchaseOrder) ItemList() *model.List {
	return po.List("items")
}

// Items returns the order's items.
func (po *PurchaseOrder) Items() []*Item {
	var items []*Item
	for _, v := range po.ItemList().Values() {
		if item, ok := v.(*Item); ok {
			items = append(items, item)
		}
	}
	return items
}

// AddItem appends an item. The order becomes the item's container.
func (po *PurchaseOrder) AddItem(item *Item) error {
	return po.ItemList().Append(item)
}

// RemoveItem removes an item from the order.
func (po *PurchaseOrder) RemoveItem(item *Item) error {
	return po.ItemList().Remove(item)
}

// ShipTo returns the shipping address, or nil.
func (po *PurchaseOrder) ShipTo() *Address {
	v, _ := po.Get("shipTo")
	a, _ := v.(*Address)
	return a
}

// SetShipTo sets the shipping address. Addresses are referenced, not
// contained.
func (po *PurchaseOrder) SetShipTo(a *Address) error {
	return po.Set("shipTo", a)
}

// BillTo returns the billing address, or nil.
func (po *PurchaseOrder) BillTo() *Address {
	v, _ := po.Get("billTo")
	a, _ := v.(*Address)
	return a
}

// SetBillTo sets the billing address.
func (po *PurchaseOrder) SetBillTo(a *Address) error {
	return po.Set("billTo", a)
}

// Comment returns the order comment.
func (po *PurchaseOrder) Comment() string {
	return stringAttr(po.Node, "comment")
}

// SetComment sets the order comment.
func (po *PurchaseOrder) SetComment(comment string) error {
	return po.Set("comment", comment)
}

// Total returns the sum of quantity times unit price over all items.
func (po *PurchaseOrder) Total() float64 {
	var total float64
	for _, item := range po.Items() {
		total += float64(item.Quantity()) * item.USPrice()
	}
	return total
}

// Item is one order line.
type Item struct {
	*model.Node
}

// ItemConfig contains the initial values of an Item.
type ItemConfig struct {
	ProductName string
	Quantity    int
	USPrice     float64
	UPC         string
}

// NewItem creates an item. Initial values are assigned before any adapter
// can be attached and produce no observable notification.
func NewItem(cfg ItemConfig) *Item {
	item := &Item{Node: ItemType.New()}
	// Nothing observes a fresh node; errors can only come from callbacks.
	_ = item.Set("productName", cfg.ProductName)
	_ = item.Set("quantity", cfg.Quantity)
	_ = item.Set("usPrice", cfg.USPrice)
	_ = item.Set("upc", cfg.UPC)
	return item
}

// ProductName returns the product name.
func (i *Item) ProductName() string {
	return stringAttr(i.Node, "productName")
}

// Quantity returns the ordered quantity.
func (i *Item) Quantity() int {
	v, _ := i.Get("quantity")
	q, _ := v.(int)
	return q
}

// SetQuantity sets the ordered quantity.
func (i *Item) SetQuantity(q int) error {
	return i.Set("quantity", q)
}

// USPrice returns the unit price in US dollars.
func (i *Item) USPrice() float64 {
	v, _ := i.Get("usPrice")
	p, _ := v.(float64)
	return p
}

// SetUSPrice sets the unit price.
func (i *Item) SetUSPrice(p float64) error {
	return i.Set("usPrice", p)
}

// UPC returns the product code.
func (i *Item) UPC() string {
	return stringAttr(i.Node, "upc")
}

// SetUPC sets the product code.
func (i *Item) SetUPC(upc string) error {
	return i.Set("upc", upc)
}

// Address is a postal address.
type Address struct {
	*model.Node
}

// AddressConfig contains the initial values of an Address.
type AddressConfig struct {
	Name   string
	Street string
	City   string
	Zip    string
}

// NewAddress creates an address.
func NewAddress(cfg AddressConfig) *Address {
	a := &Address{Node: AddressType.New()}
	_ = a.Set("name", cfg.Name)
	_ = a.Set("street", cfg.Street)
	_ = a.Set("city", cfg.City)
	_ = a.Set("zip", cfg.Zip)
	return a
}

// Name returns the addressee.
func (a *Address) Name() string { return stringAttr(a.Node, "name") }

// Street returns the street line.
func (a *Address) Street() string { return stringAttr(a.Node, "street") }

// City returns the city.
func (a *Address) City() string { return stringAttr(a.Node, "city") }

// Zip returns the postal code.
func (a *Address) Zip() string { return stringAttr(a.Node, "zip") }

// SetCity sets the city.
func (a *Address) SetCity(city string) error {
	return a.Set("city", city)
}
