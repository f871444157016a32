package examples

import (
	_ "embed"
	"fmt"

	"github.com/mash-protocol/objwatch/pkg/model"
)

//go:embed schema.yaml
var schemaYAML []byte

// Schema holds the purchase-order types.
var Schema = mustLoadSchema()

// Model types.
var (
	PurchaseOrderType = Schema.MustType("PurchaseOrder")
	ItemType          = Schema.MustType("Item")
	AddressType       = Schema.MustType("Address")
)

func mustLoadSchema() *model.Schema {
	s, err := model.LoadSchema(schemaYAML)
	if err != nil {
		panic(fmt.Sprintf("examples: %v", err))
	}
	return s
}

func stringAttr(n *model.Node, name string) string {
	v, _ := n.Get(name)
	s, _ := v.(string)
	return s
}
