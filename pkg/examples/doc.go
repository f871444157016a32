// Package examples provides a small purchase-order model built on the
// objwatch runtime.
//
// The types are declared in schema.yaml and loaded at init:
//   - PurchaseOrder: items (containment list), shipTo and billTo
//     (references), comment
//   - Item: productName, quantity, usPrice, upc
//   - Address: name, street, city, zip
//
// Each Go type embeds *model.Node, so values can be stored in Lists, Maps
// and attributes and are observed like any other Node.
package examples
