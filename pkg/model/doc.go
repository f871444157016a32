// Package model implements observable model objects.
//
// # Object Model
//
// A model is a tree of Nodes. Each Node belongs to a Type, which declares
// statically which of its attributes are containment edges:
//
//	PurchaseOrder            (containment: items)
//	├── shipTo  -> Address   (reference, no containment)
//	└── items   -> List
//	    ├── [0] -> Item
//	    └── [1] -> Item
//
// A Node held under a containment attribute, or inside a containment List or
// Map, points back to its holder through Container(). The back-reference is
// maintained by the runtime and is cleared as soon as the edge is removed or
// overwritten. Single parenthood is not enforced: moving a Node under a
// second parent is the caller's job.
//
// # Attribute Writes
//
// Node.Set is the single write entry point. It wraps raw []any and
// map[string]any values into List and Map collections bound to the node,
// updates containment back-references and emits a SET Notification.
//
// # Notifications
//
// Nodes, Lists and Maps are Notifiers. Each keeps an ordered set of Adapters
// and a delivery flag. Every mutation produces exactly one Notification which
// is delivered synchronously, in registration order, to a snapshot of the
// adapters taken when dispatch starts. Nested mutations from inside a
// callback complete before the outer dispatch resumes.
//
// Event types:
//   - ADD, ADD_MANY: elements inserted into a List
//   - REMOVE, REMOVE_MANY: elements removed from a List or Map
//   - SET, SET_MANY: attributes, List slots or Map keys replaced
//   - MOVE, MOVE_MANY: List elements reordered
//
// # Concurrency
//
// The package does no locking. All mutation and adapter registration for a
// model must happen on one goroutine, or be serialized by the caller.
package model
