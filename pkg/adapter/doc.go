// Package adapter provides the standard model.Adapter implementations.
//
// # Direct
//
// A Direct adapter observes a single notifier. Binding it to a new target
// unregisters it from the previous one:
//
//	a := adapter.NewDirect(onChange, model.EventSet)
//	po.AddAdapter(a) // po becomes the target
//
// # AllContent
//
// An AllContent adapter observes its target and everything the target
// contains, transitively. Containment is taken from the declared Type
// metadata: the values of containment attributes and the elements of
// containment Lists and Maps. The subscribed set follows the model as it
// changes: values added along a containment edge are subscribed and
// removed values are unsubscribed, without rescanning the tree.
//
// Both adapters drop notifications whose event type is not in their
// accepted set. An AllContent adapter still tracks the subtree for dropped
// notifications.
package adapter
