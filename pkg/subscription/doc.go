// Package subscription manages adapters by id.
//
// A Manager attaches adapters to model notifiers on behalf of callers that
// would rather hold a numeric handle than an adapter value:
//
//	m := subscription.NewManager()
//	id, err := m.Subscribe(po, subscription.Options{
//	    Callback:   onChange,
//	    Transitive: true,
//	})
//	...
//	m.Unsubscribe(id)
//
// # Subscription Options
//
// Each subscription has:
//   - Callback: receives the accepted notifications
//   - EventTypes: accepted event types (empty = all)
//   - Transitive: observe the target's whole containment subtree
//     (AllContent) instead of the target alone (Direct)
//
// # Change Log
//
// If Config.ChangeLog is set, every notification delivered to a
// subscription is also recorded there, together with the callback error if
// the callback failed.
//
// # Concurrency
//
// The Manager's own registry is safe for concurrent use. The model it
// attaches to is not: Subscribe and Unsubscribe register adapters on the
// target and must run on the goroutine that owns the model.
package subscription
