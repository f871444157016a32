package adapter

import (
	"slices"

	"github.com/mash-protocol/objwatch/pkg/model"
)

// AllContent forwards notifications from a notifier and from everything it
// transitively contains.
type AllContent struct {
	callback   model.Callback
	eventTypes model.EventTypeSet
	target     model.Notifier

	// subscribed holds every notifier the adapter registered itself with.
	// Entries whose notifier dropped the adapter behind its back are
	// discarded on lookup.
	subscribed map[model.Notifier]struct{}
}

// NewAllContent creates an unbound adapter accepting the given event types,
// or all of them if none are given.
func NewAllContent(callback model.Callback, eventTypes ...model.EventType) *AllContent {
	return &AllContent{
		callback:   callback,
		eventTypes: model.NewEventTypeSet(eventTypes...),
		subscribed: make(map[model.Notifier]struct{}),
	}
}

// EventTypes returns the accepted event types.
func (a *AllContent) EventTypes() model.EventTypeSet {
	return a.eventTypes
}

// Target returns the root of the observed subtree.
func (a *AllContent) Target() model.Notifier {
	return a.target
}

// SetTarget unsubscribes from the previous subtree and subscribes to the
// subtree rooted at t. Passing nil detaches the adapter entirely.
func (a *AllContent) SetTarget(t model.Notifier) {
	if a.target == t {
		return
	}
	a.target = t
	for n := range a.subscribed {
		a.unsubscribe(n)
	}
	if t != nil {
		model.WalkContents(t, a.subscribe)
		// A target that is not a Node or collection is still observed.
		a.subscribe(t)
	}
}

// Subscribed returns the notifiers currently observed, in no particular
// order.
func (a *AllContent) Subscribed() []model.Notifier {
	notifiers := make([]model.Notifier, 0, len(a.subscribed))
	for n := range a.subscribed {
		if a.IsSubscribed(n) {
			notifiers = append(notifiers, n)
		}
	}
	return notifiers
}

// IsSubscribed reports whether the adapter observes n.
func (a *AllContent) IsSubscribed(n model.Notifier) bool {
	if _, ok := a.subscribed[n]; !ok {
		return false
	}
	if !slices.Contains(n.Adapters(), model.Adapter(a)) {
		delete(a.subscribed, n)
		return false
	}
	return true
}

// Notify forwards n to the callback if its event type is accepted, then
// updates the subscribed subtree: removed values are unsubscribed before
// added values are subscribed, so a value written back into its own slot
// stays observed. The callback error, if any, is returned after the
// subtree is updated.
func (a *AllContent) Notify(n model.Notification) error {
	var err error
	if a.eventTypes.Has(n.EventType) && a.callback != nil {
		err = a.callback(n)
	}

	if a.tracks(n) {
		for _, v := range model.Expand(n.OldValue) {
			model.WalkContents(v, a.prune)
		}
		for _, v := range model.Expand(n.NewValue) {
			model.WalkContents(v, a.subscribe)
		}
	}
	return err
}

// tracks reports whether the values carried by n are contents of the
// subtree. The elements of a collection target are its contents even when
// the collection is not containment flagged.
func (a *AllContent) tracks(n model.Notification) bool {
	if model.ContainmentEdge(n) {
		return true
	}
	_, isCollection := n.Notifier.(model.Collection)
	return isCollection && n.Notifier == a.target
}

func (a *AllContent) subscribe(n model.Notifier) {
	a.subscribed[n] = struct{}{}
	n.AddAdapter(a)
}

// prune unsubscribes n unless it is still reachable: a Node whose container
// is observed, or a collection whose owner is observed. Walks visit holders
// before their contents, so a pruned holder takes its contents with it.
func (a *AllContent) prune(n model.Notifier) {
	var holder *model.Node
	if c, ok := n.(model.Collection); ok {
		holder = c.Owner()
	} else if node, ok := model.AsNode(n); ok {
		holder = node.Container()
	}
	if holder != nil && a.IsSubscribed(holder) {
		return
	}
	a.unsubscribe(n)
}

func (a *AllContent) unsubscribe(n model.Notifier) {
	if n == a.target {
		return
	}
	delete(a.subscribed, n)
	n.RemoveAdapter(a)
}

var _ model.Adapter = (*AllContent)(nil)
