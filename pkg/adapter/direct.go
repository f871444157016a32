package adapter

import (
	"github.com/mash-protocol/objwatch/pkg/model"
)

// Direct forwards notifications from one notifier to a callback.
type Direct struct {
	callback   model.Callback
	eventTypes model.EventTypeSet
	target     model.Notifier
}

// NewDirect creates an unbound adapter accepting the given event types, or
// all of them if none are given.
func NewDirect(callback model.Callback, eventTypes ...model.EventType) *Direct {
	return &Direct{
		callback:   callback,
		eventTypes: model.NewEventTypeSet(eventTypes...),
	}
}

// EventTypes returns the accepted event types.
func (d *Direct) EventTypes() model.EventTypeSet {
	return d.eventTypes
}

// Target returns the observed notifier.
func (d *Direct) Target() model.Notifier {
	return d.target
}

// SetTarget moves the adapter to t. Passing nil detaches it.
func (d *Direct) SetTarget(t model.Notifier) {
	if d.target == t {
		return
	}
	old := d.target
	d.target = t
	if old != nil {
		old.RemoveAdapter(d)
	}
	if t != nil {
		t.AddAdapter(d)
	}
}

// Notify forwards n to the callback if its event type is accepted.
func (d *Direct) Notify(n model.Notification) error {
	if !d.eventTypes.Has(n.EventType) || d.callback == nil {
		return nil
	}
	return d.callback(n)
}

var _ model.Adapter = (*Direct)(nil)
