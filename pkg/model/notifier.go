package model

import (
	"errors"
	"fmt"
	"slices"
)

// ErrCallbackFailed wraps an error returned by an adapter callback. The
// mutation that triggered the notification has already been applied.
var ErrCallbackFailed = errors.New("notification callback failed")

// Callback receives notifications from an adapter.
type Callback func(n Notification) error

// Adapter observes one or more Notifiers.
type Adapter interface {
	// Notify is called once per notification from every notifier the
	// adapter is registered with.
	Notify(n Notification) error

	// Target returns the notifier the adapter is bound to, or nil.
	Target() Notifier

	// SetTarget rebinds the adapter. Implementations register themselves
	// with the new target and unregister from the old one.
	SetTarget(target Notifier)
}

// Notifier is implemented by every observable object: Node, List and Map.
type Notifier interface {
	// AddAdapter registers a. It has no effect if a is already registered.
	// If a has no target yet, the notifier becomes its target.
	AddAdapter(a Adapter)

	// RemoveAdapter unregisters a. It has no effect if a is not registered.
	// If the notifier was a's target, a's target is cleared.
	RemoveAdapter(a Adapter)

	// Adapters returns the registered adapters in registration order.
	Adapters() []Adapter

	// NotificationRequired reports whether a mutation would be delivered.
	NotificationRequired() bool

	// Deliver reports whether delivery is enabled.
	Deliver() bool

	// SetDeliver enables or disables delivery.
	SetDeliver(deliver bool)

	// Notify delivers n to the registered adapters.
	Notify(n Notification) error
}

// delegate holds the adapter registry shared by Node, List and Map.
type delegate struct {
	owner    Notifier
	adapters []Adapter
	muted    bool
}

// AddAdapter registers a. Registering twice is a no-op.
func (d *delegate) AddAdapter(a Adapter) {
	if a == nil || slices.Contains(d.adapters, a) {
		return
	}
	d.adapters = append(d.adapters, a)
	if a.Target() == nil {
		a.SetTarget(d.owner)
	}
}

// RemoveAdapter unregisters a. Removing an unknown adapter is a no-op.
func (d *delegate) RemoveAdapter(a Adapter) {
	i := slices.Index(d.adapters, a)
	if i < 0 {
		return
	}
	d.adapters = slices.Delete(d.adapters, i, i+1)
	if a.Target() == d.owner {
		a.SetTarget(nil)
	}
}

// Adapters returns a copy of the registered adapters.
func (d *delegate) Adapters() []Adapter {
	return slices.Clone(d.adapters)
}

// NotificationRequired returns true if adapters are registered and delivery
// is enabled.
func (d *delegate) NotificationRequired() bool {
	return len(d.adapters) > 0 && !d.muted
}

// Deliver reports whether delivery is enabled.
func (d *delegate) Deliver() bool {
	return !d.muted
}

// SetDeliver enables or disables delivery.
func (d *delegate) SetDeliver(deliver bool) {
	d.muted = !deliver
}

// Notify delivers n to a snapshot of the adapters. The first callback error
// stops delivery and is returned wrapped in ErrCallbackFailed.
func (d *delegate) Notify(n Notification) error {
	if !d.NotificationRequired() {
		return nil
	}

	// Callbacks may register or remove adapters on this notifier.
	adapters := slices.Clone(d.adapters)
	for _, a := range adapters {
		if err := a.Notify(n); err != nil {
			if errors.Is(err, ErrCallbackFailed) {
				return err
			}
			return fmt.Errorf("%w: %s: %w", ErrCallbackFailed, n.EventType, err)
		}
	}
	return nil
}
