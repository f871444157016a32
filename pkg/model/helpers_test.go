package model

import "testing"

// recorder is a minimal adapter that keeps every notification it receives.
type recorder struct {
	target   Notifier
	received []Notification
	err      error
	onNotify func(Notification)
}

func (r *recorder) Notify(n Notification) error {
	r.received = append(r.received, n)
	if r.onNotify != nil {
		r.onNotify(n)
	}
	return r.err
}

func (r *recorder) Target() Notifier { return r.target }

func (r *recorder) SetTarget(t Notifier) { r.target = t }

func (r *recorder) last(t *testing.T) Notification {
	t.Helper()
	if len(r.received) == 0 {
		t.Fatal("no notification received")
	}
	return r.received[len(r.received)-1]
}

// observe attaches a fresh recorder to n.
func observe(n Notifier) *recorder {
	r := &recorder{}
	n.AddAdapter(r)
	return r
}

var (
	orderType   = NewType("PurchaseOrder", "items", "lines", "billing")
	addressType = NewType("Address")
	itemType    = NewType("Item")
)
