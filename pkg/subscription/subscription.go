package subscription

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mash-protocol/objwatch/pkg/model"
)

// Subscription errors.
var (
	ErrResourceExhausted    = errors.New("maximum subscriptions reached")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrNilCallback          = errors.New("subscription callback is nil")
	ErrNilTarget            = errors.New("subscription target is nil")
)

// DefaultMaxSubscriptions is the default subscription limit.
const DefaultMaxSubscriptions = 1024

// Options describes a subscription request.
type Options struct {
	// Callback receives accepted notifications. Required.
	Callback model.Callback

	// EventTypes lists the accepted event types (empty = all).
	EventTypes []model.EventType

	// Transitive subscribes to the target's containment subtree.
	Transitive bool
}

// Subscription is an active subscription.
type Subscription struct {
	mu sync.RWMutex

	// ID is the unique subscription identifier.
	ID uint32

	// Target is the notifier the subscription was created on.
	Target model.Notifier

	// Transitive is true for subtree subscriptions.
	Transitive bool

	// EventTypes is the accepted event type set.
	EventTypes model.EventTypeSet

	// Created is when the subscription was established.
	Created time.Time

	adapter model.Adapter

	delivered    uint64
	failed       uint64
	lastNotified time.Time

	active bool
}

func newSubscription(id uint32, target model.Notifier, opts Options) *Subscription {
	return &Subscription{
		ID:         id,
		Target:     target,
		Transitive: opts.Transitive,
		EventTypes: model.NewEventTypeSet(opts.EventTypes...),
		Created:    time.Now(),
		active:     true,
	}
}

// Adapter returns the adapter registered for this subscription.
func (s *Subscription) Adapter() model.Adapter {
	return s.adapter
}

// IsActive returns true until the subscription is removed.
func (s *Subscription) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Deactivate marks the subscription inactive. Notifications still in
// flight are dropped.
func (s *Subscription) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// Delivered returns how many notifications reached the callback and how
// many of those failed.
func (s *Subscription) Delivered() (delivered, failed uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delivered, s.failed
}

// LastNotified returns when the callback last ran, or the zero time.
func (s *Subscription) LastNotified() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastNotified
}

// record notes one delivery.
func (s *Subscription) record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered++
	if err != nil {
		s.failed++
	}
	s.lastNotified = time.Now()
}

// idGenerator hands out subscription ids, unique per process.
var idGenerator atomic.Uint32

// nextID returns the next unique subscription ID.
func nextID() uint32 {
	return idGenerator.Add(1)
}
