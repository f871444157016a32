package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/mash-protocol/objwatch/pkg/adapter"
	"github.com/mash-protocol/objwatch/pkg/log"
	"github.com/mash-protocol/objwatch/pkg/model"
)

// Config holds subscription manager configuration.
type Config struct {
	// MaxSubscriptions is the maximum number of subscriptions allowed.
	MaxSubscriptions int

	// ChangeLog receives every delivered notification.
	// If nil, nothing is recorded.
	ChangeLog log.Logger

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// DefaultConfig returns the default subscription configuration.
func DefaultConfig() Config {
	return Config{
		MaxSubscriptions: DefaultMaxSubscriptions,
	}
}

// Manager registers adapters on model notifiers and tracks them by id.
type Manager struct {
	mu sync.RWMutex

	config   Config
	recorder *log.Recorder

	// Active subscriptions by ID
	subscriptions map[uint32]*Subscription
}

// NewManager creates a new subscription manager with default configuration.
func NewManager() *Manager {
	return NewManagerWithConfig(DefaultConfig())
}

// NewManagerWithConfig creates a new subscription manager with custom
// configuration.
func NewManagerWithConfig(config Config) *Manager {
	if config.MaxSubscriptions <= 0 {
		config.MaxSubscriptions = DefaultMaxSubscriptions
	}

	m := &Manager{
		config:        config,
		subscriptions: make(map[uint32]*Subscription),
	}
	if config.ChangeLog != nil {
		m.recorder = log.NewRecorder(config.ChangeLog)
	}
	return m
}

// Subscribe attaches a Direct adapter (or an AllContent adapter for
// transitive subscriptions) to target and returns the subscription ID.
func (m *Manager) Subscribe(target model.Notifier, opts Options) (uint32, error) {
	if target == nil {
		return 0, ErrNilTarget
	}
	if opts.Callback == nil {
		return 0, ErrNilCallback
	}

	m.mu.Lock()
	if len(m.subscriptions) >= m.config.MaxSubscriptions {
		m.mu.Unlock()
		return 0, fmt.Errorf("%w: limit %d", ErrResourceExhausted, m.config.MaxSubscriptions)
	}

	sub := newSubscription(nextID(), target, opts)
	callback := m.wrap(sub, opts.Callback)
	if opts.Transitive {
		sub.adapter = adapter.NewAllContent(callback, opts.EventTypes...)
	} else {
		sub.adapter = adapter.NewDirect(callback, opts.EventTypes...)
	}
	m.subscriptions[sub.ID] = sub
	m.mu.Unlock()

	// Attach outside the lock: registration may walk the model.
	target.AddAdapter(sub.adapter)

	m.debug("subscribed",
		slog.Uint64("id", uint64(sub.ID)),
		slog.String("target", model.FormatValue(target)),
		slog.Bool("transitive", sub.Transitive),
		slog.String("events", sub.EventTypes.String()))
	return sub.ID, nil
}

// Unsubscribe detaches a subscription's adapter and removes it.
func (m *Manager) Unsubscribe(subscriptionID uint32) error {
	m.mu.Lock()
	sub, exists := m.subscriptions[subscriptionID]
	if !exists {
		m.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrSubscriptionNotFound, subscriptionID)
	}
	delete(m.subscriptions, subscriptionID)
	m.mu.Unlock()

	detach(sub)
	m.debug("unsubscribed", slog.Uint64("id", uint64(subscriptionID)))
	return nil
}

// ClearAll removes all subscriptions.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	subs := make([]*Subscription, 0, len(m.subscriptions))
	for _, sub := range m.subscriptions {
		subs = append(subs, sub)
	}
	m.subscriptions = make(map[uint32]*Subscription)
	m.mu.Unlock()

	for _, sub := range subs {
		detach(sub)
	}
	m.debug("cleared subscriptions", slog.Int("count", len(subs)))
}

// Count returns the number of active subscriptions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Get returns a subscription by ID.
func (m *Manager) Get(subscriptionID uint32) (*Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, exists := m.subscriptions[subscriptionID]
	if !exists {
		return nil, fmt.Errorf("%w: %d", ErrSubscriptionNotFound, subscriptionID)
	}
	return sub, nil
}

// IDs returns the active subscription IDs in ascending order.
func (m *Manager) IDs() []uint32 {
	m.mu.RLock()
	ids := make([]uint32, 0, len(m.subscriptions))
	for id := range m.subscriptions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

// wrap counts deliveries, feeds the change log and drops notifications
// that arrive after the subscription was removed.
func (m *Manager) wrap(sub *Subscription, callback model.Callback) model.Callback {
	return func(n model.Notification) error {
		if !sub.IsActive() {
			return nil
		}
		err := callback(n)
		sub.record(err)

		if m.recorder != nil {
			if err != nil {
				m.recorder.RecordFailure(n, fmt.Sprintf("subscription %d", sub.ID), err)
			} else {
				m.recorder.Record(n)
			}
		}
		if err != nil && m.config.Logger != nil {
			m.config.Logger.Warn("subscription callback failed",
				slog.Uint64("id", uint64(sub.ID)),
				slog.String("event", n.EventType.String()),
				slog.Any("error", err))
		}
		return err
	}
}

// detach deactivates sub and unbinds its adapter. Unbinding an AllContent
// adapter releases the whole subtree.
func detach(sub *Subscription) {
	sub.Deactivate()
	sub.adapter.SetTarget(nil)
	// A Direct adapter retargeted elsewhere by the caller is still
	// registered on the original target.
	sub.Target.RemoveAdapter(sub.adapter)
}

func (m *Manager) debug(msg string, attrs ...slog.Attr) {
	if m.config.Logger != nil {
		m.config.Logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
	}
}
