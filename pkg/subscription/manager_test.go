package subscription

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/objwatch/pkg/adapter"
	"github.com/mash-protocol/objwatch/pkg/log"
	"github.com/mash-protocol/objwatch/pkg/model"
)

var (
	orderType = model.NewType("PurchaseOrder", "items")
	itemType  = model.NewType("Item")
)

type collector struct {
	received []model.Notification
	err      error
}

func (c *collector) callback(n model.Notification) error {
	c.received = append(c.received, n)
	return c.err
}

type captureLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (c *captureLogger) Log(e log.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func newOrder(t *testing.T) (*model.Node, *model.List) {
	t.Helper()
	po := model.NewNode(orderType)
	require.NoError(t, po.Set("items", []any{}))
	return po, po.List("items")
}

func TestSubscribeDirect(t *testing.T) {
	m := NewManager()
	po, items := newOrder(t)
	c := &collector{}

	id, err := m.Subscribe(po, Options{Callback: c.callback, EventTypes: []model.EventType{model.EventSet}})
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, 1, m.Count())

	sub, err := m.Get(id)
	require.NoError(t, err)
	assert.IsType(t, &adapter.Direct{}, sub.Adapter())
	assert.Equal(t, model.NewEventTypeSet(model.EventSet), sub.EventTypes)
	assert.True(t, sub.IsActive())

	require.NoError(t, items.Append(model.NewNode(itemType)))
	require.NoError(t, po.Set("comment", "rush"))

	require.Len(t, c.received, 1)
	assert.Equal(t, model.EventSet, c.received[0].EventType)

	delivered, failed := sub.Delivered()
	assert.Equal(t, uint64(1), delivered)
	assert.Zero(t, failed)
	assert.False(t, sub.LastNotified().IsZero())
}

func TestSubscribeTransitive(t *testing.T) {
	m := NewManager()
	po, items := newOrder(t)
	c := &collector{}

	id, err := m.Subscribe(po, Options{Callback: c.callback, Transitive: true})
	require.NoError(t, err)

	sub, err := m.Get(id)
	require.NoError(t, err)
	all, ok := sub.Adapter().(*adapter.AllContent)
	require.True(t, ok)

	item := model.NewNode(itemType)
	require.NoError(t, items.Append(item))
	require.NoError(t, item.Set("upc", "0123-4567"))

	assert.Equal(t, []model.EventType{model.EventAdd, model.EventSet}, eventTypes(c.received))
	assert.True(t, all.IsSubscribed(item))

	require.NoError(t, m.Unsubscribe(id))
	assert.False(t, sub.IsActive())
	assert.Empty(t, po.Adapters())
	assert.Empty(t, items.Adapters())
	assert.Empty(t, item.Adapters())

	require.NoError(t, item.Set("upc", "1111-1111"))
	assert.Len(t, c.received, 2)
}

func TestSubscribeValidation(t *testing.T) {
	m := NewManager()
	po := model.NewNode(orderType)

	_, err := m.Subscribe(po, Options{})
	assert.ErrorIs(t, err, ErrNilCallback)

	_, err = m.Subscribe(nil, Options{Callback: (&collector{}).callback})
	assert.ErrorIs(t, err, ErrNilTarget)

	assert.Zero(t, m.Count())
}

func TestSubscribeLimit(t *testing.T) {
	m := NewManagerWithConfig(Config{MaxSubscriptions: 2})
	po := model.NewNode(orderType)
	c := &collector{}

	for range 2 {
		_, err := m.Subscribe(po, Options{Callback: c.callback})
		require.NoError(t, err)
	}

	_, err := m.Subscribe(po, Options{Callback: c.callback})
	assert.ErrorIs(t, err, ErrResourceExhausted)
	assert.Len(t, po.Adapters(), 2)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultMaxSubscriptions, cfg.MaxSubscriptions)

	m := NewManagerWithConfig(Config{})
	assert.Equal(t, DefaultMaxSubscriptions, m.config.MaxSubscriptions)
}

func TestUnsubscribeUnknown(t *testing.T) {
	m := NewManager()
	err := m.Unsubscribe(12345)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)

	_, err = m.Get(12345)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestUniqueIDs(t *testing.T) {
	m := NewManager()
	po := model.NewNode(orderType)
	c := &collector{}

	seen := make(map[uint32]bool)
	for range 10 {
		id, err := m.Subscribe(po, Options{Callback: c.callback})
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}

	ids := m.IDs()
	assert.Len(t, ids, 10)
	assert.IsIncreasing(t, ids)
}

func TestClearAll(t *testing.T) {
	m := NewManager()
	po, items := newOrder(t)
	c := &collector{}

	_, err := m.Subscribe(po, Options{Callback: c.callback})
	require.NoError(t, err)
	_, err = m.Subscribe(po, Options{Callback: c.callback, Transitive: true})
	require.NoError(t, err)
	require.NotEmpty(t, items.Adapters())

	m.ClearAll()
	assert.Zero(t, m.Count())
	assert.Empty(t, po.Adapters())
	assert.Empty(t, items.Adapters())

	require.NoError(t, po.Set("comment", "x"))
	assert.Empty(t, c.received)
}

func TestCallbackFailureIsLogged(t *testing.T) {
	changes := &captureLogger{}
	var out bytes.Buffer
	m := NewManagerWithConfig(Config{
		ChangeLog: changes,
		Logger:    slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	po := model.NewNode(orderType)
	boom := errors.New("boom")
	c := &collector{err: boom}

	id, err := m.Subscribe(po, Options{Callback: c.callback})
	require.NoError(t, err)

	err = po.Set("comment", "x")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, model.ErrCallbackFailed)

	sub, err := m.Get(id)
	require.NoError(t, err)
	delivered, failed := sub.Delivered()
	assert.Equal(t, uint64(1), delivered)
	assert.Equal(t, uint64(1), failed)

	require.Len(t, changes.events, 1)
	event := changes.events[0]
	require.NotNil(t, event.Error)
	assert.Equal(t, "boom", event.Error.Message)
	assert.Equal(t, "PurchaseOrder.comment", event.Feature)
	assert.Equal(t, po.ID().String(), event.NodeID)

	assert.Contains(t, out.String(), "subscription callback failed")
	assert.Contains(t, out.String(), "msg=subscribed")
}

func TestChangeLogRecordsDeliveries(t *testing.T) {
	changes := &captureLogger{}
	m := NewManagerWithConfig(Config{ChangeLog: changes})
	po, items := newOrder(t)

	_, err := m.Subscribe(po, Options{Callback: (&collector{}).callback, Transitive: true})
	require.NoError(t, err)

	require.NoError(t, items.Extend(model.NewNode(itemType), "x"))
	require.NoError(t, po.Set("comment", "y"))

	require.Len(t, changes.events, 2)
	assert.Equal(t, log.NotifierList, changes.events[0].Notifier)
	assert.Equal(t, model.EventAddMany, changes.events[0].EventType)
	assert.Equal(t, "[0:2]", changes.events[0].Position)
	assert.Equal(t, changes.events[0].SessionID, changes.events[1].SessionID)
	assert.Nil(t, changes.events[1].Error)
}

func TestConcurrentRegistryAccess(t *testing.T) {
	m := NewManager()
	c := &collector{}

	// Each goroutine owns its own model; only the registry is shared.
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			po := model.NewNode(orderType)
			for range 20 {
				id, err := m.Subscribe(po, Options{Callback: c.callback})
				if err != nil {
					t.Error(err)
					return
				}
				_ = m.Count()
				if err := m.Unsubscribe(id); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	assert.Zero(t, m.Count())
}

func eventTypes(ns []model.Notification) []model.EventType {
	types := make([]model.EventType, len(ns))
	for i, n := range ns {
		types[i] = n.EventType
	}
	return types
}
