package log

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/objwatch/pkg/model"
)

func TestRecorderStampsSession(t *testing.T) {
	capture := &captureLogger{}
	r := NewRecorder(capture)

	_, err := uuid.Parse(r.SessionID())
	require.NoError(t, err)
	assert.NotEqual(t, r.SessionID(), NewRecorder(capture).SessionID())

	item := model.NewNode(itemType)
	item.AddAdapter(&callbackAdapter{cb: r.Callback()})
	require.NoError(t, item.Set("upc", "0123-4567"))

	require.Len(t, capture.events, 1)
	event := capture.events[0]
	assert.Equal(t, r.SessionID(), event.SessionID)
	assert.Equal(t, "Item.upc", event.Feature)
	assert.Equal(t, item.ID().String(), event.NodeID)
}

func TestRecorderFailure(t *testing.T) {
	capture := &captureLogger{}
	r := NewRecorder(capture)

	r.RecordFailure(model.Notification{EventType: model.EventAdd}, "subscription 3", errors.New("boom"))

	require.Len(t, capture.events, 1)
	require.NotNil(t, capture.events[0].Error)
	assert.Equal(t, "boom", capture.events[0].Error.Message)
	assert.Equal(t, "subscription 3", capture.events[0].Error.Context)
}

func TestCallbackWithNilLogger(t *testing.T) {
	cb := Callback(nil)
	assert.NoError(t, cb(model.Notification{EventType: model.EventSet}))
}

// callbackAdapter is a bare adapter forwarding everything to cb.
type callbackAdapter struct {
	cb     model.Callback
	target model.Notifier
}

func (a *callbackAdapter) Notify(n model.Notification) error { return a.cb(n) }
func (a *callbackAdapter) Target() model.Notifier            { return a.target }
func (a *callbackAdapter) SetTarget(t model.Notifier)        { a.target = t }
