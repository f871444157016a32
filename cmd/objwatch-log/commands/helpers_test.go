package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mash-protocol/objwatch/pkg/log"
	"github.com/mash-protocol/objwatch/pkg/model"
)

const (
	orderID = "abc12345-6789-0123-4567-890abcdef012"
	itemID  = "def67890-1111-2222-3333-444455556666"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.olog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}

	return path
}

// sampleEvents is a small session: a comment write, an item appended to
// the items list, a quantity change on the item and a failed observer.
func sampleEvents() []log.Event {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	return []log.Event{
		{
			Timestamp: ts,
			SessionID: "session-1",
			NodeID:    orderID,
			NodeType:  "PurchaseOrder",
			Notifier:  log.NotifierNode,
			EventType: model.EventSet,
			Feature:   "PurchaseOrder.comment",
			NewValue:  &log.Value{Kind: log.ValueScalar, Text: `"rush"`},
		},
		{
			Timestamp: ts.Add(time.Second),
			SessionID: "session-1",
			NodeID:    orderID,
			NodeType:  "PurchaseOrder",
			Notifier:  log.NotifierList,
			EventType: model.EventAddMany,
			Feature:   "PurchaseOrder.items",
			Position:  "[0:1]",
			NewValue:  &log.Value{Kind: log.ValueBatch, Len: 1, NodeIDs: []string{itemID}},
		},
		{
			Timestamp: ts.Add(2 * time.Second),
			SessionID: "session-1",
			NodeID:    itemID,
			NodeType:  "Item",
			Notifier:  log.NotifierNode,
			EventType: model.EventSet,
			Feature:   "Item.quantity",
			NewValue:  &log.Value{Kind: log.ValueScalar, Text: "3"},
			OldValue:  &log.Value{Kind: log.ValueScalar, Text: "1"},
		},
		{
			Timestamp: ts.Add(3 * time.Second),
			SessionID: "session-2",
			NodeID:    itemID,
			NodeType:  "Item",
			Notifier:  log.NotifierNode,
			EventType: model.EventSet,
			Feature:   "Item.upc",
			NewValue:  &log.Value{Kind: log.ValueScalar, Text: `"0123"`},
			Error:     &log.ErrorData{Message: "boom", Context: "subscription 7"},
		},
	}
}
