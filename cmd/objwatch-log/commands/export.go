package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mash-protocol/objwatch/pkg/log"
)

const timeLayout = "2006-01-02T15:04:05.000000Z"

// record is the flat, text-keyed form of an event used by exports.
type record struct {
	Timestamp    string   `json:"timestamp"`
	SessionID    string   `json:"session_id,omitempty"`
	NodeID       string   `json:"node_id,omitempty"`
	NodeType     string   `json:"node_type,omitempty"`
	Notifier     string   `json:"notifier"`
	EventType    string   `json:"event_type"`
	Feature      string   `json:"feature,omitempty"`
	Position     string   `json:"position,omitempty"`
	NewValue     string   `json:"new_value,omitempty"`
	OldValue     string   `json:"old_value,omitempty"`
	NodeIDs      []string `json:"node_ids,omitempty"`
	Error        string   `json:"error,omitempty"`
	ErrorContext string   `json:"error_context,omitempty"`
}

func toRecord(e log.Event) record {
	r := record{
		Timestamp: e.Timestamp.UTC().Format(timeLayout),
		SessionID: e.SessionID,
		NodeID:    e.NodeID,
		NodeType:  e.NodeType,
		Notifier:  e.Notifier.String(),
		EventType: e.EventType.String(),
		Feature:   e.Feature,
		Position:  e.Position,
	}
	if e.NewValue != nil {
		r.NewValue = e.NewValue.String()
		r.NodeIDs = append(r.NodeIDs, e.NewValue.NodeIDs...)
	}
	if e.OldValue != nil {
		r.OldValue = e.OldValue.String()
		r.NodeIDs = append(r.NodeIDs, e.OldValue.NodeIDs...)
	}
	if e.Error != nil {
		r.Error = e.Error.Message
		r.ErrorContext = e.Error.Context
	}
	return r
}

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toRecord(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "node_id", "node_type", "notifier", "event_type", "feature", "position", "new_value", "old_value", "error"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		r := toRecord(event)
		row := []string{
			r.Timestamp,
			r.SessionID,
			r.NodeID,
			r.NodeType,
			r.Notifier,
			r.EventType,
			r.Feature,
			r.Position,
			r.NewValue,
			r.OldValue,
			r.Error,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

// parseTime parses an RFC3339 flag value.
func parseTime(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format: %w", name, err)
	}
	return &t, nil
}
