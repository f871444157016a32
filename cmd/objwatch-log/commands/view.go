// Package commands implements the objwatch-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/mash-protocol/objwatch/pkg/log"
	"github.com/mash-protocol/objwatch/pkg/model"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	EventType *model.EventType
	Notifier  *log.NotifierKind
	NodeType  string
}

// matches reports whether the event passes the filter.
func (f ViewFilter) matches(e log.Event) bool {
	if f.EventType != nil && e.EventType != *f.EventType {
		return false
	}
	if f.Notifier != nil && e.Notifier != *f.Notifier {
		return false
	}
	if f.NodeType != "" && e.NodeType != f.NodeType {
		return false
	}
	return true
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [node:id] NOTIFIER EVENT feature
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [node:%s] %-5s %s %s\n",
		ts, shortenID(event.NodeID), event.Notifier, event.EventType, featureLabel(event))

	if event.Position != "" {
		fmt.Fprintf(w, "  Position: %s\n", event.Position)
	}
	if event.NewValue != nil {
		fmt.Fprintf(w, "  New: %s", event.NewValue)
		formatNodeIDs(w, event.NewValue)
		fmt.Fprintln(w)
	}
	if event.OldValue != nil {
		fmt.Fprintf(w, "  Old: %s", event.OldValue)
		formatNodeIDs(w, event.OldValue)
		fmt.Fprintln(w)
	}
	if event.Error != nil {
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenID returns the first 8 characters of an id.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	if id == "" {
		return "-"
	}
	return id
}

func featureLabel(event log.Event) string {
	if event.Feature != "" {
		return event.Feature
	}
	if event.NodeType != "" {
		return event.NodeType
	}
	return "-"
}

// formatNodeIDs appends the short ids of nodes carried by a batch or
// collection value.
func formatNodeIDs(w io.Writer, v *log.Value) {
	if v.Kind == log.ValueNode || len(v.NodeIDs) == 0 {
		return
	}
	short := make([]string, len(v.NodeIDs))
	for i, id := range v.NodeIDs {
		short[i] = shortenID(id)
	}
	fmt.Fprintf(w, " nodes=[%s]", strings.Join(short, ", "))
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *log.ErrorData) {
	fmt.Fprintf(w, "  Error: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// ParseEventTypeFlag parses an event type from a command-line flag
// (case-insensitive).
func ParseEventTypeFlag(s string) (model.EventType, error) {
	return model.ParseEventType(s)
}

// ParseNotifierFlag parses a notifier kind from a command-line flag
// (case-insensitive).
func ParseNotifierFlag(s string) (log.NotifierKind, error) {
	k, err := log.ParseNotifierKind(strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return 0, fmt.Errorf("invalid notifier: %s (must be node, list, map, or other)", s)
	}
	return k, nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		if !filter.matches(event) {
			continue
		}

		formatEvent(output, event)
	}

	return nil
}
