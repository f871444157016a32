package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mash-protocol/objwatch/pkg/log"
)

// FilterOptions specifies filtering criteria for the filter command.
type FilterOptions struct {
	Output     string
	SessionID  string
	NodeID     string
	NodeType   string
	Feature    string
	TimeStart  string
	TimeEnd    string
	EventType  string
	Notifier   string
	ErrorsOnly bool
}

// buildFilter converts the textual options into a log.Filter.
func buildFilter(opts FilterOptions) (log.Filter, error) {
	filter := log.Filter{
		SessionID:  opts.SessionID,
		NodeID:     opts.NodeID,
		NodeType:   opts.NodeType,
		Feature:    opts.Feature,
		ErrorsOnly: opts.ErrorsOnly,
	}

	var err error
	if filter.TimeStart, err = parseTime("time-start", opts.TimeStart); err != nil {
		return filter, err
	}
	if filter.TimeEnd, err = parseTime("time-end", opts.TimeEnd); err != nil {
		return filter, err
	}

	if opts.EventType != "" {
		e, err := ParseEventTypeFlag(opts.EventType)
		if err != nil {
			return filter, err
		}
		filter.EventType = &e
	}

	if opts.Notifier != "" {
		k, err := ParseNotifierFlag(opts.Notifier)
		if err != nil {
			return filter, err
		}
		filter.Notifier = &k
	}

	return filter, nil
}

// RunFilter filters the log file and writes matching events to a new file.
// It returns the number of events written.
func RunFilter(path string, opts FilterOptions, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = log.NewNopSlogLogger()
	}

	filter, err := buildFilter(opts)
	if err != nil {
		return 0, err
	}

	// Open input
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	// Create file logger to write filtered events
	out, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer out.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read event: %w", err)
		}

		out.Log(event)
		count++
	}

	if _, failed := out.Stats(); failed > 0 {
		logger.Warn("some events could not be written", "failed", failed, "output", opts.Output)
	}
	logger.Debug("filter complete", "input", path, "output", opts.Output, "events", count)
	return count, nil
}
