// Package log captures model change events.
//
// It is separate from operational logging (slog): an Event is a
// machine-readable record of one Notification, written as a CBOR stream and
// read back by the objwatch-log tool.
//
// # Basic Usage
//
// Attach the change log to a model like any other callback:
//
//	// For development: log to console via slog
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to binary file
//	logger, _ := log.NewFileLogger("/tmp/order.olog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
//	po.AddAdapter(adapter.NewAllContent(log.Callback(logger)))
//
// Values are recorded as short text summaries. Nodes are recorded by id and
// collections by length; the model graph itself is never serialized.
//
// # File Format
//
// Log files are a concatenation of CBOR-encoded Events with integer keys,
// conventionally with the .olog extension.
package log
