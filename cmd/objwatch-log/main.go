// Command objwatch-log is a tool for viewing and analyzing change-event
// logs.
//
// Log files are written by a log.FileLogger, either directly or through a
// subscription.Manager configured with a ChangeLog.
//
// Usage:
//
//	objwatch-log <command> [flags] <file.olog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	objwatch-log view changes.olog
//
//	# View only List mutations
//	objwatch-log view --notifier list changes.olog
//
//	# View only batch additions
//	objwatch-log view --event ADD_MANY changes.olog
//
//	# Export to JSONL
//	objwatch-log export --format jsonl changes.olog
//
//	# Keep one node's changes in a new file
//	objwatch-log filter --node-id 3f2a9c1e-... -o node.olog changes.olog
//
//	# Show statistics
//	objwatch-log stats changes.olog
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mash-protocol/objwatch/cmd/objwatch-log/commands"
	"github.com/mash-protocol/objwatch/pkg/log"
)

const usage = `objwatch-log - Change Log Analyzer

Usage:
  objwatch-log <command> [flags] <file.olog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "objwatch-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// fail logs err and exits.
func fail(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}

// requirePath returns the single positional argument or exits.
func requirePath(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

// levelFlag registers the shared -log-level flag.
func levelFlag(fs *flag.FlagSet) *string {
	return fs.String("log-level", "info", "Diagnostic log level (debug, info, warn, error)")
}

func newLogger(level string) *slog.Logger {
	l, err := log.ParseLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return log.NewSlogLogger(l)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `objwatch-log view - View log file in human-readable format

Usage:
  objwatch-log view [flags] <file.olog>

Flags:
`)
		fs.PrintDefaults()
	}

	event := fs.String("event", "", "Filter by event type (ADD, ADD_MANY, MOVE, MOVE_MANY, REMOVE, REMOVE_MANY, SET, SET_MANY)")
	notifier := fs.String("notifier", "", "Filter by notifier (node, list, map, other)")
	nodeType := fs.String("node-type", "", "Filter by node type name")
	level := levelFlag(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	logger := newLogger(*level)
	path := requirePath(fs)

	filter := commands.ViewFilter{NodeType: *nodeType}

	if *event != "" {
		e, err := commands.ParseEventTypeFlag(*event)
		if err != nil {
			fail(logger, "invalid -event", err)
		}
		filter.EventType = &e
	}

	if *notifier != "" {
		k, err := commands.ParseNotifierFlag(*notifier)
		if err != nil {
			fail(logger, "invalid -notifier", err)
		}
		filter.Notifier = &k
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(logger, "view failed", err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `objwatch-log export - Export log file to JSON or CSV format

Usage:
  objwatch-log export [flags] <file.olog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	level := levelFlag(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	logger := newLogger(*level)
	path := requirePath(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(logger, "export failed", err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `objwatch-log filter - Filter log file and write to new file

Usage:
  objwatch-log filter [flags] <file.olog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	sessionID := fs.String("session-id", "", "Filter by session ID")
	nodeID := fs.String("node-id", "", "Filter by node ID")
	nodeType := fs.String("node-type", "", "Filter by node type name")
	feature := fs.String("feature", "", "Filter by feature (Type.attribute)")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339, exclusive)")
	event := fs.String("event", "", "Filter by event type")
	notifier := fs.String("notifier", "", "Filter by notifier (node, list, map, other)")
	errorsOnly := fs.Bool("errors", false, "Keep only events with an observer failure")
	level := levelFlag(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	logger := newLogger(*level)
	path := requirePath(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.FilterOptions{
		Output:     *output,
		SessionID:  *sessionID,
		NodeID:     *nodeID,
		NodeType:   *nodeType,
		Feature:    *feature,
		TimeStart:  *timeStart,
		TimeEnd:    *timeEnd,
		EventType:  *event,
		Notifier:   *notifier,
		ErrorsOnly: *errorsOnly,
	}

	count, err := commands.RunFilter(path, opts, logger)
	if err != nil {
		fail(logger, "filter failed", err)
	}
	fmt.Printf("Filtered %d events to %s\n", count, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `objwatch-log stats - Show statistics about the log file

Usage:
  objwatch-log stats <file.olog>

`)
	}
	level := levelFlag(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	logger := newLogger(*level)
	path := requirePath(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(logger, "stats failed", err)
	}
}
