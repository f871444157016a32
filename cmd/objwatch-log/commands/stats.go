package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mash-protocol/objwatch/pkg/log"
	"github.com/mash-protocol/objwatch/pkg/model"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByType     map[model.EventType]int
	EventsByNotifier map[log.NotifierKind]int
	EventsByNodeType map[string]int
	Nodes            map[string]*NodeStats
	Sessions         map[string]int
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// NodeStats holds statistics for a single node.
type NodeStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	NodeType  string
	Features  map[string]int
}

// collectStats reads every event from r.
func collectStats(reader *log.Reader) (*Stats, error) {
	stats := &Stats{
		EventsByType:     make(map[model.EventType]int),
		EventsByNotifier: make(map[log.NotifierKind]int),
		EventsByNodeType: make(map[string]int),
		Nodes:            make(map[string]*NodeStats),
		Sessions:         make(map[string]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByType[event.EventType]++
		stats.EventsByNotifier[event.Notifier]++
		if event.NodeType != "" {
			stats.EventsByNodeType[event.NodeType]++
		}
		if event.SessionID != "" {
			stats.Sessions[event.SessionID]++
		}

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		if event.NodeID != "" {
			node, ok := stats.Nodes[event.NodeID]
			if !ok {
				node = &NodeStats{
					FirstSeen: event.Timestamp,
					LastSeen:  event.Timestamp,
					NodeType:  event.NodeType,
					Features:  make(map[string]int),
				}
				stats.Nodes[event.NodeID] = node
			}
			node.Events++
			if event.Timestamp.After(node.LastSeen) {
				node.LastSeen = event.Timestamp
			}
			if event.Feature != "" {
				node.Features[event.Feature]++
			}
		}

		if event.Error != nil {
			stats.Errors++
		}
	}
	return stats, nil
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats, err := collectStats(reader)
	if err != nil {
		return err
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Change Log Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Sessions:     %d\n", len(stats.Sessions))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Type:")
	for _, et := range model.AllEventTypes.Types() {
		if count := stats.EventsByType[et]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", et.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Notifier:")
	for _, k := range []log.NotifierKind{log.NotifierNode, log.NotifierList, log.NotifierMap, log.NotifierOther} {
		if count := stats.EventsByNotifier[k]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", k.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.EventsByNodeType) > 0 {
		fmt.Fprintln(w, "Events by Node Type:")
		names := make([]string, 0, len(stats.EventsByNodeType))
		for name := range stats.EventsByNodeType {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %-14s %d\n", name+":", stats.EventsByNodeType[name])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Nodes: %d\n", len(stats.Nodes))
	if len(stats.Nodes) > 0 {
		// Sort by first seen time
		type nodeInfo struct {
			id    string
			stats *NodeStats
		}
		nodes := make([]nodeInfo, 0, len(stats.Nodes))
		for id, ns := range stats.Nodes {
			nodes = append(nodes, nodeInfo{id, ns})
		}
		sort.Slice(nodes, func(i, j int) bool {
			if nodes[i].stats.FirstSeen.Equal(nodes[j].stats.FirstSeen) {
				return nodes[i].id < nodes[j].id
			}
			return nodes[i].stats.FirstSeen.Before(nodes[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, n := range nodes {
			fmt.Fprintf(w, "  [%s] %s: %d events\n", shortenID(n.id), n.stats.NodeType, n.stats.Events)
			features := make([]string, 0, len(n.stats.Features))
			for f := range n.stats.Features {
				features = append(features, f)
			}
			sort.Strings(features)
			for _, f := range features {
				fmt.Fprintf(w, "           %s: %d\n", f, n.stats.Features[f])
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
