package format

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"notesflow-cli/internal/model"
)

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - table (only for note/task/stats values; other values fall back to json)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "table":
		return writeTable(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
//
// NOTE: We intentionally keep output strict JSON only. If you need to
// communicate how to fetch more data, use a `meta` object or `_hint` fields.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

func writeTable(w io.Writer, v any, pretty bool) error {
	switch t := v.(type) {
	case []model.Note:
		return writeNotesTable(w, t)
	case []model.Task:
		return writeTasksTable(w, t)
	case model.TaskStats:
		return writeStatsTable(w, t)
	default:
		return WriteJSON(w, v, pretty)
	}
}

func writeNotesTable(w io.Writer, notes []model.Note) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPIN\tTITLE\tUPDATED")
	now := time.Now()
	for _, n := range notes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			n.ID, pinMark(n.IsPinned), model.Truncate(n.Title, 40), model.RelativeTime(n.UpdatedAt, now))
	}
	return tw.Flush()
}

func writeTasksTable(w io.Writer, tasks []model.Task) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPIN\tTITLE\tSTATUS\tPRIORITY\tUPDATED")
	now := time.Now()
	for _, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, pinMark(t.IsPinned), model.Truncate(t.Title, 40), t.Status.Label(), t.Priority, model.RelativeTime(t.UpdatedAt, now))
	}
	return tw.Flush()
}

func writeStatsTable(w io.Writer, s model.TaskStats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tCOUNT")
	fmt.Fprintf(tw, "Pending\t%d\n", s.Pending)
	fmt.Fprintf(tw, "In Progress\t%d\n", s.InProgress)
	fmt.Fprintf(tw, "Completed\t%d\n", s.Completed)
	fmt.Fprintf(tw, "Total\t%d\n", s.Total())
	return tw.Flush()
}

func pinMark(pinned bool) string {
	if pinned {
		return "*"
	}
	return ""
}
