package tracker

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"timetrack/internal/domain"
)

// ExportCSV writes the period's sessions as CSV, one row per session,
// oldest first. Open sessions have an empty end column.
func (t *trackerImpl) ExportCSV(ctx context.Context, period domain.Period, w io.Writer) error {
	details, err := t.ListSessions(ctx, period, 0)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	header := []string{"session_id", "entity", "kind", "priority", "tags", "status", "start", "end", "active_seconds", "notes"}
	if err := writer.Write(header); err != nil {
		return err
	}

	// ListSessions is most recent first; export reads better oldest first.
	for i := len(details) - 1; i >= 0; i-- {
		d := details[i]
		end := ""
		if d.End != nil {
			end = d.End.Format(time.RFC3339)
		}
		record := []string{
			d.Session.ID,
			d.Entity.Name,
			string(d.Entity.Kind),
			fmt.Sprintf("%d", d.Entity.Priority),
			joinTags(d.Entity.Tags),
			string(d.Session.Status),
			d.Start.Format(time.RFC3339),
			end,
			fmt.Sprintf("%d", int(d.Active.Seconds())),
			d.Session.Notes,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func joinTags(tags []string) string {
	out := ""
	for i, tag := range tags {
		if i > 0 {
			out += ";"
		}
		out += tag
	}
	return out
}
