package cli

import (
	"context"
	"fmt"

	"timetrack/internal/domain"
	"timetrack/internal/tracker"
)

// ListCommand handles the list command for session history
type ListCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
	period       string
	limit        int
}

// NewListCommand creates a new list command handler
func NewListCommand(t tracker.Tracker) *ListCommand {
	return &ListCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
		period:       string(domain.PeriodToday),
	}
}

// SetPeriod sets the reporting period
func (c *ListCommand) SetPeriod(period string) {
	c.period = period
}

// SetLimit caps the number of sessions listed
func (c *ListCommand) SetLimit(limit int) {
	c.limit = limit
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	period, err := domain.ParsePeriod(c.period)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	details, err := c.tracker.ListSessions(ctx, period, c.limit)
	if err != nil {
		return c.errorHandler.Handle("list sessions", err)
	}

	if len(details) == 0 {
		fmt.Printf("No sessions in period %s\n", period)
		return nil
	}

	for _, d := range details {
		end := "running"
		if d.Session.Status == domain.StatusPaused {
			end = "paused"
		} else if d.End != nil {
			end = formatLocal(*d.End, "15:04")
		}
		line := fmt.Sprintf("%s  %s - %s  %s  %s",
			formatLocal(d.Start, "2006-01-02"),
			formatLocal(d.Start, "15:04"),
			end,
			domain.FormatDuration(d.Active),
			d.Entity.Name)
		if d.Session.Notes != "" {
			line += "  # " + d.Session.Notes
		}
		fmt.Println(line)
	}
	return nil
}
