package cli

import (
	"context"
	"fmt"

	"timetrack/internal/domain"
	"timetrack/internal/tracker"
)

// StatusCommand handles the status command
type StatusCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(t tracker.Tracker) *StatusCommand {
	return &StatusCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	statuses, err := c.tracker.Status(ctx)
	if err != nil {
		return c.errorHandler.Handle("read status", err)
	}

	if len(statuses) == 0 {
		fmt.Println("No active sessions")
		return nil
	}

	for _, status := range statuses {
		marker := ""
		if status.Session.Status == domain.StatusPaused {
			marker = " [paused]"
		}
		fmt.Printf("%s%s: %s since %s\n",
			status.Entity.Name,
			marker,
			domain.FormatDuration(status.Elapsed),
			formatLocal(status.Session.StartTime(), "15:04"))
	}
	return nil
}
