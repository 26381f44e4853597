package cli

import (
	"context"
	"fmt"
	"strings"

	"timetrack/internal/domain"
	"timetrack/internal/tracker"
)

// CancelCommand handles the cancel command
type CancelCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
}

// NewCancelCommand creates a new cancel command handler
func NewCancelCommand(t tracker.Tracker) *CancelCommand {
	return &CancelCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the cancel command. Without a name it discards the most
// recently started active session.
func (c *CancelCommand) Execute(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")

	status, err := c.tracker.Cancel(ctx, name)
	if err != nil {
		return c.errorHandler.Handle("cancel session", err)
	}

	fmt.Printf("Cancelled: %s (%s discarded)\n", status.Entity.Name, domain.FormatDuration(status.Elapsed))
	return nil
}
