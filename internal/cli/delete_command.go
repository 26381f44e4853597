package cli

import (
	"context"
	"fmt"

	"timetrack/internal/errors"
	"timetrack/internal/tracker"
)

// DeleteCommand handles the delete command for recorded sessions. Together
// with log this forms the correction path: delete the bad session, log the
// right one.
type DeleteCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(t tracker.Tracker) *DeleteCommand {
	return &DeleteCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the delete command: tt delete <session-id>
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewValidationError("usage: tt delete <session-id>", nil)
	}

	if err := c.tracker.DeleteSession(ctx, args[0]); err != nil {
		return c.errorHandler.Handle("delete session", err)
	}
	fmt.Printf("Deleted session %s\n", args[0])
	return nil
}
