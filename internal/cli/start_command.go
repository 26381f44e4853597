package cli

import (
	"context"
	"fmt"
	"strings"

	"timetrack/internal/errors"
	"timetrack/internal/tracker"
)

// StartCommand handles the start and bg commands
type StartCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
	background   bool
}

// NewStartCommand creates a new start command handler
func NewStartCommand(t tracker.Tracker) *StartCommand {
	return &StartCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
	}
}

// NewBackgroundCommand creates a start handler for background tasks
func NewBackgroundCommand(t tracker.Tracker) *StartCommand {
	return &StartCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
		background:   true,
	}
}

// Execute runs the start command
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewValidationError("usage: tt start <name>", nil)
	}
	name := strings.Join(args, " ")

	var status *tracker.SessionStatus
	var err error
	if c.background {
		status, err = c.tracker.StartBackground(ctx, name)
	} else {
		status, err = c.tracker.Start(ctx, name)
	}
	if err != nil {
		return c.errorHandler.Handle("start session", err)
	}

	if c.background {
		fmt.Printf("Started background task: %s\n", status.Entity.Name)
	} else {
		fmt.Printf("Started: %s\n", status.Entity.Name)
	}
	return nil
}
