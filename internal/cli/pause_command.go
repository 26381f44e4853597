package cli

import (
	"context"
	"fmt"
	"strings"

	"timetrack/internal/domain"
	"timetrack/internal/errors"
	"timetrack/internal/tracker"
)

// PauseCommand handles the pause and resume commands
type PauseCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
	resume       bool
}

// NewPauseCommand creates a new pause command handler
func NewPauseCommand(t tracker.Tracker) *PauseCommand {
	return &PauseCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
	}
}

// NewResumeCommand creates a new resume command handler
func NewResumeCommand(t tracker.Tracker) *PauseCommand {
	return &PauseCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
		resume:       true,
	}
}

// Execute runs the pause or resume command
func (c *PauseCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		if c.resume {
			return errors.NewValidationError("usage: tt resume <name>", nil)
		}
		return errors.NewValidationError("usage: tt pause <name>", nil)
	}
	name := strings.Join(args, " ")

	if c.resume {
		status, err := c.tracker.Resume(ctx, name)
		if err != nil {
			return c.errorHandler.Handle("resume session", err)
		}
		fmt.Printf("Resumed: %s (%s so far)\n", status.Entity.Name, domain.FormatDuration(status.Elapsed))
		return nil
	}

	status, err := c.tracker.Pause(ctx, name)
	if err != nil {
		return c.errorHandler.Handle("pause session", err)
	}
	fmt.Printf("Paused: %s (%s so far)\n", status.Entity.Name, domain.FormatDuration(status.Elapsed))
	return nil
}
