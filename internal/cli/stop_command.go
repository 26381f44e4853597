package cli

import (
	"context"
	"fmt"
	"strings"

	"timetrack/internal/domain"
	"timetrack/internal/tracker"
)

// StopCommand handles the stop and stopall commands
type StopCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
	all          bool
	notes        string
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(t tracker.Tracker) *StopCommand {
	return &StopCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
	}
}

// NewStopAllCommand creates a handler that stops every active session
func NewStopAllCommand(t tracker.Tracker) *StopCommand {
	return &StopCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
		all:          true,
	}
}

// SetNotes attaches notes to the stop events this command writes
func (c *StopCommand) SetNotes(notes string) {
	c.notes = notes
}

// Execute runs the stop command. Without a name it stops the most recently
// started active session.
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	if c.all {
		stopped, err := c.tracker.StopAll(ctx, c.notes)
		if err != nil {
			return c.errorHandler.Handle("stop sessions", err)
		}
		if len(stopped) == 0 {
			fmt.Println("No active sessions")
			return nil
		}
		for _, status := range stopped {
			fmt.Printf("Stopped: %s (%s)\n", status.Entity.Name, domain.FormatDuration(status.Elapsed))
		}
		return nil
	}

	name := strings.Join(args, " ")
	status, err := c.tracker.Stop(ctx, name, c.notes)
	if err != nil {
		return c.errorHandler.Handle("stop session", err)
	}
	fmt.Printf("Stopped: %s (%s)\n", status.Entity.Name, domain.FormatDuration(status.Elapsed))
	return nil
}
