package cli

import (
	"context"
	"fmt"
	"strings"

	"timetrack/internal/domain"
	"timetrack/internal/errors"
	"timetrack/internal/tracker"
)

// SwitchCommand handles the switch command
type SwitchCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
}

// NewSwitchCommand creates a new switch command handler
func NewSwitchCommand(t tracker.Tracker) *SwitchCommand {
	return &SwitchCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the switch command
func (c *SwitchCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewValidationError("usage: tt switch <name>", nil)
	}
	name := strings.Join(args, " ")

	result, err := c.tracker.Switch(ctx, name)
	if err != nil {
		return c.errorHandler.Handle("switch session", err)
	}

	for _, status := range result.Stopped {
		fmt.Printf("Stopped: %s (%s)\n", status.Entity.Name, domain.FormatDuration(status.Elapsed))
	}
	fmt.Printf("Started: %s\n", result.Started.Entity.Name)
	return nil
}
