package cli

import (
	"context"
	"fmt"
	"strings"

	"timetrack/internal/domain"
	"timetrack/internal/errors"
	"timetrack/internal/tracker"
)

// LogCommand handles the log command for retroactive sessions
type LogCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
	notes        string
	end          string
}

// NewLogCommand creates a new log command handler
func NewLogCommand(t tracker.Tracker) *LogCommand {
	return &LogCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
	}
}

// SetNotes attaches notes to the logged session
func (c *LogCommand) SetNotes(notes string) {
	c.notes = notes
}

// SetEnd sets when the logged session ended. Empty means now; a bare date
// means 17:00 local that day.
func (c *LogCommand) SetEnd(end string) {
	c.end = end
}

// Execute runs the log command: tt log <name> <duration>
func (c *LogCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewValidationError("usage: tt log <name> <duration>", nil)
	}
	durationText := args[len(args)-1]
	name := strings.Join(args[:len(args)-1], " ")

	status, err := c.tracker.Log(ctx, name, durationText, c.notes, c.end)
	if err != nil {
		return c.errorHandler.Handle("log session", err)
	}

	fmt.Printf("Logged: %s (%s, ended %s)\n",
		status.Entity.Name,
		domain.FormatDuration(status.Elapsed),
		formatLocal(*status.Session.EndTime(), "2006-01-02 15:04"))
	return nil
}
