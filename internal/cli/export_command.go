package cli

import (
	"context"
	"io"
	"os"

	"timetrack/internal/domain"
	"timetrack/internal/tracker"
)

// ExportCommand handles the export command
type ExportCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
	period       string
	out          io.Writer
}

// NewExportCommand creates a new export command handler writing to stdout
func NewExportCommand(t tracker.Tracker) *ExportCommand {
	return &ExportCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
		period:       string(domain.PeriodAllTime),
		out:          os.Stdout,
	}
}

// SetPeriod sets the reporting period
func (c *ExportCommand) SetPeriod(period string) {
	c.period = period
}

// SetOutput redirects the CSV output, used by tests
func (c *ExportCommand) SetOutput(w io.Writer) {
	c.out = w
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	period, err := domain.ParsePeriod(c.period)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if err := c.tracker.ExportCSV(ctx, period, c.out); err != nil {
		return c.errorHandler.Handle("export sessions", err)
	}
	return nil
}
