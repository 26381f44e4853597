package cli

import (
	"context"
	"fmt"

	"timetrack/internal/domain"
	"timetrack/internal/tracker"
)

// SummaryCommand handles the summary command and its by-tag and by-day views
type SummaryCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
	period       string
	byTag        bool
	byDay        bool
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(t tracker.Tracker) *SummaryCommand {
	return &SummaryCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
		period:       string(domain.PeriodToday),
	}
}

// SetPeriod sets the reporting period
func (c *SummaryCommand) SetPeriod(period string) {
	c.period = period
}

// SetByTag switches to the per-tag view
func (c *SummaryCommand) SetByTag(byTag bool) {
	c.byTag = byTag
}

// SetByDay switches to the per-day view
func (c *SummaryCommand) SetByDay(byDay bool) {
	c.byDay = byDay
}

// Execute runs the summary command
func (c *SummaryCommand) Execute(ctx context.Context, args []string) error {
	period, err := domain.ParsePeriod(c.period)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	switch {
	case c.byTag:
		return c.printByTag(ctx, period)
	case c.byDay:
		return c.printByDay(ctx, period)
	default:
		return c.printByEntity(ctx, period)
	}
}

func (c *SummaryCommand) printByEntity(ctx context.Context, period domain.Period) error {
	report, err := c.tracker.Summarize(ctx, period)
	if err != nil {
		return c.errorHandler.Handle("summarize", err)
	}

	if len(report.Projects) == 0 && len(report.Background) == 0 {
		fmt.Printf("No time recorded in period %s\n", period)
		return nil
	}

	for _, row := range report.Projects {
		c.printRow(row)
	}
	if len(report.Background) > 0 {
		fmt.Println("Background:")
		for _, row := range report.Background {
			c.printRow(row)
		}
	}
	fmt.Printf("Total: %s\n", domain.FormatDuration(report.Total))
	return nil
}

func (c *SummaryCommand) printRow(row tracker.EntityTotal) {
	marker := ""
	if row.Running {
		marker = " *"
	}
	fmt.Printf("  [P%d] %-30s %s%s\n",
		row.Entity.Priority,
		row.Entity.Name,
		domain.FormatDuration(row.Total),
		marker)
}

func (c *SummaryCommand) printByTag(ctx context.Context, period domain.Period) error {
	report, err := c.tracker.SummarizeByTag(ctx, period)
	if err != nil {
		return c.errorHandler.Handle("summarize by tag", err)
	}

	if len(report.Rows) == 0 {
		fmt.Printf("No time recorded in period %s\n", period)
		return nil
	}

	for _, row := range report.Rows {
		fmt.Printf("  %-20s %s (%d entities)\n", row.Tag, domain.FormatDuration(row.Total), row.Entities)
	}
	fmt.Printf("Total: %s\n", domain.FormatDuration(report.Total))
	return nil
}

func (c *SummaryCommand) printByDay(ctx context.Context, period domain.Period) error {
	report, err := c.tracker.SummarizeByDay(ctx, period)
	if err != nil {
		return c.errorHandler.Handle("summarize by day", err)
	}

	if len(report.Rows) == 0 {
		fmt.Printf("No time recorded in period %s\n", period)
		return nil
	}

	for _, row := range report.Rows {
		fmt.Printf("  %s %s  %s\n",
			row.Day.Format("2006-01-02"),
			row.Day.Format("Mon"),
			domain.FormatDuration(row.Total))
	}
	fmt.Printf("Total: %s\n", domain.FormatDuration(report.Total))
	return nil
}
