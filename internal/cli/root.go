package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"timetrack/internal/config"
	"timetrack/internal/tracker"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	tracker tracker.Tracker
	config  *config.Config
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(t tracker.Tracker, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		tracker: t,
		config:  cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "tt",
		Short: "A command-line time tracking application",
		Long: `Time Tracker (tt) tracks working time against projects and background
tasks as an append-only session log.

EXAMPLES:
  tt start "api rewrite"          # Start tracking a project
  tt bg "ci babysitting"          # Start tracking a background task
  tt pause "api rewrite"          # Pause without ending the session
  tt resume "api rewrite"         # Continue after a pause
  tt stop                         # Stop the most recent active session
  tt switch "code review"         # Stop everything, start something else
  tt log "standup" 15m            # Record a finished session retroactively
  tt summary --period week        # Time per project this week
  tt summary --period week --by-tag
  tt export --period month > month.csv

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > ~/.tt/config.yaml > defaults

    TT_DB_DIR          Database directory (default: ~/.tt)
    TT_DB_FILENAME     Database filename (default: tt.db)
    TT_WEEK_START      First day of the reporting week (default: monday)
    TT_CONFIG          Path to the YAML config file
    TT_DEBUG           Enable debug output

PERIODS:
  today, week, month, lastmonth, all`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides TT_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TT_DB_FILENAME)")
	flags.String("week-start", "", "First day of the reporting week (overrides TT_WEEK_START)")
	flags.String("time-format", "", "Time display format (overrides TT_TIME_DISPLAY_FORMAT)")
	flags.Bool("date-only", false, "Show date only in displays (overrides TT_DISPLAY_DATE_ONLY)")
	flags.Duration("app-timeout", 0, "Application timeout (overrides TT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TT_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	startCmd := &cobra.Command{
		Use:   "start [name]",
		Short: "Start tracking a project",
		Long:  "Start a session for the named project, creating the project on first use. Other projects keep running; starting the same project twice is an error.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewStartCommand(r.tracker).Execute(ctx, args)
		},
	}

	bgCmd := &cobra.Command{
		Use:   "bg [name]",
		Short: "Start tracking a background task",
		Long:  "Start a session for the named background task, creating it on first use. Background tasks are reported separately from projects.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewBackgroundCommand(r.tracker).Execute(ctx, args)
		},
	}

	pauseCmd := &cobra.Command{
		Use:   "pause [name]",
		Short: "Pause a running session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewPauseCommand(r.tracker).Execute(ctx, args)
		},
	}

	resumeCmd := &cobra.Command{
		Use:   "resume [name]",
		Short: "Resume a paused session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewResumeCommand(r.tracker).Execute(ctx, args)
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop [name]",
		Short: "Stop an active session",
		Long:  "Stop the named entity's active session. Without a name, stops the most recently started active session.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			handler := NewStopCommand(r.tracker)
			notes, _ := cmd.Flags().GetString("notes")
			handler.SetNotes(notes)
			return handler.Execute(ctx, args)
		},
	}
	stopCmd.Flags().String("notes", "", "Notes to record on the stopped session")

	stopallCmd := &cobra.Command{
		Use:   "stopall",
		Short: "Stop every active session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			handler := NewStopAllCommand(r.tracker)
			notes, _ := cmd.Flags().GetString("notes")
			handler.SetNotes(notes)
			return handler.Execute(ctx, args)
		},
	}
	stopallCmd.Flags().String("notes", "", "Notes to record on the stopped sessions")

	switchCmd := &cobra.Command{
		Use:   "switch [name]",
		Short: "Stop everything and start the named project",
		Long:  "Stop every active session and start the named project in one atomic operation.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewSwitchCommand(r.tracker).Execute(ctx, args)
		},
	}

	cancelCmd := &cobra.Command{
		Use:   "cancel [name]",
		Short: "Discard an active session",
		Long:  "Discard the entity's active session as if it never happened. Nothing is recorded. Without a name, discards the most recently started active session.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewCancelCommand(r.tracker).Execute(ctx, args)
		},
	}

	logCmd := &cobra.Command{
		Use:   "log [name] [duration]",
		Short: "Record a finished session retroactively",
		Long: `Record a completed session without starting a live one.

Durations: 1h30m, 2h, 45m, or a bare number of minutes.
With --end, the session ends at the given time instead of now. A bare date
means 17:00 local that day.

Examples:
  tt log "standup" 15m
  tt log "api rewrite" 1h30m --end "2026-08-27 16:00"
  tt log "support rota" 2h --end 2026-08-26 --notes "pager duty"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			handler := NewLogCommand(r.tracker)
			notes, _ := cmd.Flags().GetString("notes")
			end, _ := cmd.Flags().GetString("end")
			handler.SetNotes(notes)
			handler.SetEnd(end)
			return handler.Execute(ctx, args)
		},
	}
	logCmd.Flags().String("notes", "", "Notes to record on the session")
	logCmd.Flags().String("end", "", "When the session ended (default: now)")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show active sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewStatusCommand(r.tracker).Execute(ctx, args)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions in a period",
		Long:  "List sessions overlapping the reporting period, most recent first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			handler := NewListCommand(r.tracker)
			period, _ := cmd.Flags().GetString("period")
			limit, _ := cmd.Flags().GetInt("limit")
			handler.SetPeriod(period)
			handler.SetLimit(limit)
			return handler.Execute(ctx, args)
		},
	}
	listCmd.Flags().String("period", "today", "Reporting period: today, week, month, lastmonth, all")
	listCmd.Flags().Int("limit", 0, "Maximum number of sessions to list (0 = no limit)")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize time per entity, tag, or day",
		Long: `Summarize active time for a reporting period.

The default view totals per entity, projects ordered by priority then name,
background tasks listed separately. --by-tag fans totals out to tags
(entities without tags collect under Untagged). --by-day buckets per
calendar day.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			handler := NewSummaryCommand(r.tracker)
			period, _ := cmd.Flags().GetString("period")
			byTag, _ := cmd.Flags().GetBool("by-tag")
			byDay, _ := cmd.Flags().GetBool("by-day")
			handler.SetPeriod(period)
			handler.SetByTag(byTag)
			handler.SetByDay(byDay)
			return handler.Execute(ctx, args)
		},
	}
	summaryCmd.Flags().String("period", "today", "Reporting period: today, week, month, lastmonth, all")
	summaryCmd.Flags().Bool("by-tag", false, "Group totals by tag")
	summaryCmd.Flags().Bool("by-day", false, "Group totals by calendar day")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export sessions as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			handler := NewExportCommand(r.tracker)
			period, _ := cmd.Flags().GetString("period")
			handler.SetPeriod(period)
			return handler.Execute(ctx, args)
		},
	}
	exportCmd.Flags().String("period", "all", "Reporting period: today, week, month, lastmonth, all")

	deleteCmd := &cobra.Command{
		Use:   "delete [session-id]",
		Short: "Delete a recorded session",
		Long:  "Delete a recorded session by ID. Use list to find session IDs; pair with log to correct mistakes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewDeleteCommand(r.tracker).Execute(ctx, args)
		},
	}

	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "List all entities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewProjectsCommand(r.tracker).Execute(ctx, args)
		},
	}

	priorityCmd := &cobra.Command{
		Use:   "priority [name] [1-5]",
		Short: "Set an entity's priority",
		Long:  "Set an entity's priority from 1 (highest) to 5 (lowest). Summaries order by priority, then name.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewPriorityCommand(r.tracker).Execute(ctx, args)
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename [name] [new-name]",
		Short: "Rename an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewRenameCommand(r.tracker).Execute(ctx, args)
		},
	}

	tagCmd := &cobra.Command{
		Use:   "tag [name] [tag]",
		Short: "Attach a tag to an entity",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewTagCommand(r.tracker).Execute(ctx, args)
		},
	}

	untagCmd := &cobra.Command{
		Use:   "untag [name] [tag]",
		Short: "Detach a tag from an entity",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewUntagCommand(r.tracker).Execute(ctx, args)
		},
	}

	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "List all tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewTagsCommand(r.tracker).Execute(ctx, args)
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove [name]",
		Short: "Delete an entity",
		Long:  "Delete an entity from the catalog. Refused while recorded sessions exist unless --cascade is given.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			handler := NewRemoveCommand(r.tracker)
			cascade, _ := cmd.Flags().GetBool("cascade")
			handler.SetCascade(cascade)
			return handler.Execute(ctx, args)
		},
	}
	removeCmd.Flags().Bool("cascade", false, "Also delete the entity's recorded sessions")

	r.cmd.AddCommand(
		startCmd,
		bgCmd,
		pauseCmd,
		resumeCmd,
		stopCmd,
		stopallCmd,
		switchCmd,
		cancelCmd,
		logCmd,
		statusCmd,
		listCmd,
		summaryCmd,
		exportCmd,
		deleteCmd,
		projectsCmd,
		priorityCmd,
		renameCmd,
		tagCmd,
		untagCmd,
		tagsCmd,
		removeCmd,
	)
}

// commandContext returns a context bounded by the configured app timeout.
func (r *RootCommand) commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.getAppTimeout())
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	if dbDir, _ := flags.GetString("db-dir"); dbDir != "" {
		r.config.Database.Dir = dbDir
	}
	if dbFilename, _ := flags.GetString("db-filename"); dbFilename != "" {
		r.config.Database.Filename = dbFilename
	}
	if weekStart, _ := flags.GetString("week-start"); weekStart != "" {
		r.config.Summary.WeekStart = weekStart
	}
	if timeFormat, _ := flags.GetString("time-format"); timeFormat != "" {
		r.config.Display.TimeFormat = timeFormat
	}
	if dateOnly, _ := flags.GetBool("date-only"); dateOnly {
		r.config.Display.DateOnly = dateOnly
	}
	if appTimeout, _ := flags.GetDuration("app-timeout"); appTimeout > 0 {
		r.config.Application.Timeout = appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}

	return r.config.Validate()
}
