package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetrack/internal/domain"
	"timetrack/internal/errors"
	"timetrack/internal/tracker"
)

var _ tracker.Tracker = (*mockTracker)(nil)

func TestStartCommand(t *testing.T) {
	mock := newMockTracker()
	cmd := NewStartCommand(mock)
	ctx := context.Background()

	t.Run("requires a name", func(t *testing.T) {
		err := cmd.Execute(ctx, nil)
		require.Error(t, err)
	})

	t.Run("starts a session", func(t *testing.T) {
		require.NoError(t, cmd.Execute(ctx, []string{"api", "rewrite"}))

		status, ok := mock.active["api rewrite"]
		require.True(t, ok, "multi-word args join into one name")
		assert.Equal(t, domain.KindProject, status.Entity.Kind)
	})

	t.Run("second start conflicts", func(t *testing.T) {
		err := cmd.Execute(ctx, []string{"api", "rewrite"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already has an active session")
	})
}

func TestBackgroundCommand(t *testing.T) {
	mock := newMockTracker()
	cmd := NewBackgroundCommand(mock)

	require.NoError(t, cmd.Execute(context.Background(), []string{"meetings"}))
	assert.Equal(t, domain.KindBackgroundTask, mock.active["meetings"].Entity.Kind)
}

func TestPauseAndResumeCommands(t *testing.T) {
	mock := newMockTracker()
	ctx := context.Background()
	_, err := mock.Start(ctx, "api rewrite")
	require.NoError(t, err)

	pause := NewPauseCommand(mock)
	resume := NewResumeCommand(mock)

	require.NoError(t, pause.Execute(ctx, []string{"api rewrite"}))
	assert.Equal(t, domain.StatusPaused, mock.active["api rewrite"].Session.Status)

	err = pause.Execute(ctx, []string{"api rewrite"})
	require.Error(t, err, "pausing a paused session is an invalid transition")

	require.NoError(t, resume.Execute(ctx, []string{"api rewrite"}))
	assert.Equal(t, domain.StatusRunning, mock.active["api rewrite"].Session.Status)
}

func TestStopCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("stops named session with notes", func(t *testing.T) {
		mock := newMockTracker()
		_, err := mock.Start(ctx, "api rewrite")
		require.NoError(t, err)

		cmd := NewStopCommand(mock)
		cmd.SetNotes("shipped the parser")
		require.NoError(t, cmd.Execute(ctx, []string{"api", "rewrite"}))
		assert.Empty(t, mock.active)
	})

	t.Run("no name stops most recent", func(t *testing.T) {
		mock := newMockTracker()
		_, err := mock.Start(ctx, "older")
		require.NoError(t, err)
		_, err = mock.Start(ctx, "newer")
		require.NoError(t, err)

		require.NoError(t, NewStopCommand(mock).Execute(ctx, nil))
		_, olderStillActive := mock.active["older"]
		assert.True(t, olderStillActive)
		_, newerActive := mock.active["newer"]
		assert.False(t, newerActive)
	})

	t.Run("nothing active is an error", func(t *testing.T) {
		err := NewStopCommand(newMockTracker()).Execute(ctx, nil)
		require.Error(t, err)
	})

	t.Run("stopall drains every session", func(t *testing.T) {
		mock := newMockTracker()
		_, err := mock.Start(ctx, "one")
		require.NoError(t, err)
		_, err = mock.Start(ctx, "two")
		require.NoError(t, err)

		require.NoError(t, NewStopAllCommand(mock).Execute(ctx, nil))
		assert.Empty(t, mock.active)
	})
}

func TestSwitchCommand(t *testing.T) {
	mock := newMockTracker()
	ctx := context.Background()
	_, err := mock.Start(ctx, "old work")
	require.NoError(t, err)

	cmd := NewSwitchCommand(mock)
	require.NoError(t, cmd.Execute(ctx, []string{"new", "work"}))

	_, oldActive := mock.active["old work"]
	assert.False(t, oldActive)
	_, newActive := mock.active["new work"]
	assert.True(t, newActive)

	err = cmd.Execute(ctx, []string{"new", "work"})
	require.Error(t, err, "switching to the already-active entity conflicts")
}

func TestCancelCommand(t *testing.T) {
	mock := newMockTracker()
	ctx := context.Background()
	_, err := mock.Start(ctx, "api rewrite")
	require.NoError(t, err)

	require.NoError(t, NewCancelCommand(mock).Execute(ctx, []string{"api", "rewrite"}))
	assert.Empty(t, mock.active)

	err = NewCancelCommand(mock).Execute(ctx, []string{"api", "rewrite"})
	require.Error(t, err)
}

func TestCancelCommand_NoArgsCancelsMostRecent(t *testing.T) {
	mock := newMockTracker()
	ctx := context.Background()
	_, err := mock.Start(ctx, "older")
	require.NoError(t, err)
	_, err = mock.Start(ctx, "newer")
	require.NoError(t, err)

	require.NoError(t, NewCancelCommand(mock).Execute(ctx, nil))
	assert.Contains(t, mock.active, "older")
	assert.NotContains(t, mock.active, "newer")

	require.NoError(t, NewCancelCommand(mock).Execute(ctx, nil))
	assert.Empty(t, mock.active)

	err = NewCancelCommand(mock).Execute(ctx, nil)
	require.Error(t, err)
}

func TestLogCommand(t *testing.T) {
	mock := newMockTracker()
	ctx := context.Background()
	cmd := NewLogCommand(mock)
	cmd.SetNotes("retro entry")

	t.Run("requires name and duration", func(t *testing.T) {
		err := cmd.Execute(ctx, []string{"api rewrite"})
		require.Error(t, err)
	})

	t.Run("logs a closed session", func(t *testing.T) {
		require.NoError(t, cmd.Execute(ctx, []string{"api", "rewrite", "1h30m"}))

		require.Len(t, mock.logged, 1)
		logged := mock.logged[0]
		assert.Equal(t, "api rewrite", logged.Entity.Name)
		assert.Equal(t, domain.StatusStopped, logged.Session.Status)
		assert.Equal(t, "retro entry", logged.Session.Notes)
	})

	t.Run("bad duration is rejected", func(t *testing.T) {
		err := cmd.Execute(ctx, []string{"api rewrite", "90x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to log session")
	})
}

func TestDeleteCommand(t *testing.T) {
	mock := newMockTracker()
	cmd := NewDeleteCommand(mock)
	ctx := context.Background()

	require.Error(t, cmd.Execute(ctx, nil))

	require.NoError(t, cmd.Execute(ctx, []string{"session-1"}))
	assert.Equal(t, []string{"session-1"}, mock.deleted)
}

func TestPriorityCommand(t *testing.T) {
	mock := newMockTracker()
	mock.getOrCreate("api rewrite", domain.KindProject)
	cmd := NewPriorityCommand(mock)
	ctx := context.Background()

	require.NoError(t, cmd.Execute(ctx, []string{"api", "rewrite", "1"}))
	assert.Equal(t, 1, mock.entities["api rewrite"].Priority)

	require.Error(t, cmd.Execute(ctx, []string{"api rewrite"}), "priority argument required")
	require.Error(t, cmd.Execute(ctx, []string{"api rewrite", "high"}), "priority must be numeric")
}

func TestRenameCommand(t *testing.T) {
	mock := newMockTracker()
	mock.getOrCreate("old name", domain.KindProject)
	cmd := NewRenameCommand(mock)
	ctx := context.Background()

	require.Error(t, cmd.Execute(ctx, []string{"only-one"}))

	require.NoError(t, cmd.Execute(ctx, []string{"old name", "new name"}))
	_, exists := mock.entities["new name"]
	assert.True(t, exists)
	_, gone := mock.entities["old name"]
	assert.False(t, gone)
}

func TestTagCommands(t *testing.T) {
	mock := newMockTracker()
	mock.getOrCreate("api rewrite", domain.KindProject)
	ctx := context.Background()

	tag := NewTagCommand(mock)
	untag := NewUntagCommand(mock)

	require.NoError(t, tag.Execute(ctx, []string{"api", "rewrite", "backend"}))
	assert.True(t, mock.entities["api rewrite"].HasTag("backend"))

	// Tagging twice is not an error, just a no-op.
	require.NoError(t, tag.Execute(ctx, []string{"api", "rewrite", "backend"}))

	require.NoError(t, untag.Execute(ctx, []string{"api", "rewrite", "backend"}))
	assert.False(t, mock.entities["api rewrite"].HasTag("backend"))

	err := tag.Execute(ctx, []string{"missing", "backend"})
	require.Error(t, err)
}

func TestRemoveCommand(t *testing.T) {
	mock := newMockTracker()
	mock.getOrCreate("api rewrite", domain.KindProject)
	cmd := NewRemoveCommand(mock)
	cmd.SetCascade(true)
	ctx := context.Background()

	require.NoError(t, cmd.Execute(ctx, []string{"api", "rewrite"}))
	assert.Empty(t, mock.entities)

	require.Error(t, cmd.Execute(ctx, []string{"api", "rewrite"}))
}

func TestExportCommand(t *testing.T) {
	mock := newMockTracker()
	cmd := NewExportCommand(mock)

	var buf bytes.Buffer
	cmd.SetOutput(&buf)
	cmd.SetPeriod("all")

	require.NoError(t, cmd.Execute(context.Background(), nil))
	assert.True(t, strings.HasPrefix(buf.String(), "session_id,entity"))
}

func TestSummaryCommand_BadPeriod(t *testing.T) {
	mock := newMockTracker()
	cmd := NewSummaryCommand(mock)
	cmd.SetPeriod("fortnight")

	err := cmd.Execute(context.Background(), nil)
	require.Error(t, err)
}

func TestCommands_SurfaceEngineErrors(t *testing.T) {
	mock := newMockTracker()
	mock.failWith = errors.NewDatabaseError("read events", nil)
	ctx := context.Background()

	assert.Error(t, NewStartCommand(mock).Execute(ctx, []string{"x"}))
	assert.Error(t, NewStatusCommand(mock).Execute(ctx, nil))
	assert.Error(t, NewListCommand(mock).Execute(ctx, nil))
	assert.Error(t, NewSummaryCommand(mock).Execute(ctx, nil))
	assert.Error(t, NewProjectsCommand(mock).Execute(ctx, nil))
	assert.Error(t, NewTagsCommand(mock).Execute(ctx, nil))
}
