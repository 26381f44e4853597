package sqlite

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetrack/internal/errors"
)

type mockResult struct {
	lastInsertID int64
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return m.lastInsertID, m.err }
func (m mockResult) RowsAffected() (int64, error) { return m.rowsAffected, m.err }

func TestHandleDatabaseError(t *testing.T) {
	cause := stderrors.New("disk I/O error")
	err := HandleDatabaseError("append event", cause)

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, cause, appErr.Cause)
}

func TestValidateRowsAffected(t *testing.T) {
	t.Run("rows affected", func(t *testing.T) {
		err := ValidateRowsAffected(mockResult{rowsAffected: 1}, "entity", "1")
		assert.NoError(t, err)
	})

	t.Run("no rows means not found", func(t *testing.T) {
		err := ValidateRowsAffected(mockResult{rowsAffected: 0}, "entity", "42")
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})

	t.Run("result error", func(t *testing.T) {
		err := ValidateRowsAffected(mockResult{err: stderrors.New("boom")}, "entity", "1")
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
	})
}

func TestIsBusy_NonSQLiteError(t *testing.T) {
	assert.False(t, isBusy(stderrors.New("plain error")))
	assert.False(t, isBusy(nil))
}
