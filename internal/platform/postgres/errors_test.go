package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/taskforge/taskforge-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   error
		wantErr error
	}{
		{
			name:    "nil stays nil",
			input:   nil,
			wantErr: nil,
		},
		{
			name:    "no rows maps to not found",
			input:   sql.ErrNoRows,
			wantErr: store.ErrNotFound,
		},
		{
			name:    "wrapped no rows maps to not found",
			input:   fmt.Errorf("query failed: %w", sql.ErrNoRows),
			wantErr: store.ErrNotFound,
		},
		{
			name:    "unique violation maps to duplicate",
			input:   &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			wantErr: store.ErrDuplicate,
		},
		{
			name:    "foreign key violation maps to invalid entity",
			input:   &pgconn.PgError{Code: "23503", ConstraintName: "tasks_assigned_to_fkey"},
			wantErr: store.ErrInvalidEntity,
		},
		{
			name:    "check violation maps to invalid entity",
			input:   &pgconn.PgError{Code: "23514", ConstraintName: "tasks_status_check"},
			wantErr: store.ErrInvalidEntity,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tc.input)
			if tc.wantErr == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.wantErr)
		})
	}

	t.Run("unknown errors pass through", func(t *testing.T) {
		t.Parallel()

		original := errors.New("connection refused")
		assert.Equal(t, original, MapError(original))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	uniqueErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	assert.True(t, IsUniqueViolation(uniqueErr, ""))
	assert.True(t, IsUniqueViolation(uniqueErr, "users_email_key"))
	assert.False(t, IsUniqueViolation(uniqueErr, "other_constraint"))
	assert.False(t, IsUniqueViolation(errors.New("not a pg error"), ""))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))

	wrapped := fmt.Errorf("insert failed: %w", uniqueErr)
	assert.True(t, IsUniqueViolation(wrapped, "users_email_key"))
}
