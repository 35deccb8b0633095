package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskforge/taskforge-api/internal/api"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/service"
	"github.com/taskforge/taskforge-api/internal/service/auth"
	"github.com/taskforge/taskforge-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"not assignee", service.ErrNotTaskAssignee, http.StatusForbidden},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"attachment not found", service.ErrAttachmentNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"assignee not employee", service.ErrAssigneeNotEmployee, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("lookup: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, api.MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("internal details never surface", func(t *testing.T) {
		t.Parallel()

		internal := errors.New("dial tcp 10.0.0.5:5432: connection refused")
		assert.Equal(t, "An unexpected error occurred", api.GetSafeErrorMessage(internal))
	})

	t.Run("known errors map to friendly text", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Invalid credentials", api.GetSafeErrorMessage(auth.ErrInvalidCredentials))
		assert.Equal(t, "Task not found", api.GetSafeErrorMessage(store.ErrTaskNotFound))
		assert.Equal(t, "Email already exists", api.GetSafeErrorMessage(store.ErrEmailExists))
		assert.Equal(t, "Task is not assigned to you", api.GetSafeErrorMessage(service.ErrNotTaskAssignee))
	})
}
