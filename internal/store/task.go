package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
)

// TaskFilter narrows a task listing. A nil AssignedTo matches all tasks.
type TaskFilter struct {
	AssignedTo *uuid.UUID
}

// TaskStore defines the interface for task data persistence. The embedded
// attachment sequence is stored with the task; concurrent read-modify-write
// cycles on it are last-writer-wins.
type TaskStore interface {
	// Create saves a new task, including its attachment sequence.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List returns tasks matching the filter, newest-created-first.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Update persists all mutable fields of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// SaveAttachments persists only the task's attachment sequence.
	// Returns ErrTaskNotFound if the task does not exist.
	SaveAttachments(ctx context.Context, id uuid.UUID, attachments []domain.Attachment) error

	// Delete removes a task and its embedded attachments from the store.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
