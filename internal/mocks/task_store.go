package mocks

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn          func(ctx context.Context, task *domain.Task) error
	GetByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListFn            func(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)
	UpdateFn          func(ctx context.Context, task *domain.Task) error
	SaveAttachmentsFn func(ctx context.Context, id uuid.UUID, attachments []domain.Attachment) error
	DeleteFn          func(ctx context.Context, id uuid.UUID) error

	// Data for the default implementations
	Tasks map[uuid.UUID]*domain.Task
}

// NewMockTaskStore creates a new mock store with initialized defaults.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// AddTask stores a task for the default implementations to find.
func (m *MockTaskStore) AddTask(task *domain.Task) {
	m.Tasks[task.ID] = task
}

// Create implements the TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.Tasks[task.ID] = task
	return nil
}

// GetByID implements the TaskStore interface.
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// List implements the TaskStore interface, newest-created-first.
func (m *MockTaskStore) List(
	ctx context.Context,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	var tasks []*domain.Task
	for _, task := range m.Tasks {
		if filter.AssignedTo != nil {
			if task.AssignedTo == nil || *task.AssignedTo != *filter.AssignedTo {
				continue
			}
		}
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// Update implements the TaskStore interface.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if _, exists := m.Tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}
	m.Tasks[task.ID] = task
	return nil
}

// SaveAttachments implements the TaskStore interface.
func (m *MockTaskStore) SaveAttachments(
	ctx context.Context,
	id uuid.UUID,
	attachments []domain.Attachment,
) error {
	if m.SaveAttachmentsFn != nil {
		return m.SaveAttachmentsFn(ctx, id, attachments)
	}

	task, exists := m.Tasks[id]
	if !exists {
		return store.ErrTaskNotFound
	}
	task.Attachments = attachments
	return nil
}

// Delete implements the TaskStore interface.
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

var _ store.TaskStore = (*MockTaskStore)(nil)
