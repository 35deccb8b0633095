package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/store"
)

// uploadsWebPrefix is the path prefix under which stored files are served.
// Attachment FilePath values are relative web paths like "uploads/<name>".
const uploadsWebPrefix = "uploads"

// FileStore abstracts the attachment binary storage.
type FileStore interface {
	// Save persists the reader's contents under a collision-resistant name
	// derived from originalName and returns the stored name.
	Save(originalName string, r io.Reader) (string, error)

	// Remove deletes a stored file. A missing file is not an error.
	Remove(name string) error
}

// CreateTaskInput carries the caller-supplied fields for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  *uuid.UUID
	Deadline    *time.Time
	Priority    domain.Priority
}

// UpdateTaskInput carries a partial task update. Nil fields keep their
// current values; a set AssignedTo is re-validated against the Employee rule.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	AssignedTo  *uuid.UUID
	Deadline    *time.Time
	Priority    *domain.Priority
	Status      *domain.Status
}

// TaskService implements the task and attachment lifecycle: creation with
// assignee validation, role-filtered listing, guarded status transitions,
// and attachment upload/list/delete against the file store.
type TaskService struct {
	tasks  store.TaskStore
	users  store.UserStore
	files  FileStore
	logger *slog.Logger
}

// NewTaskService creates a TaskService with the given dependencies.
// If logger is nil, the default logger is used.
func NewTaskService(tasks store.TaskStore, users store.UserStore, files FileStore, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		tasks:  tasks,
		users:  users,
		files:  files,
		logger: logger.With(slog.String("component", "task_service")),
	}
}

// Create validates and persists a new task. When AssignedTo is set, the
// referenced user must exist and hold the Employee role.
func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error) {
	if in.AssignedTo != nil {
		if err := s.checkAssignee(ctx, *in.AssignedTo); err != nil {
			return nil, err
		}
	}

	task, err := domain.NewTask(in.Title, in.Description, in.AssignedTo, in.Deadline, in.Priority)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// List returns tasks visible to the identity, newest-created-first, together
// with the referenced users (assignees and uploaders) for display. An
// Employee sees only tasks assigned to them; other roles see all tasks.
func (s *TaskService) List(ctx context.Context, identity domain.Identity) ([]*domain.Task, map[uuid.UUID]*domain.User, error) {
	filter := store.TaskFilter{}
	if identity.Role == domain.RoleEmployee {
		id := identity.UserID
		filter.AssignedTo = &id
	}

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	users, err := s.resolveUsers(ctx, tasks)
	if err != nil {
		return nil, nil, err
	}

	return tasks, users, nil
}

// ListAll returns every task regardless of the caller's role, with
// referenced users resolved. Backs the analytics endpoint.
func (s *TaskService) ListAll(ctx context.Context) ([]*domain.Task, map[uuid.UUID]*domain.User, error) {
	tasks, err := s.tasks.List(ctx, store.TaskFilter{})
	if err != nil {
		return nil, nil, err
	}

	users, err := s.resolveUsers(ctx, tasks)
	if err != nil {
		return nil, nil, err
	}

	return tasks, users, nil
}

// Update applies a partial update to an existing task. Fields left nil keep
// their current values.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, in UpdateTaskInput) (*domain.Task, map[uuid.UUID]*domain.User, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if in.AssignedTo != nil && !task.IsAssignedTo(*in.AssignedTo) {
		if err := s.checkAssignee(ctx, *in.AssignedTo); err != nil {
			return nil, nil, err
		}
		task.AssignedTo = in.AssignedTo
	}
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Deadline != nil {
		task.Deadline = in.Deadline
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.Status != nil {
		task.Status = *in.Status
	}

	if err := task.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, nil, err
	}

	users, err := s.resolveUsers(ctx, []*domain.Task{task})
	if err != nil {
		return nil, nil, err
	}

	return task, users, nil
}

// UpdateStatus sets a task's status on behalf of the identity. An Employee
// may only change the status of a task assigned to them. An empty status
// keeps the current value.
func (s *TaskService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, identity domain.Identity) (*domain.Task, map[uuid.UUID]*domain.User, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if identity.Role == domain.RoleEmployee && !task.IsAssignedTo(identity.UserID) {
		return nil, nil, ErrNotTaskAssignee
	}

	if status != "" {
		if !status.Valid() {
			return nil, nil, domain.NewValidationError("status", "must be one of the known statuses", domain.ErrValidation)
		}
		task.Status = status
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, nil, err
	}

	users, err := s.resolveUsers(ctx, []*domain.Task{task})
	if err != nil {
		return nil, nil, err
	}

	return task, users, nil
}

// Delete removes a task and cleans its attachment files from disk.
// File removal is best-effort: failures are logged and do not undo the
// task deletion.
func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	for _, a := range task.Attachments {
		if err := s.files.Remove(a.FilePath); err != nil {
			s.logger.Warn("failed to remove attachment file for deleted task",
				"task_id", id, "path", a.FilePath, "error", err)
		}
	}

	return nil
}

// UploadAttachment stores an uploaded file and appends it to the task's
// attachment sequence. The task's existence is confirmed before anything is
// written to disk, and a failed persist removes the just-written file so no
// orphan remains.
func (s *TaskService) UploadAttachment(ctx context.Context, taskID uuid.UUID, originalName string, r io.Reader, uploader domain.Identity) (*domain.Attachment, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	stored, err := s.files.Save(originalName, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	attachment := domain.Attachment{
		ID:         uuid.New(),
		FileName:   originalName,
		FilePath:   path.Join(uploadsWebPrefix, stored),
		UploadedBy: uploader.UserID,
		UploadedAt: time.Now().UTC(),
	}

	task.Attachments = append(task.Attachments, attachment)
	if err := s.tasks.SaveAttachments(ctx, taskID, task.Attachments); err != nil {
		if rmErr := s.files.Remove(stored); rmErr != nil {
			s.logger.Warn("failed to clean up stored file after persist failure",
				"task_id", taskID, "stored", stored, "error", rmErr)
		}
		return nil, err
	}

	return &attachment, nil
}

// ListAttachments returns a task's attachment sequence with the uploaders
// resolved for display.
func (s *TaskService) ListAttachments(ctx context.Context, taskID uuid.UUID) ([]domain.Attachment, map[uuid.UUID]*domain.User, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}

	users, err := s.resolveUsers(ctx, []*domain.Task{task})
	if err != nil {
		return nil, nil, err
	}

	return task.Attachments, users, nil
}

// DeleteAttachment removes the first attachment whose stored path ends with
// filename. Disk removal is best-effort; the sequence entry is removed and
// persisted regardless.
func (s *TaskService) DeleteAttachment(ctx context.Context, taskID uuid.UUID, filename string) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	idx := task.FindAttachmentByPathSuffix(filename)
	if idx < 0 {
		return ErrAttachmentNotFound
	}

	if err := s.files.Remove(task.Attachments[idx].FilePath); err != nil {
		s.logger.Warn("failed to remove attachment file from disk",
			"task_id", taskID, "path", task.Attachments[idx].FilePath, "error", err)
	}

	task.RemoveAttachment(idx)
	return s.tasks.SaveAttachments(ctx, taskID, task.Attachments)
}

// checkAssignee enforces the "assignee must be an Employee" invariant.
func (s *TaskService) checkAssignee(ctx context.Context, id uuid.UUID) error {
	assignee, err := s.users.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return ErrAssigneeNotEmployee
		}
		return err
	}
	if assignee.Role != domain.RoleEmployee {
		return ErrAssigneeNotEmployee
	}
	return nil
}

// resolveUsers fetches every user referenced by the tasks (assignees and
// attachment uploaders) in a single query and returns them keyed by ID.
func (s *TaskService) resolveUsers(ctx context.Context, tasks []*domain.Task) (map[uuid.UUID]*domain.User, error) {
	seen := map[uuid.UUID]bool{}
	ids := []uuid.UUID{}
	for _, t := range tasks {
		if t.AssignedTo != nil && !seen[*t.AssignedTo] {
			seen[*t.AssignedTo] = true
			ids = append(ids, *t.AssignedTo)
		}
		for _, a := range t.Attachments {
			if a.UploadedBy != uuid.Nil && !seen[a.UploadedBy] {
				seen[a.UploadedBy] = true
				ids = append(ids, a.UploadedBy)
			}
		}
	}

	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}
