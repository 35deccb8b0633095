package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
//
// The attachment sequence is stored as a JSONB column on the task row,
// preserving the embedded, ordered shape of the original document model.
// Read-modify-write cycles on it are last-writer-wins.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. The connection (or transaction) is managed by the
// caller. If logger is nil, the default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	attachments, err := marshalAttachments(task.Attachments)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (id, title, description, assigned_to, deadline, priority, status, attachments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = s.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, nullableUUID(task.AssignedTo),
		nullableTime(task.Deadline), task.Priority, task.Status, attachments,
		task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `
		SELECT id, title, description, assigned_to, deadline, priority, status, attachments, created_at, updated_at
		FROM tasks
		WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, fmt.Errorf("%w: %v", store.ErrTaskNotFound, err)
		}
		return nil, MapError(err)
	}
	return task, nil
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	query := `
		SELECT id, title, description, assigned_to, deadline, priority, status, attachments, created_at, updated_at
		FROM tasks`
	args := []any{}

	if filter.AssignedTo != nil {
		query += ` WHERE assigned_to = $1`
		args = append(args, *filter.AssignedTo)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close rows", "error", cerr)
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	attachments, err := marshalAttachments(task.Attachments)
	if err != nil {
		return err
	}

	task.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tasks
		SET title = $2, description = $3, assigned_to = $4, deadline = $5,
		    priority = $6, status = $7, attachments = $8, updated_at = $9
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, nullableUUID(task.AssignedTo),
		nullableTime(task.Deadline), task.Priority, task.Status, attachments,
		task.UpdatedAt)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, "task")
}

// SaveAttachments implements store.TaskStore.SaveAttachments
func (s *PostgresTaskStore) SaveAttachments(ctx context.Context, id uuid.UUID, attachments []domain.Attachment) error {
	payload, err := marshalAttachments(attachments)
	if err != nil {
		return err
	}

	query := `
		UPDATE tasks
		SET attachments = $2, updated_at = $3
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id, payload, time.Now().UTC())
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, "task")
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, "task")
}

func marshalAttachments(attachments []domain.Attachment) ([]byte, error) {
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	payload, err := json.Marshal(attachments)
	if err != nil {
		return nil, fmt.Errorf("%w: attachments not serializable: %v", store.ErrInvalidEntity, err)
	}
	return payload, nil
}

func nullableUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		assignedTo  uuid.NullUUID
		deadline    sql.NullTime
		attachments []byte
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&assignedTo,
		&deadline,
		&task.Priority,
		&task.Status,
		&attachments,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if assignedTo.Valid {
		id := assignedTo.UUID
		task.AssignedTo = &id
	}
	if deadline.Valid {
		t := deadline.Time
		task.Deadline = &t
	}

	task.Attachments = []domain.Attachment{}
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &task.Attachments); err != nil {
			return nil, fmt.Errorf("failed to decode attachments: %w", err)
		}
	}

	return &task, nil
}
