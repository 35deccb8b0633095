package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task validation errors
var (
	ErrEmptyTaskID       = errors.New("task ID cannot be empty")
	ErrEmptyTitle        = errors.New("title is required")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrInvalidAssignee   = errors.New("assignee must be an employee")
	ErrAttachmentMissing = errors.New("attachment not found")
)

// Status is the closed set of task states. Any status in the set may follow
// any other; there is no enforced transition graph.
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority ranks a task's urgency.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Attachment is a file bound to a task. Attachments are embedded in their
// owning task and are not independently addressable. UploadedBy is a
// non-owning reference; deleting the uploader does not cascade here.
type Attachment struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name"` // Original upload name
	FilePath   string    `json:"file_path"` // Relative path under the uploads root
	UploadedBy uuid.UUID `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Task is a unit of work with an optional assignee, a status, and an ordered
// sequence of attachments. AssignedTo must reference a user with the
// Employee role when set; the reference is non-owning.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	AssignedTo  *uuid.UUID   `json:"assigned_to,omitempty"`
	Deadline    *time.Time   `json:"deadline,omitempty"`
	Priority    Priority     `json:"priority"`
	Status      Status       `json:"status"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a Task with a fresh ID and timestamps. Status always
// starts at "To Do"; an empty priority defaults to Medium. Assignee role
// validation is the task service's job since it requires a user lookup.
func NewTask(title, description string, assignedTo *uuid.UUID, deadline *time.Time, priority Priority) (*Task, error) {
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		AssignedTo:  assignedTo,
		Deadline:    deadline,
		Priority:    priority,
		Status:      StatusToDo,
		Attachments: []Attachment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks that the task's fields are well formed.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// IsAssignedTo reports whether the task is assigned to the given user.
func (t *Task) IsAssignedTo(userID uuid.UUID) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}

// FindAttachmentByPathSuffix returns the index of the first attachment whose
// stored path ends with the given filename, or -1 if there is none. The
// suffix match mirrors the delete route's filename addressing.
func (t *Task) FindAttachmentByPathSuffix(filename string) int {
	for i, a := range t.Attachments {
		if strings.HasSuffix(a.FilePath, filename) {
			return i
		}
	}
	return -1
}

// RemoveAttachment deletes the attachment at index i, preserving order.
func (t *Task) RemoveAttachment(i int) {
	t.Attachments = append(t.Attachments[:i], t.Attachments[i+1:]...)
}
