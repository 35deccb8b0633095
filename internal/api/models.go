package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
)

// Request payloads. Field names follow the documented API.

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=Admin Manager Employee"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UpdateRoleRequest defines the payload for the role change endpoint.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=Admin Manager Employee"`
}

// CreateTaskRequest defines the payload for task creation.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description"`
	AssignedTo  *uuid.UUID `json:"assignedTo"`
	Deadline    *time.Time `json:"deadline"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=Low Medium High"`
}

// UpdateTaskRequest defines the payload for a partial task update.
// Absent fields keep their current values. Status values are validated by
// the task service against the closed status set.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1"`
	Description *string    `json:"description"`
	AssignedTo  *uuid.UUID `json:"assignedTo"`
	Deadline    *time.Time `json:"deadline"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=Low Medium High"`
	Status      *string    `json:"status"`
}

// UpdateStatusRequest defines the payload for the status-only update.
// An empty status keeps the task's current value.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response payloads.

// RegisterResponse confirms a successful registration.
type RegisterResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"userId"`
}

// UserProfile is the minimal user payload returned on login.
// It never carries the password or its hash.
type UserProfile struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// LoginResponse carries the signed token and the minimal profile.
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserProfile `json:"user"`
}

// UserResponse is the full user payload for listings, without the password.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// EmployeeResponse is the reduced payload for the employees listing.
type EmployeeResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// UserRef is a resolved non-owning user reference for display.
type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AttachmentResponse is an attachment with its uploader resolved.
type AttachmentResponse struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"fileName"`
	FilePath   string    `json:"filePath"`
	UploadedBy *UserRef  `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// UploadResponse confirms a successful upload.
type UploadResponse struct {
	Message    string             `json:"message"`
	Attachment AttachmentResponse `json:"attachment"`
}

// TaskResponse is a task with its references resolved for display.
type TaskResponse struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	AssignedTo  *UserRef             `json:"assignedTo"`
	Deadline    *time.Time           `json:"deadline"`
	Priority    domain.Priority      `json:"priority"`
	Status      domain.Status        `json:"status"`
	Attachments []AttachmentResponse `json:"attachments"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// newUserRef resolves id against the fetched users. Unresolvable references
// (e.g. a deleted uploader) yield nil rather than an error.
func newUserRef(users map[uuid.UUID]*domain.User, id uuid.UUID) *UserRef {
	u, ok := users[id]
	if !ok {
		return nil
	}
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

func newAttachmentResponse(a domain.Attachment, users map[uuid.UUID]*domain.User) AttachmentResponse {
	return AttachmentResponse{
		ID:         a.ID,
		FileName:   a.FileName,
		FilePath:   a.FilePath,
		UploadedBy: newUserRef(users, a.UploadedBy),
		UploadedAt: a.UploadedAt,
	}
}

func newTaskResponse(t *domain.Task, users map[uuid.UUID]*domain.User) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Priority:    t.Priority,
		Status:      t.Status,
		Attachments: make([]AttachmentResponse, 0, len(t.Attachments)),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.AssignedTo != nil {
		resp.AssignedTo = newUserRef(users, *t.AssignedTo)
	}
	for _, a := range t.Attachments {
		resp.Attachments = append(resp.Attachments, newAttachmentResponse(a, users))
	}
	return resp
}

func newTaskResponses(tasks []*domain.Task, users map[uuid.UUID]*domain.User) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, newTaskResponse(t, users))
	}
	return responses
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
