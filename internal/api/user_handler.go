package api

import (
	"log/slog"
	"net/http"

	"github.com/taskforge/taskforge-api/internal/api/shared"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/store"
)

// UserHandler handles user directory operations: listing, role changes, and
// deletion. Route-level authorization is enforced by middleware.
type UserHandler struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userStore store.UserStore, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userStore: userStore,
		logger:    logger.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /api/users. The password hash never leaves the handler.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, newUserResponse(u))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// ListEmployees handles GET /api/users/employees, returning a reduced
// payload for assignment pickers.
func (h *UserHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.userStore.ListByRole(r.Context(), domain.RoleEmployee)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list employees")
		return
	}

	responses := make([]EmployeeResponse, 0, len(employees))
	for _, u := range employees {
		responses = append(responses, EmployeeResponse{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Delete handles DELETE /api/users/{id}. Tasks referencing the user keep
// working; the assignment link is non-owning and is cleared by the store.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.userStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "User deleted"})
}

// UpdateRole handles PATCH /api/users/{id}/role.
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateRoleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userStore.UpdateRole(r.Context(), id, domain.Role(req.Role))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update role")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}
