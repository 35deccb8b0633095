package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password. Returns ErrEmailExists if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns all users ordered by creation time, newest first.
	List(ctx context.Context) ([]*domain.User, error)

	// ListByRole returns all users with the given role, newest first.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)

	// ListByIDs returns the users whose IDs appear in ids. Missing IDs are
	// silently skipped; the result may be shorter than the input.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)

	// UpdateRole changes a user's role and returns the updated user.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error)

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
