package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	ListFn       func(ctx context.Context) ([]*domain.User, error)
	ListByRoleFn func(ctx context.Context, role domain.Role) ([]*domain.User, error)
	ListByIDsFn  func(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
	UpdateRoleFn func(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error)
	DeleteFn     func(ctx context.Context, id uuid.UUID) error

	// Data for the default implementations, keyed by email
	Users map[string]*domain.User
}

// NewMockUserStore creates a new mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// AddUser stores a user for the default implementations to find.
func (m *MockUserStore) AddUser(user *domain.User) {
	m.Users[user.Email] = user
}

// Create implements the UserStore interface.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}

	m.Users[user.Email] = user
	return nil
}

// GetByID implements the UserStore interface.
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements the UserStore interface.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	user, exists := m.Users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// List implements the UserStore interface.
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	users := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}
	return users, nil
}

// ListByRole implements the UserStore interface.
func (m *MockUserStore) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	if m.ListByRoleFn != nil {
		return m.ListByRoleFn(ctx, role)
	}

	var users []*domain.User
	for _, user := range m.Users {
		if user.Role == role {
			users = append(users, user)
		}
	}
	return users, nil
}

// ListByIDs implements the UserStore interface. Missing IDs are skipped.
func (m *MockUserStore) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if m.ListByIDsFn != nil {
		return m.ListByIDsFn(ctx, ids)
	}

	var users []*domain.User
	for _, id := range ids {
		for _, user := range m.Users {
			if user.ID == id {
				users = append(users, user)
				break
			}
		}
	}
	return users, nil
}

// UpdateRole implements the UserStore interface.
func (m *MockUserStore) UpdateRole(
	ctx context.Context,
	id uuid.UUID,
	role domain.Role,
) (*domain.User, error) {
	if m.UpdateRoleFn != nil {
		return m.UpdateRoleFn(ctx, id, role)
	}

	for _, user := range m.Users {
		if user.ID == id {
			user.Role = role
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Delete implements the UserStore interface.
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for email, user := range m.Users {
		if user.ID == id {
			delete(m.Users, email)
			return nil
		}
	}
	return store.ErrUserNotFound
}

var _ store.UserStore = (*MockUserStore)(nil)
