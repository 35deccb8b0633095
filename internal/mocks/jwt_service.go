package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Token is returned by the default GenerateToken implementation.
	Token string
}

// NewMockJWTService creates a mock that issues the given token string.
func NewMockJWTService(token string) *MockJWTService {
	return &MockJWTService{Token: token}
}

// GenerateToken implements the JWTService interface.
func (m *MockJWTService) GenerateToken(
	ctx context.Context,
	userID uuid.UUID,
	role domain.Role,
) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID, role)
	}
	return m.Token, nil
}

// ValidateToken implements the JWTService interface. The default rejects
// everything; set ValidateTokenFn to accept.
func (m *MockJWTService) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return nil, auth.ErrInvalidToken
}

var _ auth.JWTService = (*MockJWTService)(nil)
