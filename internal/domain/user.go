package domain

import (
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrInvalidRole         = errors.New("invalid role")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Role determines which operations a user may perform.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Permission names a guarded capability. Authorization checks go through the
// permission table below rather than comparing role strings at call sites.
type Permission string

const (
	// PermManageUsers covers listing users, deleting users, and changing roles.
	PermManageUsers Permission = "users:manage"

	// PermViewEmployees covers listing users with the Employee role.
	PermViewEmployees Permission = "users:view_employees"

	// PermManageTasks covers creating, fully updating, and deleting tasks,
	// and deleting task attachments.
	PermManageTasks Permission = "tasks:manage"
)

// rolePermissions is the authoritative permission table. Roles not present
// for a permission are denied.
var rolePermissions = map[Role]map[Permission]bool{
	RoleAdmin: {
		PermManageUsers:   true,
		PermViewEmployees: true,
		PermManageTasks:   true,
	},
	RoleManager: {
		PermViewEmployees: true,
		PermManageTasks:   true,
	},
	RoleEmployee: {},
}

// Can reports whether the role grants the given permission.
func (r Role) Can(p Permission) bool {
	return rolePermissions[r][p]
}

// User represents a registered account. The plaintext password is carried
// only between registration input and hashing; it is never persisted.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, present only during registration
	HashedPassword string    `json:"-"` // Never expose the hash in JSON
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User with a fresh ID and timestamps. The caller is
// responsible for hashing the password before storing the user. An empty
// role defaults to Employee, matching registration behavior.
func NewUser(name, email, password string, role Role) (*User, error) {
	if role == "" {
		role = RoleEmployee
	}

	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  password,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks that the user's fields are well formed.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Name == "" {
		return ErrEmptyName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrInvalidEmail
	}

	if !u.Role.Valid() {
		return ErrInvalidRole
	}

	if u.Password != "" {
		if len(u.Password) < 8 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 72 { // bcrypt's input limit
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from the store must carry a hash.
		return ErrEmptyPassword
	}

	return nil
}
