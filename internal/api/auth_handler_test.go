package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/taskforge-api/internal/api"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/mocks"
	"github.com/taskforge/taskforge-api/internal/service/auth"
)

func newAuthRouter(users *mocks.MockUserStore) http.Handler {
	handler := api.NewAuthHandler(
		users,
		mocks.NewMockJWTService("signed-token"),
		auth.NewBcryptHasher(bcrypt.MinCost),
		auth.NewBcryptVerifier(),
		nil,
	)
	r := chi.NewRouter()
	r.Post("/api/users/register", handler.Register)
	r.Post("/api/users/login", handler.Login)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates user with hashed password", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		router := newAuthRouter(users)

		rec := postJSON(t, router, "/api/users/register", api.RegisterRequest{
			Name:     "Jane Smith",
			Email:    "jane@example.com",
			Password: "password123",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp api.RegisterResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "User registered successfully", resp.Message)

		created := users.Users["jane@example.com"]
		require.NotNil(t, created)
		assert.Equal(t, resp.UserID, created.ID)
		assert.Equal(t, domain.RoleEmployee, created.Role)
		assert.Empty(t, created.Password)
		assert.NotEmpty(t, created.HashedPassword)
		assert.NotEqual(t, "password123", created.HashedPassword)
	})

	t.Run("honors explicit role", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		router := newAuthRouter(users)

		rec := postJSON(t, router, "/api/users/register", api.RegisterRequest{
			Name:     "Sam Lee",
			Email:    "sam@example.com",
			Password: "password123",
			Role:     "Manager",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, domain.RoleManager, users.Users["sam@example.com"].Role)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		t.Parallel()

		users := mocks.NewMockUserStore()
		router := newAuthRouter(users)

		first := postJSON(t, router, "/api/users/register", api.RegisterRequest{
			Name: "Jane Smith", Email: "jane@example.com", Password: "password123",
		})
		require.Equal(t, http.StatusCreated, first.Code)

		second := postJSON(t, router, "/api/users/register", api.RegisterRequest{
			Name: "Other Jane", Email: "jane@example.com", Password: "password456",
		})
		assert.Equal(t, http.StatusConflict, second.Code)
		assert.Contains(t, second.Body.String(), "Email already exists")
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			name string
			body api.RegisterRequest
		}{
			{"missing name", api.RegisterRequest{Email: "jane@example.com", Password: "password123"}},
			{"missing email", api.RegisterRequest{Name: "Jane", Password: "password123"}},
			{"malformed email", api.RegisterRequest{Name: "Jane", Email: "nope", Password: "password123"}},
			{"short password", api.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "short"}},
			{"unknown role", api.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "password123", Role: "Root"}},
		}

		for _, tc := range testCases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				router := newAuthRouter(mocks.NewMockUserStore())
				rec := postJSON(t, router, "/api/users/register", tc.body)
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			})
		}
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	registeredUsers := func(t *testing.T) *mocks.MockUserStore {
		t.Helper()
		users := mocks.NewMockUserStore()
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
		require.NoError(t, err)

		user, err := domain.NewUser("Jane Smith", "jane@example.com", "password123", domain.RoleManager)
		require.NoError(t, err)
		user.Password = ""
		user.HashedPassword = string(hashed)
		users.AddUser(user)
		return users
	}

	t.Run("returns token and profile", func(t *testing.T) {
		t.Parallel()

		router := newAuthRouter(registeredUsers(t))
		rec := postJSON(t, router, "/api/users/login", api.LoginRequest{
			Email: "jane@example.com", Password: "password123",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.Token)
		assert.Equal(t, "Jane Smith", resp.User.Name)
		assert.Equal(t, domain.RoleManager, resp.User.Role)
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		t.Parallel()

		router := newAuthRouter(registeredUsers(t))

		unknown := postJSON(t, router, "/api/users/login", api.LoginRequest{
			Email: "nobody@example.com", Password: "password123",
		})
		wrongPw := postJSON(t, router, "/api/users/login", api.LoginRequest{
			Email: "jane@example.com", Password: "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
		assert.JSONEq(t, unknown.Body.String(), wrongPw.Body.String())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		t.Parallel()

		router := newAuthRouter(registeredUsers(t))
		rec := postJSON(t, router, "/api/users/login", api.LoginRequest{Email: "jane@example.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
