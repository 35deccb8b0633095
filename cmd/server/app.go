package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskforge/taskforge-api/internal/config"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/service"
	"github.com/taskforge/taskforge-api/internal/service/auth"
	"github.com/taskforge/taskforge-api/internal/store"
)

// application holds the wired dependencies shared by the router's handlers.
type application struct {
	config           *config.Config
	logger           *slog.Logger
	userStore        store.UserStore
	taskService      *service.TaskService
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
}

// ensureInitialAdmin creates the configured admin account if it does not
// exist yet. Registration defaults new accounts to Employee, so without
// this no Admin could ever exist. Seeding is skipped when the initial admin
// is not configured.
func (app *application) ensureInitialAdmin(ctx context.Context) error {
	admin := app.config.InitialAdmin
	if admin.Email == "" || admin.Password == "" {
		app.logger.Info("initial admin not configured, skipping seed")
		return nil
	}

	name := admin.Name
	if name == "" {
		name = "Administrator"
	}

	user, err := domain.NewUser(name, admin.Email, admin.Password, domain.RoleAdmin)
	if err != nil {
		return err
	}

	hashed, err := app.passwordHasher.Hash(admin.Password)
	if err != nil {
		return err
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := app.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			// The admin already exists; nothing to do.
			return nil
		}
		return err
	}

	app.logger.Info("initial admin created", "email", admin.Email)
	return nil
}
