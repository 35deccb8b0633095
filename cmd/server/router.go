package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taskforge/taskforge-api/internal/api"
	"github.com/taskforge/taskforge-api/internal/api/middleware"
	"github.com/taskforge/taskforge-api/internal/domain"
)

// setupRouter builds the chi router with all middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	if len(app.config.Server.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   app.config.Server.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
		app.logger,
	)
	userHandler := api.NewUserHandler(app.userStore, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	attachmentHandler := api.NewAttachmentHandler(
		app.taskService,
		app.config.Storage.MaxUploadBytes,
		app.logger,
	)

	authMiddleware := middleware.NewAuthMiddleware(app.jwtService)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Task management API is running"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Uploaded attachments are served as static files under the same paths
	// stored on task attachment records.
	uploadsDir := http.Dir(app.config.Storage.UploadsDir)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(uploadsDir)))

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.With(authMiddleware.Require(domain.PermViewEmployees)).
				Get("/employees", userHandler.ListEmployees)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Require(domain.PermManageUsers))
				r.Get("/", userHandler.List)
				r.Delete("/{id}", userHandler.Delete)
				r.Patch("/{id}/role", userHandler.UpdateRole)
			})
		})
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/", taskHandler.List)
		r.Get("/analytics", taskHandler.Analytics)
		r.Patch("/{id}/status", taskHandler.UpdateStatus)
		r.Post("/{id}/upload", attachmentHandler.Upload)
		r.Get("/{id}/files", attachmentHandler.ListFiles)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Require(domain.PermManageTasks))
			r.Post("/", taskHandler.Create)
			r.Put("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
			r.Delete("/{id}/files/{filename}", attachmentHandler.DeleteFile)
		})
	})

	return r
}
