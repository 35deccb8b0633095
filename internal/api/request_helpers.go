package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/api/middleware"
	"github.com/taskforge/taskforge-api/internal/domain"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// requireIdentity extracts the authenticated identity from the request,
// writing an Unauthorized response when it is absent. The boolean reports
// whether the handler may proceed.
func requireIdentity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return domain.Identity{}, false
	}
	return identity, true
}
