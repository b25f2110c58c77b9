package handler

import (
	"errors"
	"net/http"

	"teamboard-server/internal/service"
	"teamboard-server/pkg/response"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Forbidden and NotFound stay distinct so clients can tell "doesn't exist"
// from "exists but you can't touch it".
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(w, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(w, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(w, err.Error())
	default:
		response.InternalError(w, "Internal server error")
	}
}
