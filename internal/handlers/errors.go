package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/docstack/docstack/internal/auth"
	"github.com/docstack/docstack/internal/services"
	"github.com/docstack/docstack/pkg/response"
)

// respondError maps service-layer error kinds to HTTP statuses. This is the
// only place the mapping lives; handlers never inspect errors themselves.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(c, "access denied to this project")
	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrDuplicateFilename),
		errors.Is(err, services.ErrUsernameTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidFilename):
		response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, auth.ErrExpiredToken), errors.Is(err, auth.ErrInvalidToken):
		response.Unauthorized(c, err.Error())
	default:
		response.ServerError(c, "an unexpected error occurred")
	}
}
