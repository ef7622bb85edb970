package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobtrail/jobtrail/internal/dto"
	"github.com/jobtrail/jobtrail/internal/identity"
	"github.com/jobtrail/jobtrail/internal/repository"
	"github.com/jobtrail/jobtrail/internal/service"
)

// respondError maps a typed core error to its HTTP outcome. Anything
// unanticipated falls through to 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrUnsupportedProvider),
		errors.Is(err, identity.ErrMissingProviderID),
		errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrProviderConflict),
		errors.Is(err, repository.ErrDuplicateProviderID),
		errors.Is(err, repository.ErrDuplicateDisplayName),
		errors.Is(err, repository.ErrDuplicatePrimaryEmail):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "Conflict",
			Message: err.Error(),
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not found",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
	}
}
