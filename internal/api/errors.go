package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vrindavan/society-portal/internal/notify"
	"vrindavan/society-portal/internal/service"
)

// respondServiceError maps the service error taxonomy to HTTP status codes:
// validation 400, auth 401, not-found 404, storage/relay 502, the rest 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuth):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrStorage), errors.Is(err, notify.ErrTransient):
		abortWithError(c, http.StatusBadGateway, err.Error())
	default:
		// Persistence and anything unexpected; details stay server-side.
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
