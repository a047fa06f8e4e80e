package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "halifax-hub/internal/errors"
)

// respondError maps a service error onto an HTTP status with a plain
// {"error": ...} body. Anything that isn't a DomainError is a 500.
func respondError(c *gin.Context, err error) {
	var derr *apperrors.DomainError
	if !errors.As(err, &derr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch derr.Type {
	case apperrors.ErrTypeValidation:
		status = http.StatusBadRequest
	case apperrors.ErrTypeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrTypeUnavailable:
		status = http.StatusServiceUnavailable
	case apperrors.ErrTypeExternal:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": derr.Message})
}
