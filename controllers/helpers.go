package controllers

import (
	"document-review-api/services"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP status for its class.
// Anything outside the taxonomy is a 500 with a generic message; the detail
// goes to the log via gin's error list.
func respondError(c *gin.Context, err error) {
	var (
		validationErr   *services.ValidationError
		permissionErr   *services.PermissionError
		windowErr       *services.WindowClosedError
		confirmationErr *services.ConfirmationError
		notFoundErr     *services.NotFoundError
		conflictErr     *services.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &permissionErr):
		c.JSON(http.StatusForbidden, gin.H{"error": permissionErr.Message})
	case errors.As(err, &windowErr):
		c.JSON(http.StatusConflict, gin.H{"error": windowErr.Message})
	case errors.As(err, &confirmationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": confirmationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Message})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Message})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
