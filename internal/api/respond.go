package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourorg/service-admin/internal/db"
	"go.uber.org/zap"
)

// respondError maps repository errors to the HTTP contract. Anything outside
// the known taxonomy is logged and collapsed to a bare 500 so no internal
// detail reaches the client.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var valErr db.ValidationError
	var dupErr db.DuplicateKeyError
	switch {
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": valErr.Fields})
	case errors.As(err, &dupErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": dupErr.Error(), "field": dupErr.Field})
	case errors.Is(err, db.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate name"})
	case errors.Is(err, db.ErrHasDependents):
		c.JSON(http.StatusBadRequest, gin.H{"error": "record has dependents"})
	case errors.Is(err, db.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
