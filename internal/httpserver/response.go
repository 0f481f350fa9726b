package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dsignme/internal/domain"
)

func respondList[T any](c *gin.Context, message string, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "data": items, "count": len(items)})
}

func respondData(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{"message": message, "data": data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// respondError maps service errors onto status codes. notFound is the
// message used for domain.ErrNotFound; fallback is shown for anything
// unexpected, whose cause is only logged.
func (h *handlers) respondError(c *gin.Context, err error, notFound, fallback string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resource already exists"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		h.logger.WithError(err).WithField("path", c.FullPath()).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// validID writes a 400 and returns false when id is not a UUID.
func validID(c *gin.Context, id, entity string) bool {
	if !domain.ValidID(id) {
		badRequest(c, "Invalid "+entity+" ID")
		return false
	}
	return true
}
