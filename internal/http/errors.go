package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"users-api/internal/service"
)

const (
	msgNotAuthenticated   = "Not authenticated"
	msgForbidden          = "You do not have permission to perform this action"
	msgInvalidCredentials = "Invalid email or password"
	msgNotFound           = "Not found"
	msgInternal           = "Internal server error"
)

func paramMissing(key string) string {
	return "param is missing or the value is empty: " + key
}

// writeError renders err as {"errors": ...} with the matching status and
// aborts the chain.
func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Fields})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"errors": msgInvalidCredentials})
	case errors.Is(err, service.ErrNotAuthenticated):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": msgNotAuthenticated})
	case errors.Is(err, service.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"errors": msgForbidden})
	case errors.Is(err, service.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"errors": msgNotFound})
	default:
		h.log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Errorf("unhandled error: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"errors": msgInternal})
	}
}
