package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"users-api/internal/domain"
	"users-api/internal/service"
)

const principalKey = "principal"

// requireAuth resolves the Authorization header to a principal or stops the
// request with 401.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := h.users.Authenticate(c.Request.Context(), bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// requireOwner lets the request through only when the principal is the user
// named by the :id path parameter. It must run after requireAuth.
func (h *Handler) requireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := principalFrom(c)
		if !ok {
			h.writeError(c, service.ErrNotAuthenticated)
			return
		}
		target, _ := parseID(c.Param("id"))
		if err := service.Authorize(principal, target); err != nil {
			h.writeError(c, err)
			return
		}
		c.Next()
	}
}

func principalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// bearerToken accepts both "Bearer <token>" and a bare token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
