package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type sessionRequest struct {
	Session *struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"session"`
}

func (h *Handler) createSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Session == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": paramMissing("session")})
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.Session.Email, req.Session.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.userToResponse(c, user, true))
}

// destroySession logs out the user whose auth token is the :id parameter.
func (h *Handler) destroySession(c *gin.Context) {
	if err := h.users.Logout(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
