package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"users-api/internal/service"
)

// userRequest is the only shape accepted for user writes. Any attribute not
// declared here is dropped while decoding.
type userRequest struct {
	User *userAttributes `json:"user"`
}

type userAttributes struct {
	Email                *string `json:"email"`
	Password             *string `json:"password"`
	PasswordConfirmation *string `json:"password_confirmation"`
}

func (a *userAttributes) params() service.UserParams {
	return service.UserParams{
		Email:                a.Email,
		Password:             a.Password,
		PasswordConfirmation: a.PasswordConfirmation,
	}
}

func (h *Handler) bindUser(c *gin.Context) (service.UserParams, bool) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.User == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": paramMissing("user")})
		return service.UserParams{}, false
	}
	return req.User.params(), true
}

func (h *Handler) showUser(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		h.writeError(c, service.ErrNotFound)
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.userToResponse(c, user, false))
}

func (h *Handler) createUser(c *gin.Context) {
	params, ok := h.bindUser(c)
	if !ok {
		return
	}

	user, err := h.users.Create(c.Request.Context(), params)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.userToResponse(c, user, false))
}

func (h *Handler) updateUser(c *gin.Context) {
	// requireOwner already matched :id against the principal
	id, _ := parseID(c.Param("id"))

	params, ok := h.bindUser(c)
	if !ok {
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, params)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.userToResponse(c, user, false))
}

func (h *Handler) destroyUser(c *gin.Context) {
	id, _ := parseID(c.Param("id"))

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
