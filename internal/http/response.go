package http

import (
	"github.com/gin-gonic/gin"

	"users-api/internal/domain"
)

// UserResponse is the public representation of a user. Password material is
// never part of it and the auth token only appears in login responses.
type UserResponse struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Image     *string `json:"image"`
	Bio       *string `json:"bio"`
	URL       *string `json:"url"`
	AuthToken string  `json:"auth_token,omitempty"`
}

func (h *Handler) userToResponse(c *gin.Context, user *domain.User, withToken bool) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: nullable(user.FirstName),
		LastName:  nullable(user.LastName),
		Image:     nullable(h.users.ImageURL(c.Request.Context(), user)),
		Bio:       nullable(user.Bio),
		URL:       nullable(user.URL),
	}
	if withToken {
		resp.AuthToken = user.AuthToken
	}
	return resp
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
