package handler

import (
	"time"

	"github.com/orderdesk/accounts-api/internal/core/domain"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=120"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type assignRoleRequest struct {
	Name string `json:"name" validate:"required"`
}

type roleResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// userResponse is the outward shape of a user. The password hash is not a
// field here and can never cross this boundary.
type userResponse struct {
	ID        uint           `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	Enabled   bool           `json:"enabled"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Roles     []roleResponse `json:"roles"`
}

type loginResponse struct {
	Username    string   `json:"username"`
	Authorities []string `json:"authorities"`
}

func toUserResponse(u *domain.User) userResponse {
	roles := make([]roleResponse, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, roleResponse{ID: r.ID, Name: r.Name})
	}
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Roles:     roles,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}
