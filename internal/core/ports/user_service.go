package ports

import (
	"context"

	"github.com/orderdesk/accounts-api/internal/core/domain"
)

// UserService is the sole write path for user registration and the read
// surface consumed by the HTTP handlers and the authentication middleware.
type UserService interface {
	Register(ctx context.Context, username, rawPassword, email, defaultRoleName string) (*domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	GetUserByID(ctx context.Context, id uint) (*domain.User, bool, error)
	LoadAuthenticationProfile(ctx context.Context, username string) (domain.AuthenticationProfile, error)
	AssignRole(ctx context.Context, userID uint, roleName string) (*domain.User, error)
	RemoveRole(ctx context.Context, userID uint, roleName string) (*domain.User, error)
}
