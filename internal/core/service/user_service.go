package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/orderdesk/accounts-api/internal/core/domain"
	"github.com/orderdesk/accounts-api/internal/core/ports"
)

// UserService enforces the account invariants: natural-key uniqueness,
// password hashing before persistence, and role membership kept consistent
// through the join table.
type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, logger: logger}
}

// Register creates a new enabled account with the default role attached.
//
// Uniqueness is re-checked here regardless of upstream request validation,
// username first and then email, so the more specific failure wins when both
// collide. The raw password is hashed exactly once and never logged. The
// storage-level unique constraints backstop the check against concurrent
// registrations; a losing insert surfaces the same sentinel errors.
func (s *UserService) Register(ctx context.Context, username, rawPassword, email, defaultRoleName string) (*domain.User, error) {
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	role, err := s.roles.FindByName(ctx, defaultRoleName)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Enabled:      true,
	}
	user.PrepareForInsert(time.Now().UTC())
	user.AddRole(*role)

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Uint("user_id", created.ID).
		Str("username", created.Username).
		Str("role", defaultRoleName).
		Msg("user registered")
	return created, nil
}

// GetAllUsers returns every account ordered by id, with roles populated.
func (s *UserService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

// GetUserByID returns the account if present. Absence is reported through
// the boolean, not an error.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*domain.User, bool, error) {
	return s.users.FindByID(ctx, id)
}

// LoadAuthenticationProfile looks up the account by username and derives
// the authority set from its current roles. The derivation runs on every
// call; role changes take effect on the next login attempt.
func (s *UserService) LoadAuthenticationProfile(ctx context.Context, username string) (domain.AuthenticationProfile, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return domain.AuthenticationProfile{}, err
	}
	return user.AuthenticationProfile(), nil
}

// AssignRole attaches the named role to the user. The join table is the
// single source of truth for membership, so the role's member view follows
// automatically.
func (s *UserService) AssignRole(ctx context.Context, userID uint, roleName string) (*domain.User, error) {
	user, found, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrUserNotFound
	}

	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	if user.HasRole(role.Name) {
		return user, nil
	}
	user.AddRole(*role)
	user.PrepareForUpdate(time.Now().UTC())

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Uint("user_id", userID).Str("role", roleName).Msg("role assigned")
	return updated, nil
}

// RemoveRole detaches the named role from the user. Removing a role the
// user does not hold is a no-op.
func (s *UserService) RemoveRole(ctx context.Context, userID uint, roleName string) (*domain.User, error) {
	user, found, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrUserNotFound
	}

	if !user.HasRole(roleName) {
		return user, nil
	}
	user.RemoveRole(roleName)
	user.PrepareForUpdate(time.Now().UTC())

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Uint("user_id", userID).Str("role", roleName).Msg("role removed")
	return updated, nil
}
