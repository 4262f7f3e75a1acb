package ports

import (
	"context"

	"github.com/orderdesk/accounts-api/internal/core/domain"
)

// RoleRepository defines persistence for roles. Roles are seeded
// administratively and read-mostly afterwards; Save returns the entity with
// its identifier populated.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	FindAll(ctx context.Context) ([]domain.Role, error)
	Save(ctx context.Context, role *domain.Role) (*domain.Role, error)
}
