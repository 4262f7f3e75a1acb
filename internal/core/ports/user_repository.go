package ports

import (
	"context"

	"github.com/orderdesk/accounts-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
//
// Every read returns users with role membership fully populated; a partial
// view is never acceptable because authority derivation needs the complete
// role set. Create and Update return the stored entity with its identifier
// and association state as persisted. FindByID reports absence through the
// boolean rather than an error — a missing user is an expected outcome for
// that lookup. Existence checks reflect the latest committed state visible
// to the current transaction boundary.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, bool, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, roleName string) ([]domain.User, error)
}
