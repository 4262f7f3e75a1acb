package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orderdesk/accounts-api/internal/core/domain"
)

// UserRepository persists users and their role membership.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user together with its role join rows in one
// transaction. A unique-key violation, including one raced in by a
// concurrent registration, is classified back to the natural key that
// collided.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	rec := toUserRecord(user)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Roles").Create(&rec).Error; err != nil {
			return err
		}
		if len(rec.Roles) == 0 {
			return nil
		}
		return tx.Model(&rec).Association("Roles").Append(rec.Roles)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, r.classifyDuplicate(ctx, user.Username)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created, found, err := r.FindByID(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("insert user: row vanished after create")
	}
	return created, nil
}

// Update persists scalar fields and replaces the role join rows so that
// the association matches the entity's current role set exactly.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	rec := toUserRecord(user)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&userRecord{ID: rec.ID}).
			Select("email", "password_hash", "enabled", "updated_at").
			Updates(map[string]any{
				"email":         rec.Email,
				"password_hash": rec.PasswordHash,
				"enabled":       rec.Enabled,
				"updated_at":    rec.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		assoc := tx.Model(&userRecord{ID: rec.ID}).Association("Roles")
		if len(rec.Roles) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(rec.Roles)
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	updated, found, err := r.FindByID(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrUserNotFound
	}
	return updated, nil
}

// FindByID reports absence through the boolean; a missing row is not an
// error for this lookup.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, bool, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Preload("Roles", orderedRoles).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find user by id: %w", err)
	}
	return toDomainUser(rec), true, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Preload("Roles", orderedRoles).
		Where("username = ?", username).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return toDomainUser(rec), nil
}

// FindAll returns every user ordered by id, roles always populated.
func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var recs []userRecord
	err := r.db.WithContext(ctx).Preload("Roles", orderedRoles).
		Order("users.id").Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return toDomainUsers(recs), nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userRecord{}).
		Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userRecord{}).
		Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return count > 0, nil
}

// ListByRole derives the inverse side of the membership relation with a
// join query over user_roles, so there is no back-reference to keep in
// sync.
func (r *UserRepository) ListByRole(ctx context.Context, roleName string) ([]domain.User, error) {
	var recs []userRecord
	err := r.db.WithContext(ctx).Preload("Roles", orderedRoles).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.name = ?", roleName).
		Order("users.id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return toDomainUsers(recs), nil
}

// classifyDuplicate decides which natural key a unique violation hit. The
// committed row that beat us is visible by now, so re-checking the
// username tells the two cases apart.
func (r *UserRepository) classifyDuplicate(ctx context.Context, username string) error {
	taken, err := r.ExistsByUsername(ctx, username)
	if err == nil && taken {
		return domain.ErrUsernameTaken
	}
	return domain.ErrEmailTaken
}
