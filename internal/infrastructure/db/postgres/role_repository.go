package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orderdesk/accounts-api/internal/core/domain"
)

// RoleRepository persists roles. Read-mostly; writes happen through
// seeding and administrative tooling.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var rec roleRecord
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRoleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find role by name: %w", err)
	}
	return &domain.Role{ID: rec.ID, Name: rec.Name}, nil
}

func (r *RoleRepository) FindAll(ctx context.Context) ([]domain.Role, error) {
	var recs []roleRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	out := make([]domain.Role, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.Role{ID: rec.ID, Name: rec.Name})
	}
	return out, nil
}

// Save upserts by primary key and returns the role with its id populated.
func (r *RoleRepository) Save(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	rec := roleRecord{ID: role.ID, Name: role.Name}
	if err := r.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return nil, fmt.Errorf("save role: %w", err)
	}
	return &domain.Role{ID: rec.ID, Name: rec.Name}, nil
}
