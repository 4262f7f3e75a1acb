package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/orderdesk/accounts-api/internal/core/domain"
)

// userRecord maps the users table. Timestamps are stamped by the domain
// write path, so gorm's automatic tracking is switched off. The role
// association goes through the bare user_roles join table; the join rows
// are the only representation of membership.
type userRecord struct {
	ID           uint         `gorm:"primaryKey"`
	Username     string       `gorm:"uniqueIndex;size:50;not null"`
	Email        string       `gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string       `gorm:"size:255;not null"`
	Enabled      bool         `gorm:"not null"`
	CreatedAt    time.Time    `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime:false"`
	Roles        []roleRecord `gorm:"many2many:user_roles;joinForeignKey:user_id;joinReferences:role_id"`
}

func (userRecord) TableName() string { return "users" }

// roleRecord maps the roles table.
type roleRecord struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:50;not null"`
}

func (roleRecord) TableName() string { return "roles" }

// orderedRoles preloads the role association deterministically.
func orderedRoles(db *gorm.DB) *gorm.DB {
	return db.Order("roles.id")
}

func toUserRecord(u *domain.User) userRecord {
	roles := make([]roleRecord, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, roleRecord{ID: r.ID, Name: r.Name})
	}
	return userRecord{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Enabled:      u.Enabled,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		Roles:        roles,
	}
}

func toDomainUser(rec userRecord) *domain.User {
	roles := make([]domain.Role, 0, len(rec.Roles))
	for _, r := range rec.Roles {
		roles = append(roles, domain.Role{ID: r.ID, Name: r.Name})
	}
	return &domain.User{
		ID:           rec.ID,
		Username:     rec.Username,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Enabled:      rec.Enabled,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
		Roles:        roles,
	}
}

func toDomainUsers(recs []userRecord) []domain.User {
	out := make([]domain.User, 0, len(recs))
	for _, rec := range recs {
		out = append(out, *toDomainUser(rec))
	}
	return out
}
