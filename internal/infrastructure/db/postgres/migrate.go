package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates the users, roles and user_roles tables.
func Migrate(db *gorm.DB) error {
	for _, model := range []any{&roleRecord{}, &userRecord{}} {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("automigrate %T: %w", model, err)
		}
	}
	for _, table := range []string{"roles", "users", "user_roles"} {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// SeedRoles inserts the given role names when absent. Roles are created
// administratively; registration only ever references them.
func SeedRoles(db *gorm.DB, names ...string) error {
	for _, name := range names {
		var existing roleRecord
		err := db.Where("name = ?", name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&roleRecord{Name: name}).Error; err != nil {
				return fmt.Errorf("seed role %s: %w", name, err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}
	return nil
}
