// Package postgres implements the repository ports on top of GORM.
//
// Domain entities stay ORM-free: record types in this package carry the
// gorm mapping and are converted at the boundary. Natural keys (username,
// email, role name) are enforced with database unique indexes so that
// concurrent writers cannot slip past the application-level checks.
package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens a GORM connection to postgres and verifies connectivity.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Exec("SELECT 1").Error; err != nil {
		return nil, fmt.Errorf("database ping: %w", err)
	}
	return db, nil
}
