package main

import (
	"github.com/joho/godotenv"

	"github.com/orderdesk/accounts-api/internal/api"
	"github.com/orderdesk/accounts-api/internal/core/domain"
	"github.com/orderdesk/accounts-api/internal/infrastructure/db/postgres"
	"github.com/orderdesk/accounts-api/internal/pkg/config"
	"github.com/orderdesk/accounts-api/pkg/logger"
)

// @title           Accounts API
// @version         1.0
// @description     User account registration, credential verification and role management.
// @BasePath        /
// @securityDefinitions.basic BasicAuth
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(cfg.Database.DSN, cfg.Env == "development")
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if err := postgres.SeedRoles(db, domain.RoleAdmin, domain.RoleClient); err != nil {
		log.Fatal().Err(err).Msg("role seeding failed")
	}

	e := api.NewRouter(db, cfg.DefaultRole, log)

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Str("default_role", cfg.DefaultRole).
		Msg("starting accounts api")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
