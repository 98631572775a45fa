// cmd/seed provisions permissions, the default roles and, when configured,
// the first enterprise with its superuser. Safe to run repeatedly.
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"os"
	"time"

	"github.com/MartinOstios/backend-posco/internal/config"
	"github.com/MartinOstios/backend-posco/internal/infra"
	"github.com/MartinOstios/backend-posco/internal/repository"
	"github.com/MartinOstios/backend-posco/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if !cfg.BootstrapEnabled() {
		log.Warn().Msg("FIRST_ENTERPRISE_NIT / FIRST_SUPERUSER / FIRST_SUPERUSER_PASSWORD not set: only roles and permissions will be seeded")
	}

	db, err := infra.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	boot := service.NewBootstrapper(
		repository.NewTxManager(db),
		repository.NewPermissionRepository(db),
		repository.NewRoleRepository(db),
		repository.NewEnterpriseRepository(db),
		repository.NewEmployeeRepository(db),
	)
	if err := boot.Run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Str("superuser", cfg.FirstSuperuser).Msg("seed complete")
}
