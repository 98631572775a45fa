package infra

import (
	"fmt"

	"github.com/MartinOstios/backend-posco/internal/config"
	"github.com/MartinOstios/backend-posco/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the GORM connection, sizes the pool from config and
// migrates the schema. TranslateError maps unique violations to
// gorm.ErrDuplicatedKey so services can report Conflict.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates every table. Integration tests call it directly.
func RunMigrations(db *gorm.DB) error {
	if err := applyPreMigrationPatches(db); err != nil {
		return fmt.Errorf("pre-migration patches: %w", err)
	}
	if err := db.SetupJoinTable(&model.Role{}, "Permissions", &model.RoleHasPermission{}); err != nil {
		return fmt.Errorf("join table role_has_permissions: %w", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applyPreMigrationPatches prepares extensions AutoMigrate relies on.
func applyPreMigrationPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// gen_random_uuid() is core from PostgreSQL 13; older servers need pgcrypto.
		{"pgcrypto", `CREATE EXTENSION IF NOT EXISTS pgcrypto`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("pre-patch %q: %w", p.descr, err)
		}
	}
	return nil
}

// applySchemaPatches runs idempotent DDL that struct tags cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_products_stock_non_negative') THEN
		    ALTER TABLE products ADD CONSTRAINT chk_products_stock_non_negative CHECK (stock >= 0);
		  END IF;
		END $$`,
		`CREATE INDEX IF NOT EXISTS idx_password_reset_tokens_live
		    ON password_reset_tokens (email, created_at DESC)
		    WHERE is_used = false`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
