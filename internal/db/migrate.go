package db

import (
	"context"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"gadgetd/internal/models"

	_ "gadgetd/internal/db/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Migrate performs schema migrations for the persistent models on an
// already-open GORM session. Used by the server at startup and by tests.
func Migrate(ctx context.Context, database *gorm.DB) error {
	return database.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Gadget{},
		&models.AuditLog{},
	)
}

// RunMigrations applies all embedded goose migrations against the
// database identified by dsn. Used by gadgetctl for operator-driven
// migrations.
func RunMigrations(ctx context.Context, dsn string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return goose.UpContext(ctx, sqlDB, "migrations")
}
