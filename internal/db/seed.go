package db

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gadgetd/internal/auth"
	"gadgetd/internal/models"
)

// SeedAdmin inserts a bootstrap admin identity. It is a no-op when the
// email is already registered.
func SeedAdmin(ctx context.Context, database *gorm.DB, name, email, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}

	return database.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&user).Error
}
