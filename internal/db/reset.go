package db

import (
	"context"

	"gorm.io/gorm"

	"gadgetd/internal/models"
)

// Reset removes every row from the gadget, user, and audit tables. Meant
// for development and test environments only.
func Reset(ctx context.Context, database *gorm.DB) error {
	session := database.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})

	for _, model := range []any{
		&models.AuditLog{},
		&models.Gadget{},
		&models.User{},
	} {
		if err := session.Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
