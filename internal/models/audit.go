package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records a single lifecycle mutation for later inspection.
// Writes are best-effort and never fail the originating request.
type AuditLog struct {
	ID      int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	Actor   string            `gorm:"type:text;not null" json:"actor"`
	Action  string            `gorm:"type:text;not null" json:"action"`
	Object  string            `gorm:"type:text" json:"object"`
	Details datatypes.JSONMap `gorm:"type:jsonb" json:"details"`
	At      time.Time         `gorm:"autoCreateTime" json:"at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
