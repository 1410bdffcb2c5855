package models

import (
	"time"

	"github.com/google/uuid"
)

// GadgetStatus is the closed set of lifecycle states a gadget can be in.
type GadgetStatus string

const (
	StatusAvailable      GadgetStatus = "Available"
	StatusDeployed       GadgetStatus = "Deployed"
	StatusDestroyed      GadgetStatus = "Destroyed"
	StatusDecommissioned GadgetStatus = "Decommissioned"
)

// GadgetStatuses lists every recognised lifecycle state.
var GadgetStatuses = []GadgetStatus{
	StatusAvailable,
	StatusDeployed,
	StatusDestroyed,
	StatusDecommissioned,
}

// Valid reports whether s is one of the four lifecycle states.
func (s GadgetStatus) Valid() bool {
	for _, known := range GadgetStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Gadget models a tracked fleet asset. Gadgets are never physically
// deleted; decommissioning retains the record with a timestamp.
type Gadget struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string       `gorm:"type:text;not null" json:"name"`
	Status           GadgetStatus `gorm:"type:text;not null" json:"status"`
	CreatedAt        time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`
	DecommissionedAt *time.Time   `json:"decommissionedAt"`
}
