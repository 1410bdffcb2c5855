package api

import (
	"errors"

	"gorm.io/gorm"

	"gadgetd/internal/auth"
)

// Config controls runtime behaviour for the API handlers.
type Config struct {
	AllowedOrigins []string
}

// API wires the store, token service, and configuration for HTTP handlers.
type API struct {
	db     *gorm.DB
	tokens *auth.TokenService
	config Config
	locks  *gadgetLocks
}

// New initialises the API layer.
func New(database *gorm.DB, tokens *auth.TokenService, cfg Config) (*API, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if tokens == nil {
		return nil, errors.New("token service is required")
	}

	return &API{
		db:     database,
		tokens: tokens,
		config: cfg,
		locks:  newGadgetLocks(),
	}, nil
}
