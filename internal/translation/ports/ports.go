// Package ports declares the interfaces between the translation modules so
// engine, overlay and service code stay decoupled from concrete adapters.
package ports

import (
	"context"

	"registrar/internal/translation/models"
)

// Provider is the external translation service. It is treated as unreliable:
// consumers must catch every failure at the call site and never propagate it
// past a domain write.
type Provider interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// Detector infers the source language of a text sample. Implementations never
// fail; they fall back to a local heuristic when the provider is unavailable.
type Detector interface {
	Detect(ctx context.Context, text string) string
}

// Filter narrows FindAll results. Zero values mean no filtering.
type Filter struct {
	Field string
	Lang  string
}

// Store persists translation rows. It is a thin persistence boundary: no
// deduplication, no retries, errors surface as-is.
type Store interface {
	// CreateMany inserts all rows in one batch and returns the inserted count.
	CreateMany(ctx context.Context, rows []models.Translation) (int, error)
	// FindOne returns sentinel.ErrNotFound when no row matches.
	FindOne(ctx context.Context, entityType, entityID, field, lang string) (*models.Translation, error)
	// FindAll returns rows ordered by (field, lang) ascending.
	FindAll(ctx context.Context, entityType, entityID string, filter Filter) ([]models.Translation, error)
	// DeleteMany removes every row for the entity and returns the count.
	DeleteMany(ctx context.Context, entityType, entityID string) (int, error)
}

// TxRunner executes fn atomically. Stores that support transactions carry
// them through the context; fn must pass the received context to every store
// call it makes.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Cache memoizes provider results across delete-then-recreate cycles.
// Implementations return sentinel.ErrNotFound on miss; callers treat every
// cache error as a miss.
type Cache interface {
	Get(ctx context.Context, text, from, to string) (string, error)
	Set(ctx context.Context, text, from, to, value string) error
}
