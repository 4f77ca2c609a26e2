// Package service exposes the translation operations consumed by domain
// services and the HTTP layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"registrar/internal/audit"
	"registrar/internal/translation/engine"
	"registrar/internal/translation/models"
	"registrar/internal/translation/ports"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/sentinel"
)

type Service struct {
	engine *engine.Engine
	store  ports.Store
	audit  *audit.Publisher
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher *audit.Publisher) Option {
	return func(s *Service) {
		s.audit = publisher
	}
}

func New(eng *engine.Engine, store ports.Store, opts ...Option) (*Service, error) {
	if eng == nil {
		return nil, fmt.Errorf("translation engine is required")
	}
	if store == nil {
		return nil, fmt.Errorf("translation store is required")
	}

	svc := &Service{
		engine: eng,
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// TranslateAndSave persists the source-language rows plus best-effort target
// rows for the given field set. It does not clear existing rows; use
// ReplaceTranslations when updating.
func (s *Service) TranslateAndSave(ctx context.Context, entityType, entityID string, fields map[string]string) error {
	err := s.engine.SaveTranslations(ctx, models.Request{
		EntityType: entityType,
		EntityID:   entityID,
		Fields:     fields,
	})
	if err != nil {
		return err
	}
	s.emit(ctx, audit.ActionSaved, entityType, entityID, len(fields))
	return nil
}

// ReplaceTranslations invalidates every stored row for the entity and
// re-creates the full set from the given fields.
func (s *Service) ReplaceTranslations(ctx context.Context, entityType, entityID string, fields map[string]string) error {
	err := s.engine.ReplaceTranslations(ctx, models.Request{
		EntityType: entityType,
		EntityID:   entityID,
		Fields:     fields,
	})
	if err != nil {
		return err
	}
	s.emit(ctx, audit.ActionReplaced, entityType, entityID, len(fields))
	return nil
}

// GetTranslation returns one stored value, or a not-found error when the
// entity has no row for that field and language.
func (s *Service) GetTranslation(ctx context.Context, entityType, entityID, field, lang string) (*models.Translation, error) {
	if entityType == "" || entityID == "" || field == "" || lang == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "entity type, id, field and lang are required")
	}
	row, err := s.store.FindOne(ctx, entityType, entityID, field, lang)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "translation not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load translation")
	}
	return row, nil
}

// GetAllTranslations lists stored rows for an entity, optionally narrowed by
// field and language, ordered by (field, lang).
func (s *Service) GetAllTranslations(ctx context.Context, entityType, entityID, field, lang string) ([]models.Translation, error) {
	if entityType == "" || entityID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "entity type and id are required")
	}
	rows, err := s.store.FindAll(ctx, entityType, entityID, ports.Filter{Field: field, Lang: lang})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list translations")
	}
	return rows, nil
}

// DeleteTranslations removes every stored row for the entity and returns the
// removed count.
func (s *Service) DeleteTranslations(ctx context.Context, entityType, entityID string) (int, error) {
	if entityType == "" || entityID == "" {
		return 0, dErrors.New(dErrors.CodeBadRequest, "entity type and id are required")
	}
	count, err := s.store.DeleteMany(ctx, entityType, entityID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete translations")
	}
	s.emit(ctx, audit.ActionDeleted, entityType, entityID, count)
	return count, nil
}

func (s *Service) emit(ctx context.Context, action, entityType, entityID string, rows int) {
	if s.audit == nil {
		return
	}
	err := s.audit.Emit(ctx, audit.Event{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Rows:       rows,
	})
	if err != nil {
		s.logger.Warn("audit emit failed", "action", action, "error", err)
	}
}
