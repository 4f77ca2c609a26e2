// Package service orchestrates domain writes with the translation pipeline
// and domain reads with the overlay applier. Domain writes never fail because
// of translation trouble; a failed translation pass is logged and the stored
// record keeps its source-language fields.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"registrar/internal/catalog/models"
	"registrar/internal/catalog/store"
	"registrar/internal/translation/overlay"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/sentinel"
)

// Translator is the slice of the translation service the catalog needs.
type Translator interface {
	ReplaceTranslations(ctx context.Context, entityType, entityID string, fields map[string]string) error
	DeleteTranslations(ctx context.Context, entityType, entityID string) (int, error)
}

type Service struct {
	faculties  store.FacultyStore
	subjects   store.SubjectStore
	translator Translator
	applier    *overlay.Applier
	logger     *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger.With("component", "catalog_service")
		}
	}
}

func New(
	faculties store.FacultyStore,
	subjects store.SubjectStore,
	translator Translator,
	applier *overlay.Applier,
	opts ...Option,
) (*Service, error) {
	if faculties == nil || subjects == nil {
		return nil, errors.New("catalog service requires faculty and subject stores")
	}
	if translator == nil || applier == nil {
		return nil, errors.New("catalog service requires a translator and an applier")
	}

	s := &Service{
		faculties:  faculties,
		subjects:   subjects,
		translator: translator,
		applier:    applier,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) CreateFaculty(ctx context.Context, f *models.Faculty) error {
	if f == nil {
		return dErrors.New(dErrors.CodeBadRequest, "faculty is required")
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if err := s.faculties.Create(ctx, f); err != nil {
		return storeError(err, "create faculty")
	}
	s.translate(ctx, f, facultyFields(f))
	return nil
}

func (s *Service) UpdateFaculty(ctx context.Context, f *models.Faculty) error {
	if f == nil {
		return dErrors.New(dErrors.CodeBadRequest, "faculty is required")
	}
	if err := s.faculties.Update(ctx, f); err != nil {
		return storeError(err, "update faculty")
	}
	s.translate(ctx, f, facultyFields(f))
	return nil
}

func (s *Service) GetFaculty(ctx context.Context, id uuid.UUID, lang string) (*models.Faculty, error) {
	f, err := s.faculties.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "get faculty")
	}
	s.applier.Apply(ctx, f, lang)
	return f, nil
}

func (s *Service) ListFaculties(ctx context.Context, lang string) ([]*models.Faculty, error) {
	faculties, err := s.faculties.FindAll(ctx)
	if err != nil {
		return nil, storeError(err, "list faculties")
	}
	for _, f := range faculties {
		s.applier.Apply(ctx, f, lang)
	}
	return faculties, nil
}

func (s *Service) DeleteFaculty(ctx context.Context, id uuid.UUID) error {
	if err := s.faculties.Delete(ctx, id); err != nil {
		return storeError(err, "delete faculty")
	}
	s.discardTranslations(ctx, models.KindFaculty, id.String())
	return nil
}

func (s *Service) CreateSubject(ctx context.Context, sub *models.Subject) error {
	if sub == nil {
		return dErrors.New(dErrors.CodeBadRequest, "subject is required")
	}
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	if _, err := s.faculties.FindByID(ctx, sub.FacultyID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeBadRequest, "unknown faculty")
		}
		return storeError(err, "create subject")
	}
	if err := s.subjects.Create(ctx, sub); err != nil {
		return storeError(err, "create subject")
	}
	s.translate(ctx, sub, subjectFields(sub))
	return nil
}

func (s *Service) UpdateSubject(ctx context.Context, sub *models.Subject) error {
	if sub == nil {
		return dErrors.New(dErrors.CodeBadRequest, "subject is required")
	}
	if err := s.subjects.Update(ctx, sub); err != nil {
		return storeError(err, "update subject")
	}
	s.translate(ctx, sub, subjectFields(sub))
	return nil
}

// GetSubject returns the subject with its owning faculty attached, both
// localized for lang when translations exist.
func (s *Service) GetSubject(ctx context.Context, id uuid.UUID, lang string) (*models.Subject, error) {
	sub, err := s.subjects.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "get subject")
	}
	if f, err := s.faculties.FindByID(ctx, sub.FacultyID); err == nil {
		sub.Faculty = f
	}
	s.applier.Apply(ctx, sub, lang)
	return sub, nil
}

func (s *Service) ListSubjects(ctx context.Context, lang string) ([]*models.Subject, error) {
	subjects, err := s.subjects.FindAll(ctx)
	if err != nil {
		return nil, storeError(err, "list subjects")
	}
	for _, sub := range subjects {
		if f, err := s.faculties.FindByID(ctx, sub.FacultyID); err == nil {
			sub.Faculty = f
		}
		s.applier.Apply(ctx, sub, lang)
	}
	return subjects, nil
}

func (s *Service) DeleteSubject(ctx context.Context, id uuid.UUID) error {
	if err := s.subjects.Delete(ctx, id); err != nil {
		return storeError(err, "delete subject")
	}
	s.discardTranslations(ctx, models.KindSubject, id.String())
	return nil
}

// translate refreshes the translation rows for an entity after a write. It is
// best effort: a failure leaves the domain write intact.
func (s *Service) translate(ctx context.Context, entity overlay.Entity, fields map[string]string) {
	if len(fields) == 0 {
		return
	}
	err := s.translator.ReplaceTranslations(ctx, entity.TranslationKind(), entity.TranslationID(), fields)
	if err != nil {
		s.logger.Warn("translation pass failed",
			"entity_type", entity.TranslationKind(),
			"entity_id", entity.TranslationID(),
			"error", err)
	}
}

func (s *Service) discardTranslations(ctx context.Context, entityType, entityID string) {
	if _, err := s.translator.DeleteTranslations(ctx, entityType, entityID); err != nil {
		s.logger.Warn("failed to discard translations",
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err)
	}
}

func facultyFields(f *models.Faculty) map[string]string {
	return map[string]string{
		"title":       f.Title,
		"description": f.Description,
	}
}

func subjectFields(sub *models.Subject) map[string]string {
	return map[string]string{
		"title":       sub.Title,
		"description": sub.Description,
	}
}

func storeError(err error, op string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, op+": not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeBadRequest, op+": already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("%s failed", op))
	}
}
