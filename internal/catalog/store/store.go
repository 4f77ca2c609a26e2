// Package store defines the persistence contracts for the enrollment domain.
// Production implementations are owned by the enrollment platform; this
// module ships in-memory versions for local runs and tests.
package store

import (
	"context"

	"github.com/google/uuid"

	"registrar/internal/catalog/models"
)

type FacultyStore interface {
	Create(ctx context.Context, f *models.Faculty) error
	Update(ctx context.Context, f *models.Faculty) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Faculty, error)
	FindAll(ctx context.Context) ([]*models.Faculty, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SubjectStore interface {
	Create(ctx context.Context, s *models.Subject) error
	Update(ctx context.Context, s *models.Subject) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Subject, error)
	FindAll(ctx context.Context) ([]*models.Subject, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
