package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"registrar/internal/catalog/models"
	"registrar/pkg/platform/sentinel"
)

type InMemoryFacultyStore struct {
	mu        sync.RWMutex
	faculties map[uuid.UUID]models.Faculty
}

func NewInMemoryFacultyStore() *InMemoryFacultyStore {
	return &InMemoryFacultyStore{faculties: make(map[uuid.UUID]models.Faculty)}
}

func (s *InMemoryFacultyStore) Create(_ context.Context, f *models.Faculty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.faculties[f.ID]; ok {
		return sentinel.ErrConflict
	}
	now := time.Now().UTC()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
	s.faculties[f.ID] = *f
	return nil
}

func (s *InMemoryFacultyStore) Update(_ context.Context, f *models.Faculty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.faculties[f.ID]; !ok {
		return sentinel.ErrNotFound
	}
	f.UpdatedAt = time.Now().UTC()
	s.faculties[f.ID] = *f
	return nil
}

func (s *InMemoryFacultyStore) FindByID(_ context.Context, id uuid.UUID) (*models.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.faculties[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &f, nil
}

func (s *InMemoryFacultyStore) FindAll(_ context.Context) ([]*models.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Faculty, 0, len(s.faculties))
	for _, f := range s.faculties {
		f := f
		out = append(out, &f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *InMemoryFacultyStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.faculties[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.faculties, id)
	return nil
}

type InMemorySubjectStore struct {
	mu       sync.RWMutex
	subjects map[uuid.UUID]models.Subject
}

func NewInMemorySubjectStore() *InMemorySubjectStore {
	return &InMemorySubjectStore{subjects: make(map[uuid.UUID]models.Subject)}
}

func (s *InMemorySubjectStore) Create(_ context.Context, sub *models.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subjects[sub.ID]; ok {
		return sentinel.ErrConflict
	}
	stored := *sub
	stored.Faculty = nil
	s.subjects[sub.ID] = stored
	return nil
}

func (s *InMemorySubjectStore) Update(_ context.Context, sub *models.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subjects[sub.ID]; !ok {
		return sentinel.ErrNotFound
	}
	stored := *sub
	stored.Faculty = nil
	s.subjects[sub.ID] = stored
	return nil
}

func (s *InMemorySubjectStore) FindByID(_ context.Context, id uuid.UUID) (*models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subjects[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &sub, nil
}

func (s *InMemorySubjectStore) FindAll(_ context.Context) ([]*models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Subject, 0, len(s.subjects))
	for _, sub := range s.subjects {
		sub := sub
		out = append(out, &sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *InMemorySubjectStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subjects[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.subjects, id)
	return nil
}
