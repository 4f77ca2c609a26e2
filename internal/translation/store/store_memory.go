// Package store persists translation rows. Implementations are thin
// persistence boundaries: no deduplication, no domain logic.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"registrar/internal/translation/models"
	"registrar/internal/translation/ports"
	"registrar/pkg/platform/sentinel"
)

// InMemoryStore keeps translation rows in process memory. It backs unit tests
// and development wiring without a database.
type InMemoryStore struct {
	mu   sync.RWMutex
	rows map[string][]models.Translation
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{rows: make(map[string][]models.Translation)}
}

func entityKey(entityType, entityID string) string {
	return entityType + "\x00" + entityID
}

func (s *InMemoryStore) CreateMany(_ context.Context, rows []models.Translation) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
		if row.UpdatedAt.IsZero() {
			row.UpdatedAt = now
		}
		key := entityKey(row.EntityType, row.EntityID)
		s.rows[key] = append(s.rows[key], row)
	}
	return len(rows), nil
}

func (s *InMemoryStore) FindOne(_ context.Context, entityType, entityID, field, lang string) (*models.Translation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, row := range s.rows[entityKey(entityType, entityID)] {
		if row.Field == field && row.Lang == lang {
			found := row
			return &found, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindAll(_ context.Context, entityType, entityID string, filter ports.Filter) ([]models.Translation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Translation, 0)
	for _, row := range s.rows[entityKey(entityType, entityID)] {
		if filter.Field != "" && row.Field != filter.Field {
			continue
		}
		if filter.Lang != "" && row.Lang != filter.Lang {
			continue
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Field != result[j].Field {
			return result[i].Field < result[j].Field
		}
		return result[i].Lang < result[j].Lang
	})
	return result, nil
}

func (s *InMemoryStore) DeleteMany(_ context.Context, entityType, entityID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := entityKey(entityType, entityID)
	count := len(s.rows[key])
	delete(s.rows, key)
	return count, nil
}
