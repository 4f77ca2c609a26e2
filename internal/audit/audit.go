// Package audit records translation lifecycle events (saved, replaced,
// deleted) as an append-only trail. Emission is best-effort: callers log
// failures and move on.
package audit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Event captures one translation lifecycle action. Keep it transport-agnostic
// so stores and sinks can fan out.
type Event struct {
	Timestamp  time.Time
	Action     string
	EntityType string
	EntityID   string
	Rows       int
}

const (
	ActionSaved    = "translations.saved"
	ActionReplaced = "translations.replaced"
	ActionDeleted  = "translations.deleted"
)

// Store is the persistence sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]Event, error)
}

// Publisher captures structured audit events. It is append-only and uses the
// store for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return p.store.Append(ctx, event)
}

func (p *Publisher) List(ctx context.Context, entityType, entityID string) ([]Event, error) {
	return p.store.ListByEntity(ctx, entityType, entityID)
}

// ChannelSink forwards events to an inbox so a Worker can persist them off
// the request path. Reads go to the Worker's store, not the sink.
type ChannelSink struct {
	inbox chan<- Event
}

func NewChannelSink(inbox chan<- Event) *ChannelSink {
	return &ChannelSink{inbox: inbox}
}

func (s *ChannelSink) Append(ctx context.Context, event Event) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case s.inbox <- event:
		return nil
	}
}

func (s *ChannelSink) ListByEntity(context.Context, string, string) ([]Event, error) {
	return nil, errors.New("channel sink is write-only")
}

// InMemoryStore keeps events in memory for development and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListByEntity(_ context.Context, entityType, entityID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Event, 0)
	for _, event := range s.events {
		if event.EntityType == entityType && event.EntityID == entityID {
			result = append(result, event)
		}
	}
	return result, nil
}
