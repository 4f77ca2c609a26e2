package engine

import "sync"

// keyedMutex serializes writes per (entityType, entityID) so a
// delete-then-recreate from one update cannot interleave with another for the
// same entity. Entries are reference-counted and removed once unlocked.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyEntry
}

type keyEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{entries: make(map[string]*keyEntry)}
}

func (k *keyedMutex) lock(entityType, entityID string) (unlock func()) {
	key := entityType + "\x00" + entityID

	k.mu.Lock()
	entry, ok := k.entries[key]
	if !ok {
		entry = &keyEntry{}
		k.entries[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}
