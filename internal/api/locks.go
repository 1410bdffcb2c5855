package api

import (
	"sync"

	"github.com/google/uuid"
)

// gadgetLocks serializes read-modify-write sequences per gadget id.
// There is exactly one logical service instance, so in-process locking
// is sufficient to prevent two concurrent mutations from racing.
type gadgetLocks struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newGadgetLocks() *gadgetLocks {
	return &gadgetLocks{entries: make(map[uuid.UUID]*lockEntry)}
}

// lock acquires the mutex for the given gadget id and returns the
// release function. Entries are dropped once the last holder releases.
func (l *gadgetLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.entries[id]
	if !ok {
		entry = &lockEntry{}
		l.entries[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, id)
		}
		l.mu.Unlock()
	}
}
