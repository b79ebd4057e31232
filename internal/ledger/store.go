// internal/ledger/store.go
//
// Persistence for stats rows. The memory implementation backs tests and
// ephemeral runs; durable storage lives in sqlite.go. Absence of a row is not
// an error: it reads as zero stats, matching best-effort device storage.

package ledger

import (
	"context"
	"sync"
)

// Store persists one Stats row per (owner, mode).
type Store interface {
	// Load retrieves the stats row; a missing row yields zero Stats, nil error.
	Load(ctx context.Context, owner, mode string) (Stats, error)

	// Save persists or updates the stats row.
	Save(ctx context.Context, owner, mode string, s Stats) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex
	rows map[string]Stats // keyed by owner + "|" + mode
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{rows: make(map[string]Stats)}
}

func (m *memory) Load(ctx context.Context, owner, mode string) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rows[owner+"|"+mode], nil
}

func (m *memory) Save(ctx context.Context, owner, mode string, s Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[owner+"|"+mode] = s
	return nil
}
