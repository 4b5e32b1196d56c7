package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/reglens-inc/reglens-engine/pkg/database"
)

// Postgres is a KV implementation backed by a single engine_kv_entries
// table. Each key holds one JSONB document; writes are whole-value upserts,
// so concurrent writers across processes are last-writer-wins, matching the
// contract in kv.go.
type Postgres struct {
	db *database.DB

	mu       sync.RWMutex
	watchers []func(key string)
}

// NewPostgres creates a Postgres-backed store on the given pool.
func NewPostgres(db *database.DB) *Postgres {
	return &Postgres{db: db}
}

// Get implements KV.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT value FROM engine_kv_entries WHERE key = $1`

	var value []byte
	err := p.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return value, true, nil
}

// Set implements KV.
func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO engine_kv_entries (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	if _, err := p.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}

	p.mu.RLock()
	watchers := make([]func(string), len(p.watchers))
	copy(watchers, p.watchers)
	p.mu.RUnlock()

	for _, fn := range watchers {
		fn(key)
	}
	return nil
}

// Watch implements KV.
func (p *Postgres) Watch(fn func(key string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.watchers = append(p.watchers, fn)
}

// Ensure Postgres implements KV at compile time.
var _ KV = (*Postgres)(nil)
