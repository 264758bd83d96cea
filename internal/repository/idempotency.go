package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rideandbuy/paylink/internal/models"
)

// IdempotencyRepository stores replayable responses keyed by Idempotency-Key
// and request path. Get returns (nil, nil) for unknown keys and Store keeps the
// first response written for a key.
type IdempotencyRepository interface {
	Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	PingContext(ctx context.Context) error
}

type idempotencyCacheKey struct {
	key  string
	path string
}

// MemoryIdempotencyRepository keeps idempotency keys in process memory
type MemoryIdempotencyRepository struct {
	entries map[idempotencyCacheKey]models.IdempotencyKey
	mu      sync.RWMutex
}

// NewMemoryIdempotencyRepository creates an empty in-memory idempotency cache
func NewMemoryIdempotencyRepository() *MemoryIdempotencyRepository {
	return &MemoryIdempotencyRepository{
		entries: make(map[idempotencyCacheKey]models.IdempotencyKey),
	}
}

// Get retrieves a cached response, or nil when the key is unknown
func (r *MemoryIdempotencyRepository) Get(_ context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[idempotencyCacheKey{key: key, path: requestPath}]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Store caches a response unless one already exists for the key and path
func (r *MemoryIdempotencyRepository) Store(_ context.Context, idemKey *models.IdempotencyKey) error {
	entry := *idemKey
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := idempotencyCacheKey{key: entry.Key, path: entry.RequestPath}
	if _, exists := r.entries[k]; exists {
		return nil
	}
	r.entries[k] = entry
	return nil
}

// DeleteOlderThan removes keys created before cutoff and returns how many were removed
func (r *MemoryIdempotencyRepository) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for k, entry := range r.entries {
		if entry.CreatedAt.Before(cutoff) {
			delete(r.entries, k)
			deleted++
		}
	}
	return deleted, nil
}

// PingContext always succeeds for the in-memory cache.
func (r *MemoryIdempotencyRepository) PingContext(context.Context) error {
	return nil
}

// Ensure concrete types implement interfaces
var (
	_ TransactionRepository = (*TransactionStore)(nil)
	_ IdempotencyRepository = (*MemoryIdempotencyRepository)(nil)
	_ IdempotencyRepository = (*BoltIdempotencyRepository)(nil)
	_ IdempotencyRepository = (*PostgresIdempotencyRepository)(nil)
)
