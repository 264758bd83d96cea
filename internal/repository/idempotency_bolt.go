package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/rideandbuy/paylink/internal/models"
)

const idempotencyBucket = "idempotency_keys"

// BoltIdempotencyRepository stores idempotency keys in a single BoltDB file
type BoltIdempotencyRepository struct {
	db *bolt.DB
}

// NewBoltIdempotencyRepository opens (or creates) the BoltDB file at path
func NewBoltIdempotencyRepository(path string) (*BoltIdempotencyRepository, error) {
	database, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = database.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(idempotencyBucket))
		return err
	})
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to create idempotency bucket: %w", err)
	}

	return &BoltIdempotencyRepository{db: database}, nil
}

// Close releases the database file lock.
func (r *BoltIdempotencyRepository) Close() error {
	return r.db.Close()
}

// Get retrieves a cached response, or nil when the key is unknown
func (r *BoltIdempotencyRepository) Get(_ context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	var result *models.IdempotencyKey

	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(idempotencyBucket)).Get(boltKey(key, requestPath))
		if v == nil {
			return nil
		}
		var idemKey models.IdempotencyKey
		if err := json.Unmarshal(v, &idemKey); err != nil {
			return err
		}
		result = &idemKey
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency key: %w", err)
	}

	return result, nil
}

// Store caches a response unless one already exists for the key and path
func (r *BoltIdempotencyRepository) Store(_ context.Context, idemKey *models.IdempotencyKey) error {
	entry := *idemKey
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(idempotencyBucket))
		k := boltKey(entry.Key, entry.RequestPath)
		if b.Get(k) != nil {
			return nil
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		return b.Put(k, data)
	})
	if err != nil {
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}

	return nil
}

// DeleteOlderThan removes keys created before cutoff and returns how many were removed
func (r *BoltIdempotencyRepository) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64

	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(idempotencyBucket))

		// Deleting while iterating a bolt cursor skips entries, so collect first.
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var entry models.IdempotencyKey
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}
			if entry.CreatedAt.Before(cutoff) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete idempotency keys: %w", err)
	}

	return deleted, nil
}

// PingContext verifies the bucket is readable.
func (r *BoltIdempotencyRepository) PingContext(context.Context) error {
	return r.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(idempotencyBucket)) == nil {
			return fmt.Errorf("idempotency bucket missing")
		}
		return nil
	})
}

func boltKey(key, requestPath string) []byte {
	return []byte(requestPath + "\x00" + key)
}
