package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/legalconnect/legalconnect/internal/model"
)

// Cache key prefixes and TTLs.
const (
	lawyerKeyPrefix = "lawyer:"

	// DefaultLawyerTTL is the TTL for cached lawyer profiles.
	DefaultLawyerTTL = 5 * time.Minute
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// GetLawyer retrieves a lawyer profile from cache by ID.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetLawyer(ctx context.Context, id int64) (*model.Lawyer, error) {
	key := lawyerKey(id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Treat any Redis failure as a miss; the repository is authoritative.
		return nil, ErrCacheMiss
	}

	var lawyer model.Lawyer
	if err := json.Unmarshal(data, &lawyer); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, ErrCacheMiss
	}

	return &lawyer, nil
}

// SetLawyer stores a lawyer profile in cache.
func (c *Cache) SetLawyer(ctx context.Context, lawyer *model.Lawyer, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultLawyerTTL
	}

	data, err := json.Marshal(lawyer)
	if err != nil {
		return fmt.Errorf("marshal lawyer: %w", err)
	}

	return c.client.Set(ctx, lawyerKey(lawyer.ID), data, ttl).Err()
}

// InvalidateLawyer removes a cached lawyer profile.
// Called after admin updates or deletes so stale data never outlives a write.
func (c *Cache) InvalidateLawyer(ctx context.Context, id int64) error {
	return c.client.Del(ctx, lawyerKey(id)).Err()
}

func lawyerKey(id int64) string {
	return lawyerKeyPrefix + strconv.FormatInt(id, 10)
}
