package responsecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"menlo.ai/creator-insights-gateway/app/infrastructure/cache"
	"menlo.ai/creator-insights-gateway/app/utils/logger"
	"menlo.ai/creator-insights-gateway/app/utils/metrics"
)

const DefaultTTL = 15 * time.Minute

// Entry is the stored form of a computed result.
type Entry struct {
	Fingerprint string          `json:"fingerprint"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Cache memoizes feature results by fingerprint. Concurrent misses for one fingerprint
// share a single computation. Failed computations are never stored.
//
// Every invalidation starts a new generation. A computation that began in an earlier
// generation still answers its own callers but is not written back, and callers arriving
// after the invalidation start a fresh computation instead of joining it.
type Cache struct {
	store      cache.CacheService
	ttl        time.Duration
	group      singleflight.Group
	generation atomic.Uint64
	now        func() time.Time
}

func New(store cache.CacheService, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// WithClock replaces the clock used for expiry decisions.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// GetOrCompute returns the payload stored under fingerprint when it is younger than the TTL.
// Otherwise it runs compute once, stores the JSON encoding of its result and returns it.
func (c *Cache) GetOrCompute(ctx context.Context, fingerprint string, compute func(ctx context.Context) (any, error)) (json.RawMessage, error) {
	feature := FeatureOf(fingerprint)
	if payload, ok := c.lookup(ctx, fingerprint); ok {
		metrics.ObserveCacheLookup(feature, "hit")
		return payload, nil
	}

	generation := c.generation.Load()
	flightKey := fmt.Sprintf("%d|%s", generation, fingerprint)
	result, err, shared := c.group.Do(flightKey, func() (any, error) {
		// Another flight may have stored the entry between the lookup and now.
		if payload, ok := c.lookup(ctx, fingerprint); ok {
			return payload, nil
		}

		value, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s result: %w", feature, err)
		}
		if c.generation.Load() == generation {
			c.put(ctx, fingerprint, payload)
		}
		// An invalidation that landed around the write must not leave the result behind.
		if c.generation.Load() != generation {
			_ = c.store.Delete(ctx, fingerprint)
			logger.GetLogger().WithFields(logrus.Fields{"fingerprint": fingerprint}).Debug("response cache invalidated during computation, result not stored")
		}
		return json.RawMessage(payload), nil
	})
	if shared {
		metrics.ObserveCacheLookup(feature, "shared")
	} else {
		metrics.ObserveCacheLookup(feature, "miss")
	}
	if err != nil {
		return nil, err
	}
	return result.(json.RawMessage), nil
}

// Fetch is GetOrCompute with the payload decoded into T.
func Fetch[T any](ctx context.Context, c *Cache, fingerprint string, compute func(ctx context.Context) (T, error)) (T, error) {
	var out T
	payload, err := c.GetOrCompute(ctx, fingerprint, func(ctx context.Context) (any, error) {
		return compute(ctx)
	})
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("failed to decode cached %s result: %w", FeatureOf(fingerprint), err)
	}
	return out, nil
}

func (c *Cache) lookup(ctx context.Context, fingerprint string) (json.RawMessage, bool) {
	raw, err := c.store.Get(ctx, fingerprint)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.GetLogger().WithFields(logrus.Fields{"fingerprint": fingerprint}).Warnf("response cache read failed: %v", err)
		}
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Fingerprint != fingerprint {
		return nil, false
	}
	if c.now().Sub(entry.CreatedAt) >= c.ttl {
		return nil, false
	}
	return entry.Payload, true
}

func (c *Cache) put(ctx context.Context, fingerprint string, payload []byte) {
	raw, err := json.Marshal(Entry{
		Fingerprint: fingerprint,
		Payload:     payload,
		CreatedAt:   c.now().UTC(),
	})
	if err == nil {
		err = c.store.Set(ctx, fingerprint, raw, c.ttl)
	}
	if err != nil {
		logger.GetLogger().WithFields(logrus.Fields{"fingerprint": fingerprint}).Warnf("response cache write failed: %v", err)
	}
}

// Invalidate drops a single entry.
func (c *Cache) Invalidate(ctx context.Context, fingerprint string) error {
	c.generation.Add(1)
	return c.store.Delete(ctx, fingerprint)
}

// InvalidateFeature drops every entry of feature.
func (c *Cache) InvalidateFeature(ctx context.Context, feature string) error {
	c.generation.Add(1)
	return c.store.DeletePattern(ctx, fmt.Sprintf(cache.FeatureKeyPattern, feature))
}

func (c *Cache) InvalidateAll(ctx context.Context) error {
	c.generation.Add(1)
	return c.store.DeletePattern(ctx, cache.AllResponsesPattern)
}

// PurgeExpired asks the store to drop entries whose store-level expiry has passed.
func (c *Cache) PurgeExpired(ctx context.Context) (int, error) {
	return c.store.PurgeExpired(ctx)
}
