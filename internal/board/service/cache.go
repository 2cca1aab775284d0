package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"openboard/internal/board/models"
	"openboard/internal/platform/metrics"
)

const snapshotCachePrefix = "pb:"

// cachedSnapshot versions the cache payload so a format change invalidates
// old entries instead of decoding garbage.
type cachedSnapshot struct {
	Version  int              `json:"version"`
	CachedAt time.Time        `json:"cachedAt"`
	Snapshot *models.Snapshot `json:"snapshot"`
}

const snapshotCacheVersion = 1

// SnapshotCache stores serialized envelopes in Redis with a TTL. All cache
// failures are soft: a broken cache degrades to direct store reads, never to
// request failures.
type SnapshotCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *SnapshotCache {
	return &SnapshotCache{redis: client, ttl: ttl, logger: logger}
}

// Get returns the cached snapshot for a board, or (nil, false) on miss or on
// any cache error.
func (c *SnapshotCache) Get(ctx context.Context, boardID string) (*models.Snapshot, bool) {
	data, err := c.redis.Get(ctx, snapshotCachePrefix+boardID).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "snapshot cache read failed", "board_id", boardID, "error", err.Error())
		}
		return nil, false
	}

	var entry cachedSnapshot
	if err := json.Unmarshal(data, &entry); err != nil || entry.Version != snapshotCacheVersion || entry.Snapshot == nil {
		return nil, false
	}
	return entry.Snapshot, true
}

// Set stores a snapshot. Errors are logged and dropped.
func (c *SnapshotCache) Set(ctx context.Context, boardID string, snapshot *models.Snapshot) {
	entry := cachedSnapshot{
		Version:  snapshotCacheVersion,
		CachedAt: time.Now().UTC(),
		Snapshot: snapshot,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		c.logger.WarnContext(ctx, "snapshot cache encode failed", "board_id", boardID, "error", err.Error())
		return
	}
	if err := c.redis.Set(ctx, snapshotCachePrefix+boardID, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "snapshot cache write failed", "board_id", boardID, "error", err.Error())
	}
}

// SnapshotSource produces public board snapshots.
type SnapshotSource interface {
	GetPublicBoardSnapshot(ctx context.Context, boardID string) (*models.Snapshot, error)
}

// Cache is the read-through cache capability consumed by CachedProjector.
type Cache interface {
	Get(ctx context.Context, boardID string) (*models.Snapshot, bool)
	Set(ctx context.Context, boardID string, snapshot *models.Snapshot)
}

// CachedProjector serves snapshots through the cache. Not-found outcomes are
// never cached: caching them would let a just-published board stay invisible
// for a TTL, and the negative path is already a single indexed lookup.
type CachedProjector struct {
	source  SnapshotSource
	cache   Cache
	metrics *metrics.Metrics
}

func NewCachedProjector(source SnapshotSource, cache Cache, m *metrics.Metrics) *CachedProjector {
	return &CachedProjector{source: source, cache: cache, metrics: m}
}

func (p *CachedProjector) GetPublicBoardSnapshot(ctx context.Context, boardID string) (*models.Snapshot, error) {
	if snapshot, ok := p.cache.Get(ctx, boardID); ok {
		p.metrics.IncrementCacheHit()
		return snapshot, nil
	}
	p.metrics.IncrementCacheMiss()

	snapshot, err := p.source.GetPublicBoardSnapshot(ctx, boardID)
	if err != nil {
		// Not-found included: negative results pass through uncached.
		return nil, err
	}
	p.cache.Set(ctx, boardID, snapshot)
	return snapshot, nil
}
