package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/jyotish/backend/pkg/logger"
	"github.com/wonny/jyotish/backend/pkg/redis"
)

// CachePruneJob drops transit report entries at the start of each day.
// They are keyed by date, so yesterday's entries are dead weight the moment
// the date rolls over, well before their TTL expires.
// ⭐ SSOT: 캐시 정리는 이 Job에서만
type CachePruneJob struct {
	cache  *redis.Cache
	logger *logger.Logger
}

// NewCachePruneJob creates the prune job
func NewCachePruneJob(cache *redis.Cache, log *logger.Logger) *CachePruneJob {
	return &CachePruneJob{cache: cache, logger: log}
}

// Name returns the job name
func (j *CachePruneJob) Name() string {
	return "cache_prune"
}

// Schedule runs just after midnight UTC, before the panchanga warm job
func (j *CachePruneJob) Schedule() string {
	return "0 5 0 * * *"
}

// Run deletes stale transit entries
func (j *CachePruneJob) Run(ctx context.Context) error {
	deleted, err := j.cache.DeleteByPattern(ctx, "transit:*")
	if err != nil {
		return fmt.Errorf("prune transit cache: %w", err)
	}

	j.logger.WithField("deleted", deleted).Info("Cache pruned")
	return nil
}
