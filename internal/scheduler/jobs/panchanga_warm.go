package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/panchanga"
	"github.com/wonny/jyotish/backend/internal/reftables"
	"github.com/wonny/jyotish/backend/pkg/logger"
	"github.com/wonny/jyotish/backend/pkg/redis"
)

// PanchangaWarmJob precomputes today's and tomorrow's panchanga into the
// cache so the morning traffic spike never waits on resolution
// ⭐ SSOT: 판창가 캐시 워밍은 이 Job에서만
type PanchangaWarmJob struct {
	resolver contracts.ChartResolver
	tables   *reftables.Store
	cache    *redis.Cache
	logger   *logger.Logger
}

// NewPanchangaWarmJob creates the warm job
func NewPanchangaWarmJob(resolver contracts.ChartResolver, tables *reftables.Store, cache *redis.Cache, log *logger.Logger) *PanchangaWarmJob {
	return &PanchangaWarmJob{
		resolver: resolver,
		tables:   tables,
		cache:    cache,
		logger:   log,
	}
}

// Name returns the job name
func (j *PanchangaWarmJob) Name() string {
	return "panchanga_warm"
}

// Schedule runs shortly after midnight UTC
func (j *PanchangaWarmJob) Schedule() string {
	return "0 15 0 * * *"
}

// Run computes and caches the panchanga for today and tomorrow
func (j *PanchangaWarmJob) Run(ctx context.Context) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for _, date := range []time.Time{today, today.AddDate(0, 0, 1)} {
		snap, err := j.resolver.Resolve(ctx, date, false, contracts.Location{},
			[]contracts.Body{contracts.Sun, contracts.Moon})
		if err != nil {
			return fmt.Errorf("resolve %s: %w", date.Format("2006-01-02"), err)
		}

		p, err := panchanga.Compute(snap, date, j.tables)
		if err != nil {
			return fmt.Errorf("panchanga %s: %w", date.Format("2006-01-02"), err)
		}

		if err := j.cache.Set(ctx, redis.PanchangaKey(p.Date), p, redis.TTLDaily); err != nil {
			return fmt.Errorf("cache %s: %w", p.Date, err)
		}

		j.logger.WithFields(map[string]interface{}{
			"date":      p.Date,
			"tithi":     p.Tithi,
			"nakshatra": p.NakshatraName,
		}).Info("Panchanga warmed")
	}

	return nil
}
