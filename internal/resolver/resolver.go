package resolver

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/pkg/config"
	"github.com/wonny/jyotish/backend/pkg/logger"
	"github.com/wonny/jyotish/backend/pkg/metrics"
)

// Resolver turns calendar input into chart snapshots by fanning body lookups
// out to the position provider.
// ⭐ SSOT: 스냅샷 생성은 이 타입을 통해서만
type Resolver struct {
	provider contracts.PositionProvider
	cfg      config.EphemerisConfig
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

// New creates a resolver over a position provider
func New(provider contracts.PositionProvider, cfg config.EphemerisConfig, log *logger.Logger, m *metrics.Metrics) *Resolver {
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = 5 * time.Second
	}
	return &Resolver{
		provider: provider,
		cfg:      cfg,
		logger:   log,
		metrics:  m,
	}
}

// Resolve builds a snapshot for the given civil date. When hasTime is false
// the time of day defaults to local solar noon and the snapshot records the
// substitution. A failed body lookup degrades that one position to Unknown;
// it never fails the whole snapshot.
func (r *Resolver) Resolve(ctx context.Context, date time.Time, hasTime bool, loc contracts.Location, bodies []contracts.Body) (*contracts.ChartSnapshot, error) {
	if len(bodies) == 0 {
		bodies = contracts.AllBodies
	}

	instant := date
	usedDefault := false
	if !hasTime {
		instant = solarNoonUTC(date, loc)
		usedDefault = true
	}
	jd := JulianDay(instant)

	snap := &contracts.ChartSnapshot{
		JulianDay:       jd,
		CivilDate:       civilDate(date, hasTime, loc),
		Positions:       make(map[contracts.Body]contracts.PlanetPosition, len(bodies)),
		UsedDefaultTime: usedDefault,
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.MaxConcurrent)

	for _, body := range bodies {
		body := body
		g.Go(func() error {
			lookupCtx, cancel := context.WithTimeout(gctx, r.cfg.LookupTimeout)
			defer cancel()

			lon, err := r.provider.Longitude(lookupCtx, jd, body)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				ephErr := &contracts.EphemerisError{Body: body, JulianDay: jd, Err: err}
				r.logger.WithError(ephErr).WithFields(map[string]interface{}{
					"body": string(body),
					"jd":   jd,
				}).Warn("Position lookup failed, degrading to unknown")
				r.metrics.EphemerisFailure(string(body))

				snap.Positions[body] = contracts.UnknownPosition(body)
				snap.Unreliable = append(snap.Unreliable, body)
				return nil // lookups degrade, they never abort the group
			}
			snap.Positions[body] = contracts.NewPlanetPosition(body, lon)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Parent cancellation still wins over per-body degradation
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.approximateAscendant(snap, instant, loc)
	return snap, nil
}

// solarNoonUTC returns 12:00 local time on the civil date, expressed in UTC
// via the location's fixed offset
func solarNoonUTC(date time.Time, loc contracts.Location) time.Time {
	y, m, d := date.Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	return noon.Add(-time.Duration(loc.UTCOffset * float64(time.Hour)))
}

// civilDate pins the local calendar date the snapshot answers for. Without a
// time of day the input already names that date; with one, the instant is UTC
// and shifts by the location offset first.
func civilDate(date time.Time, hasTime bool, loc contracts.Location) time.Time {
	local := date
	if hasTime {
		local = date.UTC().Add(time.Duration(loc.UTCOffset * float64(time.Hour)))
	}
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// approximateAscendant estimates the rising sign from the Sun. Around
// sunrise the Sun's own sign rises; the ascendant then advances one sign
// roughly every two hours. Coarse, and flagged as such on the snapshot.
func (r *Resolver) approximateAscendant(snap *contracts.ChartSnapshot, instant time.Time, loc contracts.Location) {
	sun, ok := snap.Position(contracts.Sun)
	if !ok {
		snap.AscendantSign = contracts.Aries
		snap.AscendantApprox = true
		return
	}

	localInstant := instant.UTC().Add(time.Duration(loc.UTCOffset * float64(time.Hour)))
	hour := localInstant.Hour()
	offset := ((hour-6)%24 + 24) % 24 / 2
	snap.AscendantSign = sun.Sign.Offset(offset)
	snap.AscendantApprox = true
}
