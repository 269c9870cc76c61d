package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/pkg/config"
	"github.com/wonny/jyotish/backend/pkg/httputil"
	"github.com/wonny/jyotish/backend/pkg/logger"
	"github.com/wonny/jyotish/backend/pkg/redis"
)

// RemoteProvider looks longitudes up from the hosted ephemeris API. Two rate
// gates apply: a local token bucket for this process, and the shared Redis
// sliding window across all instances (applied inside the HTTP client).
type RemoteProvider struct {
	cfg     config.EphemerisConfig
	client  *httputil.Client
	limiter *rate.Limiter
	logger  *logger.Logger
}

// longitudeResponse is the API's wire shape for a single lookup
type longitudeResponse struct {
	Body      string  `json:"body"`
	JulianDay float64 `json:"julian_day"`
	Longitude float64 `json:"longitude"`
}

// NewRemoteProvider builds a provider against cfg.BaseURL
func NewRemoteProvider(cfg config.EphemerisConfig, log *logger.Logger, redisLimiter *redis.RateLimiter) *RemoteProvider {
	client := httputil.NewWithTimeout(log, cfg.LookupTimeout)
	if redisLimiter != nil {
		client = client.WithRateLimiter(redisLimiter, redis.EphemerisRateLimit)
	}

	rps := cfg.RateLimit
	if rps <= 0 {
		rps = redis.EphemerisRateLimit.Limit
	}

	return &RemoteProvider{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		logger:  log,
	}
}

// Longitude implements contracts.PositionProvider
func (p *RemoteProvider) Longitude(ctx context.Context, julianDay float64, body contracts.Body) (float64, error) {
	if !body.Valid() {
		return 0, fmt.Errorf("unknown body %q", body)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}

	u := fmt.Sprintf("%s/longitude?%s", p.cfg.BaseURL, url.Values{
		"jd":   []string{fmt.Sprintf("%.6f", julianDay)},
		"body": []string{string(body)},
		"key":  []string{p.cfg.APIKey},
	}.Encode())

	resp, err := p.client.Get(ctx, u)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		io.Copy(io.Discard, resp.Body)
		return 0, fmt.Errorf("ephemeris API returned status %d", resp.StatusCode)
	}

	var lr longitudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return 0, fmt.Errorf("decode ephemeris response: %w", err)
	}

	// The response is untrusted; reject garbage rather than wrap it
	if math.IsNaN(lr.Longitude) || math.IsInf(lr.Longitude, 0) {
		return 0, fmt.Errorf("ephemeris API returned non-finite longitude for %s", body)
	}

	return lr.Longitude, nil
}
