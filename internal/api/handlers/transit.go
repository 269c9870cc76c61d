package handlers

import (
	"net/http"
	"time"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/profile"
	"github.com/wonny/jyotish/backend/internal/transit"
	"github.com/wonny/jyotish/backend/pkg/logger"
	"github.com/wonny/jyotish/backend/pkg/metrics"
	"github.com/wonny/jyotish/backend/pkg/redis"
)

// TransitHandler serves transit reports against stored natal profiles
// ⭐ SSOT: 트랜짓 API 핸들러는 이 구조체에서만
type TransitHandler struct {
	resolver contracts.ChartResolver
	profiles *profile.Repository
	cache    *redis.Cache
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

// NewTransitHandler creates a new transit handler
func NewTransitHandler(resolver contracts.ChartResolver, profiles *profile.Repository, cache *redis.Cache, log *logger.Logger, m *metrics.Metrics) *TransitHandler {
	return &TransitHandler{
		resolver: resolver,
		profiles: profiles,
		cache:    cache,
		logger:   log,
		metrics:  m,
	}
}

// Get returns today's (or the given date's) transits for a profile
// GET /api/transits?profile_id=...&date=YYYY-MM-DD
func (h *TransitHandler) Get(w http.ResponseWriter, r *http.Request) {
	profileID := r.URL.Query().Get("profile_id")
	if profileID == "" {
		writeError(w, http.StatusBadRequest, "profile_id is required")
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		dateStr = time.Now().UTC().Format("2006-01-02")
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	cacheKey := redis.TransitKey(dateStr, profileID)
	var cached transit.Report
	if hit, err := h.cache.Get(r.Context(), cacheKey, &cached); err == nil && hit {
		h.metrics.CacheHit()
		writeJSON(w, http.StatusOK, &cached)
		return
	}
	h.metrics.CacheMiss()

	report, err := h.compute(r, profileID, date)
	if err != nil {
		h.logger.WithError(err).WithField("profile_id", profileID).Error("Transit report failed")
		writeDomainError(w, err)
		return
	}

	if err := h.cache.Set(r.Context(), cacheKey, report, redis.TTLShort); err != nil {
		h.logger.WithError(err).Warn("Failed to cache transit report")
	}

	writeJSON(w, http.StatusOK, report)
}

// compute resolves both charts and builds the report
func (h *TransitHandler) compute(r *http.Request, profileID string, date time.Time) (*transit.Report, error) {
	p, err := h.profiles.GetByID(r.Context(), profileID)
	if err != nil {
		return nil, err
	}

	instant, hasTime := p.BirthInstant()
	natal, err := h.resolver.Resolve(r.Context(), instant, hasTime, p.Location, contracts.AllBodies)
	if err != nil {
		return nil, err
	}

	transiting, err := h.resolver.Resolve(r.Context(), date, false, p.Location, contracts.AllBodies)
	if err != nil {
		return nil, err
	}

	return transit.Compute(transiting, natal), nil
}
