package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/profile"
	"github.com/wonny/jyotish/backend/pkg/logger"
	"github.com/wonny/jyotish/backend/pkg/metrics"
	"github.com/wonny/jyotish/backend/pkg/redis"
)

// BeneficHandler handles benefic tabulation endpoints
// ⭐ SSOT: 길성 점수표 API 핸들러는 이 구조체에서만
type BeneficHandler struct {
	resolver  contracts.ChartResolver
	tabulator contracts.BeneficTabulator
	profiles  *profile.Repository
	cache     *redis.Cache
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

// NewBeneficHandler creates a new benefic handler
func NewBeneficHandler(resolver contracts.ChartResolver, tabulator contracts.BeneficTabulator, profiles *profile.Repository, cache *redis.Cache, log *logger.Logger, m *metrics.Metrics) *BeneficHandler {
	return &BeneficHandler{
		resolver:  resolver,
		tabulator: tabulator,
		profiles:  profiles,
		cache:     cache,
		logger:    log,
		metrics:   m,
	}
}

// TabulateRequest is the POST /api/benefics/tabulate body. Either a stored
// profile or inline birth data must be given.
type TabulateRequest struct {
	ProfileID string `json:"profile_id,omitempty"`

	BirthDate string              `json:"birth_date,omitempty"` // YYYY-MM-DD
	BirthTime string              `json:"birth_time,omitempty"` // HH:MM, optional
	Location  *contracts.Location `json:"location,omitempty"`
}

// Tabulate builds the benefit tables for a natal chart
// POST /api/benefics/tabulate
func (h *BeneficHandler) Tabulate(w http.ResponseWriter, r *http.Request) {
	var req TabulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	instant, hasTime, loc, ok := h.birthInput(w, r, &req)
	if !ok {
		return
	}

	natal, err := h.resolver.Resolve(r.Context(), instant, hasTime, loc, contracts.AllBodies)
	if err != nil {
		h.logger.WithError(err).Error("Natal chart resolution failed")
		writeDomainError(w, err)
		return
	}

	// The tabulation is pure in (natal moment, location); cache hard
	cacheKey := redis.TabulationKey(natal.JulianDay, loc.Lat, loc.Lon)
	var cached contracts.TabulationResult
	if hit, err := h.cache.Get(r.Context(), cacheKey, &cached); err == nil && hit {
		h.metrics.CacheHit()
		writeJSON(w, http.StatusOK, &cached)
		return
	}
	h.metrics.CacheMiss()

	result, err := h.tabulator.Tabulate(natal)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := h.cache.Set(r.Context(), cacheKey, result, redis.TTLImmutable); err != nil {
		h.logger.WithError(err).Warn("Failed to cache tabulation")
	}

	writeJSON(w, http.StatusOK, result)
}

// birthInput resolves the request to a birth instant, writing the error
// response itself when the input is unusable
func (h *BeneficHandler) birthInput(w http.ResponseWriter, r *http.Request, req *TabulateRequest) (time.Time, bool, contracts.Location, bool) {
	if req.ProfileID != "" {
		p, err := h.profiles.GetByID(r.Context(), req.ProfileID)
		if err != nil {
			writeDomainError(w, err)
			return time.Time{}, false, contracts.Location{}, false
		}
		instant, hasTime := p.BirthInstant()
		return instant, hasTime, p.Location, true
	}

	if req.BirthDate == "" || req.Location == nil {
		writeError(w, http.StatusBadRequest, "profile_id or birth_date+location required")
		return time.Time{}, false, contracts.Location{}, false
	}

	date, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
		return time.Time{}, false, contracts.Location{}, false
	}

	if req.BirthTime == "" {
		return date, false, *req.Location, true
	}

	clock, err := time.Parse("15:04", req.BirthTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "birth_time must be HH:MM")
		return time.Time{}, false, contracts.Location{}, false
	}

	local := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
	utc := local.Add(-time.Duration(req.Location.UTCOffset * float64(time.Hour)))
	return utc, true, *req.Location, true
}
