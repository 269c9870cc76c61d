package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/panchanga"
	"github.com/wonny/jyotish/backend/internal/reftables"
	"github.com/wonny/jyotish/backend/pkg/logger"
	"github.com/wonny/jyotish/backend/pkg/metrics"
	"github.com/wonny/jyotish/backend/pkg/redis"
)

// PanchangaHandler serves the daily almanac
// ⭐ SSOT: 판창가 API 핸들러는 이 구조체에서만
type PanchangaHandler struct {
	resolver contracts.ChartResolver
	tables   *reftables.Store
	cache    *redis.Cache
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

// NewPanchangaHandler creates a new panchanga handler
func NewPanchangaHandler(resolver contracts.ChartResolver, tables *reftables.Store, cache *redis.Cache, log *logger.Logger, m *metrics.Metrics) *PanchangaHandler {
	return &PanchangaHandler{
		resolver: resolver,
		tables:   tables,
		cache:    cache,
		logger:   log,
		metrics:  m,
	}
}

// Get returns the panchanga for a date (today when omitted). An optional
// utc_offset shifts solar noon to the caller's locale; near the date line
// that can move the tithi.
// GET /api/panchanga?date=YYYY-MM-DD&utc_offset=5.5
func (h *PanchangaHandler) Get(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		dateStr = time.Now().UTC().Format("2006-01-02")
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	var offset float64
	if offStr := r.URL.Query().Get("utc_offset"); offStr != "" {
		offset, err = strconv.ParseFloat(offStr, 64)
		if err != nil || offset < -12 || offset > 14 {
			writeError(w, http.StatusBadRequest, "utc_offset must be a number of hours in [-12, 14]")
			return
		}
	}

	cacheKey := redis.PanchangaKey(dateStr)
	if offset != 0 {
		cacheKey = redis.PanchangaKey(fmt.Sprintf("%s@%+g", dateStr, offset))
	}

	var cached panchanga.Panchanga
	if hit, err := h.cache.Get(r.Context(), cacheKey, &cached); err == nil && hit {
		h.metrics.CacheHit()
		writeJSON(w, http.StatusOK, &cached)
		return
	}
	h.metrics.CacheMiss()

	snap, err := h.resolver.Resolve(r.Context(), date, false, contracts.Location{UTCOffset: offset},
		[]contracts.Body{contracts.Sun, contracts.Moon})
	if err != nil {
		h.logger.WithError(err).Error("Panchanga resolution failed")
		writeDomainError(w, err)
		return
	}

	p, err := panchanga.Compute(snap, date, h.tables)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	if err := h.cache.Set(r.Context(), cacheKey, p, redis.TTLDaily); err != nil {
		h.logger.WithError(err).Warn("Failed to cache panchanga")
	}

	writeJSON(w, http.StatusOK, p)
}
