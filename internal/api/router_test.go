package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/jyotish/backend/internal/api/handlers"
	"github.com/wonny/jyotish/backend/internal/benefic"
	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/electional"
	"github.com/wonny/jyotish/backend/internal/ephemeris"
	"github.com/wonny/jyotish/backend/internal/evaluator"
	"github.com/wonny/jyotish/backend/internal/reftables"
	"github.com/wonny/jyotish/backend/internal/resolver"
	"github.com/wonny/jyotish/backend/pkg/config"
	"github.com/wonny/jyotish/backend/pkg/logger"
	"github.com/wonny/jyotish/backend/pkg/redis"
)

// testRouter wires the full stack over the built-in provider and a disabled
// cache; no external services needed
func testRouter(t *testing.T) http.Handler {
	t.Helper()

	log := logger.Nop()
	tables, err := reftables.New()
	require.NoError(t, err)

	cfg := config.EphemerisConfig{Provider: "builtin", LookupTimeout: time.Second, MaxConcurrent: 4}
	res := resolver.New(ephemeris.NewMeanProvider(), cfg, log, nil)
	eval := evaluator.New(tables, log)
	scanner := electional.New(res, eval, tables, log, nil)
	tabulator := benefic.New(tables, log, nil)

	client, err := redis.New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)
	cache := redis.NewCache(client, "jyotish-test")

	h := Handlers{
		Electional: handlers.NewElectionalHandler(scanner, tables, log),
		Benefic:    handlers.NewBeneficHandler(res, tabulator, nil, cache, log, nil),
		Panchanga:  handlers.NewPanchangaHandler(res, tables, cache, log, nil),
		Transit:    handlers.NewTransitHandler(res, nil, cache, log, nil),
		Profile:    handlers.NewProfileHandler(nil, log),
		Stream:     handlers.NewTransitStreamHandler(res, nil, log),
	}
	return NewRouter(h, log, nil)
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestScanEndpoint(t *testing.T) {
	body, _ := json.Marshal(handlers.ScanRequest{
		Activity: "wedding",
		Start:    "2026-09-01",
		End:      "2026-09-20",
		Location: contracts.Location{Lat: 28.6, Lon: 77.2, UTCOffset: 5.5},
	})

	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("POST", "/api/electional/scan", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result contracts.ScanResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "wedding", result.Activity)
	assert.NotEmpty(t, result.ID)
	assert.NotEmpty(t, result.Best.Subject)
	assert.Equal(t, 20, result.DaysScanned)
	assert.NotEmpty(t, result.Best.TierName)
}

func TestScanEndpoint_UnknownActivity(t *testing.T) {
	body, _ := json.Marshal(handlers.ScanRequest{
		Activity: "coronation",
		Start:    "2026-09-01",
		End:      "2026-09-02",
	})

	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("POST", "/api/electional/scan", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["activities"], "error lists the known activities")
}

func TestScanEndpoint_BadDates(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"garbage start", "next tuesday", "2026-09-02"},
		{"garbage end", "2026-09-01", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(handlers.ScanRequest{Activity: "wedding", Start: tt.start, End: tt.end})
			rec := httptest.NewRecorder()
			testRouter(t).ServeHTTP(rec, httptest.NewRequest("POST", "/api/electional/scan", bytes.NewReader(body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestScanEndpoint_ReversedRange(t *testing.T) {
	body, _ := json.Marshal(handlers.ScanRequest{
		Activity: "wedding",
		Start:    "2026-09-20",
		End:      "2026-09-01",
	})

	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("POST", "/api/electional/scan", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestActivitiesEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/api/electional/activities", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Activities []string `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Activities, "wedding")
	assert.Contains(t, resp.Activities, "education")
}

func TestPanchangaEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/api/panchanga?date=2026-09-01", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-09-01", resp["date"])
	assert.NotEmpty(t, resp["nakshatra_name"])

	tithi := resp["tithi"].(float64)
	assert.GreaterOrEqual(t, tithi, 1.0)
	assert.LessOrEqual(t, tithi, 30.0)
}

func TestPanchangaEndpoint_BadDate(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/api/panchanga?date=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPanchangaEndpoint_UTCOffset(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/api/panchanga?date=2026-09-01&utc_offset=13", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-09-01", resp["date"])
}

func TestPanchangaEndpoint_BadUTCOffset(t *testing.T) {
	for _, q := range []string{"utc_offset=east", "utc_offset=15", "utc_offset=-13"} {
		rec := httptest.NewRecorder()
		testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/api/panchanga?date=2026-09-01&"+q, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestTabulateEndpoint_InlineBirthData(t *testing.T) {
	body, _ := json.Marshal(handlers.TabulateRequest{
		BirthDate: "1990-05-14",
		BirthTime: "04:25",
		Location:  &contracts.Location{Lat: 28.6, Lon: 77.2, UTCOffset: 5.5},
	})

	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("POST", "/api/benefics/tabulate", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result contracts.TabulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Tables, 7)
	for _, table := range result.Tables {
		for _, p := range table.Points {
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, contracts.BenefitPointCap)
		}
	}
}

func TestTabulateEndpoint_NoBirthTimeFlagged(t *testing.T) {
	body, _ := json.Marshal(handlers.TabulateRequest{
		BirthDate: "1990-05-14",
		Location:  &contracts.Location{Lat: 28.6, Lon: 77.2, UTCOffset: 5.5},
	})

	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("POST", "/api/benefics/tabulate", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Solar-noon fallback must be visible on the wire, not just logged
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["used_default_time"])
}

func TestTabulateEndpoint_MissingInput(t *testing.T) {
	body, _ := json.Marshal(handlers.TabulateRequest{BirthDate: "1990-05-14"}) // no location

	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("POST", "/api/benefics/tabulate", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransitsEndpoint_RequiresProfile(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/api/transits", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileEndpoint_BadBody(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("POST", "/api/profiles", bytes.NewReader([]byte("{"))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
