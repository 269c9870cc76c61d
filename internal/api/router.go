package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/jyotish/backend/internal/api/handlers"
	"github.com/wonny/jyotish/backend/pkg/logger"
	"github.com/wonny/jyotish/backend/pkg/metrics"
)

// Handlers bundles the route handlers the router mounts
type Handlers struct {
	Electional *handlers.ElectionalHandler
	Benefic    *handlers.BeneficHandler
	Panchanga  *handlers.PanchangaHandler
	Transit    *handlers.TransitHandler
	Profile    *handlers.ProfileHandler
	Stream     *handlers.TransitStreamHandler
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, log *logger.Logger, m *metrics.Metrics) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")
	r.Handle("/metrics", m.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Electional
	api.Handle("/electional/scan", m.WrapHandler("electional_scan",
		http.HandlerFunc(h.Electional.Scan))).Methods("POST")
	api.Handle("/electional/activities", m.WrapHandler("electional_activities",
		http.HandlerFunc(h.Electional.Activities))).Methods("GET")

	// Benefic tabulation
	api.Handle("/benefics/tabulate", m.WrapHandler("benefics_tabulate",
		http.HandlerFunc(h.Benefic.Tabulate))).Methods("POST")

	// Panchanga
	api.Handle("/panchanga", m.WrapHandler("panchanga",
		http.HandlerFunc(h.Panchanga.Get))).Methods("GET")

	// Transits
	api.Handle("/transits", m.WrapHandler("transits",
		http.HandlerFunc(h.Transit.Get))).Methods("GET")

	// Profiles
	api.Handle("/profiles", m.WrapHandler("profiles_create",
		http.HandlerFunc(h.Profile.Create))).Methods("POST")
	api.Handle("/profiles", m.WrapHandler("profiles_list",
		http.HandlerFunc(h.Profile.List))).Methods("GET")
	api.Handle("/profiles/{id}", m.WrapHandler("profiles_get",
		http.HandlerFunc(h.Profile.Get))).Methods("GET")
	api.Handle("/profiles/{id}", m.WrapHandler("profiles_update",
		http.HandlerFunc(h.Profile.Update))).Methods("PUT")
	api.Handle("/profiles/{id}", m.WrapHandler("profiles_delete",
		http.HandlerFunc(h.Profile.Delete))).Methods("DELETE")

	// Live transit stream
	r.HandleFunc("/ws/transits", h.Stream.Stream).Methods("GET")

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "jyotish-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
