package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/profile"
	"github.com/wonny/jyotish/backend/pkg/logger"
)

// ProfileHandler handles natal profile CRUD
// ⭐ SSOT: 프로필 API 핸들러는 이 구조체에서만
type ProfileHandler struct {
	repo   *profile.Repository
	logger *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(repo *profile.Repository, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{repo: repo, logger: log}
}

// ProfileRequest is the create/update body
type ProfileRequest struct {
	Name      string             `json:"name"`
	BirthDate string             `json:"birth_date"`           // YYYY-MM-DD
	BirthTime string             `json:"birth_time,omitempty"` // HH:MM
	Location  contracts.Location `json:"location"`
}

// toProfile validates the request into a profile, leaving ID/timestamps to
// the repository
func (req *ProfileRequest) toProfile() (*profile.Profile, string) {
	if req.Name == "" {
		return nil, "name is required"
	}
	date, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, "birth_date must be YYYY-MM-DD"
	}

	p := &profile.Profile{
		Name:      req.Name,
		BirthDate: date,
		Location:  req.Location,
	}

	if req.BirthTime != "" {
		clock, err := time.Parse("15:04", req.BirthTime)
		if err != nil {
			return nil, "birth_time must be HH:MM"
		}
		local := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
		utc := local.Add(-time.Duration(req.Location.UTCOffset * float64(time.Hour)))
		p.BirthTime = &utc
	}

	return p, ""
}

// Create stores a new profile
// POST /api/profiles
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, msg := req.toProfile()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		h.logger.WithError(err).Error("Profile create failed")
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// Get returns one profile
// GET /api/profiles/{id}
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// List returns all profiles
// GET /api/profiles
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Profile list failed")
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"profiles": profiles})
}

// Update rewrites a profile
// PUT /api/profiles/{id}
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, msg := req.toProfile()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	p.ID = mux.Vars(r)["id"]

	if err := h.repo.Update(r.Context(), p); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete removes a profile
// DELETE /api/profiles/{id}
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
