package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/reftables"
	"github.com/wonny/jyotish/backend/pkg/logger"
)

// ElectionalHandler handles electional scan endpoints
// ⭐ SSOT: 택일 API 핸들러는 이 구조체에서만
type ElectionalHandler struct {
	scanner contracts.ElectionalScanner
	tables  *reftables.Store
	logger  *logger.Logger
}

// NewElectionalHandler creates a new electional handler
func NewElectionalHandler(scanner contracts.ElectionalScanner, tables *reftables.Store, log *logger.Logger) *ElectionalHandler {
	return &ElectionalHandler{scanner: scanner, tables: tables, logger: log}
}

// ScanRequest is the POST /api/electional/scan body
type ScanRequest struct {
	Activity string             `json:"activity"`
	Start    string             `json:"start"` // YYYY-MM-DD
	End      string             `json:"end"`   // YYYY-MM-DD
	Location contracts.Location `json:"location"`
}

// Scan runs an electional scan
// POST /api/electional/scan
func (h *ElectionalHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Activity == "" {
		writeError(w, http.StatusBadRequest, "activity is required")
		return
	}

	start, err := time.Parse("2006-01-02", req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
		return
	}

	if _, ok := h.tables.RuleSetFor(req.Activity); !ok {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":      "unknown activity type",
			"activities": h.tables.Activities(),
		})
		return
	}

	result, err := h.scanner.Scan(r.Context(), req.Activity, start, end, req.Location)
	if err != nil {
		h.logger.WithError(err).WithField("activity", req.Activity).Error("Scan failed")
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Activities lists the supported activity types
// GET /api/electional/activities
func (h *ElectionalHandler) Activities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activities": h.tables.Activities(),
	})
}
