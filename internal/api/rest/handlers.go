package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fortuna/courtside/internal/reconciliation"
	"github.com/fortuna/courtside/internal/scoring"
	"github.com/fortuna/courtside/internal/service"
	"github.com/fortuna/courtside/internal/store"
)

// SchedulerStatus reports the background scheduler's configuration and
// held slate, surfaced through the health endpoint.
type SchedulerStatus interface {
	GetStatus() map[string]interface{}
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db          *store.Database
	slates      *service.SlateService
	predictions *service.PredictionService
	testData    *service.TestDataService
	diagnostics *service.DiagnosticsService
	reconciler  *reconciliation.Reconciler
	scheduler   SchedulerStatus
}

// NewHandler creates a new handler. scheduler may be nil.
func NewHandler(db *store.Database, slates *service.SlateService, predictions *service.PredictionService, testData *service.TestDataService, diagnostics *service.DiagnosticsService, reconciler *reconciliation.Reconciler, scheduler SchedulerStatus) *Handler {
	return &Handler{
		db:          db,
		slates:      slates,
		predictions: predictions,
		testData:    testData,
		diagnostics: diagnostics,
		reconciler:  reconciler,
		scheduler:   scheduler,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.HealthCheck(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	response := map[string]interface{}{
		"status":  status,
		"service": "courtside",
		"version": "1.0.0",
	}
	if h.scheduler != nil {
		response["scheduler"] = h.scheduler.GetStatus()
	}

	respondJSON(w, code, response)
}

// GetTodaysSlate returns today's analyzed slate, building it when needed
func (h *Handler) GetTodaysSlate(w http.ResponseWriter, r *http.Request) {
	slate, err := h.slates.Today(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to build today's slate", err)
		return
	}

	respondJSON(w, http.StatusOK, slate)
}

// RefreshSlate forces a rebuild of today's slate
func (h *Handler) RefreshSlate(w http.ResponseWriter, r *http.Request) {
	slate, err := h.slates.Refresh(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to refresh slate", err)
		return
	}

	respondJSON(w, http.StatusOK, slate)
}

// GetVariables returns the scoring rule catalog
func (h *Handler) GetVariables(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"variables": scoring.Variables(),
	})
}

// GetVariable returns one scoring rule by id
func (h *Handler) GetVariable(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	variable, ok := scoring.VariableByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Unknown scoring variable", nil)
		return
	}

	respondJSON(w, http.StatusOK, variable)
}

// GetHistory returns recent prediction history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 500 {
			limit = l
		}
	}

	records, err := h.predictions.GetHistory(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch history", err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// GetHistoryRange returns predictions inside a date window
func (h *Handler) GetHistoryRange(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid start date (use YYYY-MM-DD)", err)
		return
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid end date (use YYYY-MM-DD)", err)
		return
	}
	if end.Before(start) {
		respondError(w, http.StatusBadRequest, "End date precedes start date", nil)
		return
	}

	records, err := h.predictions.GetByDateRange(r.Context(), start, end)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch history range", err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// GetGamePrediction returns the stored prediction for one game
func (h *Handler) GetGamePrediction(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameID"]

	record, err := h.predictions.GetByGameID(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Prediction not found", err)
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// GetAccuracy returns prediction accuracy stats
func (h *Handler) GetAccuracy(w http.ResponseWriter, r *http.Request) {
	stats, err := h.predictions.ComputeAccuracy(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute accuracy", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// LoadTestData seeds synthetic prediction history
func (h *Handler) LoadTestData(w http.ResponseWriter, r *http.Request) {
	seeded, err := h.testData.LoadTestData(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load test data", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Test data loaded",
		"games_seeded": seeded,
	})
}

// RunDiagnostics probes the upstream APIs
func (h *Handler) RunDiagnostics(w http.ResponseWriter, r *http.Request) {
	report := h.diagnostics.TestAll(r.Context())

	code := http.StatusOK
	if !report.Healthy {
		code = http.StatusBadGateway
	}
	respondJSON(w, code, report)
}

// TriggerReconcile grades pending predictions on demand
func (h *Handler) TriggerReconcile(w http.ResponseWriter, r *http.Request) {
	graded, err := h.reconciler.ReconcilePending(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Reconciliation failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Reconciliation complete",
		"games_graded": graded,
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
