package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/adyen/ecommerce-e2e/internal/models"
	"github.com/adyen/ecommerce-e2e/internal/services"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RunDetail is a run with its journey results
type RunDetail struct {
	Run       *models.Run              `json:"run"`
	Scenarios []*models.ScenarioResult `json:"scenarios"`
}

// RunsHandler serves GET /api/runs and GET /api/runs/{id}
type RunsHandler struct {
	runService services.RunService
	log        logrus.FieldLogger
}

// NewRunsHandler creates a new runs handler
func NewRunsHandler(runService services.RunService, log logrus.FieldLogger) *RunsHandler {
	return &RunsHandler{
		runService: runService,
		log:        log,
	}
}

// ServeHTTP lists runs, or returns one run when the path carries an ID
func (h *RunsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/runs"), "/")
	if id == "" {
		h.list(w, r)
		return
	}
	h.detail(w, id)
}

func (h *RunsHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			sendErrorResponse(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := h.runService.ListRuns(limit)
	if err != nil {
		h.log.WithError(err).Error("failed to list runs")
		sendErrorResponse(w, "Failed to list runs", http.StatusInternalServerError)
		return
	}

	sendJSON(w, runs, h.log)
}

func (h *RunsHandler) detail(w http.ResponseWriter, id string) {
	run, err := h.runService.GetRun(id)
	if errors.Is(err, models.ErrRunNotFound) {
		sendErrorResponse(w, "Run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.WithField("run", id).WithError(err).Error("failed to get run")
		sendErrorResponse(w, "Failed to get run", http.StatusInternalServerError)
		return
	}

	scenarios, err := h.runService.ListScenarios(id)
	if err != nil {
		h.log.WithField("run", id).WithError(err).Error("failed to list scenarios")
		sendErrorResponse(w, "Failed to list scenarios", http.StatusInternalServerError)
		return
	}

	sendJSON(w, RunDetail{Run: run, Scenarios: scenarios}, h.log)
}

func sendJSON(w http.ResponseWriter, v any, log logrus.FieldLogger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to encode response")
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
