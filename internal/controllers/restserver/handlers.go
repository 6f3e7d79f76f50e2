package restserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/minutewx/nexthour/internal/forecast"
	"github.com/minutewx/nexthour/internal/log"
	"github.com/minutewx/nexthour/pkg/responseformat"
)

// maxPayloadBytes bounds the ingest body. A next-hour payload is a few
// kilobytes; anything near this limit is malformed or hostile.
const maxPayloadBytes = 1 << 20

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// PutForecast ingests a fresh forecast payload from the data-fetch
// collaborator and publishes it to the coordinator.
func (h *Handlers) PutForecast(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var payload forecast.Payload
	decoder := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxPayloadBytes))
	if err := decoder.Decode(&payload); err != nil {
		log.Errorf("error decoding forecast payload: %v", err)
		h.formatter.WriteError(w, req, http.StatusBadRequest, "invalid forecast payload")
		return
	}

	h.controller.coordinator.Publish(&payload)
	log.Debugf("forecast payload accepted: %d minutes", len(payload.Minutes))

	w.WriteHeader(http.StatusAccepted)
}

// PostForecastFailure records an upstream refresh failure reported by the
// data-fetch collaborator. The sensor becomes unavailable until the next
// successful payload.
func (h *Handlers) PostForecastFailure(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var report struct {
		Reason string `json:"reason,omitempty"`
	}
	// A body is optional; a bare POST just marks the failure
	json.NewDecoder(http.MaxBytesReader(w, req.Body, maxPayloadBytes)).Decode(&report)

	if report.Reason != "" {
		h.controller.coordinator.PublishFailure(fmt.Errorf("upstream refresh failed: %s", report.Reason))
	} else {
		h.controller.coordinator.PublishFailure(fmt.Errorf("upstream refresh failed"))
	}

	w.WriteHeader(http.StatusAccepted)
}

// GetNextHour returns the current sensor snapshot: display state, icon, and
// the pass-through attributes payload.
func (h *Handlers) GetNextHour(w http.ResponseWriter, req *http.Request) {
	snap := h.controller.sensor.Snapshot()

	if err := h.formatter.WriteResponse(w, req, snap); err != nil {
		log.Errorf("error encoding sensor snapshot: %v", err)
	}
}

// GetHealth reports liveness and the sensor availability state.
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	snap := h.controller.sensor.Snapshot()

	status := map[string]any{
		"status":       "ok",
		"availability": snap.Availability,
	}
	if !snap.UpdatedAt.IsZero() {
		status["updated_at"] = snap.UpdatedAt
	}

	if err := h.formatter.WriteResponse(w, req, status); err != nil {
		log.Errorf("error encoding health response: %v", err)
	}
}

// GetLogs returns recent log entries from the in-memory buffer. The count
// defaults to 100 and is capped by the buffer size.
func (h *Handlers) GetLogs(w http.ResponseWriter, req *http.Request) {
	limit := 100
	if v := req.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			h.formatter.WriteError(w, req, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	entries := log.GetBuffer().Recent(limit)
	if err := h.formatter.WriteResponse(w, req, entries); err != nil {
		log.Errorf("error encoding log entries: %v", err)
	}
}
