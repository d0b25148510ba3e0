// Package handlers holds the HTTP handlers for the monitor API.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/linyc/twmonitor/internal/monitor"
	"github.com/linyc/twmonitor/pkg/logger"
)

// MonitorHandler exposes the invocation trigger endpoint.
type MonitorHandler struct {
	runner     *monitor.Runner
	cronSecret string
	logger     *logger.Logger
}

// NewMonitorHandler creates the trigger handler. cronSecret must be
// non-empty; the endpoint refuses all requests otherwise.
func NewMonitorHandler(runner *monitor.Runner, cronSecret string, log *logger.Logger) *MonitorHandler {
	return &MonitorHandler{
		runner:     runner,
		cronSecret: cronSecret,
		logger:     log.WithField("handler", "monitor"),
	}
}

// Run executes one monitor invocation.
// POST /api/monitor/run with "Authorization: Bearer <CRON_SECRET>".
func (h *MonitorHandler) Run(w http.ResponseWriter, r *http.Request) {
	if h.cronSecret == "" || r.Header.Get("Authorization") != "Bearer "+h.cronSecret {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Unauthorized"))
		return
	}

	result, err := h.runner.Run(r.Context(), time.Now())
	if err != nil {
		h.logger.WithError(err).Error("Monitor run failed")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "An internal error occurred.",
		})
		return
	}

	if result.Skipped {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Not trading hours. Monitor paused.",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"alertsSent": result.AlertsSent,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
