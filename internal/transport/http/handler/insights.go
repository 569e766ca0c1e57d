package handler

import (
	"encoding/json"
	"net/http"

	"github.com/event-ops-api/internal/application/insight"
	"github.com/event-ops-api/internal/domain"
)

// InsightHandler fronts the hosted prompt-runner flows. Every endpoint
// returns 502 when the runner is unreachable or misconfigured.
type InsightHandler struct {
	insights insight.Service
}

func NewInsightHandler(insights insight.Service) *InsightHandler {
	return &InsightHandler{insights: insights}
}

func (h *InsightHandler) Weather(w http.ResponseWriter, r *http.Request) {
	out, err := h.insights.Weather(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *InsightHandler) Sentiment(w http.ResponseWriter, r *http.Request) {
	var req domain.SentimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := h.insights.Sentiment(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *InsightHandler) GarbageAlerts(w http.ResponseWriter, r *http.Request) {
	var req domain.GarbageAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := h.insights.GarbageAlerts(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *InsightHandler) IncidentRouting(w http.ResponseWriter, r *http.Request) {
	var req domain.IncidentRoutingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := h.insights.IncidentRouting(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *InsightHandler) SmartLocation(w http.ResponseWriter, r *http.Request) {
	var req domain.SmartLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := h.insights.SmartLocation(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
