package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/event-ops-api/internal/application/zone"
	"github.com/event-ops-api/internal/domain"
	"github.com/event-ops-api/internal/pkg/validate"
)

type ZoneHandler struct {
	zones zone.Service
}

func NewZoneHandler(zones zone.Service) *ZoneHandler {
	return &ZoneHandler{zones: zones}
}

func (h *ZoneHandler) List(w http.ResponseWriter, r *http.Request) {
	zs, err := h.zones.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, zs)
}

func (h *ZoneHandler) Get(w http.ResponseWriter, r *http.Request) {
	z, err := h.zones.Get(r.Context(), chi.URLParam(r, "zoneID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, z)
}

// UpdateTelemetry ingests occupancy and status readings for a zone.
func (h *ZoneHandler) UpdateTelemetry(w http.ResponseWriter, r *http.Request) {
	var req domain.ZoneTelemetryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	z, err := h.zones.UpdateTelemetry(r.Context(), chi.URLParam(r, "zoneID"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, z)
}
