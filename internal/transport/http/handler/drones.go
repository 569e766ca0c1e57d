package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/event-ops-api/internal/application/drone"
	"github.com/event-ops-api/internal/domain"
	"github.com/event-ops-api/internal/pkg/validate"
)

type DroneHandler struct {
	drones drone.Service
}

func NewDroneHandler(drones drone.Service) *DroneHandler {
	return &DroneHandler{drones: drones}
}

func (h *DroneHandler) List(w http.ResponseWriter, r *http.Request) {
	ds, err := h.drones.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (h *DroneHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.drones.Get(r.Context(), chi.URLParam(r, "droneID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DroneHandler) UpdateTelemetry(w http.ResponseWriter, r *http.Request) {
	var req domain.DroneTelemetryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := h.drones.UpdateTelemetry(r.Context(), chi.URLParam(r, "droneID"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Recall orders a deployed drone back to base.
func (h *DroneHandler) Recall(w http.ResponseWriter, r *http.Request) {
	d, err := h.drones.Recall(r.Context(), chi.URLParam(r, "droneID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
