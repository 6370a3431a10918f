package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/searchandrescuegg/lifeline/internal/ambulance"
)

func (a *App) listAmbulancesHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.Fleet.List())
}

func (a *App) getAmbulanceHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["ambulance_id"]

	unit, err := a.Fleet.Get(id)
	if err != nil {
		if errors.Is(err, ambulance.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Ambulance not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load ambulance", err)
		return
	}

	writeJSON(w, http.StatusOK, unit)
}

type ambulanceStatusRequest struct {
	Status string `json:"status"`
}

func (a *App) updateAmbulanceStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["ambulance_id"]

	var req ambulanceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "failed to decode request body", err)
		return
	}

	unit, err := a.Fleet.UpdateStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, ambulance.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Ambulance not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update ambulance status", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      fmt.Sprintf("Ambulance %s status updated", id),
		"ambulance_id": id,
		"new_status":   unit.Status,
	})
}
