package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/searchandrescuegg/lifeline/internal/emergency"
)

func (a *App) listEmergenciesHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.Emergencies.List())
}

func (a *App) createEmergencyHandler(w http.ResponseWriter, r *http.Request) {
	var data map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "failed to decode request body", err)
		return
	}

	rec := a.Emergencies.Create(data)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Emergency created successfully",
		"emergency": rec,
	})
}

func (a *App) getEmergencyHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["emergency_id"]

	rec, err := a.Emergencies.Get(id)
	if err != nil {
		if errors.Is(err, emergency.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Emergency not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load emergency", err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (a *App) updateEmergencyHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["emergency_id"]

	var data map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "failed to decode request body", err)
		return
	}

	if err := a.Emergencies.Update(id, data); err != nil {
		if errors.Is(err, emergency.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Emergency not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update emergency", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      fmt.Sprintf("Emergency %s updated", id),
		"emergency_id": id,
	})
}

func (a *App) deleteEmergencyHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["emergency_id"]

	a.Emergencies.Delete(id)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Emergency %s closed", id),
	})
}
