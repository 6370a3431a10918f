package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/searchandrescuegg/lifeline/internal/dispatch"
	"github.com/searchandrescuegg/lifeline/internal/notify"
)

// Synthesized ambulance position until live tracking exists.
var mockCurrentLocation = map[string]float64{
	"latitude":  28.6139,
	"longitude": 77.2090,
}

func (a *App) createDispatchHandler(w http.ResponseWriter, r *http.Request) {
	var req dispatch.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "failed to decode request body", err)
		return
	}

	rec, result, err := a.Dispatch.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, dispatch.ErrMissingField) {
			writeError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create dispatch", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"message":         "Ambulance dispatched successfully",
		"dispatch_id":     rec.DispatchID,
		"ambulance_id":    rec.AmbulanceID,
		"emergency_id":    rec.EmergencyID,
		"hospital_name":   rec.HospitalName,
		"eta":             rec.ETA,
		"whatsapp_status": whatsappStatus(result),
	})
}

func (a *App) getDispatchHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["dispatch_id"]

	rec, err := a.Dispatch.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, dispatch.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Dispatch not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load dispatch", err)
		return
	}

	// Display default only: the stored status is not transitioned.
	status := rec.Status
	if status == "" {
		status = dispatch.StatusEnRoute
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dispatch_id":      rec.DispatchID,
		"status":           status,
		"ambulance_id":     rec.AmbulanceID,
		"hospital_name":    rec.HospitalName,
		"hospital_address": rec.HospitalAddress,
		"eta":              rec.ETA,
		"whatsapp_sent":    rec.NotificationSent,
		"current_location": mockCurrentLocation,
	})
}

type dispatchUpdateRequest struct {
	UpdateType string `json:"update_type"`
	Details    string `json:"details"`
}

func (a *App) sendDispatchUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["dispatch_id"]

	var req dispatchUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "failed to decode request body", err)
		return
	}

	result, err := a.Dispatch.SendUpdate(r.Context(), id, req.UpdateType, req.Details)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrNotFound):
			writeError(w, http.StatusNotFound, "Dispatch not found", nil)
		case errors.Is(err, dispatch.ErrEmptyDetails):
			writeError(w, http.StatusBadRequest, "Update details are required", nil)
		default:
			writeError(w, http.StatusInternalServerError, "failed to send update", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"message":         "Update sent to driver via WhatsApp",
		"dispatch_id":     id,
		"whatsapp_status": whatsappStatus(result),
	})
}

func (a *App) listDispatchesHandler(w http.ResponseWriter, r *http.Request) {
	recs, err := a.Dispatch.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list dispatches", err)
		return
	}
	if recs == nil {
		recs = []dispatch.Record{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dispatches": recs,
		"total":      len(recs),
	})
}

func whatsappStatus(result notify.Result) map[string]interface{} {
	var sid interface{}
	if result.MessageSID != "" {
		sid = result.MessageSID
	}
	var sendErr interface{}
	if !result.Success && result.Error != "" {
		sendErr = result.Error
	}

	return map[string]interface{}{
		"sent":        result.Success,
		"message_sid": sid,
		"error":       sendErr,
	}
}
