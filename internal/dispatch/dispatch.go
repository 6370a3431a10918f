package dispatch

import (
	"errors"
	"time"
)

const (
	StatusDispatched = "dispatched"
	StatusEnRoute    = "en_route"
	StatusArrived    = "arrived"
	StatusCompleted  = "completed"
)

// DefaultETA applies when a dispatch request carries no estimate.
const DefaultETA = "8 minutes"

var (
	ErrNotFound     = errors.New("dispatch not found")
	ErrMissingField = errors.New("missing required field")
	ErrEmptyDetails = errors.New("update details are required")
)

// Request is a client-submitted order to send an ambulance to a hospital.
type Request struct {
	AmbulanceID     string `json:"ambulance_id"`
	EmergencyID     string `json:"emergency_id,omitempty"`
	PatientInfo     string `json:"patient_info,omitempty"`
	HospitalName    string `json:"hospital_name"`
	HospitalAddress string `json:"hospital_address"`
	DriverPhone     string `json:"driver_phone"`
	ETA             string `json:"eta,omitempty"`
}

// Record tracks a dispatch through its notification lifecycle. Records are
// created exactly once and never deleted; update sends do not mutate them.
type Record struct {
	DispatchID        string    `json:"dispatch_id"`
	AmbulanceID       string    `json:"ambulance_id"`
	EmergencyID       string    `json:"emergency_id,omitempty"`
	HospitalName      string    `json:"hospital_name"`
	HospitalAddress   string    `json:"hospital_address"`
	DriverPhone       string    `json:"driver_phone"`
	PatientInfo       string    `json:"patient_info,omitempty"`
	ETA               string    `json:"eta"`
	Status            string    `json:"status"`
	NotificationSent  bool      `json:"notification_sent"`
	NotificationSID   string    `json:"notification_sid,omitempty"`
	NotificationError string    `json:"notification_error,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Event is published to the dispatch event stream when configured.
type Event struct {
	Type             string    `json:"type"`
	DispatchID       string    `json:"dispatch_id"`
	AmbulanceID      string    `json:"ambulance_id"`
	NotificationSent bool      `json:"notification_sent"`
	Timestamp        time.Time `json:"timestamp"`
}

const (
	EventDispatchCreated = "dispatch_created"
	EventUpdateSent      = "update_sent"
)
