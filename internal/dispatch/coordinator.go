package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/searchandrescuegg/lifeline/internal/notify"
)

// Notifier delivers driver-facing messages. Implementations never return an
// error; delivery problems are reported inside the Result.
type Notifier interface {
	SendHospitalAssignment(ctx context.Context, driverPhone string, a notify.HospitalAssignment) notify.Result
	SendUpdate(ctx context.Context, driverPhone, ambulanceID, updateType, details string) notify.Result
}

// EventPublisher streams dispatch lifecycle events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Coordinator owns dispatch identity, driver notification, and record state.
type Coordinator struct {
	store    Store
	notifier Notifier
	events   EventPublisher // nil disables event publishing
}

func NewCoordinator(store Store, notifier Notifier, events EventPublisher) *Coordinator {
	return &Coordinator{
		store:    store,
		notifier: notifier,
		events:   events,
	}
}

// Create allocates a dispatch id, notifies the driver, and persists the
// record. A failed notification does not fail the create: the dispatch is
// recorded with the failure visible in NotificationError.
func (c *Coordinator) Create(ctx context.Context, req Request) (Record, notify.Result, error) {
	if err := validateRequest(req); err != nil {
		return Record{}, notify.Result{}, err
	}

	eta := req.ETA
	if eta == "" {
		eta = DefaultETA
	}

	// Id allocation happens before any externally visible side effect so
	// concurrent creates can never share an id.
	id, err := c.store.NextID(ctx)
	if err != nil {
		return Record{}, notify.Result{}, fmt.Errorf("failed to allocate dispatch id: %w", err)
	}

	result := c.notifier.SendHospitalAssignment(ctx, req.DriverPhone, notify.HospitalAssignment{
		AmbulanceID:     req.AmbulanceID,
		HospitalName:    req.HospitalName,
		HospitalAddress: req.HospitalAddress,
		PatientInfo:     req.PatientInfo,
		ETA:             eta,
	})

	rec := Record{
		DispatchID:        id,
		AmbulanceID:       req.AmbulanceID,
		EmergencyID:       req.EmergencyID,
		HospitalName:      req.HospitalName,
		HospitalAddress:   req.HospitalAddress,
		DriverPhone:       req.DriverPhone,
		PatientInfo:       req.PatientInfo,
		ETA:               eta,
		Status:            StatusDispatched,
		NotificationSent:  result.Success,
		NotificationSID:   result.MessageSID,
		NotificationError: result.Error,
		CreatedAt:         time.Now().UTC(),
	}

	if err := c.store.Upsert(ctx, rec); err != nil {
		return Record{}, result, fmt.Errorf("failed to persist dispatch %s: %w", id, err)
	}

	c.publish(ctx, Event{
		Type:             EventDispatchCreated,
		DispatchID:       id,
		AmbulanceID:      req.AmbulanceID,
		NotificationSent: result.Success,
		Timestamp:        rec.CreatedAt,
	})

	slog.Info("ambulance dispatched",
		slog.String("dispatch_id", id),
		slog.String("ambulance_id", req.AmbulanceID),
		slog.String("hospital", req.HospitalName),
		slog.Bool("notification_sent", result.Success),
	)

	return rec, result, nil
}

func (c *Coordinator) Get(ctx context.Context, id string) (Record, error) {
	return c.store.Get(ctx, id)
}

// SendUpdate re-notifies the driver of an existing dispatch. The stored
// record, including its status, is left untouched: update sends are
// notification-only.
func (c *Coordinator) SendUpdate(ctx context.Context, id, updateType, details string) (notify.Result, error) {
	rec, err := c.store.Get(ctx, id)
	if err != nil {
		return notify.Result{}, err
	}

	if strings.TrimSpace(details) == "" {
		return notify.Result{}, ErrEmptyDetails
	}

	result := c.notifier.SendUpdate(ctx, rec.DriverPhone, rec.AmbulanceID, updateType, details)

	c.publish(ctx, Event{
		Type:             EventUpdateSent,
		DispatchID:       id,
		AmbulanceID:      rec.AmbulanceID,
		NotificationSent: result.Success,
		Timestamp:        time.Now().UTC(),
	})

	return result, nil
}

func (c *Coordinator) List(ctx context.Context) ([]Record, error) {
	return c.store.List(ctx)
}

func validateRequest(req Request) error {
	missing := func(name string) error {
		return fmt.Errorf("%w: %s", ErrMissingField, name)
	}

	switch {
	case strings.TrimSpace(req.AmbulanceID) == "":
		return missing("ambulance_id")
	case strings.TrimSpace(req.HospitalName) == "":
		return missing("hospital_name")
	case strings.TrimSpace(req.HospitalAddress) == "":
		return missing("hospital_address")
	case strings.TrimSpace(req.DriverPhone) == "":
		return missing("driver_phone")
	}
	return nil
}

func (c *Coordinator) publish(ctx context.Context, ev Event) {
	if c.events == nil {
		return
	}
	if err := c.events.Publish(ctx, ev); err != nil {
		slog.Error("failed to publish dispatch event", slog.String("type", ev.Type), slog.String("dispatch_id", ev.DispatchID), slog.String("error", err.Error()))
	}
}
