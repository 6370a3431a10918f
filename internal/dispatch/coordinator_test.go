package dispatch

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/sourcegraph/conc/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchandrescuegg/lifeline/internal/notify"
)

type fakeNotifier struct {
	mu          sync.Mutex
	result      notify.Result
	assignments []notify.HospitalAssignment
	updates     []string
}

func (f *fakeNotifier) SendHospitalAssignment(_ context.Context, _ string, a notify.HospitalAssignment) notify.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assignments = append(f.assignments, a)
	return f.result
}

func (f *fakeNotifier) SendUpdate(_ context.Context, _, _, updateType, details string) notify.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, fmt.Sprintf("%s: %s", updateType, details))
	return f.result
}

type fakePublisher struct {
	mu     sync.Mutex
	events []Event
}

func (f *fakePublisher) Publish(_ context.Context, ev Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func validRequest() Request {
	return Request{
		AmbulanceID:     "AMB-105",
		EmergencyID:     "EMG-001",
		PatientInfo:     "Male, 62, chest pain",
		HospitalName:    "AIIMS Delhi",
		HospitalAddress: "Ansari Nagar, New Delhi",
		DriverPhone:     "+919876543210",
	}
}

func TestCreateDispatch(t *testing.T) {
	notifier := &fakeNotifier{result: notify.Result{Success: true, MessageSID: "SM123", Status: "queued"}}
	publisher := &fakePublisher{}
	c := NewCoordinator(NewMemoryStore(), notifier, publisher)

	rec, result, err := c.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "DSP-001", rec.DispatchID)
	assert.Equal(t, "AMB-105", rec.AmbulanceID)
	assert.Equal(t, "EMG-001", rec.EmergencyID)
	assert.Equal(t, "AIIMS Delhi", rec.HospitalName)
	assert.Equal(t, "Ansari Nagar, New Delhi", rec.HospitalAddress)
	assert.Equal(t, "+919876543210", rec.DriverPhone)
	assert.Equal(t, DefaultETA, rec.ETA)
	assert.Equal(t, StatusDispatched, rec.Status)
	assert.True(t, rec.NotificationSent)
	assert.Equal(t, "SM123", rec.NotificationSID)
	assert.False(t, rec.CreatedAt.IsZero())

	assert.True(t, result.Success)

	stored, err := c.Get(context.Background(), "DSP-001")
	require.NoError(t, err)
	assert.Equal(t, rec, stored)

	require.Len(t, notifier.assignments, 1)
	assert.Equal(t, "AIIMS Delhi", notifier.assignments[0].HospitalName)
	assert.Equal(t, DefaultETA, notifier.assignments[0].ETA)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, EventDispatchCreated, publisher.events[0].Type)
	assert.Equal(t, "DSP-001", publisher.events[0].DispatchID)
	assert.True(t, publisher.events[0].NotificationSent)
}

func TestCreateDispatchCustomETA(t *testing.T) {
	c := NewCoordinator(NewMemoryStore(), &fakeNotifier{}, nil)

	req := validRequest()
	req.ETA = "15 minutes"

	rec, _, err := c.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "15 minutes", rec.ETA)
}

func TestCreateDispatchValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		field  string
	}{
		{name: "missing ambulance id", mutate: func(r *Request) { r.AmbulanceID = "" }, field: "ambulance_id"},
		{name: "missing hospital name", mutate: func(r *Request) { r.HospitalName = " " }, field: "hospital_name"},
		{name: "missing hospital address", mutate: func(r *Request) { r.HospitalAddress = "" }, field: "hospital_address"},
		{name: "missing driver phone", mutate: func(r *Request) { r.DriverPhone = "" }, field: "driver_phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCoordinator(NewMemoryStore(), &fakeNotifier{}, nil)

			req := validRequest()
			tt.mutate(&req)

			_, _, err := c.Create(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingField)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestCreateDispatchNotificationFailureStillRecords(t *testing.T) {
	notifier := &fakeNotifier{result: notify.Result{Error: "twilio not configured, message not sent"}}
	c := NewCoordinator(NewMemoryStore(), notifier, nil)

	rec, result, err := c.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, rec.NotificationSent)
	assert.Equal(t, "twilio not configured, message not sent", rec.NotificationError)
	assert.False(t, result.Success)

	_, err = c.Get(context.Background(), rec.DispatchID)
	assert.NoError(t, err)
}

func TestConcurrentCreatesAllocateUniqueIDs(t *testing.T) {
	c := NewCoordinator(NewMemoryStore(), &fakeNotifier{}, nil)

	const n = 50
	ids := make(chan string, n)

	p := pool.New().WithMaxGoroutines(8)
	for i := 0; i < n; i++ {
		p.Go(func() {
			rec, _, err := c.Create(context.Background(), validRequest())
			assert.NoError(t, err)
			ids <- rec.DispatchID
		})
	}
	p.Wait()
	close(ids)

	pattern := regexp.MustCompile(`^DSP-\d{3}$`)
	seen := map[string]bool{}
	for id := range ids {
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "duplicate dispatch id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)

	recs, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, n)
}

func TestGetDispatchNotFound(t *testing.T) {
	c := NewCoordinator(NewMemoryStore(), &fakeNotifier{}, nil)

	_, err := c.Get(context.Background(), "DSP-999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSendUpdate(t *testing.T) {
	notifier := &fakeNotifier{result: notify.Result{Success: true, MessageSID: "SM456"}}
	publisher := &fakePublisher{}
	c := NewCoordinator(NewMemoryStore(), notifier, publisher)

	rec, _, err := c.Create(context.Background(), validRequest())
	require.NoError(t, err)

	result, err := c.SendUpdate(context.Background(), rec.DispatchID, "TRAFFIC ALERT", "Heavy traffic on NH-48, take the service road")
	require.NoError(t, err)
	assert.True(t, result.Success)

	require.Len(t, notifier.updates, 1)
	assert.Equal(t, "TRAFFIC ALERT: Heavy traffic on NH-48, take the service road", notifier.updates[0])

	// Update sends leave the stored record untouched.
	after, err := c.Get(context.Background(), rec.DispatchID)
	require.NoError(t, err)
	assert.Equal(t, rec, after)

	require.Len(t, publisher.events, 2)
	assert.Equal(t, EventUpdateSent, publisher.events[1].Type)
}

func TestSendUpdateUnknownDispatch(t *testing.T) {
	c := NewCoordinator(NewMemoryStore(), &fakeNotifier{}, nil)

	_, err := c.SendUpdate(context.Background(), "DSP-999", "UPDATE", "details")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSendUpdateEmptyDetails(t *testing.T) {
	notifier := &fakeNotifier{}
	c := NewCoordinator(NewMemoryStore(), notifier, nil)

	rec, _, err := c.Create(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = c.SendUpdate(context.Background(), rec.DispatchID, "UPDATE", "   ")
	assert.ErrorIs(t, err, ErrEmptyDetails)
	assert.Empty(t, notifier.updates)
}

func TestListDispatches(t *testing.T) {
	c := NewCoordinator(NewMemoryStore(), &fakeNotifier{}, nil)

	recs, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)

	for i := 0; i < 3; i++ {
		_, _, err := c.Create(context.Background(), validRequest())
		require.NoError(t, err)
	}

	recs, err = c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "DSP-001", recs[0].DispatchID)
	assert.Equal(t, "DSP-002", recs[1].DispatchID)
	assert.Equal(t, "DSP-003", recs[2].DispatchID)
}
