package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/searchandrescuegg/lifeline/internal/ambulance"
	"github.com/searchandrescuegg/lifeline/internal/dispatch"
	"github.com/searchandrescuegg/lifeline/internal/emergency"
	"github.com/searchandrescuegg/lifeline/internal/extract"
	"github.com/searchandrescuegg/lifeline/internal/transcription"
)

// Extractor turns call text into a complete emergency record.
type Extractor interface {
	Extract(ctx context.Context, text string) extract.Result
}

// Transcriber turns a staged audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (*transcription.Transcription, error)
}

// Archiver copies accepted recordings to long-term storage.
type Archiver interface {
	StoreFile(ctx context.Context, filename, path string) error
}

// App wires the HTTP surface to the domain services. Exported for testing
// purposes.
type App struct {
	Router *mux.Router

	Extractor   Extractor
	Transcriber Transcriber
	Archive     Archiver // nil disables audio archival
	Dispatch    *dispatch.Coordinator
	Fleet       *ambulance.Directory
	Emergencies *emergency.Store
}

// Initialize builds the router and all the routes.
func (a *App) Initialize() {
	r := mux.NewRouter()
	r.Use(requestLogger)

	r.HandleFunc("/health", healthCheckHandler).Methods(http.MethodGet)

	t := r.PathPrefix("/transcription").Subrouter()
	t.HandleFunc("/upload", a.uploadAudioHandler).Methods(http.MethodPost)
	t.HandleFunc("/extract", a.extractTextHandler).Methods(http.MethodPost)

	d := r.PathPrefix("/dispatch").Subrouter()
	d.HandleFunc("/", a.createDispatchHandler).Methods(http.MethodPost)
	d.HandleFunc("/", a.listDispatchesHandler).Methods(http.MethodGet)
	d.HandleFunc("/{dispatch_id}", a.getDispatchHandler).Methods(http.MethodGet)
	d.HandleFunc("/{dispatch_id}/send-update", a.sendDispatchUpdateHandler).Methods(http.MethodPost)

	amb := r.PathPrefix("/ambulances").Subrouter()
	amb.HandleFunc("/", a.listAmbulancesHandler).Methods(http.MethodGet)
	amb.HandleFunc("/{ambulance_id}", a.getAmbulanceHandler).Methods(http.MethodGet)
	amb.HandleFunc("/{ambulance_id}/status", a.updateAmbulanceStatusHandler).Methods(http.MethodPut)

	e := r.PathPrefix("/emergencies").Subrouter()
	e.HandleFunc("/", a.listEmergenciesHandler).Methods(http.MethodGet)
	e.HandleFunc("/", a.createEmergencyHandler).Methods(http.MethodPost)
	e.HandleFunc("/{emergency_id}", a.getEmergencyHandler).Methods(http.MethodGet)
	e.HandleFunc("/{emergency_id}", a.updateEmergencyHandler).Methods(http.MethodPut)
	e.HandleFunc("/{emergency_id}", a.deleteEmergencyHandler).Methods(http.MethodDelete)

	a.Router = r
}

func healthCheckHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, `{"alive": true}`)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request handled",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		slog.Error(message, slog.String("error", err.Error()))
		message = fmt.Sprintf("%s: %v", message, err)
	} else {
		slog.Error(message)
	}
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
