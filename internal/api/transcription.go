package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/searchandrescuegg/lifeline/internal/audio"
)

// uploadAudioHandler accepts an emergency call recording, transcribes it, and
// extracts a structured emergency record.
func (a *App) uploadAudioHandler(w http.ResponseWriter, r *http.Request) {
	// Generous cap so oversize uploads still reach the size validation below
	// and get a clean error instead of a truncated multipart parse.
	r.Body = http.MaxBytesReader(w, r.Body, 2*audio.MaxUploadBytes)

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio file is required", err)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	if err := audio.Validate(header.Filename, header.Header.Get("Content-Type"), header.Size); err != nil {
		writeError(w, http.StatusBadRequest, "invalid audio upload", err)
		return
	}

	path, cleanup, err := audio.Stage(file, header.Filename)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to stage audio", err)
		return
	}
	defer cleanup()

	ctx := r.Context()

	if a.Archive != nil {
		if err := a.Archive.StoreFile(ctx, header.Filename, path); err != nil {
			slog.Warn("audio archival failed", slog.String("filename", header.Filename), slog.String("error", err.Error()))
		}
	}

	tr, err := a.Transcriber.Transcribe(ctx, path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "transcription failed", err)
		return
	}

	result := a.Extractor.Extract(ctx, tr.Text)
	if result.Degraded {
		slog.Warn("extraction degraded for uploaded call", slog.String("filename", header.Filename), slog.String("reason", result.Reason))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Audio transcribed successfully",
		"data": map[string]interface{}{
			"transcription":  tr.Text,
			"extracted_data": result.Record,
			"audio_duration": tr.Duration,
			"filename":       header.Filename,
		},
	})
}

type extractRequest struct {
	Text string `json:"text"`
}

// extractTextHandler extracts a structured emergency record from already
// transcribed text.
func (a *App) extractTextHandler(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "failed to decode request body", err)
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(w, http.StatusBadRequest, "text field is required and cannot be empty", nil)
		return
	}

	result := a.Extractor.Extract(r.Context(), text)
	if result.Degraded {
		slog.Warn("extraction degraded", slog.String("reason", result.Reason))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Information extracted successfully",
		"data":    result.Record,
	})
}
