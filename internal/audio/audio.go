package audio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// MaxUploadBytes caps call recordings at 25 MiB, the Whisper API limit.
const MaxUploadBytes = 25 << 20

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrTooLarge          = errors.New("audio file exceeds the 25MB limit")
)

var allowedExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".m4a":  {},
	".ogg":  {},
	".flac": {},
}

var allowedContentTypes = map[string]struct{}{
	"audio/mpeg":  {},
	"audio/mp3":   {},
	"audio/wav":   {},
	"audio/x-wav": {},
	"audio/m4a":   {},
	"audio/x-m4a": {},
	"audio/ogg":   {},
	"audio/flac":  {},
}

// Validate accepts an upload when either the file extension or the declared
// content type is in the allowed set. The extension check is case-insensitive
// and is the decisive check when the content type is absent or unreliable.
func Validate(filename, contentType string, size int64) error {
	if size > MaxUploadBytes {
		return ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; ok {
		return nil
	}
	if _, ok := allowedContentTypes[contentType]; ok {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
}

// Stage writes the payload to a temporary file and returns its path together
// with a cleanup func. The caller must invoke cleanup on every path, success
// or failure, so no recording outlives the request.
func Stage(r io.Reader, filename string) (string, func(), error) {
	f, err := os.CreateTemp("", "lifeline-*"+strings.ToLower(filepath.Ext(filename)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create staging file: %w", err)
	}

	cleanup := func() {
		if err := os.Remove(f.Name()); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove staged audio", slog.String("path", f.Name()), slog.String("error", err.Error()))
		}
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to stage audio payload: %w", err)
	}

	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close staging file: %w", err)
	}

	return f.Name(), cleanup, nil
}
