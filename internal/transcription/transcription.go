package transcription

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

var ErrNoUsableText = errors.New("transcription returned no usable text")

// AudioTranscriber is the slice of the OpenAI-compatible client the
// transcription client needs.
type AudioTranscriber interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

type Client struct {
	api     AudioTranscriber
	model   string
	timeout time.Duration
}

func NewClient(api AudioTranscriber, model string, timeout time.Duration) *Client {
	return &Client{
		api:     api,
		model:   model,
		timeout: timeout,
	}
}

// Transcription is the usable output of a Whisper call.
type Transcription struct {
	Text     string
	Duration float64 // seconds
}

// Transcribe runs the staged audio file through Whisper and returns the
// transcribed text with its duration.
func (c *Client) Transcribe(ctx context.Context, path string) (*Transcription, error) {
	transcribeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateTranscription(transcribeCtx, openai.AudioRequest{
		Model:    c.model,
		FilePath: path,
		Language: "en",
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, ErrNoUsableText
	}

	return &Transcription{
		Text:     text,
		Duration: resp.Duration,
	}, nil
}
