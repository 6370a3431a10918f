package transcription

import (
	"context"
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranscriber struct {
	resp openai.AudioResponse
	err  error
	req  openai.AudioRequest
}

func (f *fakeTranscriber) CreateTranscription(_ context.Context, request openai.AudioRequest) (openai.AudioResponse, error) {
	f.req = request
	return f.resp, f.err
}

func TestTranscribe(t *testing.T) {
	api := &fakeTranscriber{resp: openai.AudioResponse{
		Text:     "  My father is having a heart attack.  ",
		Duration: 12.5,
	}}
	c := NewClient(api, "whisper-large-v3", time.Minute)

	tr, err := c.Transcribe(context.Background(), "/tmp/call.mp3")
	require.NoError(t, err)

	assert.Equal(t, "My father is having a heart attack.", tr.Text)
	assert.Equal(t, 12.5, tr.Duration)

	assert.Equal(t, "whisper-large-v3", api.req.Model)
	assert.Equal(t, "/tmp/call.mp3", api.req.FilePath)
	assert.Equal(t, "en", api.req.Language)
	assert.Equal(t, openai.AudioResponseFormatVerboseJSON, api.req.Format)
}

func TestTranscribeEmptyText(t *testing.T) {
	api := &fakeTranscriber{resp: openai.AudioResponse{Text: "   "}}
	c := NewClient(api, "whisper-large-v3", time.Minute)

	_, err := c.Transcribe(context.Background(), "/tmp/call.mp3")
	assert.ErrorIs(t, err, ErrNoUsableText)
}

func TestTranscribeAPIError(t *testing.T) {
	api := &fakeTranscriber{err: errors.New("rate limited")}
	c := NewClient(api, "whisper-large-v3", time.Minute)

	_, err := c.Transcribe(context.Background(), "/tmp/call.mp3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
