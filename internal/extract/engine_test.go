package extract

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatCompleter struct {
	content string
	err     error
	calls   int
}

func (f *fakeChatCompleter) CreateChatCompletion(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	return c.data[key], nil
}

func (c *fakeCache) Set(_ context.Context, key string, _ time.Duration, value interface{}) error {
	switch v := value.(type) {
	case string:
		c.data[key] = v
	case []byte:
		c.data[key] = string(v)
	}
	return nil
}

func TestExtractParsesModelResponse(t *testing.T) {
	payload := `{
		"patient_name": "Ramesh Kumar",
		"patient_age": 62,
		"patient_gender": "male",
		"emergency_type": "Heart Attack",
		"symptoms": ["chest pain", "sweating"],
		"location": "Sector 12, Dwarka, New Delhi",
		"severity": "critical",
		"priority": 4,
		"caller_name": "Suresh",
		"consciousness": "no",
		"breathing": "difficulty"
	}`
	engine := NewEngine(&fakeChatCompleter{content: payload}, "test-model", time.Second, nil, 0)

	result := engine.Extract(context.Background(), "my father is having a heart attack")

	require.False(t, result.Degraded)
	assert.Equal(t, "Ramesh Kumar", result.Record.PatientName)
	assert.Equal(t, "critical", result.Record.Severity)
	assert.Equal(t, 1, result.Record.Priority, "priority must come from severity, not the model")
	assert.Equal(t, StringList{"Cardiac Care", "Defibrillator"}, result.Record.SpecialRequirements)
	assert.Equal(t, "", result.Record.PatientPhone)
}

func TestExtractStripsMarkdownFences(t *testing.T) {
	payload := "```json\n{\"patient_name\": \"Anita\", \"severity\": \"medium\"}\n```"
	engine := NewEngine(&fakeChatCompleter{content: payload}, "test-model", time.Second, nil, 0)

	result := engine.Extract(context.Background(), "caller reports a fall")

	require.False(t, result.Degraded)
	assert.Equal(t, "Anita", result.Record.PatientName)
	assert.Equal(t, "medium", result.Record.Severity)
	assert.Equal(t, 3, result.Record.Priority)
}

func TestExtractDegradesOnModelError(t *testing.T) {
	engine := NewEngine(&fakeChatCompleter{err: errors.New("rate limited")}, "test-model", time.Second, nil, 0)

	result := engine.Extract(context.Background(), "help")

	assert.True(t, result.Degraded)
	assert.Contains(t, result.Reason, "rate limited")
	assert.Equal(t, DefaultRecord(), result.Record)
}

func TestExtractDegradesOnUnparseableResponse(t *testing.T) {
	engine := NewEngine(&fakeChatCompleter{content: "I cannot extract that."}, "test-model", time.Second, nil, 0)

	result := engine.Extract(context.Background(), "help")

	assert.True(t, result.Degraded)
	assert.Equal(t, DefaultRecord(), result.Record)
}

func TestExtractUsesCache(t *testing.T) {
	payload := `{"patient_name": "Anita", "severity": "low"}`
	llm := &fakeChatCompleter{content: payload}
	cache := newFakeCache()
	engine := NewEngine(llm, "test-model", time.Second, cache, time.Minute)

	first := engine.Extract(context.Background(), "caller reports a fall")
	second := engine.Extract(context.Background(), "caller reports a fall")

	assert.Equal(t, 1, llm.calls, "second extraction must be served from cache")
	assert.Equal(t, first.Record, second.Record)
	assert.False(t, second.Degraded)
}

func TestExtractCacheMissOnDifferentText(t *testing.T) {
	llm := &fakeChatCompleter{content: `{"severity": "low"}`}
	engine := NewEngine(llm, "test-model", time.Second, newFakeCache(), time.Minute)

	engine.Extract(context.Background(), "first call")
	engine.Extract(context.Background(), "second call")

	assert.Equal(t, 2, llm.calls)
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fences", in: `{"a": 1}`, want: `{"a": 1}`},
		{name: "json fence", in: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "bare fence", in: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "surrounding whitespace", in: "  ```json\n{\"a\": 1}\n```  ", want: `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}

func TestDegradedRecordIsSchemaValid(t *testing.T) {
	rec := DefaultRecord()

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded CallRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rec, decoded)
}
