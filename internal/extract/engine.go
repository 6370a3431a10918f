package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	openai "github.com/sashabaranov/go-openai"
)

const cacheKeyPrefix = "extract:%d"

// ChatCompleter is the slice of the OpenAI-compatible client the engine needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Cache stores normalized records keyed by transcript hash. Get returns the
// empty string on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, ttl time.Duration, value interface{}) error
}

type Engine struct {
	llm      ChatCompleter
	model    string
	timeout  time.Duration
	cache    Cache // nil disables caching
	cacheTTL time.Duration
}

func NewEngine(llm ChatCompleter, model string, timeout time.Duration, cache Cache, cacheTTL time.Duration) *Engine {
	return &Engine{
		llm:      llm,
		model:    model,
		timeout:  timeout,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Result distinguishes a genuine extraction from the conservative fallback.
// Either way the record is complete and schema-valid.
type Result struct {
	Record   CallRecord
	Degraded bool
	Reason   string
}

// Extract turns raw call text into a complete CallRecord. It never returns an
// error: model failures and unparseable responses degrade to DefaultRecord.
func (e *Engine) Extract(ctx context.Context, text string) Result {
	cacheKey := fmt.Sprintf(cacheKeyPrefix, xxhash.Sum64String(text))

	if e.cache != nil {
		cached, err := e.cache.Get(ctx, cacheKey)
		if err != nil {
			slog.Debug("extraction cache lookup failed", slog.String("error", err.Error()))
		} else if cached != "" {
			var rec CallRecord
			if err := json.Unmarshal([]byte(cached), &rec); err == nil {
				return Result{Record: Normalize(rec)}
			}
			slog.Warn("discarding unreadable cached extraction", slog.String("key", cacheKey))
		}
	}

	completionCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.llm.CreateChatCompletion(completionCtx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildExtractionPrompt(text),
			},
		},
		Temperature: 0.3,
		MaxTokens:   1200,
	})
	if err != nil {
		return degraded(fmt.Sprintf("chat completion error: %s", err.Error()))
	}

	if len(resp.Choices) == 0 {
		return degraded("chat completion returned no choices")
	}

	raw := StripFences(resp.Choices[0].Message.Content)

	var rec CallRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return degraded(fmt.Sprintf("failed to parse model response: %s", err.Error()))
	}

	rec = Normalize(rec)

	if e.cache != nil {
		payload, err := json.Marshal(rec)
		if err == nil {
			if err := e.cache.Set(ctx, cacheKey, e.cacheTTL, payload); err != nil {
				slog.Debug("failed to cache extraction", slog.String("error", err.Error()))
			}
		}
	}

	return Result{Record: rec}
}

func degraded(reason string) Result {
	slog.Warn("extraction degraded to default record", slog.String("reason", reason))
	return Result{Record: DefaultRecord(), Degraded: true, Reason: reason}
}

// StripFences removes an optional markdown code fence wrapper, with or without
// a "json" language tag, from a model response.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}
