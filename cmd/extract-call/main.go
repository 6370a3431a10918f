package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/searchandrescuegg/lifeline/internal/extract"
)

func main() {
	apiKey, exists := os.LookupEnv("GROQ_API_KEY")
	if !exists {
		apiKey = ""
	}

	baseURL, exists := os.LookupEnv("GROQ_BASE_URL")
	if !exists {
		baseURL = "https://api.groq.com/openai/v1"
	}

	modelName, exists := os.LookupEnv("CHAT_MODEL")
	if !exists {
		modelName = "llama-3.3-70b-versatile"
	}

	transcriptFile, exists := os.LookupEnv("TRANSCRIPT_FILE")
	if !exists {
		slog.Error("TRANSCRIPT_FILE environment variable is required")
		os.Exit(1)
	}

	groqConfig := openai.DefaultConfig(apiKey)
	groqConfig.BaseURL = baseURL
	groqConfig.HTTPClient = &http.Client{Timeout: time.Second * 30}

	engine := extract.NewEngine(
		openai.NewClientWithConfig(groqConfig),
		modelName,
		30*time.Second,
		nil,
		0,
	)

	transcriptBytes, err := os.ReadFile(transcriptFile)
	if err != nil {
		slog.Error("could not read transcript file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	result := engine.Extract(context.Background(), string(transcriptBytes))
	if result.Degraded {
		slog.Warn("extraction degraded to default record", slog.String("reason", result.Reason))
	}

	jsonBytes, err := json.MarshalIndent(result.Record, "", "  ")
	if err != nil {
		slog.Error("could not marshal record to JSON", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(string(jsonBytes))
}
