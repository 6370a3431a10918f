package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"error"`

	Port int `env:"PORT" envDefault:"8000"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsPort    int  `env:"METRICS_PORT" envDefault:"8081"`

	Local bool `env:"LOCAL" envDefault:"false"`

	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingSampleRate float64 `env:"TRACING_SAMPLERATE" envDefault:"0.01"`
	TracingService    string  `env:"TRACING_SERVICE" envDefault:"lifeline"`
	TracingVersion    string  `env:"TRACING_VERSION"`

	GroqAPIKey        string        `env:"GROQ_API_KEY"`
	GroqBaseURL       string        `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	ChatModel         string        `env:"CHAT_MODEL" envDefault:"llama-3.3-70b-versatile"`
	WhisperModel      string        `env:"WHISPER_MODEL" envDefault:"whisper-large-v3"`
	ExtractTimeout    time.Duration `env:"EXTRACT_TIMEOUT" envDefault:"30s"`    // Timeout for chat completion requests
	TranscribeTimeout time.Duration `env:"TRANSCRIBE_TIMEOUT" envDefault:"60s"` // Timeout for Whisper requests

	TwilioAccountSID   string        `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken    string        `env:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppFrom string        `env:"TWILIO_WHATSAPP_NUMBER" envDefault:"whatsapp:+14155238886"`
	TwilioTimeout      time.Duration `env:"TWILIO_TIMEOUT" envDefault:"10s"` // Timeout for Twilio API requests

	SlackToken     string        `env:"SLACK_TOKEN"`
	SlackChannelID string        `env:"SLACK_CHANNEL_ID"`
	SlackTimeout   time.Duration `env:"SLACK_TIMEOUT" envDefault:"5s"` // Timeout for Slack API requests

	RedisAddress        string        `env:"REDIS_ADDRESS"` // empty: in-memory dispatch store, no extraction cache
	RedisPassword       string        `env:"REDIS_PASSWORD"`
	RedisDB             int           `env:"REDIS_DB" envDefault:"0"`
	RedisRequestTimeout time.Duration `env:"REDIS_REQUEST_TIMEOUT" envDefault:"1s"`
	ExtractionCacheTTL  time.Duration `env:"EXTRACTION_CACHE_TTL" envDefault:"15m"`

	PulsarURL   string `env:"PULSAR_URL"` // empty: dispatch event publishing disabled
	PulsarTopic string `env:"PULSAR_TOPIC" envDefault:"dispatch-events"`

	S3Region    string        `env:"S3_REGION" envDefault:"us-east-1"`
	S3AccessKey string        `env:"S3_ACCESS_KEY"`
	S3SecretKey string        `env:"S3_SECRET_KEY"`
	S3Bucket    string        `env:"S3_BUCKET"` // empty: audio archival disabled
	S3Endpoint  string        `env:"S3_ENDPOINT"`
	S3Timeout   time.Duration `env:"S3_TIMEOUT" envDefault:"10s"` // Timeout for S3 requests
}

func NewConfig() (*Config, error) {
	var cfg Config

	err := env.Parse(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
