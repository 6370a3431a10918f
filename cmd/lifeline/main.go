package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alpineworks.io/ootel"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/searchandrescuegg/lifeline/internal/ambulance"
	"github.com/searchandrescuegg/lifeline/internal/api"
	"github.com/searchandrescuegg/lifeline/internal/archive"
	"github.com/searchandrescuegg/lifeline/internal/config"
	"github.com/searchandrescuegg/lifeline/internal/dispatch"
	"github.com/searchandrescuegg/lifeline/internal/emergency"
	"github.com/searchandrescuegg/lifeline/internal/events"
	"github.com/searchandrescuegg/lifeline/internal/extract"
	"github.com/searchandrescuegg/lifeline/internal/kv"
	"github.com/searchandrescuegg/lifeline/internal/logging"
	"github.com/searchandrescuegg/lifeline/internal/notify"
	"github.com/searchandrescuegg/lifeline/internal/transcription"
)

func main() {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "error"
	}

	slogLevel, err := logging.LogLevelToSlogLevel(logLevel)
	if err != nil {
		log.Fatalf("could not convert log level: %s", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slogLevel,
	})))
	c, err := config.NewConfig()
	if err != nil {
		slog.Error("could not create config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	exporterType := ootel.ExporterTypePrometheus
	if c.Local {
		exporterType = ootel.ExporterTypeOTLPGRPC
	}

	ootelClient := ootel.NewOotelClient(
		ootel.WithMetricConfig(
			ootel.NewMetricConfig(
				c.MetricsEnabled,
				exporterType,
				c.MetricsPort,
			),
		),
		ootel.WithTraceConfig(
			ootel.NewTraceConfig(
				c.TracingEnabled,
				c.TracingSampleRate,
				c.TracingService,
				c.TracingVersion,
			),
		),
	)

	shutdown, err := ootelClient.Init(ctx)
	if err != nil {
		slog.Error("could not create ootel client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = runtime.Start(runtime.WithMinimumReadMemStatsInterval(5 * time.Second))
	if err != nil {
		slog.Error("could not create runtime metrics", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = host.Start()
	if err != nil {
		slog.Error("could not create host metrics", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		_ = shutdown(ctx)
	}()

	var kvClient *kv.Client
	if c.RedisAddress != "" {
		kvClient, err = kv.NewClient(ctx, &redis.Options{
			Addr:     c.RedisAddress,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		}, c.RedisRequestTimeout)
		if err != nil {
			slog.Error("could not create redis client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			_ = kvClient.Close()
		}()
	}

	var store dispatch.Store
	var cache extract.Cache
	if kvClient != nil {
		store = dispatch.NewRedisStore(kvClient)
		cache = kvClient
	} else {
		store = dispatch.NewMemoryStore()
		slog.Info("redis not configured, using in-memory dispatch store")
	}

	var publisher *events.Publisher
	if c.PulsarURL != "" {
		publisher, err = events.NewPublisher(c.PulsarURL, c.PulsarTopic)
		if err != nil {
			slog.Error("could not create pulsar publisher", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer publisher.Close()
	}

	var archiveClient *archive.Client
	if c.S3Bucket != "" {
		archiveClient, err = archive.NewClient(ctx, c.S3Region, c.S3Endpoint, c.S3AccessKey, c.S3SecretKey, c.S3Bucket, c.S3Timeout)
		if err != nil {
			slog.Error("could not create s3 client", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	groqConfig := openai.DefaultConfig(c.GroqAPIKey)
	groqConfig.BaseURL = c.GroqBaseURL
	groqClient := openai.NewClientWithConfig(groqConfig)

	engine := extract.NewEngine(groqClient, c.ChatModel, c.ExtractTimeout, cache, c.ExtractionCacheTTL)
	transcriber := transcription.NewClient(groqClient, c.WhisperModel, c.TranscribeTimeout)

	ops := notify.NewOpsAlerter(c.SlackToken, c.SlackChannelID, c.SlackTimeout)
	gateway := notify.NewGateway(c.TwilioAccountSID, c.TwilioAuthToken, c.TwilioWhatsAppFrom, c.TwilioTimeout, ops)

	var eventPublisher dispatch.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}

	coordinator := dispatch.NewCoordinator(store, gateway, eventPublisher)

	app := &api.App{
		Extractor:   engine,
		Transcriber: transcriber,
		Dispatch:    coordinator,
		Fleet:       ambulance.NewDirectory(),
		Emergencies: emergency.NewStore(),
	}
	if archiveClient != nil {
		app.Archive = archiveClient
	}
	app.Initialize()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", c.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("starting lifeline service", slog.Int("port", c.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-sigChan
	slog.Info("received shutdown signal, stopping server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("could not shut down server cleanly", slog.String("error", err.Error()))
	}
	slog.Info("server stopped")
}
