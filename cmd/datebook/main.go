package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MikeSquared-Agency/datebook/internal/api"
	"github.com/MikeSquared-Agency/datebook/internal/auth"
	"github.com/MikeSquared-Agency/datebook/internal/bot"
	"github.com/MikeSquared-Agency/datebook/internal/calendar"
	"github.com/MikeSquared-Agency/datebook/internal/chatlog"
	"github.com/MikeSquared-Agency/datebook/internal/config"
	"github.com/MikeSquared-Agency/datebook/internal/llm"
	"github.com/MikeSquared-Agency/datebook/internal/notify"
	"github.com/MikeSquared-Agency/datebook/internal/store"
	"github.com/MikeSquared-Agency/datebook/internal/transcript"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("datebook starting",
		"port", cfg.Port,
		"calendar_url", cfg.CalendarURL,
		"model", cfg.OpenAIModel,
		"history_token_budget", cfg.HistoryTokenBudget,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	if cfg.OpenAIAPIKey == "" {
		slog.Error("OPENAI_API_KEY is required")
		os.Exit(1)
	}

	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database connected")

	transcripts := transcript.NewStoreAdapter(db)
	cal := calendar.NewClient(cfg.CalendarURL)
	completer := llm.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	orc := bot.New(completer, cal, transcripts, cfg.HistoryTokenBudget)

	var publish notify.PublishFunc
	if cfg.NatsURL != "" {
		notifier, err := notify.New(cfg.NatsURL)
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer notifier.Close()
		publish = notifier.Publish
		slog.Info("turn event publishing enabled", "nats_url", cfg.NatsURL)
	}

	logs := chatlog.New(cfg.ChatLogDir)
	tokens := auth.NewTokens(cfg.TokenSecret, cfg.TokenTTL)

	srv := api.NewServer(orc, db, tokens, logs, publish, cfg.Port)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("datebook ready", "port", cfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	slog.Info("shutting down", "signal", sig)
	cancel()
	slog.Info("datebook stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
