package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port               int
	DatabaseURL        string
	CalendarURL        string
	OpenAIBaseURL      string
	OpenAIAPIKey       string
	OpenAIModel        string
	HistoryTokenBudget int
	NatsURL            string
	TokenSecret        string
	TokenTTL           time.Duration
	ChatLogDir         string
	LogLevel           string
}

func Load() Config {
	return Config{
		Port:               envInt("DATEBOOK_PORT", 8600),
		DatabaseURL:        envStr("DATABASE_URL", ""),
		CalendarURL:        envStr("CALENDAR_URL", "http://localhost:5000"),
		OpenAIBaseURL:      envStr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIAPIKey:       envStr("OPENAI_API_KEY", ""),
		OpenAIModel:        envStr("OPENAI_MODEL", "gpt-4o-mini"),
		HistoryTokenBudget: envInt("HISTORY_TOKEN_BUDGET", 2000),
		NatsURL:            envStr("NATS_URL", ""),
		TokenSecret:        envStr("TOKEN_SECRET", ""),
		TokenTTL:           time.Duration(envInt("TOKEN_TTL_MINUTES", 60)) * time.Minute,
		ChatLogDir:         envStr("CHAT_LOG_DIR", "user_chat_logs"),
		LogLevel:           envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
