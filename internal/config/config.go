package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

type Config struct {
	Addr         string
	DatabasePath string
	StaticDir    string
	Debug        bool

	// BotToken is only required by the Telegram front-end.
	BotToken string

	InitialBalance  int
	MinBet          int
	MaxBet          int
	DealerStandsAt  int
	BlackjackPayout float64
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Addr:         envStr("ADDR", ":8000"),
		DatabasePath: envStr("DATABASE_PATH", "./blackjack.db"),
		StaticDir:    envStr("STATIC_DIR", "./static"),
		Debug:        envBool("DEBUG", false),
		BotToken:     os.Getenv("BOT_TOKEN"),

		InitialBalance:  envInt("INITIAL_BALANCE", 100),
		MinBet:          envInt("MIN_BET", 1),
		MaxBet:          envInt("MAX_BET", 1000),
		DealerStandsAt:  envInt("DEALER_STAND_THRESHOLD", 17),
		BlackjackPayout: envFloat("BLACKJACK_PAYOUT", 1.5),
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

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
