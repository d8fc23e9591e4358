package main

import (
	"os"

	"github.com/rs/zerolog"

	"blackjack/internal/bot"
	"blackjack/internal/config"
	"blackjack/internal/database"
	"blackjack/internal/game"
	"blackjack/internal/player"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger()

	cfg := config.Load()
	if cfg.BotToken == "" {
		logger.Fatal().Msg("BOT_TOKEN is not set")
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	logger.Info().Str("path", cfg.DatabasePath).Msg("database connected")

	players := player.NewRepository(db.DB)
	games := game.NewRepository(db.DB)
	engine := game.NewService(players, games, game.Rules{
		InitialBalance:  cfg.InitialBalance,
		MinBet:          cfg.MinBet,
		MaxBet:          cfg.MaxBet,
		DealerStandsAt:  cfg.DealerStandsAt,
		BlackjackPayout: cfg.BlackjackPayout,
	}, logger)

	b, err := bot.New(cfg, engine, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create bot")
	}

	if err := b.Run(); err != nil {
		logger.Fatal().Err(err).Msg("bot error")
	}
}
