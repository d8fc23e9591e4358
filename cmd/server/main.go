package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"blackjack/internal/config"
	"blackjack/internal/database"
	"blackjack/internal/game"
	"blackjack/internal/metrics"
	"blackjack/internal/player"
	"blackjack/internal/web"
)

type CLI struct {
	Addr      string `kong:"help='HTTP listen address (overrides ADDR)'"`
	DBPath    string `kong:"name='db-path',help='SQLite database path (overrides DATABASE_PATH)'"`
	StaticDir string `kong:"name='static-dir',help='Static assets directory (overrides STATIC_DIR)'"`
	Debug     bool   `kong:"help='Enable debug logging'"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack-server"),
		kong.Description("Single-player blackjack web game server"),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(cli.run())
}

func (c *CLI) run() error {
	cfg := config.Load()
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if c.DBPath != "" {
		cfg.DatabasePath = c.DBPath
	}
	if c.StaticDir != "" {
		cfg.StaticDir = c.StaticDir
	}
	if c.Debug {
		cfg.Debug = true
	}

	logger := setupLogger(cfg.Debug)

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return err
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

	srv := web.NewServer(cfg, engine, games, db, metrics.New(), logger)

	shutdown := signalContext(logger)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-shutdown.Done():
		logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}

func setupLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func signalContext(logger zerolog.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("received signal, shutting down gracefully")
		cancel()
	}()

	return ctx
}
