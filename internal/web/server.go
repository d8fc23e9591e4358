// Package web is the HTTP front-end: routing, session cookies, and the
// JSON adaptation of engine results. All game rules live in internal/game.
package web

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"blackjack/internal/config"
	"blackjack/internal/database"
	"blackjack/internal/game"
	"blackjack/internal/metrics"
)

type Server struct {
	cfg     *config.Config
	engine  *game.Service
	games   game.Repository
	db      *database.DB
	metrics *metrics.Metrics
	log     zerolog.Logger

	http *http.Server
}

func NewServer(cfg *config.Config, engine *game.Service, games game.Repository, db *database.DB, m *metrics.Metrics, log zerolog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		engine:  engine,
		games:   games,
		db:      db,
		metrics: m,
		log:     log,
	}

	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(s.instrument)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.withSession)
		r.Post("/start-game", s.handleStartGame)
		r.Post("/hit", s.handleHit)
		r.Post("/stand", s.handleStand)
		r.Get("/stats", s.handleStats)
		r.Post("/reset", s.handleReset)
	})

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
	r.Get("/metrics/prometheus", s.handlePrometheus)
	r.Get("/ready", s.handleReady)
	r.Get("/live", s.handleLive)

	r.Get("/", s.handleIndex)
	r.Handle("/static/*", http.StripPrefix("/static/",
		http.FileServer(http.Dir(s.cfg.StaticDir))))

	return r
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.cfg.Addr).Msg("server listening")
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.cfg.StaticDir, "index.html"))
}
