package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"blackjack/internal/game"
)

type startGameRequest struct {
	Bet int `json:"bet"`
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequest("/api/start-game")

	var req startGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, &game.ValidationError{Reason: "Invalid request body"})
		return
	}

	g, p, err := s.engine.StartGame(sessionID(r), req.Bet)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, game.NewView(g, p))
}

func (s *Server) handleHit(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequest("/api/hit")

	g, p, err := s.engine.Hit(sessionID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, game.NewView(g, p))
}

func (s *Server) handleStand(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequest("/api/stand")

	g, p, err := s.engine.Stand(sessionID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, game.NewView(g, p))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequest("/api/stats")

	stats, err := s.engine.Stats(sessionID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRequest("/api/reset")

	p, err := s.engine.ResetBalance(sessionID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"balance": p.Balance,
		"message": "Balance reset successfully",
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps the engine's error taxonomy onto HTTP statuses. Reasons
// from validation and not-found rejections are surfaced verbatim; anything
// else is an infrastructure failure and stays opaque.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.metrics.IncError()

	var validation *game.ValidationError
	var notFound *game.NotFoundError

	switch {
	case errors.As(err, &validation):
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": validation.Reason})
	case errors.As(err, &notFound):
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": notFound.Reason})
	default:
		s.log.Error().Err(err).Msg("request failed")
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
