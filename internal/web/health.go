package web

import (
	"fmt"
	"net/http"
	"time"

	"blackjack/internal/config"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbStatus := "healthy"
	status := "healthy"
	if err := s.db.Ping(); err != nil {
		dbStatus = fmt.Sprintf("unhealthy: %v", err)
		status = "degraded"
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":         status,
		"version":        config.Version,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"database":       dbStatus,
		"uptime_seconds": round2(s.metrics.Uptime().Seconds()),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snap := s.metrics.Snapshot()

	activeGames, err := s.games.CountActive()
	if err != nil {
		s.writeError(w, err)
		return
	}
	totalPlayers, err := s.engine.PlayerCount()
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"request_count":        snap.RequestCount,
		"error_count":          snap.ErrorCount,
		"avg_response_time_ms": snap.AvgResponseTimeMS,
		"uptime_seconds":       snap.UptimeSeconds,
		"endpoints":            snap.Endpoints,
		"active_games":         activeGames,
		"total_players":        totalPlayers,
	})
}

func (s *Server) handlePrometheus(w http.ResponseWriter, r *http.Request) {
	out := s.metrics.Prometheus()

	if activeGames, err := s.games.CountActive(); err == nil {
		out += "\n# HELP blackjack_active_games Number of games in progress\n"
		out += "# TYPE blackjack_active_games gauge\n"
		out += fmt.Sprintf("blackjack_active_games %d\n", activeGames)
	}
	if totalPlayers, err := s.engine.PlayerCount(); err == nil {
		out += "\n# HELP blackjack_total_players Total registered players\n"
		out += "# TYPE blackjack_total_players counter\n"
		out += fmt.Sprintf("blackjack_total_players %d\n", totalPlayers)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(out))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}
