package api

import (
	"encoding/json"
	"net/http"
)

// handleStatus reports database totals, queue depth, rolling run statistics,
// and the most recent extraction logs.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats, err := s.orchestrator.Store().Stats()
	if err != nil {
		jsonError(w, "failed to read stats: "+err.Error(), http.StatusInternalServerError)
		return
	}
	logs, err := s.orchestrator.Store().RecentLogs(10)
	if err != nil {
		jsonError(w, "failed to read extraction logs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"database":    stats,
		"queue_depth": s.orchestrator.QueueDepth(),
		"runs":        s.orchestrator.RunStats(),
		"recent_logs": logs,
	})
}
