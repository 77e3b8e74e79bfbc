package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ayodele/xtractor/internal/store"
)

// handleListStates returns all extracted states with LGA counts.
func (s *Server) handleListStates(w http.ResponseWriter, r *http.Request) {
	states, err := s.orchestrator.Store().ListStates()
	if err != nil {
		jsonError(w, "failed to list states: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"states": states})
}

// handleListLGAs returns the LGAs of one state with ward counts.
func (s *Server) handleListLGAs(w http.ResponseWriter, r *http.Request) {
	stateID := chi.URLParam(r, "stateID")
	lgas, err := s.orchestrator.Store().LGAsByState(stateID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, "state not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to list lgas: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"lgas": lgas})
}

// handleListWards returns the wards of one LGA.
func (s *Server) handleListWards(w http.ResponseWriter, r *http.Request) {
	lgaID := chi.URLParam(r, "lgaID")
	wards, err := s.orchestrator.Store().WardsByLGA(lgaID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, "lga not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to list wards: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"wards": wards})
}

// handleSearch finds records by partial name match across all three levels.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(query) < 2 {
		jsonError(w, "query must be at least 2 characters", http.StatusBadRequest)
		return
	}
	typ := r.URL.Query().Get("type")
	switch typ {
	case "", "all", "state", "lga", "ward":
	default:
		jsonError(w, "type must be all, state, lga, or ward", http.StatusBadRequest)
		return
	}
	if typ == "all" {
		typ = ""
	}

	results, err := s.orchestrator.Store().Search(query, typ)
	if err != nil {
		jsonError(w, "search failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"query":   query,
		"results": results,
	})
}

// handleExport returns the full stored hierarchy as one JSON document.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.orchestrator.Store().ExportAll()
	if err != nil {
		jsonError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="hierarchy.json"`)
	json.NewEncoder(w).Encode(doc)
}
