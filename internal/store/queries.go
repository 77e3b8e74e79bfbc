package store

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/timshannon/badgerhold/v4"

	"github.com/ayodele/xtractor/internal/hierarchy"
)

// ListStates returns all states ordered by name, with LGA counts.
func (s *Store) ListStates() ([]StateSummary, error) {
	var recs []StateRecord
	if err := s.db.Find(&recs, badgerhold.Where("ID").Ne("").SortBy("Name")); err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	out := make([]StateSummary, 0, len(recs))
	for _, rec := range recs {
		count, err := s.db.Count(&LGARecord{}, badgerhold.Where("StateID").Eq(rec.ID))
		if err != nil {
			return nil, fmt.Errorf("count lgas for %s: %w", rec.Name, err)
		}
		out = append(out, StateSummary{
			ID:       rec.ID,
			Name:     rec.Name,
			Code:     rec.Code,
			LGACount: int(count),
		})
	}
	return out, nil
}

// LGAsByState returns the LGAs of one state ordered by name, with ward counts.
// It returns ErrNotFound when the state does not exist.
func (s *Store) LGAsByState(stateID string) ([]LGASummary, error) {
	var state StateRecord
	if err := s.db.Get(stateID, &state); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get state %s: %w", stateID, err)
	}
	var recs []LGARecord
	err := s.db.Find(&recs, badgerhold.Where("StateID").Eq(stateID).SortBy("Name"))
	if err != nil {
		return nil, fmt.Errorf("list lgas: %w", err)
	}
	out := make([]LGASummary, 0, len(recs))
	for _, rec := range recs {
		count, err := s.db.Count(&WardRecord{}, badgerhold.Where("LGAID").Eq(rec.ID))
		if err != nil {
			return nil, fmt.Errorf("count wards for %s: %w", rec.Name, err)
		}
		out = append(out, LGASummary{
			ID:        rec.ID,
			Name:      rec.Name,
			Code:      rec.Code,
			StateID:   rec.StateID,
			WardCount: int(count),
		})
	}
	return out, nil
}

// WardsByLGA returns the wards of one LGA ordered by name. It returns
// ErrNotFound when the LGA does not exist.
func (s *Store) WardsByLGA(lgaID string) ([]WardSummary, error) {
	var lga LGARecord
	if err := s.db.Get(lgaID, &lga); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get lga %s: %w", lgaID, err)
	}
	var recs []WardRecord
	err := s.db.Find(&recs, badgerhold.Where("LGAID").Eq(lgaID).SortBy("Name"))
	if err != nil {
		return nil, fmt.Errorf("list wards: %w", err)
	}
	out := make([]WardSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, WardSummary{
			ID:    rec.ID,
			Name:  rec.Name,
			Code:  rec.Code,
			LGAID: rec.LGAID,
		})
	}
	return out, nil
}

// Search finds states, LGAs, and wards whose name contains the query,
// case-insensitively. typ narrows the search to "state", "lga", or "ward";
// an empty typ searches all three.
func (s *Store) Search(query, typ string) (*SearchResults, error) {
	pattern, err := regexp.Compile("(?i)" + regexp.QuoteMeta(strings.TrimSpace(query)))
	if err != nil {
		return nil, fmt.Errorf("compile search pattern: %w", err)
	}
	match := badgerhold.Where("Name").RegExp(pattern)

	results := &SearchResults{
		States: []SearchResult{},
		LGAs:   []SearchResult{},
		Wards:  []SearchResult{},
	}

	if typ == "" || typ == "state" {
		var recs []StateRecord
		if err := s.db.Find(&recs, match); err != nil {
			return nil, fmt.Errorf("search states: %w", err)
		}
		for _, rec := range recs {
			results.States = append(results.States, SearchResult{
				ID: rec.ID, Name: rec.Name, Code: rec.Code,
			})
		}
	}
	if typ == "" || typ == "lga" {
		var recs []LGARecord
		if err := s.db.Find(&recs, match); err != nil {
			return nil, fmt.Errorf("search lgas: %w", err)
		}
		for _, rec := range recs {
			results.LGAs = append(results.LGAs, SearchResult{
				ID: rec.ID, Name: rec.Name, Code: rec.Code,
				State: s.stateName(rec.StateID),
			})
		}
	}
	if typ == "" || typ == "ward" {
		var recs []WardRecord
		if err := s.db.Find(&recs, match); err != nil {
			return nil, fmt.Errorf("search wards: %w", err)
		}
		for _, rec := range recs {
			lgaName, stateName := s.wardParents(rec.LGAID)
			results.Wards = append(results.Wards, SearchResult{
				ID: rec.ID, Name: rec.Name, Code: rec.Code,
				LGA: lgaName, State: stateName,
			})
		}
	}

	sortResults(results.States)
	sortResults(results.LGAs)
	sortResults(results.Wards)
	return results, nil
}

func (s *Store) stateName(stateID string) string {
	var state StateRecord
	if err := s.db.Get(stateID, &state); err != nil {
		return ""
	}
	return state.Name
}

func (s *Store) wardParents(lgaID string) (lgaName, stateName string) {
	var lga LGARecord
	if err := s.db.Get(lgaID, &lga); err != nil {
		return "", ""
	}
	return lga.Name, s.stateName(lga.StateID)
}

func sortResults(rs []SearchResult) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].Name < rs[j].Name })
}

// ExportAll rebuilds the full hierarchy from the database.
func (s *Store) ExportAll() (*hierarchy.Document, error) {
	doc := hierarchy.NewDocument()

	var states []StateRecord
	if err := s.db.Find(&states, badgerhold.Where("ID").Ne("").SortBy("Name")); err != nil {
		return nil, fmt.Errorf("export states: %w", err)
	}
	for _, stateRec := range states {
		state, _ := doc.FindOrCreateState(stateRec.Name)

		var lgas []LGARecord
		err := s.db.Find(&lgas, badgerhold.Where("StateID").Eq(stateRec.ID).SortBy("Name"))
		if err != nil {
			return nil, fmt.Errorf("export lgas for %s: %w", stateRec.Name, err)
		}
		for _, lgaRec := range lgas {
			lga, _ := state.FindOrCreateLGA(lgaRec.Name, lgaRec.Code)

			var wards []WardRecord
			err := s.db.Find(&wards, badgerhold.Where("LGAID").Eq(lgaRec.ID).SortBy("Name"))
			if err != nil {
				return nil, fmt.Errorf("export wards for %s: %w", lgaRec.Name, err)
			}
			for _, wardRec := range wards {
				lga.FindOrCreateWard(wardRec.Name, wardRec.Code)
			}
		}
	}
	return doc, nil
}

// Stats returns overall record counts.
func (s *Store) Stats() (*Stats, error) {
	states, err := s.db.Count(&StateRecord{}, nil)
	if err != nil {
		return nil, fmt.Errorf("count states: %w", err)
	}
	lgas, err := s.db.Count(&LGARecord{}, nil)
	if err != nil {
		return nil, fmt.Errorf("count lgas: %w", err)
	}
	wards, err := s.db.Count(&WardRecord{}, nil)
	if err != nil {
		return nil, fmt.Errorf("count wards: %w", err)
	}
	runs, err := s.db.Count(&ExtractionLog{}, nil)
	if err != nil {
		return nil, fmt.Errorf("count extraction logs: %w", err)
	}
	return &Stats{
		TotalStates:      int(states),
		TotalLGAs:        int(lgas),
		TotalWards:       int(wards),
		TotalExtractions: int(runs),
	}, nil
}

// RecentLogs returns the most recent extraction logs, newest first.
func (s *Store) RecentLogs(limit int) ([]ExtractionLog, error) {
	if limit <= 0 {
		limit = 10
	}
	var recs []ExtractionLog
	q := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse().Limit(limit)
	if err := s.db.Find(&recs, q); err != nil {
		return nil, fmt.Errorf("list extraction logs: %w", err)
	}
	return recs, nil
}
