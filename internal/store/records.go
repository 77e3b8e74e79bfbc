package store

import "time"

// StateRecord is a persisted top-level region.
type StateRecord struct {
	ID        string `badgerhold:"key"`
	Name      string `badgerholdIndex:"Name"`
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LGARecord is a persisted local government area, owned by one state.
type LGARecord struct {
	ID        string `badgerhold:"key"`
	Name      string `badgerholdIndex:"Name"`
	Code      string
	StateID   string `badgerholdIndex:"StateID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WardRecord is a persisted ward, owned by one LGA.
type WardRecord struct {
	ID        string `badgerhold:"key"`
	Name      string `badgerholdIndex:"Name"`
	Code      string
	LGAID     string `badgerholdIndex:"LGAID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Extraction log statuses.
const (
	LogInProgress = "in_progress"
	LogSuccess    = "success"
	LogFailed     = "failed"
)

// ExtractionLog records one persistence run of an extracted document.
type ExtractionLog struct {
	ID             string `badgerhold:"key"`
	Filename       string
	Status         string
	LGAsExtracted  int
	WardsExtracted int
	Error          string
	CreatedAt      time.Time `badgerholdIndex:"CreatedAt"`
	CompletedAt    time.Time
}

// StateSummary is a listing row for one state.
type StateSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	LGACount int    `json:"lga_count"`
}

// LGASummary is a listing row for one LGA.
type LGASummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	StateID   string `json:"state_id"`
	WardCount int    `json:"ward_count"`
}

// WardSummary is a listing row for one ward.
type WardSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Code  string `json:"code"`
	LGAID string `json:"lga_id"`
}

// SearchResult is one match from a search query.
type SearchResult struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Code  string `json:"code"`
	State string `json:"state,omitempty"`
	LGA   string `json:"lga,omitempty"`
}

// SearchResults groups matches by level.
type SearchResults struct {
	States []SearchResult `json:"states"`
	LGAs   []SearchResult `json:"lgas"`
	Wards  []SearchResult `json:"wards"`
}

// Stats summarizes the database contents.
type Stats struct {
	TotalStates      int `json:"total_states"`
	TotalLGAs        int `json:"total_lgas"`
	TotalWards       int `json:"total_wards"`
	TotalExtractions int `json:"total_extractions"`
}
