package store

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayodele/xtractor/internal/hierarchy"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(filepath.Join(t.TempDir(), "db"), log)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleDocument() *hierarchy.Document {
	doc := hierarchy.NewDocument()
	lagos, _ := doc.FindOrCreateState("LAGOS")
	ikeja, _ := lagos.FindOrCreateLGA("IKEJA", "01")
	ikeja.FindOrCreateWard("ANIFOWOSE", "0001")
	ikeja.FindOrCreateWard("OJODU", "0002")
	agege, _ := lagos.FindOrCreateLGA("AGEGE", "02")
	agege.FindOrCreateWard("OKO OBA", "0001")
	kano, _ := doc.FindOrCreateState("KANO")
	dala, _ := kano.FindOrCreateLGA("DALA", "01")
	dala.FindOrCreateWard("ADAKAWA", "0001")
	return doc
}

func TestSaveDocumentAndListStates(t *testing.T) {
	s := testStore(t)

	logRec, err := s.SaveDocument(sampleDocument(), "wards.pdf")
	if err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	if logRec.Status != LogSuccess {
		t.Fatalf("status = %q, want %q", logRec.Status, LogSuccess)
	}
	if logRec.LGAsExtracted != 3 || logRec.WardsExtracted != 4 {
		t.Fatalf("counts = %d lgas, %d wards, want 3 and 4",
			logRec.LGAsExtracted, logRec.WardsExtracted)
	}

	states, err := s.ListStates()
	if err != nil {
		t.Fatalf("ListStates: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("got %d states, want 2", len(states))
	}
	if states[0].Name != "KANO" || states[1].Name != "LAGOS" {
		t.Fatalf("states not sorted by name: %q, %q", states[0].Name, states[1].Name)
	}
	if states[1].LGACount != 2 {
		t.Fatalf("LAGOS LGACount = %d, want 2", states[1].LGACount)
	}
}

func TestSaveDocumentIsIdempotent(t *testing.T) {
	s := testStore(t)

	if _, err := s.SaveDocument(sampleDocument(), "first.pdf"); err != nil {
		t.Fatalf("first SaveDocument: %v", err)
	}
	logRec, err := s.SaveDocument(sampleDocument(), "second.pdf")
	if err != nil {
		t.Fatalf("second SaveDocument: %v", err)
	}
	if logRec.LGAsExtracted != 0 || logRec.WardsExtracted != 0 {
		t.Fatalf("second run created %d lgas, %d wards, want 0 and 0",
			logRec.LGAsExtracted, logRec.WardsExtracted)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalStates != 2 || stats.TotalLGAs != 3 || stats.TotalWards != 4 {
		t.Fatalf("stats = %+v, want 2 states, 3 lgas, 4 wards", stats)
	}
	if stats.TotalExtractions != 2 {
		t.Fatalf("TotalExtractions = %d, want 2", stats.TotalExtractions)
	}
}

func TestLGAsByStateAndWardsByLGA(t *testing.T) {
	s := testStore(t)
	if _, err := s.SaveDocument(sampleDocument(), "wards.pdf"); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	states, err := s.ListStates()
	if err != nil {
		t.Fatalf("ListStates: %v", err)
	}
	var lagosID string
	for _, st := range states {
		if st.Name == "LAGOS" {
			lagosID = st.ID
		}
	}

	lgas, err := s.LGAsByState(lagosID)
	if err != nil {
		t.Fatalf("LGAsByState: %v", err)
	}
	if len(lgas) != 2 {
		t.Fatalf("got %d lgas, want 2", len(lgas))
	}
	if lgas[0].Name != "AGEGE" || lgas[1].Name != "IKEJA" {
		t.Fatalf("lgas not sorted: %q, %q", lgas[0].Name, lgas[1].Name)
	}
	if lgas[1].WardCount != 2 {
		t.Fatalf("IKEJA WardCount = %d, want 2", lgas[1].WardCount)
	}

	wards, err := s.WardsByLGA(lgas[1].ID)
	if err != nil {
		t.Fatalf("WardsByLGA: %v", err)
	}
	if len(wards) != 2 {
		t.Fatalf("got %d wards, want 2", len(wards))
	}
	if wards[0].Name != "ANIFOWOSE" {
		t.Fatalf("wards[0] = %q, want ANIFOWOSE", wards[0].Name)
	}

	if _, err := s.LGAsByState("missing"); err != ErrNotFound {
		t.Fatalf("LGAsByState(missing) err = %v, want ErrNotFound", err)
	}
	if _, err := s.WardsByLGA("missing"); err != ErrNotFound {
		t.Fatalf("WardsByLGA(missing) err = %v, want ErrNotFound", err)
	}
}

func TestSearch(t *testing.T) {
	s := testStore(t)
	if _, err := s.SaveDocument(sampleDocument(), "wards.pdf"); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	results, err := s.Search("ikeja", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results.LGAs) != 1 || results.LGAs[0].Name != "IKEJA" {
		t.Fatalf("LGAs = %+v, want one IKEJA match", results.LGAs)
	}
	if results.LGAs[0].State != "LAGOS" {
		t.Fatalf("match state = %q, want LAGOS", results.LGAs[0].State)
	}
	if len(results.States) != 0 || len(results.Wards) != 0 {
		t.Fatalf("unexpected state/ward matches: %+v", results)
	}

	// Partial match across levels, narrowed by type.
	results, err = s.Search("a", "ward")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results.States) != 0 || len(results.LGAs) != 0 {
		t.Fatalf("type filter leaked: %+v", results)
	}
	if len(results.Wards) != 3 {
		t.Fatalf("got %d ward matches, want 3", len(results.Wards))
	}
	if results.Wards[0].Name != "ADAKAWA" {
		t.Fatalf("matches not sorted: %q first", results.Wards[0].Name)
	}
	if results.Wards[0].LGA == "" || results.Wards[0].State == "" {
		t.Fatalf("ward match missing parents: %+v", results.Wards[0])
	}
}

func TestExportAll(t *testing.T) {
	s := testStore(t)
	if _, err := s.SaveDocument(sampleDocument(), "wards.pdf"); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	doc, err := s.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}
	stats := doc.Stats()
	if stats.StateCount != 2 || stats.LGACount != 3 || stats.WardCount != 4 {
		t.Fatalf("exported stats = %+v, want 2/3/4", stats)
	}
}

func TestRecentLogs(t *testing.T) {
	s := testStore(t)

	for _, name := range []string{"one.pdf", "two.pdf", "three.pdf"} {
		if _, err := s.SaveDocument(sampleDocument(), name); err != nil {
			t.Fatalf("SaveDocument(%s): %v", name, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	logs, err := s.RecentLogs(2)
	if err != nil {
		t.Fatalf("RecentLogs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d logs, want 2", len(logs))
	}
	if logs[0].Filename != "three.pdf" || logs[1].Filename != "two.pdf" {
		t.Fatalf("logs not newest first: %q, %q", logs[0].Filename, logs[1].Filename)
	}
}
