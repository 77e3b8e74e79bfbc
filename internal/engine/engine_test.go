package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ayodele/xtractor/internal/classify"
)

type fakePage struct {
	tables [][][]string
	text   string
}

func (p fakePage) Tables() [][][]string { return p.tables }
func (p fakePage) Text() string         { return p.text }

// lgaRow builds a wide source row carrying an LGA and its first ward.
func lgaRow(name, code, ward, wardCode string) []string {
	return []string{name, code, ward, "", "", wardCode}
}

// wardRow builds a continuation row: LGA columns empty, ward columns set.
func wardRow(ward, wardCode string) []string {
	return []string{"", "", ward, "", "", wardCode}
}

func testEngine(cfg Config) *Engine {
	if cfg.Classifier.MaxCodeLen == 0 {
		cfg.Classifier = classify.Default()
	}
	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExtract_SingleStateWithWards(t *testing.T) {
	e := testEngine(Config{
		ReferenceOrder:     []string{"ABIA"},
		SeedFirstReference: true,
	})
	pages := []Page{fakePage{tables: [][][]string{{
		{"LGA NAME", "LGA CODE", "WARD NAME", "", "", "WARD CODE"},
		lgaRow("Aba North", "01", "Eziama", "0001"),
		wardRow("Umuogor", "0002"),
		wardRow("Osusu I", "0003"),
		lgaRow("Aba South", "02", "Aba Town Hall", "0001"),
	}}}}

	doc, stats, err := e.Extract(context.Background(), pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.States) != 1 || doc.States[0].Name != "ABIA" {
		t.Fatalf("expected single state ABIA, got %+v", doc.States)
	}
	lgas := doc.States[0].LGAs
	if len(lgas) != 2 {
		t.Fatalf("expected 2 LGAs, got %d", len(lgas))
	}
	if len(lgas[0].Wards) != 3 {
		t.Errorf("expected 3 wards in ABA NORTH, got %d", len(lgas[0].Wards))
	}
	if len(lgas[1].Wards) != 1 {
		t.Errorf("expected 1 ward in ABA SOUTH, got %d", len(lgas[1].Wards))
	}
	if stats.LGACount != 2 || stats.WardCount != 4 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestExtract_IdenticalRowDoesNotDuplicate(t *testing.T) {
	e := testEngine(Config{
		ReferenceOrder:     []string{"LAGOS"},
		SeedFirstReference: true,
	})
	pages := []Page{fakePage{tables: [][][]string{{
		lgaRow("Ikeja", "07", "Alausa", "0001"),
		lgaRow("Ikeja", "07", "Alausa", "0001"),
		wardRow("Oregun", "0002"),
	}}}}

	doc, stats, err := e.Extract(context.Background(), pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lgas := doc.States[0].LGAs
	if len(lgas) != 1 {
		t.Fatalf("expected 1 LGA after duplicate row, got %d", len(lgas))
	}
	// The repeated row moved the current pointer, so the following ward
	// attached to the original entity.
	if len(lgas[0].Wards) != 2 {
		t.Errorf("expected 2 wards, got %d", len(lgas[0].Wards))
	}
	if stats.LGACount != 1 || stats.WardCount != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestExtract_CodeResetAdvancesState(t *testing.T) {
	e := testEngine(Config{
		ReferenceOrder:     []string{"ALPHA", "BRAVO"},
		SeedFirstReference: true,
	})
	pages := []Page{fakePage{tables: [][][]string{{
		lgaRow("One", "01", "W", "0001"),
		lgaRow("Two", "02", "W", "0001"),
		lgaRow("Three", "03", "W", "0001"),
		lgaRow("One Again", "01", "W", "0001"),
		lgaRow("Two Again", "02", "W", "0001"),
	}}}}

	doc, _, err := e.Extract(context.Background(), pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.States) != 2 {
		t.Fatalf("expected 2 states, got %d", len(doc.States))
	}
	alpha, bravo := doc.States[0], doc.States[1]
	if alpha.Name != "ALPHA" || len(alpha.LGAs) != 3 {
		t.Errorf("expected ALPHA with 3 LGAs, got %q with %d", alpha.Name, len(alpha.LGAs))
	}
	if bravo.Name != "BRAVO" || len(bravo.LGAs) != 2 {
		t.Errorf("expected BRAVO with 2 LGAs, got %q with %d", bravo.Name, len(bravo.LGAs))
	}
	if bravo.LGAs[0].Code != "01" || bravo.LGAs[1].Code != "02" {
		t.Errorf("unexpected BRAVO codes %q, %q", bravo.LGAs[0].Code, bravo.LGAs[1].Code)
	}
}

func TestExtract_BannerWinsOverCodeReset(t *testing.T) {
	cfg := Config{
		ReferenceOrder:     []string{"ALPHA", "BRAVO", "CHARLIE"},
		SeedFirstReference: true,
	}
	cfg.Classifier = classify.Default()
	cfg.Classifier.KnownNames = cfg.ReferenceOrder
	e := testEngine(cfg)

	pages := []Page{
		fakePage{tables: [][][]string{{
			lgaRow("One", "01", "W", "0001"),
			lgaRow("Two", "02", "W", "0001"),
			lgaRow("Three", "03", "W", "0001"),
		}}},
		// Banner announces BRAVO; the first BRAVO code (01) is smaller than
		// the last ALPHA code (03) but must not advance a second time.
		fakePage{text: "BRAVO\n"},
		fakePage{tables: [][][]string{{
			lgaRow("Four", "01", "W", "0001"),
			lgaRow("Five", "02", "W", "0001"),
		}}},
	}

	doc, _, err := e.Extract(context.Background(), pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.States) != 2 {
		t.Fatalf("expected exactly 2 states (one transition), got %d", len(doc.States))
	}
	if doc.States[1].Name != "BRAVO" {
		t.Errorf("expected banner state BRAVO, got %q", doc.States[1].Name)
	}
	if len(doc.States[1].LGAs) != 2 {
		t.Errorf("expected 2 LGAs under BRAVO, got %d", len(doc.States[1].LGAs))
	}
}

func TestExtract_OrphanWardDropped(t *testing.T) {
	e := testEngine(Config{
		ReferenceOrder:     []string{"ALPHA"},
		SeedFirstReference: false,
	})
	pages := []Page{fakePage{tables: [][][]string{{
		{"SOMEWHERE", "WARD ONE", "0001"},
	}}}}

	doc, stats, err := e.Extract(context.Background(), pages)
	if err != nil {
		t.Fatalf("expected absorbed drop, got error: %v", err)
	}
	if len(doc.States) != 0 {
		t.Errorf("expected unchanged document, got %d states", len(doc.States))
	}
	if stats.StateCount != 0 || stats.WardCount != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}
}

func TestExtract_ReferenceExhaustion(t *testing.T) {
	cfg := Config{
		ReferenceOrder:     []string{"ALPHA"},
		SeedFirstReference: true,
	}
	cfg.Classifier = classify.Default()
	cfg.Classifier.KnownNames = []string{"ALPHA", "ZULU"}
	e := testEngine(cfg)

	pages := []Page{
		fakePage{tables: [][][]string{{
			lgaRow("One", "01", "W", "0001"),
			lgaRow("Two", "02", "W", "0001"),
			// Reset with nowhere to go: everything from here is dropped.
			lgaRow("Lost", "01", "W", "0001"),
			wardRow("Lost Ward", "0002"),
		}}},
		// An explicit banner re-establishes a valid state.
		fakePage{text: "ZULU\n"},
		fakePage{tables: [][][]string{{
			lgaRow("Recovered", "01", "W", "0001"),
		}}},
	}

	doc, _, err := e.Extract(context.Background(), pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.States) != 2 {
		t.Fatalf("expected 2 states, got %d", len(doc.States))
	}
	if len(doc.States[0].LGAs) != 2 {
		t.Errorf("expected dropped records after exhaustion, got %d LGAs", len(doc.States[0].LGAs))
	}
	if doc.States[1].Name != "ZULU" || len(doc.States[1].LGAs) != 1 {
		t.Errorf("expected banner recovery under ZULU, got %+v", doc.States[1])
	}
}

func TestExtract_ContainmentInvariant(t *testing.T) {
	e := testEngine(Config{
		ReferenceOrder:     []string{"ALPHA", "BRAVO"},
		SeedFirstReference: true,
	})
	pages := []Page{fakePage{tables: [][][]string{{
		lgaRow("One", "01", "W1", "0001"),
		wardRow("W2", "0002"),
		lgaRow("Two", "02", "W1", "0001"),
		lgaRow("Next One", "01", "W1", "0001"),
		wardRow("W2", "0002"),
	}}}}

	doc, stats, err := e.Extract(context.Background(), pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every ward is reachable through exactly one LGA in exactly one state,
	// and the statistics agree with the tree.
	lgas, wards := 0, 0
	for _, st := range doc.States {
		lgas += len(st.LGAs)
		for _, l := range st.LGAs {
			wards += len(l.Wards)
		}
	}
	if stats.LGACount != lgas || stats.WardCount != wards {
		t.Errorf("stats disagree with tree: %+v vs %d/%d", stats, lgas, wards)
	}
}

func TestExtract_CancelledBetweenPages(t *testing.T) {
	e := testEngine(Config{
		ReferenceOrder:     []string{"ALPHA"},
		SeedFirstReference: true,
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := e.Extract(ctx, []Page{fakePage{}})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestExtract_NoReferenceNoBannerDropsEverything(t *testing.T) {
	e := testEngine(Config{})
	pages := []Page{fakePage{tables: [][][]string{{
		lgaRow("One", "01", "W", "0001"),
	}}}}

	doc, _, err := e.Extract(context.Background(), pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.States) != 0 {
		t.Errorf("expected no states without a reference or banner, got %d", len(doc.States))
	}
}
