package hierarchy

import (
	"encoding/json"
	"testing"
)

func TestFindOrCreateState_DedupAndOrder(t *testing.T) {
	doc := NewDocument()
	a, existed := doc.FindOrCreateState("  abia ")
	if existed {
		t.Fatal("first insert reported as existing")
	}
	if a.Name != "ABIA" {
		t.Errorf("expected normalized name ABIA, got %q", a.Name)
	}

	b, _ := doc.FindOrCreateState("ADAMAWA")
	again, existed := doc.FindOrCreateState("Abia")
	if !existed {
		t.Error("re-insert not reported as existing")
	}
	if again != a {
		t.Error("expected the same *State for a repeated name")
	}
	if len(doc.States) != 2 || doc.States[0] != a || doc.States[1] != b {
		t.Errorf("insertion order not preserved: %v", doc.States)
	}
}

func TestFindOrCreateLGA_CompositeKey(t *testing.T) {
	doc := NewDocument()
	st, _ := doc.FindOrCreateState("LAGOS")

	l1, existed := st.FindOrCreateLGA("Ikeja", "01")
	if existed {
		t.Fatal("first insert reported as existing")
	}
	if l1.Name != "IKEJA" || l1.Code != "01" {
		t.Errorf("unexpected lga %q/%q", l1.Name, l1.Code)
	}

	// Same name, same code: found, not duplicated.
	l2, existed := st.FindOrCreateLGA("IKEJA ", "01")
	if !existed || l2 != l1 {
		t.Error("expected repeated composite key to resolve to the same LGA")
	}

	// Same name, different code: a distinct entity.
	l3, existed := st.FindOrCreateLGA("IKEJA", "02")
	if existed || l3 == l1 {
		t.Error("expected a different code to create a new LGA")
	}
	if len(st.LGAs) != 2 {
		t.Fatalf("expected 2 LGAs, got %d", len(st.LGAs))
	}
}

func TestFindOrCreateWard_GeneratedCode(t *testing.T) {
	doc := NewDocument()
	st, _ := doc.FindOrCreateState("OYO")
	lga, _ := st.FindOrCreateLGA("IBADAN NORTH", "05")

	w, _ := lga.FindOrCreateWard("north east", "")
	if w.Code != "NE" {
		t.Errorf("expected generated code NE, got %q", w.Code)
	}

	// Same name with empty code again: resolves to the same ward.
	w2, existed := lga.FindOrCreateWard("NORTH EAST", "")
	if !existed || w2 != w {
		t.Error("generated codes must be deterministic and idempotent")
	}
}

func TestCodeFromName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"NORTH EAST", "NE"},
		{"north  east", "NE"},
		{"OJO", "O"},
		{"AMAC / ABUJA MUNICIPAL", "AAM"},
		{"  ", "XX"},
		{"12 34", "XX"},
	}
	for _, c := range cases {
		if got := CodeFromName(c.in); got != c.want {
			t.Errorf("CodeFromName(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestStats_Consistency(t *testing.T) {
	doc := NewDocument()
	// An empty state must not appear in statistics.
	doc.FindOrCreateState("EMPTY")

	st, _ := doc.FindOrCreateState("KANO")
	l1, _ := st.FindOrCreateLGA("DALA", "01")
	l1.FindOrCreateWard("ADAKAWA", "001")
	l1.FindOrCreateWard("GOBIRAWA", "002")
	st.FindOrCreateLGA("FAGGE", "02")

	stats := doc.Stats()
	if stats.StateCount != 1 {
		t.Errorf("expected 1 populated state, got %d", stats.StateCount)
	}
	if stats.LGACount != 2 {
		t.Errorf("expected 2 LGAs, got %d", stats.LGACount)
	}
	if stats.WardCount != 2 {
		t.Errorf("expected 2 wards, got %d", stats.WardCount)
	}
	if len(stats.StateNames) != 1 || stats.StateNames[0] != "KANO" {
		t.Errorf("expected populated state names [KANO], got %v", stats.StateNames)
	}
}

func TestDocument_JSONRoundTrip(t *testing.T) {
	doc := NewDocument()
	st, _ := doc.FindOrCreateState("DELTA")
	lga, _ := st.FindOrCreateLGA("WARRI SOUTH", "20")
	lga.FindOrCreateWard("BOWEN", "0003")
	lga.FindOrCreateWard("OGUNU", "0001")
	st.FindOrCreateLGA("UDU", "19")

	first, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Document
	if err := json.Unmarshal(first, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	second, err := json.Marshal(&decoded)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("round trip changed the document:\n%s\n%s", first, second)
	}

	// The decoded document keeps working as a builder.
	same, existed := decoded.FindOrCreateState("DELTA")
	if !existed {
		t.Error("decoded document lost its state identity")
	}
	if _, existed := same.FindOrCreateLGA("UDU", "19"); !existed {
		t.Error("decoded state lost its LGA identity")
	}
}
