// Package hierarchy holds the output model of an extraction run: an ordered
// tree of states, local government areas, and wards, with find-or-create
// insertion keyed by normalized composite identity.
package hierarchy

import (
	"strings"
	"unicode"
)

// Document is the root of one extraction run. Entities are created once,
// mutated only by appending children, and never removed during a run.
type Document struct {
	States []*State `json:"states"`

	byName map[string]*State
}

// State is a top-level region, unique by normalized name within a document.
type State struct {
	Name string `json:"name"`
	LGAs []*LGA `json:"lgas"`

	byKey map[string]*LGA
}

// LGA is a local government area owned by exactly one state.
type LGA struct {
	Name  string  `json:"name"`
	Code  string  `json:"code"`
	Wards []*Ward `json:"wards"`

	byKey map[string]*Ward
}

// Ward is the leaf level, owned by exactly one LGA.
type Ward struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// NewDocument returns an empty document ready for insertion.
func NewDocument() *Document {
	return &Document{
		States: []*State{},
		byName: make(map[string]*State),
	}
}

// Normalize trims, upper-cases, and collapses inner whitespace. Every
// identity key passes through this before comparison.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

// FindOrCreateState returns the state with the given name, appending a new
// one if the name is unseen. The bool reports whether it already existed.
func (d *Document) FindOrCreateState(name string) (*State, bool) {
	name = Normalize(name)
	if d.byName == nil {
		// Rebuild the index after JSON decoding.
		d.byName = make(map[string]*State, len(d.States))
		for _, st := range d.States {
			d.byName[Normalize(st.Name)] = st
		}
	}
	if st, ok := d.byName[name]; ok {
		return st, true
	}
	st := &State{
		Name:  name,
		LGAs:  []*LGA{},
		byKey: make(map[string]*LGA),
	}
	d.States = append(d.States, st)
	d.byName[name] = st
	return st, false
}

// FindOrCreateLGA returns the LGA identified by (name, code) within this
// state, appending a new one if the composite key is unseen. An empty code is
// replaced by the deterministic CodeFromName fallback before keying.
func (s *State) FindOrCreateLGA(name, code string) (*LGA, bool) {
	name = Normalize(name)
	code = normalizeCode(code)
	if code == "" {
		code = CodeFromName(name)
	}
	key := name + "\x00" + code
	if s.byKey == nil {
		s.byKey = make(map[string]*LGA, len(s.LGAs))
		for _, l := range s.LGAs {
			s.byKey[Normalize(l.Name)+"\x00"+normalizeCode(l.Code)] = l
		}
	}
	if l, ok := s.byKey[key]; ok {
		return l, true
	}
	l := &LGA{
		Name:  name,
		Code:  code,
		Wards: []*Ward{},
		byKey: make(map[string]*Ward),
	}
	s.LGAs = append(s.LGAs, l)
	s.byKey[key] = l
	return l, false
}

// FindOrCreateWard returns the ward identified by (name, code) within this
// LGA, appending a new one if the composite key is unseen.
func (l *LGA) FindOrCreateWard(name, code string) (*Ward, bool) {
	name = Normalize(name)
	code = normalizeCode(code)
	if code == "" {
		code = CodeFromName(name)
	}
	key := name + "\x00" + code
	if l.byKey == nil {
		l.byKey = make(map[string]*Ward, len(l.Wards))
		for _, w := range l.Wards {
			l.byKey[Normalize(w.Name)+"\x00"+normalizeCode(w.Code)] = w
		}
	}
	if w, ok := l.byKey[key]; ok {
		return w, true
	}
	w := &Ward{Name: name, Code: code}
	l.Wards = append(l.Wards, w)
	l.byKey[key] = w
	return w, false
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CodeFromName derives a deterministic fallback code from the initials of a
// name's words ("NORTH EAST" -> "NE"). Names without usable letters map to
// the fixed sentinel "XX".
func CodeFromName(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(Normalize(name)) {
		for _, r := range word {
			if unicode.IsLetter(r) {
				b.WriteRune(r)
				break
			}
		}
		if b.Len() >= 3 {
			break
		}
	}
	if b.Len() == 0 {
		return "XX"
	}
	return b.String()
}
