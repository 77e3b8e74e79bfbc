// Package engine walks the pages of a boundary document in order and
// reconstructs the deduplicated state/LGA/ward hierarchy. The top-level
// grouping is usually implicit in the source: a state change is signalled by
// an all-caps banner line, or inferred from a reset in the LGA code sequence
// against a configured reference ordering of state names.
package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ayodele/xtractor/internal/classify"
	"github.com/ayodele/xtractor/internal/hierarchy"
)

// Page is one unit of source content: structured table rows plus the page's
// free text. Tables are authoritative; text feeds only the banner path.
type Page interface {
	Tables() [][][]string
	Text() string
}

// Config controls one extraction run.
type Config struct {
	Classifier classify.Config

	// ReferenceOrder lists the known state names in document order. It powers
	// the code-reset heuristic; without it, only explicit banners can move
	// the state cursor.
	ReferenceOrder []string

	// SeedFirstReference starts a run with ReferenceOrder[0] active instead
	// of waiting for the first banner.
	SeedFirstReference bool
}

// Engine extracts hierarchy documents from page sequences. It holds no
// per-run state: every Extract call owns its own cursor and document, so one
// Engine is safe for concurrent use across independent documents.
type Engine struct {
	cfg Config
	log *slog.Logger
}

func New(cfg Config, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Classifier.MaxCodeLen == 0 {
		cfg.Classifier = classify.Default()
	}
	return &Engine{cfg: cfg, log: log}
}

// Extract processes pages strictly in order and returns the deduplicated
// document with its statistics. Malformed rows and orphan records are dropped,
// never fatal; the only error returned is context cancellation, checked at
// page granularity.
func (e *Engine) Extract(ctx context.Context, pages []Page) (*hierarchy.Document, hierarchy.Statistics, error) {
	cur := newCursor(e.cfg)
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, hierarchy.Statistics{}, err
		}
		e.processPage(cur, page, i+1)
	}
	return cur.doc, cur.doc.Stats(), nil
}

// processPage consumes one page: tables first (authoritative structure), then
// free text, which is only scanned for state banners.
func (e *Engine) processPage(cur *cursor, page Page, pageNum int) {
	for _, table := range page.Tables() {
		for _, row := range table {
			e.processRow(cur, row)
		}
	}
	for _, line := range strings.Split(page.Text(), "\n") {
		name, ok := classify.Banner(line, e.cfg.Classifier)
		if !ok {
			continue
		}
		if name != cur.stateName {
			e.log.Info("state banner", "page", pageNum, "state", name)
			cur.setBannerState(name)
		}
	}
}

func (e *Engine) processRow(cur *cursor, cells []string) {
	row := classify.ClassifyRow(cells, e.cfg.Classifier, cur.lga != nil)
	switch row.Kind {
	case classify.Noise, classify.TableHeader:
		e.log.Debug("row skipped", "kind", row.Kind.String())
	case classify.Level2Record:
		e.applyLGA(cur, row.Name, row.Code)
		if row.ChildName != "" && row.ChildCode != "" {
			e.applyWard(cur, row.ChildName, row.ChildCode)
		}
	case classify.Level3Record:
		e.applyWard(cur, row.Name, row.Code)
	}
}

// applyLGA handles one LGA record: boundary detection first, then
// find-or-create under the active state.
func (e *Engine) applyLGA(cur *cursor, name, code string) {
	if n, ok := classify.NumericCode(code); ok {
		if cur.lastCode >= 0 && n < cur.lastCode {
			cur.advance(e.log)
		}
		cur.lastCode = n
	}
	if cur.exhausted {
		e.log.Warn("lga dropped: reference ordering exhausted", "lga", name)
		return
	}
	if cur.stateName == "" {
		e.log.Warn("lga dropped: no active state", "lga", name)
		return
	}

	state, _ := cur.doc.FindOrCreateState(cur.stateName)
	cur.state = state
	lga, existed := state.FindOrCreateLGA(name, code)
	// A repeated key only moves the current pointer; multi-row LGAs keep
	// appending wards to the same entity.
	cur.lga = lga
	if !existed {
		e.log.Debug("lga added", "state", state.Name, "lga", lga.Name, "code", lga.Code)
	}
}

// applyWard attaches one ward record to the active LGA; orphans are dropped.
func (e *Engine) applyWard(cur *cursor, name, code string) {
	if cur.exhausted {
		e.log.Warn("ward dropped: reference ordering exhausted", "ward", name)
		return
	}
	if cur.lga == nil {
		e.log.Warn("ward dropped: no active lga", "ward", name)
		return
	}
	ward, existed := cur.lga.FindOrCreateWard(name, code)
	if !existed {
		e.log.Debug("ward added", "lga", cur.lga.Name, "ward", ward.Name, "code", ward.Code)
	}
}
