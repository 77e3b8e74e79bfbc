package engine

import (
	"log/slog"

	"github.com/ayodele/xtractor/internal/hierarchy"
)

// cursor is the mutable extraction context for one run: which state and LGA
// are currently active, the last numeric LGA code seen, and the position in
// the reference ordering. A cursor never outlives its Extract call.
type cursor struct {
	doc *hierarchy.Document

	ref    []string
	refIdx int

	stateName string
	state     *hierarchy.State
	lga       *hierarchy.LGA

	// lastCode is the last numeric LGA code observed under the current state;
	// -1 means none yet. A strictly smaller code signals a state boundary.
	lastCode int

	// fromBanner marks a current state set by a banner outside the reference
	// ordering; the code-reset heuristic stays disabled until a banner inside
	// the ordering re-syncs the cursor.
	fromBanner bool

	// exhausted is set when a code reset pushes the cursor past the end of
	// the reference ordering; records are dropped until a banner recovers.
	exhausted bool
}

func newCursor(cfg Config) *cursor {
	c := &cursor{
		doc:      hierarchy.NewDocument(),
		ref:      cfg.ReferenceOrder,
		lastCode: -1,
	}
	if cfg.SeedFirstReference && len(c.ref) > 0 {
		c.stateName = hierarchy.Normalize(c.ref[0])
	}
	return c
}

// advance moves to the next state in the reference ordering after a code
// reset. It is a no-op while the current state came from a banner outside the
// ordering, or when no ordering is configured.
func (c *cursor) advance(log *slog.Logger) {
	if c.fromBanner || len(c.ref) == 0 || c.exhausted {
		return
	}
	c.refIdx++
	if c.refIdx >= len(c.ref) {
		c.exhausted = true
		log.Warn("reference ordering exhausted, dropping further records")
		return
	}
	c.stateName = hierarchy.Normalize(c.ref[c.refIdx])
	c.state = nil
	c.lga = nil
	log.Info("state boundary detected", "state", c.stateName)
}

// setBannerState applies an explicit banner. Banners are authoritative: they
// reset the LGA cursor and clear the last-seen code, so a numerically smaller
// code right after the banner cannot trigger a second transition.
func (c *cursor) setBannerState(name string) {
	c.stateName = name
	c.state = nil
	c.lga = nil
	c.lastCode = -1
	c.exhausted = false
	c.fromBanner = true
	for i, ref := range c.ref {
		if hierarchy.Normalize(ref) == name {
			c.refIdx = i
			c.fromBanner = false
			break
		}
	}
}
