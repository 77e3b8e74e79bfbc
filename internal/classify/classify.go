// Package classify holds the decision rules that turn raw table rows and text
// lines into hierarchy record candidates. Every function is pure: all state
// lives in the engine, so each rule can be unit-tested in isolation.
package classify

import (
	"strings"
	"unicode"
)

// Kind is the classification of one table row.
type Kind int

const (
	Noise Kind = iota
	TableHeader
	Level2Record // an LGA row
	Level3Record // a ward row
)

func (k Kind) String() string {
	switch k {
	case TableHeader:
		return "header"
	case Level2Record:
		return "lga"
	case Level3Record:
		return "ward"
	default:
		return "noise"
	}
}

// Config carries the classification thresholds. Source documents vary, so
// none of these are hard-coded; Default matches the main corpus.
type Config struct {
	// HeaderKeywords are column labels; a row containing at least two of them
	// is a repeated table header.
	HeaderKeywords []string
	// MaxCodeLen bounds the length of a plausible region code.
	MaxCodeLen int
	// Banner thresholds for free-text lines announcing a new state section.
	BannerMinLen     int
	BannerMaxLen     int
	BannerUpperRatio float64 // upper-case share of non-space characters
	BannerAlphaRatio float64 // alphabetic-or-space share of all characters
	// BannerRejectWords mark section dividers that are upper-case but are not
	// state banners.
	BannerRejectWords []string
	// KnownNames are accepted as banners on exact match, bypassing ratios.
	KnownNames []string
}

// Default returns the thresholds used for the electoral boundary corpus.
func Default() Config {
	return Config{
		HeaderKeywords: []string{
			"LGA NAME", "LGA CODE", "WARD NAME", "WARD CODE", "S/N",
		},
		MaxCodeLen:       5,
		BannerMinLen:     3,
		BannerMaxLen:     40,
		BannerUpperRatio: 0.8,
		BannerAlphaRatio: 0.7,
		BannerRejectWords: []string{
			"PAGE", "TABLE", "CONTINUED", "COMMISSION", "REPUBLIC", "DIRECTORY",
		},
	}
}

// Row is the result of classifying one table row. Wide rows in the source
// layout carry an LGA and its first ward on the same line; for those,
// ChildName/ChildCode hold the ward columns.
type Row struct {
	Kind      Kind
	Name      string
	Code      string
	ChildName string
	ChildCode string
}

// ClassifyRow decides what one table row is. hasLevel2 reports whether an LGA
// is currently active: two-cell name+code rows belong to the LGA level when
// nothing is active yet, and to the ward level otherwise (continuation rows).
func ClassifyRow(cells []string, cfg Config, hasLevel2 bool) Row {
	clean := make([]string, 0, len(cells))
	for _, c := range cells {
		if t := strings.TrimSpace(c); t != "" {
			clean = append(clean, t)
		}
	}
	if len(clean) < 2 {
		return Row{Kind: Noise}
	}
	if isHeader(clean, cfg) {
		return Row{Kind: TableHeader}
	}

	leadCode := LooksLikeCode(clean[1], cfg.MaxCodeLen)
	last := clean[len(clean)-1]
	trailCode := len(clean) >= 3 && LooksLikeCode(last, cfg.MaxCodeLen)

	switch {
	case leadCode && trailCode && len(clean) >= 4:
		return Row{
			Kind:      Level2Record,
			Name:      clean[0],
			Code:      clean[1],
			ChildName: clean[2],
			ChildCode: last,
		}
	case leadCode && len(clean) == 2 && hasLevel2:
		return Row{Kind: Level3Record, Name: clean[0], Code: clean[1]}
	case leadCode:
		return Row{Kind: Level2Record, Name: clean[0], Code: clean[1]}
	case trailCode:
		return Row{Kind: Level3Record, Name: clean[0], Code: last}
	default:
		return Row{Kind: Noise}
	}
}

func isHeader(clean []string, cfg Config) bool {
	joined := strings.ToUpper(strings.Join(clean, " "))
	hits := 0
	for _, kw := range cfg.HeaderKeywords {
		if strings.Contains(joined, kw) {
			hits++
			if hits >= 2 {
				return true
			}
		}
	}
	return false
}

// LooksLikeCode reports whether a token is a plausible region code: short,
// and either purely numeric or alphanumeric with at least one digit.
func LooksLikeCode(s string, maxLen int) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxLen {
		return false
	}
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case !unicode.IsLetter(r):
			return false
		}
	}
	return digits > 0
}

// NumericCode parses a purely numeric code. The second result is false for
// anything containing a non-digit.
func NumericCode(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
