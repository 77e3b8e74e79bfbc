package classify

import (
	"strings"
	"unicode"
)

// Banner reports whether a free-text line announces a new state section,
// returning the normalized state name when it does. A line is a banner when
// it exactly matches a known state name, or when it is short, digit-free,
// and dominated by upper-case letters.
func Banner(line string, cfg Config) (string, bool) {
	name := normalizeLine(line)
	if name == "" {
		return "", false
	}

	for _, known := range cfg.KnownNames {
		if name == normalizeLine(known) {
			return name, true
		}
	}

	if len(name) < cfg.BannerMinLen || len(name) > cfg.BannerMaxLen {
		return "", false
	}
	for _, r := range name {
		if unicode.IsDigit(r) {
			return "", false
		}
	}
	for _, w := range cfg.BannerRejectWords {
		if strings.Contains(name, normalizeLine(w)) {
			return "", false
		}
	}

	raw := strings.TrimSpace(line)
	var total, nonSpace, upper, alphaOrSpace int
	for _, r := range raw {
		total++
		if !unicode.IsSpace(r) {
			nonSpace++
			if unicode.IsUpper(r) {
				upper++
			}
		}
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			alphaOrSpace++
		}
	}
	if nonSpace == 0 {
		return "", false
	}
	if float64(upper)/float64(nonSpace) < cfg.BannerUpperRatio {
		return "", false
	}
	if float64(alphaOrSpace)/float64(total) < cfg.BannerAlphaRatio {
		return "", false
	}
	return name, true
}

func normalizeLine(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}
