package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ayodele/xtractor/internal/engine"
)

// Profile is an optional TOML file tuning the extraction heuristics for a
// particular document family. Zero-valued fields leave the defaults alone.
type Profile struct {
	Reference struct {
		Order     []string `toml:"order"`
		SeedFirst *bool    `toml:"seed_first"`
	} `toml:"reference"`

	Classifier struct {
		HeaderKeywords    []string `toml:"header_keywords"`
		MaxCodeLen        int      `toml:"max_code_len"`
		BannerMinLen      int      `toml:"banner_min_len"`
		BannerMaxLen      int      `toml:"banner_max_len"`
		BannerUpperRatio  float64  `toml:"banner_upper_ratio"`
		BannerAlphaRatio  float64  `toml:"banner_alpha_ratio"`
		BannerRejectWords []string `toml:"banner_reject_words"`
		KnownNames        []string `toml:"known_names"`
	} `toml:"classifier"`
}

// LoadProfile reads and parses a profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return &p, nil
}

// Apply overrides cfg with the profile's non-zero fields.
func (p *Profile) Apply(cfg *engine.Config) {
	if len(p.Reference.Order) > 0 {
		cfg.ReferenceOrder = append([]string(nil), p.Reference.Order...)
		// A custom reference list usually names the banner states too.
		if len(p.Classifier.KnownNames) == 0 {
			cfg.Classifier.KnownNames = append([]string(nil), p.Reference.Order...)
		}
	}
	if p.Reference.SeedFirst != nil {
		cfg.SeedFirstReference = *p.Reference.SeedFirst
	}

	c := p.Classifier
	if len(c.HeaderKeywords) > 0 {
		cfg.Classifier.HeaderKeywords = append([]string(nil), c.HeaderKeywords...)
	}
	if c.MaxCodeLen > 0 {
		cfg.Classifier.MaxCodeLen = c.MaxCodeLen
	}
	if c.BannerMinLen > 0 {
		cfg.Classifier.BannerMinLen = c.BannerMinLen
	}
	if c.BannerMaxLen > 0 {
		cfg.Classifier.BannerMaxLen = c.BannerMaxLen
	}
	if c.BannerUpperRatio > 0 {
		cfg.Classifier.BannerUpperRatio = c.BannerUpperRatio
	}
	if c.BannerAlphaRatio > 0 {
		cfg.Classifier.BannerAlphaRatio = c.BannerAlphaRatio
	}
	if len(c.BannerRejectWords) > 0 {
		cfg.Classifier.BannerRejectWords = append([]string(nil), c.BannerRejectWords...)
	}
	if len(c.KnownNames) > 0 {
		cfg.Classifier.KnownNames = append([]string(nil), c.KnownNames...)
	}
}
