package config

import (
	"github.com/ayodele/xtractor/internal/classify"
	"github.com/ayodele/xtractor/internal/engine"
)

// DefaultReferenceOrder is the document ordering of Nigerian states used when
// no profile overrides it. Boundary detection walks this list as LGA codes
// reset across state sections.
var DefaultReferenceOrder = []string{
	"ABIA", "ADAMAWA", "AKWA IBOM", "ANAMBRA", "BAUCHI", "BAYELSA",
	"BENUE", "BORNO", "CROSS RIVER", "DELTA", "EBONYI", "EDO",
	"EKITI", "ENUGU", "FCT", "GOMBE", "IMO", "JIGAWA",
	"KADUNA", "KANO", "KATSINA", "KEBBI", "KOGI", "KWARA",
	"LAGOS", "NASARAWA", "NIGER", "OGUN", "ONDO", "OSUN",
	"OYO", "PLATEAU", "RIVERS", "SOKOTO", "TARABA", "YOBE",
	"ZAMFARA",
}

// DefaultEngineConfig returns the extraction configuration used when no
// profile is loaded. The reference names double as known banner names so a
// state header page is recognized even when its typography defeats the
// banner heuristics.
func DefaultEngineConfig() engine.Config {
	classifier := classify.Default()
	classifier.KnownNames = append([]string(nil), DefaultReferenceOrder...)
	return engine.Config{
		Classifier:         classifier,
		ReferenceOrder:     append([]string(nil), DefaultReferenceOrder...),
		SeedFirstReference: true,
	}
}
