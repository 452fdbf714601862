package application

import (
	"strings"

	"github.com/tbrowse/themescan/internal/domain/model"
)

// modeConfidence values by rule strength. Hints are certain, family naming
// conventions are near-certain, bare substrings are suggestive.
const (
	familyModeConfidence    = 0.9
	substringModeConfidence = 0.7
)

// modeFamilies are naming families whose variants follow the
// "<family>-<scheme>[-light]" convention.
var modeFamilies = []string{"base16", "base24", "base30", "base46"}

// lightWords are checked before darkWords; first match wins within a list.
var lightWords = []string{
	"light", "day", "sun", "latte", "bright", "white", "paper",
	"cream", "morning", "dawn", "clear", "ivory", "operandi", "written",
}

var darkWords = []string{
	"dark", "night", "moon", "storm", "mocha", "frappe", "macchiato",
	"deep", "black", "shadow", "midnight", "abyss", "void", "dusk",
	"dim", "cool", "warm",
}

// ClassifyVariantMode classifies a single variant name as light or dark.
// Rule priority, first match wins: family-light pattern, family prefix,
// light-suggestive substrings, dark-suggestive substrings. No match leaves
// the mode undetermined with confidence 0.
func ClassifyVariantMode(name string) model.VariantModeResult {
	lower := strings.ToLower(strings.TrimSpace(name))
	result := model.VariantModeResult{Name: name, Source: model.ModeSourceUnknown}

	for _, family := range modeFamilies {
		if !strings.HasPrefix(lower, family+"-") {
			continue
		}
		result.Source = model.ModeSourceFamily
		result.Confidence = familyModeConfidence
		if strings.HasSuffix(lower, "-light") {
			result.Mode = model.ModeLight
		} else {
			result.Mode = model.ModeDark
		}
		return result
	}

	for _, word := range lightWords {
		if strings.Contains(lower, word) {
			result.Mode = model.ModeLight
			result.Source = model.ModeSourceName
			result.Confidence = substringModeConfidence
			return result
		}
	}

	for _, word := range darkWords {
		if strings.Contains(lower, word) {
			result.Mode = model.ModeDark
			result.Source = model.ModeSourceName
			result.Confidence = substringModeConfidence
			return result
		}
	}

	return result
}

// ClassifyVariants classifies every variant of a repository and aggregates
// a coverage report. A hint's variant-mode map, when present for a variant,
// replaces the computed result with full confidence.
func ClassifyVariants(variants []model.Variant, hint model.Hint) *model.VariantReport {
	report := &model.VariantReport{
		Total:    len(variants),
		BySource: make(map[model.ModeSource]int),
	}

	for _, v := range variants {
		result := ClassifyVariantMode(v.Name)
		if mode, ok := hint.VariantMode(v.Name); ok {
			result = model.VariantModeResult{
				Name:       v.Name,
				Mode:       mode,
				Source:     model.ModeSourceHint,
				Confidence: 1.0,
			}
		}

		if result.Mode != "" {
			report.Classified++
		}
		report.BySource[result.Source]++
		report.Results = append(report.Results, result)
	}

	if report.Total > 0 {
		report.Coverage = float64(report.Classified) / float64(report.Total)
	} else {
		report.Coverage = 1.0
	}
	return report
}
