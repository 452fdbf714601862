package model

import "fmt"

// Strategy represents how a theme must be activated by the picker.
type Strategy string

const (
	StrategySetup       Strategy = "setup"       // require("mod").setup(...) before activation.
	StrategyLoad        Strategy = "load"        // require("mod").load() activates directly.
	StrategyColorscheme Strategy = "colorscheme" // :colorscheme command is sufficient.
	StrategyFile        Strategy = "file"        // Legacy script must be sourced by path.
	StrategyUnknown     Strategy = "unknown"     // No evidence reached a decision.
)

// StrategyMissing is the CurrentStrategy value reported for repositories
// that have no strategy recorded in the registry. It is a store-lookup
// placeholder, not a member of the Strategy enumeration.
const StrategyMissing = "missing"

// ParseStrategy validates a raw strategy string against the closed enumeration.
// An unrecognized value is a defect in the input document, never coerced.
func ParseStrategy(raw string) (Strategy, error) {
	switch s := Strategy(raw); s {
	case StrategySetup, StrategyLoad, StrategyColorscheme, StrategyFile, StrategyUnknown:
		return s, nil
	}
	return StrategyUnknown, fmt.Errorf("unrecognized strategy %q", raw)
}

// Tally accumulates signal weights per strategy. One field per enum member
// keeps the lookup exhaustive: adding a strategy without a tally slot is a
// compile error at the switch sites below.
type Tally struct {
	Setup       int
	Load        int
	Colorscheme int
	File        int
}

// Add accumulates weight for the given strategy. Unknown carries no weight
// by definition; any other unlisted value is a defect.
func (t *Tally) Add(s Strategy, weight int) {
	switch s {
	case StrategySetup:
		t.Setup += weight
	case StrategyLoad:
		t.Load += weight
	case StrategyColorscheme:
		t.Colorscheme += weight
	case StrategyFile:
		t.File += weight
	case StrategyUnknown:
		// Unknown never accumulates.
	default:
		panic(fmt.Sprintf("tally for unrecognized strategy %q", s))
	}
}

// Get returns the accumulated weight for the given strategy.
func (t Tally) Get(s Strategy) int {
	switch s {
	case StrategySetup:
		return t.Setup
	case StrategyLoad:
		return t.Load
	case StrategyColorscheme:
		return t.Colorscheme
	case StrategyFile:
		return t.File
	case StrategyUnknown:
		return 0
	default:
		panic(fmt.Sprintf("tally for unrecognized strategy %q", s))
	}
}

// Rank returns the non-unknown strategies ordered by descending tally.
// Ties preserve the declaration order setup, load, colorscheme, file so
// ranking is deterministic.
func (t Tally) Rank() []Strategy {
	ranked := []Strategy{StrategySetup, StrategyLoad, StrategyColorscheme, StrategyFile}
	// Insertion sort keeps the stable declaration order on equal tallies.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && t.Get(ranked[j]) > t.Get(ranked[j-1]); j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	return ranked
}
