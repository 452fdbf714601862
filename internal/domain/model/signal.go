package model

// Signal is a single weighted, labeled piece of evidence contributing to a
// strategy tally. Signals are append-only: once produced they are never
// mutated or deduplicated, so the full audit trail survives into the report.
type Signal struct {
	Category Strategy `json:"category"`
	Weight   int      `json:"weight"`
	Reason   string   `json:"reason"`
}

// Classification is the outcome of running the strategy classifier over one
// repository's evidence. It is recomputed fresh each run and never persisted.
type Classification struct {
	Strategy        Strategy
	Confidence      float64
	Signals         []Signal
	NeedsEscalation bool
}
