package model

// RegistryEntry is one row of the persisted strategies document, the source
// of truth mapping repo to activation strategy. Fields other than Strategy
// are owned by out-of-scope stages and must survive an apply untouched.
type RegistryEntry struct {
	Repo        string   `json:"repo"`
	Name        string   `json:"name"`
	Colorscheme string   `json:"colorscheme"`
	Strategy    Strategy `json:"strategy,omitempty"`
	Module      string   `json:"module,omitempty"`
	Background  string   `json:"background,omitempty"`
}

// CurrentStrategy looks up the recorded strategy for a repository across
// registry entries. Repositories without an entry, or with an entry that has
// no strategy, report StrategyMissing.
func CurrentStrategy(entries []RegistryEntry, repo string) string {
	for _, e := range entries {
		if e.Repo == repo {
			if e.Strategy == "" {
				return StrategyMissing
			}
			return string(e.Strategy)
		}
	}
	return StrategyMissing
}
