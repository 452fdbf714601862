package model

// Hint is a manually curated override for a single repository. A hint
// supersedes only the fields it specifies; computed values fill the rest.
type Hint struct {
	Repo         string                 `json:"repo"`
	Strategy     Strategy               `json:"strategy,omitempty"`
	VariantModes map[string]VariantMode `json:"variant_modes,omitempty"`
	Reason       string                 `json:"reason"`
}

// HintSet is the persisted hints document. Excluded is the consolidated
// deny list of repositories skipped before orchestration schedules work.
type HintSet struct {
	Hints    []Hint   `json:"hints"`
	Excluded []string `json:"excluded,omitempty"`
}

// ForRepo returns the hint for the given repository identity. Matching is
// exact; there is no fuzzy or prefix lookup.
func (hs HintSet) ForRepo(repo string) (Hint, bool) {
	for _, h := range hs.Hints {
		if h.Repo == repo {
			return h, true
		}
	}
	return Hint{}, false
}

// IsExcluded reports whether the repository is on the deny list.
func (hs HintSet) IsExcluded(repo string) bool {
	for _, r := range hs.Excluded {
		if r == repo {
			return true
		}
	}
	return false
}

// VariantMode returns the hinted mode for a variant name, if the repository
// hint carries one.
func (h Hint) VariantMode(variantName string) (VariantMode, bool) {
	if h.VariantModes == nil {
		return "", false
	}
	m, ok := h.VariantModes[variantName]
	return m, ok
}
