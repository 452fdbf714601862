package model

// RowStatus compares a detected strategy against the registry's current value.
type RowStatus string

const (
	StatusMatch       RowStatus = "match"        // Detected equals the recorded strategy.
	StatusMismatch    RowStatus = "mismatch"     // Detected differs from the recorded strategy.
	StatusMissingMeta RowStatus = "missing-meta" // Registry has no strategy for the repo.
	StatusError       RowStatus = "error"        // Fetch or classification failed.
)

// DetectionRow is the per-repository unit of a detection report. Rows are
// uniquely keyed by Repo within one run.
type DetectionRow struct {
	Repo             string         `json:"repo"`
	Themes           []string       `json:"themes,omitempty"`
	CurrentStrategy  string         `json:"current_strategy"`
	DetectedStrategy Strategy       `json:"detected_strategy"`
	Confidence       float64        `json:"confidence"`
	Status           RowStatus      `json:"status"`
	Signals          []Signal       `json:"signals,omitempty"`
	Error            string         `json:"error,omitempty"`
	Variants         *VariantReport `json:"variants,omitempty"`
}

// Patch is a proposed, high-confidence strategy update for one repository.
// Patches are transient: computed from detection rows, consumed by apply.
type Patch struct {
	Repo       string   `json:"repo"`
	Strategy   Strategy `json:"strategy"`
	Confidence float64  `json:"confidence"`
}

// VariantModeResult is the classification outcome for one variant name.
type VariantModeResult struct {
	Name       string      `json:"name"`
	Mode       VariantMode `json:"mode,omitempty"`
	Source     ModeSource  `json:"source"`
	Confidence float64     `json:"confidence"`
}

// VariantReport aggregates variant mode classification for one repository.
// Coverage is a triage aid only; it carries no correctness guarantee.
type VariantReport struct {
	Total      int                 `json:"total"`
	Classified int                 `json:"classified"`
	Coverage   float64             `json:"coverage"`
	BySource   map[ModeSource]int  `json:"by_source"`
	Results    []VariantModeResult `json:"results"`
}

// RunSummary counts detection rows by status for the end-of-run report line.
type RunSummary struct {
	Total       int `json:"total"`
	Match       int `json:"match"`
	Mismatch    int `json:"mismatch"`
	MissingMeta int `json:"missing_meta"`
	Errors      int `json:"errors"`
}

// Summarize tallies row statuses into a RunSummary.
func Summarize(rows []DetectionRow) RunSummary {
	s := RunSummary{Total: len(rows)}
	for _, row := range rows {
		switch row.Status {
		case StatusMatch:
			s.Match++
		case StatusMismatch:
			s.Mismatch++
		case StatusMissingMeta:
			s.MissingMeta++
		case StatusError:
			s.Errors++
		}
	}
	return s
}
