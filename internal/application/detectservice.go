package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tbrowse/themescan/internal/domain/model"
)

// DefaultConcurrency is the fixed ceiling of in-flight classifications.
const DefaultConcurrency = 6

// progressEvery throttles the progress callback to once per this many
// completed repositories (plus the final completion).
const progressEvery = 10

// ProgressFunc reports batch progress. Implementations must not assume any
// ordering between calls beyond done being monotonically sampled.
type ProgressFunc func(done, total int)

// DetectInput carries the pre-loaded documents a detection run consumes.
// Repos is the scheduled repository list; the orchestrator filters the
// hint document's deny list before scheduling.
type DetectInput struct {
	Repos      []string
	Inventory  []model.ThemeEntry
	Strategies []model.RegistryEntry
	Hints      model.HintSet
}

// DetectService drives strategy detection across many repositories under a
// bounded concurrency ceiling with per-repository failure isolation.
type DetectService struct {
	evidence    *EvidenceService
	concurrency int
	progress    ProgressFunc
	logger      *slog.Logger
}

// NewDetectService creates a DetectService. concurrency <= 0 selects the
// default ceiling; progress may be nil.
func NewDetectService(evidence *EvidenceService, concurrency int, progress ProgressFunc) *DetectService {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &DetectService{
		evidence:    evidence,
		concurrency: concurrency,
		progress:    progress,
		logger:      slog.Default(),
	}
}

// Run classifies every scheduled repository and returns one detection row
// per repository, sorted case-insensitively by repo so the report is
// independent of completion order. Per-repository failures become error
// rows; Run itself never fails once scheduled.
func (s *DetectService) Run(ctx context.Context, in DetectInput) []model.DetectionRow {
	start := time.Now()

	scheduled := make([]string, 0, len(in.Repos))
	for _, repo := range in.Repos {
		repo = model.SafeRepo(repo)
		if repo == "" {
			continue
		}
		if in.Hints.IsExcluded(repo) {
			s.logger.Info("repo excluded by deny list", "repo", repo)
			continue
		}
		scheduled = append(scheduled, repo)
	}

	themesByRepo := make(map[string][]model.ThemeEntry, len(in.Inventory))
	for _, theme := range in.Inventory {
		themesByRepo[theme.Repo] = append(themesByRepo[theme.Repo], theme)
	}

	// One slot per scheduled repo, written by index: concurrent workers
	// never contend for the same memory location.
	rows := make([]model.DetectionRow, len(scheduled))

	var (
		wg   sync.WaitGroup
		done atomic.Int64
	)
	sem := make(chan struct{}, s.concurrency)

	for i, repo := range scheduled {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, repo string) {
			defer wg.Done()
			defer func() { <-sem }()

			rows[i] = s.detectOne(ctx, repo, themesByRepo[repo], in)

			n := int(done.Add(1))
			if s.progress != nil && (n%progressEvery == 0 || n == len(scheduled)) {
				s.progress(n, len(scheduled))
			}
		}(i, repo)
	}
	wg.Wait()

	sort.Slice(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Repo) < strings.ToLower(rows[j].Repo)
	})

	summary := model.Summarize(rows)
	s.logger.Info("detection run complete",
		"repos", summary.Total,
		"match", summary.Match,
		"mismatch", summary.Mismatch,
		"missing_meta", summary.MissingMeta,
		"errors", summary.Errors,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return rows
}

// DetectOne classifies a single repository. It is the single-repo CLI path;
// unlike Run it does not swallow failures into an error row.
func (s *DetectService) DetectOne(ctx context.Context, repo string, in DetectInput) (model.DetectionRow, error) {
	repo = model.SafeRepo(repo)
	themesByRepo := make(map[string][]model.ThemeEntry)
	for _, theme := range in.Inventory {
		themesByRepo[theme.Repo] = append(themesByRepo[theme.Repo], theme)
	}

	row := s.detectOne(ctx, repo, themesByRepo[repo], in)
	if row.Status == model.StatusError {
		return row, fmt.Errorf("detect %s: %s", repo, row.Error)
	}
	return row, nil
}

// detectOne runs the full pipeline for one repository: text evidence, text
// classification, optional structure escalation, hint layering, variant
// classification, and status comparison against the registry. Any failure
// (including a panic in classification) degrades to an error row and never
// disturbs sibling work.
func (s *DetectService) detectOne(ctx context.Context, repo string, themes []model.ThemeEntry, in DetectInput) (row model.DetectionRow) {
	row = model.DetectionRow{
		Repo:            repo,
		CurrentStrategy: model.CurrentStrategy(in.Strategies, repo),
	}
	for _, t := range themes {
		row.Themes = append(row.Themes, t.Name)
	}

	defer func() {
		if r := recover(); r != nil {
			row.Status = model.StatusError
			row.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	text, err := s.evidence.Text(ctx, repo)
	if err != nil {
		row.Status = model.StatusError
		row.Error = err.Error()
		return row
	}

	cls := ClassifyText(text)

	if cls.NeedsEscalation {
		items, err := s.evidence.Tree(ctx, repo)
		if err != nil {
			row.Status = model.StatusError
			row.Error = err.Error()
			row.Signals = cls.Signals
			return row
		}
		cls = MergeStructure(cls, ExtractTreeSignals(items))
	}

	hint, hasHint := in.Hints.ForRepo(repo)
	if hasHint {
		cls = ApplyHint(cls, hint)
	}

	row.DetectedStrategy = cls.Strategy
	row.Confidence = cls.Confidence
	row.Signals = cls.Signals
	row.Status = rowStatus(row.CurrentStrategy, cls.Strategy)

	var variants []model.Variant
	for _, t := range themes {
		variants = append(variants, t.Variants...)
	}
	if len(variants) > 0 {
		row.Variants = ClassifyVariants(variants, hint)
	}

	return row
}

// rowStatus compares the registry's current strategy with the detected one.
func rowStatus(current string, detected model.Strategy) model.RowStatus {
	if current == model.StrategyMissing {
		return model.StatusMissingMeta
	}
	if current == string(detected) {
		return model.StatusMatch
	}
	return model.StatusMismatch
}
