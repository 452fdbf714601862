package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	githubadapter "github.com/tbrowse/themescan/internal/adapter/driven/github"
	"github.com/tbrowse/themescan/internal/adapter/driven/jsonfile"
	sqliteadapter "github.com/tbrowse/themescan/internal/adapter/driven/sqlite"
	"github.com/tbrowse/themescan/internal/application"
	"github.com/tbrowse/themescan/internal/domain/model"
	"github.com/tbrowse/themescan/internal/domain/port/driven"
)

var (
	repoFlag        string
	themeFlag       string
	sampleFlag      int
	applyFlag       bool
	noCacheFlag     bool
	concurrencyFlag int
	outFlag         string
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect activation strategies across the theme inventory",
	Long: `detect classifies every repository in the inventory (or a single one
selected with --repo/--theme) and compares the result against the
strategies document. Batch runs always complete: per-repository failures
become error rows, and the exit code is 0 regardless of how many rows
errored. Use --apply to persist high-confidence patches.`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringVar(&repoFlag, "repo", "", "Restrict to one repository (owner/name)")
	detectCmd.Flags().StringVar(&themeFlag, "theme", "", "Resolve the repository via a theme name lookup")
	detectCmd.Flags().IntVar(&sampleFlag, "sample", 0, "Cap the batch at n repositories")
	detectCmd.Flags().BoolVar(&applyFlag, "apply", false, "Persist computed patches to the strategies document")
	detectCmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "Bypass cache reads, forcing a refetch (still writes)")
	detectCmd.Flags().IntVar(&concurrencyFlag, "concurrency", 0, "Concurrent in-flight classifications (default 6)")
	detectCmd.Flags().StringVar(&outFlag, "out", "", "Write the detection report JSON to this path")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if concurrencyFlag > 0 {
		cfg.Concurrency = concurrencyFlag
	}

	store := jsonfile.NewStore(cfg.RegistryDir)
	inventory, err := store.LoadInventory(ctx)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	strategies, err := store.LoadStrategies(ctx)
	if err != nil {
		return fmt.Errorf("load strategies: %w", err)
	}
	hints, err := store.LoadHints(ctx)
	if err != nil {
		return fmt.Errorf("load hints: %w", err)
	}

	repos := scheduledRepos(inventory)

	// Single-item selection is validated against the inventory up front:
	// an unknown identifier is a usage failure, not an error row.
	single := false
	switch {
	case repoFlag != "" && themeFlag != "":
		return fmt.Errorf("--repo and --theme are mutually exclusive")
	case repoFlag != "":
		repo := model.SafeRepo(repoFlag)
		if !strings.Contains(repo, "/") {
			return fmt.Errorf("invalid repository %q: expected owner/name", repoFlag)
		}
		if !containsRepo(repos, repo) {
			return fmt.Errorf("repository %q: %w", repo, driven.ErrRepoNotInInventory)
		}
		repos = []string{repo}
		single = true
	case themeFlag != "":
		repo, ok := repoForTheme(inventory, themeFlag)
		if !ok {
			return fmt.Errorf("theme %q: %w", themeFlag, driven.ErrThemeNotFound)
		}
		repos = []string{repo}
		single = true
	}

	if sampleFlag > 0 && sampleFlag < len(repos) {
		repos = repos[:sampleFlag]
	}

	db, err := sqliteadapter.NewDB(cfg.CachePath)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing cache", "error", closeErr)
		}
	}()
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return fmt.Errorf("migrate cache: %w", err)
	}

	source := githubadapter.NewClient(cfg.GitHubToken)
	evidence := application.NewEvidenceService(source, sqliteadapter.NewEvidenceCache(db), noCacheFlag)

	progress := func(done, total int) {
		fmt.Fprintf(os.Stderr, "progress %d/%d\n", done, total)
	}
	svc := application.NewDetectService(evidence, cfg.Concurrency, progress)

	rows := svc.Run(ctx, application.DetectInput{
		Repos:      repos,
		Inventory:  inventory,
		Strategies: strategies,
		Hints:      hints,
	})

	printRows(rows, verboseFlag || single)

	summary := model.Summarize(rows)
	fmt.Printf("total=%d match=%d mismatch=%d missing-meta=%d errors=%d\n",
		summary.Total, summary.Match, summary.Mismatch, summary.MissingMeta, summary.Errors)

	patches := application.ComputePatch(rows)
	if applyFlag {
		updated := application.ApplyPatch(strategies, patches, inventory)
		if err := store.SaveStrategies(ctx, updated); err != nil {
			return fmt.Errorf("apply patches: %w", err)
		}
		fmt.Printf("applied %d patches\n", len(patches))
	} else if len(patches) > 0 {
		fmt.Printf("%d patches pending (rerun with --apply to persist)\n", len(patches))
	}

	if outFlag != "" {
		if err := writeReport(outFlag, rows); err != nil {
			return err
		}
	}

	return nil
}

// scheduledRepos collects the unique repository identities of the inventory
// in sorted order.
func scheduledRepos(inventory []model.ThemeEntry) []string {
	seen := make(map[string]bool, len(inventory))
	var repos []string
	for _, t := range inventory {
		repo := model.SafeRepo(t.Repo)
		if repo == "" || seen[repo] {
			continue
		}
		seen[repo] = true
		repos = append(repos, repo)
	}
	sort.Slice(repos, func(i, j int) bool {
		return strings.ToLower(repos[i]) < strings.ToLower(repos[j])
	})
	return repos
}

func containsRepo(repos []string, repo string) bool {
	for _, r := range repos {
		if r == repo {
			return true
		}
	}
	return false
}

// repoForTheme resolves a theme name to its repository identity.
func repoForTheme(inventory []model.ThemeEntry, name string) (string, bool) {
	for _, t := range inventory {
		if strings.EqualFold(t.Name, name) {
			return model.SafeRepo(t.Repo), true
		}
	}
	return "", false
}

func printRows(rows []model.DetectionRow, detailed bool) {
	for _, row := range rows {
		switch row.Status {
		case model.StatusError:
			fmt.Printf("%-40s %-12s error: %s\n", row.Repo, row.Status, row.Error)
		default:
			fmt.Printf("%-40s %-12s current=%s detected=%s confidence=%.2f\n",
				row.Repo, row.Status, row.CurrentStrategy, row.DetectedStrategy, row.Confidence)
		}

		if !detailed {
			continue
		}
		for _, sig := range row.Signals {
			fmt.Printf("    [%s +%d] %s\n", sig.Category, sig.Weight, sig.Reason)
		}
		if row.Variants != nil {
			for _, v := range row.Variants.Results {
				mode := string(v.Mode)
				if mode == "" {
					mode = "?"
				}
				fmt.Printf("    variant %-30s %-5s source=%s confidence=%.2f\n", v.Name, mode, v.Source, v.Confidence)
			}
		}
	}
}

func writeReport(path string, rows []model.DetectionRow) error {
	raw, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
