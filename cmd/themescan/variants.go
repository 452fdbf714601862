package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbrowse/themescan/internal/adapter/driven/jsonfile"
	"github.com/tbrowse/themescan/internal/application"
	"github.com/tbrowse/themescan/internal/domain/model"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "Summarize variant light/dark mode coverage",
	Long: `variants classifies every variant name in the inventory as light or
dark and prints aggregate coverage plus the repositories below full
coverage, for manual hint triage. No remote evidence is fetched.`,
	RunE: runVariants,
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}

func runVariants(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := jsonfile.NewStore(cfg.RegistryDir)
	inventory, err := store.LoadInventory(ctx)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	hints, err := store.LoadHints(ctx)
	if err != nil {
		return fmt.Errorf("load hints: %w", err)
	}

	var (
		total      int
		classified int
		bySource   = make(map[model.ModeSource]int)
		incomplete []string
	)

	variantsByRepo := make(map[string][]model.Variant)
	for _, theme := range inventory {
		repo := model.SafeRepo(theme.Repo)
		variantsByRepo[repo] = append(variantsByRepo[repo], theme.Variants...)
	}

	for repo, variants := range variantsByRepo {
		if len(variants) == 0 {
			continue
		}
		hint, _ := hints.ForRepo(repo)
		report := application.ClassifyVariants(variants, hint)

		total += report.Total
		classified += report.Classified
		for source, n := range report.BySource {
			bySource[source] += n
		}
		if report.Coverage < 1.0 {
			incomplete = append(incomplete, fmt.Sprintf("%s (%d/%d)", repo, report.Classified, report.Total))
		}

		if verboseFlag {
			for _, v := range report.Results {
				mode := string(v.Mode)
				if mode == "" {
					mode = "?"
				}
				fmt.Printf("%-40s %-30s %-5s source=%s\n", repo, v.Name, mode, v.Source)
			}
		}
	}

	fmt.Printf("variants=%d classified=%d family=%d name=%d hint=%d unknown=%d\n",
		total, classified,
		bySource[model.ModeSourceFamily], bySource[model.ModeSourceName],
		bySource[model.ModeSourceHint], bySource[model.ModeSourceUnknown])

	sort.Slice(incomplete, func(i, j int) bool {
		return strings.ToLower(incomplete[i]) < strings.ToLower(incomplete[j])
	})
	for _, line := range incomplete {
		fmt.Printf("below full coverage: %s\n", line)
	}

	return nil
}
