package application

import (
	"sort"
	"strings"

	"github.com/tbrowse/themescan/internal/domain/model"
)

// ApplyThreshold is the minimum confidence for a detection row to produce a
// registry patch.
const ApplyThreshold = 0.9

// ComputePatch turns detection rows into proposed registry updates. A patch
// is emitted only for rows whose detected strategy disagrees with (or is
// absent from) the registry, is not unknown, and cleared the apply
// threshold.
func ComputePatch(rows []model.DetectionRow) []model.Patch {
	var patches []model.Patch
	for _, row := range rows {
		if row.Status != model.StatusMismatch && row.Status != model.StatusMissingMeta {
			continue
		}
		if row.DetectedStrategy == model.StrategyUnknown {
			continue
		}
		if row.Confidence < ApplyThreshold {
			continue
		}
		patches = append(patches, model.Patch{
			Repo:       row.Repo,
			Strategy:   row.DetectedStrategy,
			Confidence: row.Confidence,
		})
	}
	return patches
}

// ApplyPatch merges patches into the strategies document and returns the
// updated entries. Existing entries keep every field except Strategy.
// Patches for repositories absent from the document synthesize a minimal
// entry from the inventory; repositories absent from the inventory are never
// fabricated. Existing entry order is preserved and synthesized entries are
// appended in repo order, so reapplying an applied patch is byte-stable.
func ApplyPatch(entries []model.RegistryEntry, patches []model.Patch, inventory []model.ThemeEntry) []model.RegistryEntry {
	updated := make([]model.RegistryEntry, len(entries))
	copy(updated, entries)

	index := make(map[string]int, len(updated))
	for i, e := range updated {
		index[e.Repo] = i
	}

	inventoryByRepo := make(map[string]model.ThemeEntry, len(inventory))
	for _, t := range inventory {
		if _, ok := inventoryByRepo[t.Repo]; !ok {
			inventoryByRepo[t.Repo] = t
		}
	}

	var added []model.RegistryEntry
	for _, p := range patches {
		if i, ok := index[p.Repo]; ok {
			updated[i].Strategy = p.Strategy
			continue
		}

		theme, ok := inventoryByRepo[p.Repo]
		if !ok {
			continue
		}
		added = append(added, model.RegistryEntry{
			Repo:        p.Repo,
			Name:        theme.Name,
			Colorscheme: theme.Colorscheme,
			Strategy:    p.Strategy,
		})
	}

	sort.Slice(added, func(i, j int) bool {
		return strings.ToLower(added[i].Repo) < strings.ToLower(added[j].Repo)
	})

	return append(updated, added...)
}
