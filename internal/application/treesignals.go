package application

import (
	"regexp"
	"strings"

	"github.com/tbrowse/themescan/internal/domain/model"
)

// Path-shape predicates over a repository file listing.
var (
	luaInitModuleRe = regexp.MustCompile(`^lua/[^/]+/init\.lua$`)
	colorsLuaRe     = regexp.MustCompile(`^colors/[^/]+\.lua$`)
	colorsVimRe     = regexp.MustCompile(`^colors/[^/]+\.vim$`)
	pluginLuaRe     = regexp.MustCompile(`^plugin/[^/]+\.lua$`)
)

// ExtractTreeSignals inspects the shape of a repository file listing and
// emits structure-derived signals. Structure alone is moderate-strength
// evidence; the classifier caps its confidence accordingly.
func ExtractTreeSignals(items []model.TreeItem) []model.Signal {
	var hasModule, hasColorsLua, hasColorsVim, hasPluginLua, hasColorsDir bool

	for _, item := range items {
		if item.Kind == "tree" {
			if item.Path == "colors" {
				hasColorsDir = true
			}
			continue
		}
		switch {
		case luaInitModuleRe.MatchString(item.Path):
			hasModule = true
		case colorsLuaRe.MatchString(item.Path):
			hasColorsLua = true
			hasColorsDir = true
		case colorsVimRe.MatchString(item.Path):
			hasColorsVim = true
			hasColorsDir = true
		case pluginLuaRe.MatchString(item.Path):
			hasPluginLua = true
		case strings.HasPrefix(item.Path, "colors/"):
			hasColorsDir = true
		}
	}

	var signals []model.Signal
	add := func(category model.Strategy, weight int, reason string) {
		signals = append(signals, model.Signal{Category: category, Weight: weight, Reason: reason})
	}

	if !hasModule && !hasColorsLua && hasColorsVim {
		add(model.StrategyColorscheme, 6, "legacy colors/*.vim only, no lua module")
	}
	if !hasModule && hasColorsLua {
		add(model.StrategyColorscheme, 5, "colors/*.lua without lua module")
	}
	if hasModule && hasColorsLua {
		add(model.StrategySetup, 4, "lua module plus colors/*.lua")
	}
	if hasModule && !hasColorsLua && hasColorsVim {
		add(model.StrategyColorscheme, 4, "lua module with legacy colors/*.vim")
	}
	if hasModule && !hasColorsDir {
		add(model.StrategySetup, 2, "lua module without colors directory")
	}
	if hasModule && hasPluginLua {
		add(model.StrategyLoad, 2, "lua module plus plugin/*.lua")
	}

	return signals
}
