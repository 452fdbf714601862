package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbrowse/themescan/internal/application"
	"github.com/tbrowse/themescan/internal/domain/model"
)

func TestClassifyVariantMode(t *testing.T) {
	tests := []struct {
		name       string
		variant    string
		mode       model.VariantMode
		source     model.ModeSource
		confidence float64
	}{
		{
			name:       "family light suffix",
			variant:    "base16-dracula-light",
			mode:       model.ModeLight,
			source:     model.ModeSourceFamily,
			confidence: 0.9,
		},
		{
			name:       "family without light suffix",
			variant:    "base16-dracula",
			mode:       model.ModeDark,
			source:     model.ModeSourceFamily,
			confidence: 0.9,
		},
		{
			name:       "base46 family",
			variant:    "base46-onedark",
			mode:       model.ModeDark,
			source:     model.ModeSourceFamily,
			confidence: 0.9,
		},
		{
			name:       "light word",
			variant:    "tokyonight-day",
			mode:       model.ModeLight,
			source:     model.ModeSourceName,
			confidence: 0.7,
		},
		{
			name:       "dark word",
			variant:    "tokyonight-storm",
			mode:       model.ModeDark,
			source:     model.ModeSourceName,
			confidence: 0.7,
		},
		{
			name:       "light word wins over dark word",
			variant:    "sunlight-at-midnight",
			mode:       model.ModeLight,
			source:     model.ModeSourceName,
			confidence: 0.7,
		},
		{
			name:       "catppuccin latte",
			variant:    "catppuccin-latte",
			mode:       model.ModeLight,
			source:     model.ModeSourceName,
			confidence: 0.7,
		},
		{
			name:       "case insensitive",
			variant:    "Gruvbox-Dark-Hard",
			mode:       model.ModeDark,
			source:     model.ModeSourceName,
			confidence: 0.7,
		},
		{
			name:    "unrecognized name stays undetermined",
			variant: "kanagawa-lotus",
			source:  model.ModeSourceUnknown,
		},
		{
			name:    "empty name",
			variant: "",
			source:  model.ModeSourceUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := application.ClassifyVariantMode(tt.variant)

			assert.Equal(t, tt.variant, result.Name)
			assert.Equal(t, tt.mode, result.Mode)
			assert.Equal(t, tt.source, result.Source)
			assert.Equal(t, tt.confidence, result.Confidence)
		})
	}
}

func TestClassifyVariants_HintOverridesComputedMode(t *testing.T) {
	variants := []model.Variant{{Name: "kanagawa-lotus"}, {Name: "kanagawa-dragon"}}
	hint := model.Hint{
		Repo:         "rebelot/kanagawa.nvim",
		VariantModes: map[string]model.VariantMode{"kanagawa-lotus": model.ModeLight},
	}

	report := application.ClassifyVariants(variants, hint)

	require.Len(t, report.Results, 2)
	lotus := report.Results[0]
	assert.Equal(t, model.ModeLight, lotus.Mode)
	assert.Equal(t, model.ModeSourceHint, lotus.Source)
	assert.Equal(t, 1.0, lotus.Confidence)

	dragon := report.Results[1]
	assert.Empty(t, dragon.Mode, "no hint and no recognizable word")
	assert.Equal(t, model.ModeSourceUnknown, dragon.Source)
}

func TestClassifyVariants_Coverage(t *testing.T) {
	variants := []model.Variant{
		{Name: "base16-dracula"},
		{Name: "kanagawa-lotus"},
		{Name: "tokyonight-night"},
		{Name: "zzyzx"},
	}

	report := application.ClassifyVariants(variants, model.Hint{})

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.Classified)
	assert.Equal(t, 0.5, report.Coverage)
	assert.Equal(t, 1, report.BySource[model.ModeSourceFamily])
	assert.Equal(t, 1, report.BySource[model.ModeSourceName])
	assert.Equal(t, 2, report.BySource[model.ModeSourceUnknown])
}

func TestClassifyVariants_NoVariants(t *testing.T) {
	report := application.ClassifyVariants(nil, model.Hint{})

	assert.Zero(t, report.Total)
	assert.Equal(t, 1.0, report.Coverage, "vacuous coverage for variant-free repos")
	assert.Empty(t, report.Results)
}
