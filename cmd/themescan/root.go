package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbrowse/themescan/internal/config"
)

var (
	registryFlag string
	cacheFlag    string
	verboseFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "themescan",
	Short: "Theme activation-strategy detection for the registry",
	Long: `themescan classifies theme repositories by how they must be activated
(setup, load, colorscheme, file) and classifies each theme variant as light
or dark. Results are diffed against the strategies document and can be
applied back as high-confidence patches.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verboseFlag {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&registryFlag, "registry", "",
		"Registry directory holding themes.json, strategies.json and hints.json")
	rootCmd.PersistentFlags().StringVar(&cacheFlag, "cache", "",
		"Path to the evidence cache database")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable debug logging and signal-level detail")
}

// loadConfig resolves configuration with CLI flags taking precedence over
// environment variables.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if registryFlag != "" {
		cfg.RegistryDir = registryFlag
	}
	if cacheFlag != "" {
		cfg.CachePath = cacheFlag
	}
	return cfg, nil
}
