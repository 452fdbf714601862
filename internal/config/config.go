// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration loaded from environment
// variables. CLI flags layered on top by the command tree take precedence.
type Config struct {
	GitHubToken string
	RegistryDir string
	CachePath   string
	Concurrency int
}

// Load reads configuration from environment variables and returns a
// validated Config. The GitHub token (THEMESCAN_GITHUB_TOKEN, falling back
// to GITHUB_TOKEN) is optional; without it the API's unauthenticated rate
// limit applies. Optional variables with defaults:
// THEMESCAN_REGISTRY_DIR (registry), THEMESCAN_CACHE_PATH (themescan.db),
// THEMESCAN_CONCURRENCY (6).
func Load() (*Config, error) {
	token := os.Getenv("THEMESCAN_GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	registryDir := "registry"
	if v, ok := os.LookupEnv("THEMESCAN_REGISTRY_DIR"); ok {
		registryDir = v
	}

	cachePath := "themescan.db"
	if v, ok := os.LookupEnv("THEMESCAN_CACHE_PATH"); ok {
		cachePath = v
	}

	concurrency := 6
	if v, ok := os.LookupEnv("THEMESCAN_CONCURRENCY"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("THEMESCAN_CONCURRENCY has invalid value %q", v)
		}
		concurrency = parsed
	}

	return &Config{
		GitHubToken: token,
		RegistryDir: registryDir,
		CachePath:   cachePath,
		Concurrency: concurrency,
	}, nil
}
