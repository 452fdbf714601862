package driven

import (
	"context"
	"errors"

	"github.com/tbrowse/themescan/internal/domain/model"
)

// Sentinel errors returned by RegistryStore implementations and lookups.
var (
	// ErrThemeNotFound indicates a named theme cannot be resolved in the
	// inventory.
	ErrThemeNotFound = errors.New("theme not found in inventory")

	// ErrRepoNotInInventory indicates a repository identity is absent from
	// the inventory.
	ErrRepoNotInInventory = errors.New("repository not found in inventory")
)

// RegistryStore defines the driven port for the persisted registry
// documents: the read-only theme inventory, the strategies document (the
// source of truth this engine patches), and the manually curated hints.
// SaveStrategies must be all-or-nothing; a partially written document must
// never be observable.
type RegistryStore interface {
	LoadInventory(ctx context.Context) ([]model.ThemeEntry, error)
	LoadStrategies(ctx context.Context) ([]model.RegistryEntry, error)
	SaveStrategies(ctx context.Context, entries []model.RegistryEntry) error
	LoadHints(ctx context.Context) (model.HintSet, error)
}
