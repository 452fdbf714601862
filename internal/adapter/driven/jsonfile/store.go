// Package jsonfile implements the RegistryStore port over the JSON
// documents produced and consumed by the registry pipeline.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/tbrowse/themescan/internal/domain/model"
	"github.com/tbrowse/themescan/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RegistryStore = (*Store)(nil)

// Document filenames inside the registry directory.
const (
	inventoryFile  = "themes.json"
	strategiesFile = "strategies.json"
	hintsFile      = "hints.json"
)

// Store reads and writes the registry documents under a single directory:
// themes.json (read-only inventory), strategies.json (the source of truth
// this engine patches), and hints.json (manual overrides plus deny list).
type Store struct {
	dir string
}

// NewStore creates a Store rooted at the given registry directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// LoadInventory reads the theme inventory. The inventory is required input;
// a missing document is an error.
func (s *Store) LoadInventory(_ context.Context) ([]model.ThemeEntry, error) {
	var entries []model.ThemeEntry
	if err := s.readJSON(inventoryFile, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// LoadStrategies reads the strategies document. A missing document is an
// empty store (a first run reports every repo as missing-meta); an entry
// with an unrecognized strategy is a defect, never coerced.
func (s *Store) LoadStrategies(_ context.Context) ([]model.RegistryEntry, error) {
	var entries []model.RegistryEntry
	if err := s.readJSON(strategiesFile, &entries); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	for _, e := range entries {
		if e.Strategy == "" {
			continue
		}
		if _, err := model.ParseStrategy(string(e.Strategy)); err != nil {
			return nil, fmt.Errorf("%s: entry %s: %w", strategiesFile, e.Repo, err)
		}
	}
	return entries, nil
}

// SaveStrategies persists the strategies document. The write is
// all-or-nothing: the document is rendered in memory and moved into place
// atomically, so a partially written store is never observable.
func (s *Store) SaveStrategies(_ context.Context, entries []model.RegistryEntry) error {
	if entries == nil {
		entries = []model.RegistryEntry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode %s: %w", strategiesFile, err)
	}

	path := filepath.Join(s.dir, strategiesFile)
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create registry dir: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write %s: %w", strategiesFile, err)
	}
	return nil
}

// LoadHints reads the hints document. A missing document is an empty hint
// set; hint strategies and variant modes are validated against their closed
// enumerations.
func (s *Store) LoadHints(_ context.Context) (model.HintSet, error) {
	var hints model.HintSet
	if err := s.readJSON(hintsFile, &hints); err != nil {
		if os.IsNotExist(err) {
			return model.HintSet{}, nil
		}
		return model.HintSet{}, err
	}

	for _, h := range hints.Hints {
		if h.Strategy != "" {
			if _, err := model.ParseStrategy(string(h.Strategy)); err != nil {
				return model.HintSet{}, fmt.Errorf("%s: hint %s: %w", hintsFile, h.Repo, err)
			}
		}
		for name, mode := range h.VariantModes {
			if _, ok := model.ParseVariantMode(string(mode)); !ok {
				return model.HintSet{}, fmt.Errorf("%s: hint %s: variant %s: unrecognized mode %q", hintsFile, h.Repo, name, mode)
			}
		}
	}
	return hints, nil
}

func (s *Store) readJSON(name string, v any) error {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
