package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbrowse/themescan/internal/domain/model"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestStoreLoadInventory(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "themes.json", `[
		{"repo": "folke/tokyonight.nvim", "name": "Tokyo Night", "colorscheme": "tokyonight",
		 "variants": [{"name": "tokyonight-day"}, {"name": "tokyonight-storm"}]},
		{"repo": "owner/plain", "name": "Plain", "colorscheme": "plain"}
	]`)

	entries, err := NewStore(dir).LoadInventory(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "folke/tokyonight.nvim", entries[0].Repo)
	assert.Len(t, entries[0].Variants, 2)
	assert.Empty(t, entries[1].Variants)
}

func TestStoreLoadInventory_MissingIsError(t *testing.T) {
	_, err := NewStore(t.TempDir()).LoadInventory(context.Background())
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestStoreLoadStrategies(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "strategies.json", `[
		{"repo": "owner/a", "name": "a", "colorscheme": "a", "strategy": "setup", "module": "a"},
		{"repo": "owner/b", "name": "b", "colorscheme": "b"}
	]`)

	entries, err := NewStore(dir).LoadStrategies(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.StrategySetup, entries[0].Strategy)
	assert.Empty(t, entries[1].Strategy, "entries without a strategy load as-is")
}

func TestStoreLoadStrategies_MissingIsEmpty(t *testing.T) {
	entries, err := NewStore(t.TempDir()).LoadStrategies(context.Background())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestStoreLoadStrategies_RejectsUnknownStrategy(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "strategies.json", `[{"repo": "owner/a", "name": "a", "strategy": "telepathy"}]`)

	_, err := NewStore(dir).LoadStrategies(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner/a")
}

func TestStoreSaveStrategies_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	ctx := context.Background()

	entries := []model.RegistryEntry{
		{Repo: "owner/a", Name: "a", Colorscheme: "a", Strategy: model.StrategyLoad, Module: "a"},
		{Repo: "owner/b", Name: "b", Colorscheme: "b", Strategy: model.StrategyColorscheme, Background: "dark"},
	}
	require.NoError(t, store.SaveStrategies(ctx, entries))

	loaded, err := store.LoadStrategies(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}

func TestStoreSaveStrategies_ByteStable(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	ctx := context.Background()

	entries := []model.RegistryEntry{{Repo: "owner/a", Name: "a", Strategy: model.StrategySetup}}
	require.NoError(t, store.SaveStrategies(ctx, entries))
	first, err := os.ReadFile(filepath.Join(dir, "strategies.json"))
	require.NoError(t, err)

	require.NoError(t, store.SaveStrategies(ctx, entries))
	second, err := os.ReadFile(filepath.Join(dir, "strategies.json"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStoreSaveStrategies_NilWritesEmptyArray(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.SaveStrategies(context.Background(), nil))

	raw, err := os.ReadFile(filepath.Join(dir, "strategies.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestStoreSaveStrategies_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "registry")
	store := NewStore(dir)

	require.NoError(t, store.SaveStrategies(context.Background(), nil))
	assert.FileExists(t, filepath.Join(dir, "strategies.json"))
}

func TestStoreLoadHints(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "hints.json", `{
		"hints": [
			{"repo": "rebelot/kanagawa.nvim", "strategy": "setup",
			 "variant_modes": {"kanagawa-lotus": "light"},
			 "reason": "README understates the setup call"}
		],
		"excluded": ["owner/archived"]
	}`)

	hints, err := NewStore(dir).LoadHints(context.Background())
	require.NoError(t, err)
	require.Len(t, hints.Hints, 1)
	assert.Equal(t, model.StrategySetup, hints.Hints[0].Strategy)
	assert.Equal(t, model.ModeLight, hints.Hints[0].VariantModes["kanagawa-lotus"])
	assert.True(t, hints.IsExcluded("owner/archived"))
}

func TestStoreLoadHints_MissingIsEmpty(t *testing.T) {
	hints, err := NewStore(t.TempDir()).LoadHints(context.Background())
	require.NoError(t, err)
	assert.Empty(t, hints.Hints)
	assert.Empty(t, hints.Excluded)
}

func TestStoreLoadHints_RejectsUnknownStrategy(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "hints.json", `{"hints": [{"repo": "owner/a", "strategy": "osmosis"}]}`)

	_, err := NewStore(dir).LoadHints(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner/a")
}

func TestStoreLoadHints_RejectsUnknownVariantMode(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "hints.json", `{"hints": [{"repo": "owner/a", "variant_modes": {"a-dusk": "dim"}}]}`)

	_, err := NewStore(dir).LoadHints(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a-dusk")
}

func TestStoreReadJSON_MalformedDocument(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "themes.json", `{not json`)

	_, err := NewStore(dir).LoadInventory(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "themes.json")
}
