package application_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbrowse/themescan/internal/application"
	"github.com/tbrowse/themescan/internal/domain/model"
	"github.com/tbrowse/themescan/internal/domain/port/driven"
)

// fakeSource serves canned evidence and counts fetches. Shared by the
// evidence service and orchestrator tests.
type fakeSource struct {
	mu        sync.Mutex
	texts     map[string]string
	trees     map[string][]model.TreeItem
	textErrs  map[string]error
	treeErrs  map[string]error
	textCalls map[string]int
	treeCalls map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		texts:     make(map[string]string),
		trees:     make(map[string][]model.TreeItem),
		textErrs:  make(map[string]error),
		treeErrs:  make(map[string]error),
		textCalls: make(map[string]int),
		treeCalls: make(map[string]int),
	}
}

func (f *fakeSource) FetchText(_ context.Context, repo string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.textCalls[repo]++
	if err, ok := f.textErrs[repo]; ok {
		return "", err
	}
	return f.texts[repo], nil
}

func (f *fakeSource) FetchTree(_ context.Context, repo string) ([]model.TreeItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.treeCalls[repo]++
	if err, ok := f.treeErrs[repo]; ok {
		return nil, err
	}
	return f.trees[repo], nil
}

func (f *fakeSource) textFetches(repo string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.textCalls[repo]
}

var _ driven.EvidenceSource = (*fakeSource)(nil)

// fakeCache is an in-memory cache with switchable read failures.
type fakeCache struct {
	mu       sync.Mutex
	texts    map[string]string
	trees    map[string][]model.TreeItem
	readErr  error
	textPuts int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		texts: make(map[string]string),
		trees: make(map[string][]model.TreeItem),
	}
}

func (c *fakeCache) GetText(_ context.Context, repo string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return "", c.readErr
	}
	text, ok := c.texts[repo]
	if !ok {
		return "", driven.ErrCacheMiss
	}
	return text, nil
}

func (c *fakeCache) PutText(_ context.Context, repo, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.texts[repo] = text
	c.textPuts++
	return nil
}

func (c *fakeCache) GetTree(_ context.Context, repo string) ([]model.TreeItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return nil, c.readErr
	}
	items, ok := c.trees[repo]
	if !ok {
		return nil, driven.ErrCacheMiss
	}
	return items, nil
}

func (c *fakeCache) PutTree(_ context.Context, repo string, items []model.TreeItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trees[repo] = items
	return nil
}

func (c *fakeCache) List(context.Context) ([]driven.CacheRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var records []driven.CacheRecord
	for repo, text := range c.texts {
		records = append(records, driven.CacheRecord{Repo: repo, Kind: "text", Payload: text, FetchedAt: time.Now()})
	}
	return records, nil
}

var _ driven.EvidenceCache = (*fakeCache)(nil)

func TestEvidenceService_TextMissFetchesAndFills(t *testing.T) {
	source := newFakeSource()
	source.texts["owner/foo"] = "readme body"
	cache := newFakeCache()
	svc := application.NewEvidenceService(source, cache, false)

	text, err := svc.Text(context.Background(), "owner/foo")
	require.NoError(t, err)
	assert.Equal(t, "readme body", text)
	assert.Equal(t, 1, source.textFetches("owner/foo"))

	// Second read is served from the cache.
	text, err = svc.Text(context.Background(), "owner/foo")
	require.NoError(t, err)
	assert.Equal(t, "readme body", text)
	assert.Equal(t, 1, source.textFetches("owner/foo"))
}

func TestEvidenceService_NoCacheSkipsReadsButStillWrites(t *testing.T) {
	source := newFakeSource()
	source.texts["owner/foo"] = "fresh"
	cache := newFakeCache()
	cache.texts["owner/foo"] = "stale"
	svc := application.NewEvidenceService(source, cache, true)

	text, err := svc.Text(context.Background(), "owner/foo")
	require.NoError(t, err)
	assert.Equal(t, "fresh", text, "bypass mode ignores the cached value")
	assert.Equal(t, "fresh", cache.texts["owner/foo"], "fetched value is written back")
	assert.Equal(t, 1, cache.textPuts)
}

func TestEvidenceService_CorruptCacheEntryRefetches(t *testing.T) {
	source := newFakeSource()
	source.texts["owner/foo"] = "recovered"
	cache := newFakeCache()
	cache.readErr = &driven.ParseError{Repo: "owner/foo", Kind: "text", Err: assert.AnError}
	svc := application.NewEvidenceService(source, cache, false)

	text, err := svc.Text(context.Background(), "owner/foo")
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, 1, source.textFetches("owner/foo"))
}

func TestEvidenceService_FetchErrorPropagates(t *testing.T) {
	source := newFakeSource()
	fetchErr := &driven.FetchError{Repo: "owner/foo", Op: "text", Err: assert.AnError}
	source.textErrs["owner/foo"] = fetchErr
	svc := application.NewEvidenceService(source, newFakeCache(), false)

	_, err := svc.Text(context.Background(), "owner/foo")
	var fe *driven.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "text", fe.Op)
}

func TestEvidenceService_TreeRoundTrip(t *testing.T) {
	source := newFakeSource()
	source.trees["owner/foo"] = []model.TreeItem{{Path: "colors/foo.vim", Kind: "blob"}}
	cache := newFakeCache()
	svc := application.NewEvidenceService(source, cache, false)

	items, err := svc.Tree(context.Background(), "owner/foo")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "colors/foo.vim", items[0].Path)

	cached, err := cache.GetTree(context.Background(), "owner/foo")
	require.NoError(t, err)
	assert.Equal(t, items, cached)
}

func TestEvidenceService_NormalizesRepoKey(t *testing.T) {
	source := newFakeSource()
	source.texts[" owner/foo.git "] = "body"
	cache := newFakeCache()
	svc := application.NewEvidenceService(source, cache, false)

	_, err := svc.Text(context.Background(), " owner/foo.git ")
	require.NoError(t, err)

	_, ok := cache.texts["owner/foo"]
	assert.True(t, ok, "cache keys use the sanitized repo form")
}
