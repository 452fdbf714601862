// Package memory implements an in-memory evidence cache backend, used by
// tests and by ephemeral runs that should not touch the on-disk cache.
package memory

import (
	"context"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tbrowse/themescan/internal/domain/model"
	"github.com/tbrowse/themescan/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.EvidenceCache = (*EvidenceCache)(nil)

// defaultSize bounds each LRU; a full registry scan touches a few thousand
// repositories at most.
const defaultSize = 4096

type textEntry struct {
	text      string
	fetchedAt time.Time
}

type treeEntry struct {
	items     []model.TreeItem
	fetchedAt time.Time
}

// EvidenceCache is an LRU-backed, process-local EvidenceCache
// implementation. The LRU types are themselves safe for concurrent use.
type EvidenceCache struct {
	texts *lru.Cache[string, textEntry]
	trees *lru.Cache[string, treeEntry]
}

// NewEvidenceCache creates an in-memory cache bounded at the default size.
func NewEvidenceCache() (*EvidenceCache, error) {
	texts, err := lru.New[string, textEntry](defaultSize)
	if err != nil {
		return nil, err
	}
	trees, err := lru.New[string, treeEntry](defaultSize)
	if err != nil {
		return nil, err
	}
	return &EvidenceCache{texts: texts, trees: trees}, nil
}

// GetText returns the cached text for a repository or driven.ErrCacheMiss.
func (c *EvidenceCache) GetText(_ context.Context, repo string) (string, error) {
	entry, ok := c.texts.Get(repo)
	if !ok {
		return "", driven.ErrCacheMiss
	}
	return entry.text, nil
}

// PutText stores text evidence for a repository.
func (c *EvidenceCache) PutText(_ context.Context, repo string, text string) error {
	c.texts.Add(repo, textEntry{text: text, fetchedAt: time.Now().UTC()})
	return nil
}

// GetTree returns the cached file listing or driven.ErrCacheMiss.
func (c *EvidenceCache) GetTree(_ context.Context, repo string) ([]model.TreeItem, error) {
	entry, ok := c.trees.Get(repo)
	if !ok {
		return nil, driven.ErrCacheMiss
	}
	return entry.items, nil
}

// PutTree stores the file listing for a repository.
func (c *EvidenceCache) PutTree(_ context.Context, repo string, items []model.TreeItem) error {
	c.trees.Add(repo, treeEntry{items: items, fetchedAt: time.Now().UTC()})
	return nil
}

// List returns every cached record ordered by repo then kind.
func (c *EvidenceCache) List(_ context.Context) ([]driven.CacheRecord, error) {
	var records []driven.CacheRecord

	for _, repo := range c.texts.Keys() {
		if entry, ok := c.texts.Peek(repo); ok {
			records = append(records, driven.CacheRecord{
				Repo:      repo,
				Kind:      "text",
				Payload:   entry.text,
				FetchedAt: entry.fetchedAt,
			})
		}
	}
	for _, repo := range c.trees.Keys() {
		if entry, ok := c.trees.Peek(repo); ok {
			payload, err := marshalTree(entry.items)
			if err != nil {
				return nil, err
			}
			records = append(records, driven.CacheRecord{
				Repo:      repo,
				Kind:      "tree",
				Payload:   payload,
				FetchedAt: entry.fetchedAt,
			})
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Repo != records[j].Repo {
			return records[i].Repo < records[j].Repo
		}
		return records[i].Kind < records[j].Kind
	})
	return records, nil
}
