package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tbrowse/themescan/internal/domain/model"
	"github.com/tbrowse/themescan/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.EvidenceCache = (*EvidenceCache)(nil)

// Evidence kinds stored in the cache table.
const (
	kindText = "text"
	kindTree = "tree"
)

// EvidenceCache is the SQLite implementation of the EvidenceCache port.
// Writes are idempotent upserts, so concurrent check-then-write races over
// the same repo are harmless.
type EvidenceCache struct {
	db *DB
}

// NewEvidenceCache creates a new EvidenceCache backed by the given DB.
func NewEvidenceCache(db *DB) *EvidenceCache {
	return &EvidenceCache{db: db}
}

// GetText returns the cached free-text evidence for a repository, or
// driven.ErrCacheMiss when absent.
func (c *EvidenceCache) GetText(ctx context.Context, repo string) (string, error) {
	payload, err := c.get(ctx, repo, kindText)
	if err != nil {
		return "", err
	}
	return payload, nil
}

// PutText stores the free-text evidence for a repository.
func (c *EvidenceCache) PutText(ctx context.Context, repo string, text string) error {
	return c.put(ctx, repo, kindText, text)
}

// GetTree returns the cached file listing for a repository. A corrupt
// payload surfaces as *driven.ParseError, which callers treat as a miss.
func (c *EvidenceCache) GetTree(ctx context.Context, repo string) ([]model.TreeItem, error) {
	payload, err := c.get(ctx, repo, kindTree)
	if err != nil {
		return nil, err
	}

	var items []model.TreeItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, &driven.ParseError{Repo: repo, Kind: kindTree, Err: err}
	}
	return items, nil
}

// PutTree stores the file listing for a repository.
func (c *EvidenceCache) PutTree(ctx context.Context, repo string, items []model.TreeItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal tree for %s: %w", repo, err)
	}
	return c.put(ctx, repo, kindTree, string(payload))
}

// List returns every cached record ordered by repo then kind.
func (c *EvidenceCache) List(ctx context.Context) ([]driven.CacheRecord, error) {
	const query = `SELECT repo, kind, payload, fetched_at FROM evidence ORDER BY repo, kind`

	rows, err := c.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	defer rows.Close()

	var records []driven.CacheRecord
	for rows.Next() {
		var rec driven.CacheRecord
		if err := rows.Scan(&rec.Repo, &rec.Kind, &rec.Payload, &rec.FetchedAt); err != nil {
			return nil, fmt.Errorf("scan evidence row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evidence rows: %w", err)
	}

	return records, nil
}

func (c *EvidenceCache) get(ctx context.Context, repo, kind string) (string, error) {
	const query = `SELECT payload FROM evidence WHERE repo = ? AND kind = ?`

	var payload string
	err := c.db.Reader.QueryRowContext(ctx, query, repo, kind).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", driven.ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("read %s evidence for %s: %w", kind, repo, err)
	}
	return payload, nil
}

func (c *EvidenceCache) put(ctx context.Context, repo, kind, payload string) error {
	const query = `INSERT INTO evidence (repo, kind, payload, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (repo, kind) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`

	_, err := c.db.Writer.ExecContext(ctx, query, repo, kind, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write %s evidence for %s: %w", kind, repo, err)
	}
	return nil
}
