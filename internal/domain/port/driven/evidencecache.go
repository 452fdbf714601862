package driven

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tbrowse/themescan/internal/domain/model"
)

// ErrCacheMiss indicates the requested evidence is not cached.
var ErrCacheMiss = errors.New("evidence cache miss")

// ParseError indicates a cached evidence blob is corrupt or unreadable.
// Callers treat it as a cache miss and refetch; it never aborts a run.
type ParseError struct {
	Repo string
	Kind string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse cached %s evidence for %s: %v", e.Kind, e.Repo, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CacheRecord is one raw entry of the evidence cache, as listed for export.
type CacheRecord struct {
	Repo      string    `json:"repo"`
	Kind      string    `json:"kind"`
	Payload   string    `json:"payload"`
	FetchedAt time.Time `json:"fetched_at"`
}

// EvidenceCache defines the driven port for the shared evidence cache.
// Writes are idempotent: storing identical content twice is harmless, so
// concurrent check-then-write races need no coordination.
type EvidenceCache interface {
	GetText(ctx context.Context, repo string) (string, error)
	PutText(ctx context.Context, repo string, text string) error
	GetTree(ctx context.Context, repo string) ([]model.TreeItem, error)
	PutTree(ctx context.Context, repo string, items []model.TreeItem) error
	// List returns every cached record, ordered by repo then kind.
	List(ctx context.Context) ([]CacheRecord, error)
}
