package driven

import (
	"context"
	"fmt"

	"github.com/tbrowse/themescan/internal/domain/model"
)

// EvidenceSource defines the driven port for retrieving raw classification
// evidence from the remote host. Authentication, retry, and rate-limit
// behavior belong to the implementation; failures must surface as *FetchError
// so the evidence service can recognize them.
type EvidenceSource interface {
	// FetchText returns the repository's free-text evidence (description
	// plus README) used by the text signal extractor.
	FetchText(ctx context.Context, repo string) (string, error)
	// FetchTree returns the repository's file listing used by the
	// structure signal extractor.
	FetchTree(ctx context.Context, repo string) ([]model.TreeItem, error)
}

// FetchError indicates evidence retrieval failed (network, auth, not-found).
// It is never retried by the core; the orchestrator downgrades it to an
// error row at the per-repository boundary.
type FetchError struct {
	Repo string
	Op   string // "text" or "tree".
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s evidence for %s: %v", e.Op, e.Repo, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
