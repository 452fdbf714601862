package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tbrowse/themescan/internal/domain/model"
	"github.com/tbrowse/themescan/internal/domain/port/driven"
)

// EvidenceService is a read-through layer over the evidence source and the
// shared cache. A cache hit returns without contacting the source; a miss
// fetches and writes back. NoCache bypasses reads but still writes so that
// subsequent runs benefit. A corrupt cached blob is treated as a miss.
type EvidenceService struct {
	source  driven.EvidenceSource
	cache   driven.EvidenceCache
	noCache bool
	logger  *slog.Logger
}

// NewEvidenceService creates an EvidenceService over the given source and
// cache.
func NewEvidenceService(source driven.EvidenceSource, cache driven.EvidenceCache, noCache bool) *EvidenceService {
	return &EvidenceService{
		source:  source,
		cache:   cache,
		noCache: noCache,
		logger:  slog.Default(),
	}
}

// Text returns the free-text evidence for a repository.
func (s *EvidenceService) Text(ctx context.Context, repo string) (string, error) {
	key := model.SafeRepo(repo)

	if !s.noCache {
		text, err := s.cache.GetText(ctx, key)
		switch {
		case err == nil:
			return text, nil
		case errors.Is(err, driven.ErrCacheMiss):
			// Fetch below.
		default:
			// Corrupt or unreadable cache entries degrade to a live fetch.
			s.logger.Warn("text cache read failed, refetching", "repo", key, "error", err)
		}
	}

	text, err := s.source.FetchText(ctx, repo)
	if err != nil {
		return "", err
	}

	if err := s.cache.PutText(ctx, key, text); err != nil {
		s.logger.Warn("text cache write failed", "repo", key, "error", err)
	}
	return text, nil
}

// Tree returns the file-listing evidence for a repository.
func (s *EvidenceService) Tree(ctx context.Context, repo string) ([]model.TreeItem, error) {
	key := model.SafeRepo(repo)

	if !s.noCache {
		items, err := s.cache.GetTree(ctx, key)
		switch {
		case err == nil:
			return items, nil
		case errors.Is(err, driven.ErrCacheMiss):
			// Fetch below.
		default:
			s.logger.Warn("tree cache read failed, refetching", "repo", key, "error", err)
		}
	}

	items, err := s.source.FetchTree(ctx, repo)
	if err != nil {
		return nil, err
	}

	if err := s.cache.PutTree(ctx, key, items); err != nil {
		s.logger.Warn("tree cache write failed", "repo", key, "error", err)
	}
	return items, nil
}
