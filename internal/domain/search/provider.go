package search

import (
	"context"

	"github.com/honeycarbs/talent-search/internal/domain"
)

// Provider is the remote semantic search source
type Provider interface {
	// e.g. "backend"
	Name() string

	// Search returns normalized matches for a free-text query
	Search(ctx context.Context, query string) (domain.SearchResult, error)
}

// FallbackSource supplies the records shown when the provider fails
type FallbackSource func() []domain.Candidate
