package repository

import (
	"context"

	"github.com/honeycarbs/talent-search/internal/domain"
)

// RelatedCandidate is a candidate connected to another through shared skills
type RelatedCandidate struct {
	Candidate    domain.Candidate
	SharedSkills []string
	Relevance    int
}

// CandidateRepository defines the interface for candidate storage operations
type CandidateRepository interface {
	// UpsertCandidates creates or replaces candidates by ID
	UpsertCandidates(ctx context.Context, candidates []domain.Candidate) error

	// FindByID returns domain.ErrNotFound when the candidate is unknown
	FindByID(ctx context.Context, id domain.CandidateID) (domain.Candidate, error)

	// ListCandidates returns every stored candidate, best match first
	ListCandidates(ctx context.Context) ([]domain.Candidate, error)

	// FindRelated returns up to limit stored candidates sharing a skill with c, most relevant
	// first. c itself need not be stored.
	FindRelated(ctx context.Context, c domain.Candidate, limit int) ([]RelatedCandidate, error)
}

// Relevance scores two points per shared skill and one for a shared location
func Relevance(shared int, sameLocation bool) int {
	score := shared * 2
	if sameLocation {
		score++
	}
	return score
}
