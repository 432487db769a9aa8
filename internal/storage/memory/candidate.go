package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/repository"
)

var _ repository.CandidateRepository = (*CandidateRepository)(nil)

// CandidateRepository keeps candidates in process memory. Used when Neo4j is not configured.
type CandidateRepository struct {
	mu    sync.RWMutex
	byID  map[domain.CandidateID]domain.Candidate
	order []domain.CandidateID
}

func NewCandidateRepository() *CandidateRepository {
	return &CandidateRepository{byID: make(map[domain.CandidateID]domain.Candidate)}
}

func (r *CandidateRepository) UpsertCandidates(_ context.Context, candidates []domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range candidates {
		if c.ID == "" {
			return fmt.Errorf("memory: upsert candidate %q: %w: empty id", c.Name, domain.ErrInvalidInput)
		}
		if _, ok := r.byID[c.ID]; !ok {
			r.order = append(r.order, c.ID)
		}
		r.byID[c.ID] = c.Clone()
	}
	return nil
}

func (r *CandidateRepository) FindByID(_ context.Context, id domain.CandidateID) (domain.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return domain.Candidate{}, fmt.Errorf("memory: candidate %s: %w", id, domain.ErrNotFound)
	}
	return c.Clone(), nil
}

func (r *CandidateRepository) ListCandidates(_ context.Context) ([]domain.Candidate, error) {
	r.mu.RLock()
	out := make([]domain.Candidate, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out, nil
}

func (r *CandidateRepository) FindRelated(_ context.Context, c domain.Candidate, limit int) ([]repository.RelatedCandidate, error) {
	if len(c.Skills) == 0 || limit <= 0 {
		return nil, nil
	}

	r.mu.RLock()
	var out []repository.RelatedCandidate
	for _, id := range r.order {
		other := r.byID[id]
		if other.ID == c.ID {
			continue
		}
		var shared []string
		for _, s := range other.Skills {
			if c.HasSkill(s) {
				shared = append(shared, s)
			}
		}
		if len(shared) == 0 {
			continue
		}
		sameLocation := c.Location != "" && other.Location == c.Location
		out = append(out, repository.RelatedCandidate{
			Candidate:    other.Clone(),
			SharedSkills: shared,
			Relevance:    repository.Relevance(len(shared), sameLocation),
		})
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Relevance != out[j].Relevance {
			return out[i].Relevance > out[j].Relevance
		}
		return out[i].Candidate.MatchScore > out[j].Candidate.MatchScore
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
