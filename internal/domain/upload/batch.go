package upload

import (
	"sync"

	"github.com/honeycarbs/talent-search/internal/domain"
)

// Batch is the list of parsed resumes shown on the upload page, newest first
type Batch struct {
	mu    sync.Mutex
	items []domain.Candidate
}

func NewBatch(initial []domain.Candidate) *Batch {
	return &Batch{items: domain.CloneAll(initial)}
}

// Prepend puts cs in front of the existing items, keeping their order
func (b *Batch) Prepend(cs ...domain.Candidate) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := make([]domain.Candidate, 0, len(cs)+len(b.items))
	items = append(items, domain.CloneAll(cs)...)
	b.items = append(items, b.items...)
}

// Replace swaps the whole list
func (b *Batch) Replace(cs []domain.Candidate) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = domain.CloneAll(cs)
}

func (b *Batch) Items() []domain.Candidate {
	b.mu.Lock()
	defer b.mu.Unlock()

	return domain.CloneAll(b.items)
}
