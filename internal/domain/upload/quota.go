package upload

import (
	"context"
	"fmt"
	"sync"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/domain/billing"
)

// Quota meters uploads per account
type Quota interface {
	// Reserve takes one upload slot or returns domain.ErrQuotaExceeded
	Reserve(ctx context.Context, account string) error
	// Release gives back a slot taken by a failed upload
	Release(ctx context.Context, account string)
	// Usage returns the uploads counted so far and the plan that limits them
	Usage(ctx context.Context, account string) (int, billing.Plan)
}

// MemoryQuota counts uploads in memory against each account plan
type MemoryQuota struct {
	mu          sync.Mutex
	defaultPlan billing.Plan
	plans       map[string]billing.Plan
	used        map[string]int
}

var _ Quota = (*MemoryQuota)(nil)

func NewMemoryQuota(defaultPlan billing.Plan) *MemoryQuota {
	return &MemoryQuota{
		defaultPlan: defaultPlan,
		plans:       make(map[string]billing.Plan),
		used:        make(map[string]int),
	}
}

// SetPlan switches the plan of one account. Usage is kept.
func (q *MemoryQuota) SetPlan(account string, p billing.Plan) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.plans[account] = p
}

func (q *MemoryQuota) Reserve(_ context.Context, account string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	p := q.planLocked(account)
	used := q.used[account]
	if !p.AllowsUpload(used) {
		return fmt.Errorf("upload: %s plan allows %d uploads: %w", p.Name, p.UploadLimit, domain.ErrQuotaExceeded)
	}
	q.used[account] = used + 1
	return nil
}

func (q *MemoryQuota) Release(_ context.Context, account string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.used[account] > 0 {
		q.used[account]--
	}
}

func (q *MemoryQuota) Usage(_ context.Context, account string) (int, billing.Plan) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.used[account], q.planLocked(account)
}

func (q *MemoryQuota) planLocked(account string) billing.Plan {
	if p, ok := q.plans[account]; ok {
		return p
	}
	return q.defaultPlan
}
