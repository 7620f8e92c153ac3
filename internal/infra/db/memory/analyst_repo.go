package memory

import (
	"context"
	"sort"
	"sync"

	domain "github.com/bryanwahyu/passwise/internal/domain/analyst"
)

// AnalystRepository keeps analysis records in process memory, newest last.
// Used when no database is configured.
type AnalystRepository struct {
	mu      sync.RWMutex
	records []*domain.Analysis
	limit   int
}

// NewAnalystRepository keeps at most limit records per process (0 = unbounded).
func NewAnalystRepository(limit int) *AnalystRepository {
	return &AnalystRepository{limit: limit}
}

func (r *AnalystRepository) Save(_ context.Context, a *domain.Analysis) error {
	cp := *a
	cp.Patterns = append([]string{}, a.Patterns...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, &cp)
	if r.limit > 0 && len(r.records) > r.limit {
		r.records = r.records[len(r.records)-r.limit:]
	}
	return nil
}

func (r *AnalystRepository) Paginate(_ context.Context, tenant string, page, pageSize int) ([]*domain.Analysis, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	r.mu.RLock()
	var matched []*domain.Analysis
	for _, a := range r.records {
		if a.TenantID == tenant {
			cp := *a
			matched = append(matched, &cp)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	start, ok := domain.Offset(page, pageSize)
	if !ok || start >= len(matched) {
		return nil, nil
	}
	end := min(start+pageSize, len(matched))
	return matched[start:end], nil
}
