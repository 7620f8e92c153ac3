package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"

	domain "github.com/bryanwahyu/passwise/internal/domain/analyst"
)

type AnalystRepository struct {
	db *sql.DB
}

func NewAnalystRepository(db *sql.DB) *AnalystRepository {
	return &AnalystRepository{db: db}
}

// Save inserts or updates an analysis record
func (r *AnalystRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO password_analyses
  (id, tenant_id, length, score, time_to_crack, attack_vector, patterns, compromised, improved, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (id) DO UPDATE SET
  score=EXCLUDED.score,
  time_to_crack=EXCLUDED.time_to_crack,
  patterns=EXCLUDED.patterns;
`
	tenant := a.TenantID
	if strings.TrimSpace(tenant) == "" {
		tenant = "-"
	}
	patterns := a.Patterns
	if patterns == nil {
		patterns = []string{}
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q,
		a.ID, tenant, a.Length, a.Score, a.TimeToCrack, a.AttackVector,
		pq.Array(patterns), a.Compromised, a.Improved, createdAt)
	return err
}

// Paginate returns a page of analysis records ordered by created_at desc
func (r *AnalystRepository) Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Analysis, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset, ok := domain.Offset(page, pageSize)
	if !ok {
		return nil, nil
	}

	const q = `
SELECT id, tenant_id, length, score, time_to_crack, attack_vector, patterns, compromised, improved, created_at
FROM password_analyses
WHERE tenant_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		var a domain.Analysis
		var patterns pq.StringArray
		if err := rows.Scan(&a.ID, &a.TenantID, &a.Length, &a.Score, &a.TimeToCrack, &a.AttackVector,
			&patterns, &a.Compromised, &a.Improved, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Patterns = []string(patterns)
		if a.Patterns == nil {
			a.Patterns = []string{}
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
