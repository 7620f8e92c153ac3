package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/bryanwahyu/passwise/internal/domain/analyst"
)

type AnalystRepository struct {
	db *sql.DB
}

func NewAnalystRepository(db *sql.DB) *AnalystRepository {
	return &AnalystRepository{db: db}
}

// Save inserts an analysis record
func (r *AnalystRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO password_analyses
  (id, tenant_id, length, score, time_to_crack, attack_vector, patterns_json, compromised, improved, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  score=VALUES(score), time_to_crack=VALUES(time_to_crack), patterns_json=VALUES(patterns_json);
`
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q,
		a.ID, stringOrDash(a.TenantID), a.Length, a.Score, a.TimeToCrack,
		stringOrDash(a.AttackVector), encodePatterns(a.Patterns), a.Compromised, a.Improved, createdAt)
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
SELECT id, tenant_id, length, score, time_to_crack, attack_vector, patterns_json, compromised, improved, created_at
FROM password_analyses
WHERE tenant_id=?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		var (
			a        domain.Analysis
			patterns string
		)
		if err := rows.Scan(&a.ID, &a.TenantID, &a.Length, &a.Score, &a.TimeToCrack, &a.AttackVector,
			&patterns, &a.Compromised, &a.Improved, &a.CreatedAt); err != nil {
			return nil, err
		}
		if a.Patterns, err = decodePatterns(patterns); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
