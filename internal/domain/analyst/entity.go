package analyst

import (
	"math"
	"time"
)

// AnalysisID identifier type
type AnalysisID string

// Analysis is a redacted record of one password analysis, kept for auditing
// and aggregate reporting. It never carries the password or a digest of it.
type Analysis struct {
	ID           AnalysisID `json:"id"`
	TenantID     string     `json:"tenant_id"`
	Length       int        `json:"length"`
	Score        int        `json:"score"`
	TimeToCrack  string     `json:"time_to_crack"`
	AttackVector string     `json:"attack_vector"`
	Patterns     []string   `json:"patterns"`
	Compromised  bool       `json:"is_compromised"`
	Improved     bool       `json:"improved"`
	CreatedAt    time.Time  `json:"created_at"`
}

// PaginatedResult represents a page of analyses
type PaginatedResult struct {
	Data     []*Analysis `json:"data"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// Offset returns the number of records before page. ok is false when the
// offset does not fit in an int; such a page is past the end and empty.
func Offset(page, pageSize int) (offset int, ok bool) {
	if page < 1 || pageSize < 1 {
		return 0, true
	}
	if page-1 > math.MaxInt/pageSize {
		return 0, false
	}
	return (page - 1) * pageSize, true
}
