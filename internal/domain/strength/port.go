package strength

import "context"

// CompromisedLookup port (breach-credential membership check)
type CompromisedLookup interface {
	Contains(ctx context.Context, password string) (bool, error)
}

// Reasoner port. Produces the explanatory text attached to a report.
type Reasoner interface {
	Reason(ctx context.Context, in ReasonInput) (string, error)
}

// ReasonInput is everything a Reasoner may look at. It carries the
// password's shape, never the password itself.
type ReasonInput struct {
	Length               int
	Classes              Classes
	Score                int
	TimeToCrack          CrackTime
	AttackVector         string
	VulnerabilityFactors []string
	Patterns             []PatternKind
	Compromised          bool
}

// Source of uniform random integers in [0, n)
type Source interface {
	Intn(n int) int
}
