package strength

import (
	"context"
	"fmt"
	"strings"
)

// TemplateReasoner composes reasoning text locally. It never fails.
type TemplateReasoner struct{}

func (TemplateReasoner) Reason(_ context.Context, in ReasonInput) (string, error) {
	return ComposeReasoning(in), nil
}

// ComposeReasoning builds the explanatory paragraph for a report.
func ComposeReasoning(in ReasonInput) string {
	var b strings.Builder

	switch {
	case in.Score < 50:
		b.WriteString("This password is weak.")
	case in.Score < StrongScore:
		b.WriteString("This password has moderate strength.")
	default:
		b.WriteString("This password is strong.")
	}

	if len(in.VulnerabilityFactors) > 0 {
		b.WriteString(" Key issues include: ")
		b.WriteString(strings.ToLower(strings.Join(in.VulnerabilityFactors, ", ")))
		b.WriteString(".")
	} else {
		b.WriteString(" It has good complexity and length.")
	}

	if len(in.Patterns) > 0 {
		b.WriteString(" It contains predictable patterns that reduce security.")
	} else {
		b.WriteString(" It does not contain obvious predictable patterns.")
	}

	if in.Compromised {
		b.WriteString(" It also appears in known breach data, so attackers will try it early.")
	}

	fmt.Fprintf(&b, " With current computing power, this password could be cracked in %s using a %s.",
		in.TimeToCrack, in.AttackVector)
	return b.String()
}
