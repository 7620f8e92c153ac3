package strength

// Evaluation is the deterministic part of an analysis: a pure function of
// the password.
type Evaluation struct {
	Length               int
	Classes              Classes
	Patterns             []PatternKind
	Score                int
	TimeToCrack          CrackTime
	AttackVector         string
	VulnerabilityFactors []string
	Suggestions          []string
}

// Evaluate runs classifier, detector, scorer and the label/report derivations.
func Evaluate(pwd string) (Evaluation, error) {
	if pwd == "" {
		return Evaluation{}, ErrEmptyPassword
	}
	length := Length(pwd)
	c := Classify(pwd)
	patterns := DetectPatterns(pwd)
	score := Score(length, c, patterns)
	return Evaluation{
		Length:               length,
		Classes:              c,
		Patterns:             patterns,
		Score:                score,
		TimeToCrack:          EstimateCrackTime(score),
		AttackVector:         ClassifyAttackVector(c, patterns),
		VulnerabilityFactors: Vulnerabilities(length, c, patterns),
		Suggestions:          Suggestions(length, c, patterns),
	}, nil
}

// ReasonInput projects the evaluation for a Reasoner.
func (e Evaluation) ReasonInput(compromised bool) ReasonInput {
	return ReasonInput{
		Length:               e.Length,
		Classes:              e.Classes,
		Score:                e.Score,
		TimeToCrack:          e.TimeToCrack,
		AttackVector:         e.AttackVector,
		VulnerabilityFactors: e.VulnerabilityFactors,
		Patterns:             e.Patterns,
		Compromised:          compromised,
	}
}

// Report assembles the final report. imp may be nil when no improvement was produced.
func (e Evaluation) Report(compromised bool, reasoning string, imp *Improvement) *Report {
	r := &Report{
		Score:                e.Score,
		TimeToCrack:          e.TimeToCrack,
		VulnerabilityFactors: e.VulnerabilityFactors,
		PatternsDetected:     e.Patterns,
		IsCompromised:        compromised,
		AttackVector:         e.AttackVector,
		Suggestions:          e.Suggestions,
		Reasoning:            reasoning,
	}
	if imp != nil {
		r.ImprovedPassword = imp.Password
		r.ImprovementExplanation = imp.Explanation
	}
	return r
}
