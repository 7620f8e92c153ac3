package strength

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
)

func TestEvaluateScenarios(t *testing.T) {
	t.Run("password123", func(t *testing.T) {
		g := NewWithT(t)
		e, err := Evaluate("password123")
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(e.Classes.Types()).To(Equal(2))
		// "123" is an ascending digit run, so both penalties apply: 60-30-15
		g.Expect(e.Patterns).To(Equal([]PatternKind{
			PatternCommonWord, PatternSequentialCharacters, PatternWordFollowedByNumber,
		}))
		g.Expect(e.Score).To(Equal(15))
		g.Expect(e.TimeToCrack).To(Equal(CrackSecondsToMinutes))
		g.Expect(e.AttackVector).To(Equal(AttackDictionary))
	})

	t.Run("aaaa1111", func(t *testing.T) {
		g := NewWithT(t)
		e, _ := Evaluate("aaaa1111")
		g.Expect(e.Patterns).To(Equal([]PatternKind{PatternRepeatedCharacters, PatternWordFollowedByNumber}))
		g.Expect(e.Score).To(Equal(42))
		g.Expect(e.TimeToCrack).To(Equal(CrackHoursToDays))
		g.Expect(e.VulnerabilityFactors).To(Equal([]string{
			"No uppercase letters",
			"No special characters",
			"Contains repeated characters",
		}))
		g.Expect(e.Suggestions).To(Equal([]string{
			"Increase password length to at least 12 characters",
			"Use a mix of uppercase, lowercase, numbers, and special characters",
			"Avoid repeating the same character multiple times",
		}))
	})

	t.Run("Tr0ub4dor&3xQ!", func(t *testing.T) {
		g := NewWithT(t)
		e, _ := Evaluate("Tr0ub4dor&3xQ!")
		g.Expect(e.Length).To(Equal(14))
		g.Expect(e.Classes.Types()).To(Equal(4))
		g.Expect(e.Score).To(Equal(80))
		g.Expect(e.TimeToCrack).To(Equal(CrackYears))
		g.Expect(e.AttackVector).To(Equal(AttackBruteForce))
		g.Expect(e.VulnerabilityFactors).To(BeEmpty())
		g.Expect(e.Suggestions).To(BeEmpty())
	})
}

func TestEvaluateRejectsEmpty(t *testing.T) {
	g := NewWithT(t)
	_, err := Evaluate("")
	g.Expect(err).To(MatchError(ErrEmptyPassword))
}

func TestEvaluateIsDeterministic(t *testing.T) {
	g := NewWithT(t)
	for _, pwd := range []string{"password123", "Summer2019!", "zzz", "Qx7#Qx7#Qx7#"} {
		first, _ := Evaluate(pwd)
		second, _ := Evaluate(pwd)
		g.Expect(second).To(Equal(first))
	}
}

func TestVulnerabilitiesOrder(t *testing.T) {
	g := NewWithT(t)
	got := Vulnerabilities(3, Classes{}, []PatternKind{
		PatternRepeatedCharacters, PatternSequentialCharacters, PatternCommonWord,
	})
	g.Expect(got).To(Equal([]string{
		"Too short (less than 8 characters)",
		"No uppercase letters",
		"No lowercase letters",
		"No numbers",
		"No special characters",
		"Contains common words or patterns",
		"Contains sequential characters",
		"Contains repeated characters",
	}))
}

func TestComposeReasoning(t *testing.T) {
	g := NewWithT(t)
	e, _ := Evaluate("aaaa1111")
	text, err := TemplateReasoner{}.Reason(context.Background(), e.ReasonInput(false))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(text).To(Equal("This password is weak. Key issues include: no uppercase letters, no special characters, contains repeated characters. " +
		"It contains predictable patterns that reduce security. " +
		"With current computing power, this password could be cracked in hours to days using a brute force (limited character set)."))

	e, _ = Evaluate("Tr0ub4dor&3xQ!")
	text = ComposeReasoning(e.ReasonInput(true))
	g.Expect(text).To(HavePrefix("This password is strong. It has good complexity and length."))
	g.Expect(text).To(ContainSubstring("known breach data"))
}

func TestReportOmitsImprovementWhenNil(t *testing.T) {
	g := NewWithT(t)
	e, _ := Evaluate("Tr0ub4dor&3xQ!")
	r := e.Report(false, "ok", nil)
	g.Expect(r.Improved()).To(BeFalse())
	g.Expect(r.HasPattern(PatternWordFollowedByNumber)).To(BeTrue())
}

func TestComposeReasoningStrengthBands(t *testing.T) {
	g := NewWithT(t)
	for score, want := range map[int]string{
		0:               "This password is weak.",
		45:              "This password is weak.",
		49:              "This password is weak.",
		50:              "This password has moderate strength.",
		StrongScore - 1: "This password has moderate strength.",
		StrongScore:     "This password is strong.",
	} {
		g.Expect(ComposeReasoning(ReasonInput{Score: score})).To(HavePrefix(want), "score %d", score)
	}
}
