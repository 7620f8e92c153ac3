package strength

import (
	"regexp"
	"strings"
)

// CommonWords are high-frequency weak tokens matched case-insensitively.
var CommonWords = []string{"password", "admin", "welcome", "123456", "qwerty"}

const (
	alphaSequence = "abcdefghijklmnopqrstuvwxyz"
	digitSequence = "0123456789"
)

var (
	yearRe          = regexp.MustCompile(`19\d\d|20\d\d`)
	wordThenDigitRe = regexp.MustCompile(`[a-zA-Z]+[0-9]+`)
)

// detector pairs a pattern with its predicate. Table order is emission order.
type detector struct {
	kind  PatternKind
	match func(pwd string) bool
}

var detectors = []detector{
	{PatternCommonWord, hasCommonWord},
	{PatternSequentialCharacters, hasSequentialRun},
	{PatternRepeatedCharacters, hasRepeatedRun},
	{PatternYear, yearRe.MatchString},
	{PatternWordFollowedByNumber, wordThenDigitRe.MatchString},
}

// DetectPatterns evaluates every detector independently.
func DetectPatterns(pwd string) []PatternKind {
	out := make([]PatternKind, 0, len(detectors))
	for _, d := range detectors {
		if d.match(pwd) {
			out = append(out, d.kind)
		}
	}
	return out
}

func hasCommonWord(pwd string) bool {
	lower := strings.ToLower(pwd)
	for _, w := range CommonWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// hasSequentialRun looks for any ascending triple like "abc" or "789".
func hasSequentialRun(pwd string) bool {
	lower := strings.ToLower(pwd)
	for _, seq := range []string{alphaSequence, digitSequence} {
		for i := 0; i+3 <= len(seq); i++ {
			if strings.Contains(lower, seq[i:i+3]) {
				return true
			}
		}
	}
	return false
}

func hasRepeatedRun(pwd string) bool {
	var prev rune
	run := 0
	for _, r := range pwd {
		if run > 0 && r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run >= 3 {
			return true
		}
	}
	return false
}
