package strength

const (
	MinRecommendedLength = 8
	TargetLength         = 12
)

// NoVulnerabilitiesMessage is what presentation layers show for an empty
// vulnerability list. It is never part of the list itself.
const NoVulnerabilitiesMessage = "No critical vulnerabilities detected"

// Vulnerabilities lists the weaknesses that apply, in fixed order.
func Vulnerabilities(length int, c Classes, patterns []PatternKind) []string {
	out := []string{}
	add := func(cond bool, msg string) {
		if cond {
			out = append(out, msg)
		}
	}
	add(length < MinRecommendedLength, "Too short (less than 8 characters)")
	add(!c.Upper, "No uppercase letters")
	add(!c.Lower, "No lowercase letters")
	add(!c.Digit, "No numbers")
	add(!c.Symbol, "No special characters")
	add(containsPattern(patterns, PatternCommonWord), "Contains common words or patterns")
	add(containsPattern(patterns, PatternSequentialCharacters), "Contains sequential characters")
	add(containsPattern(patterns, PatternRepeatedCharacters), "Contains repeated characters")
	return out
}

// Suggestions lists remediation advice, in fixed order.
func Suggestions(length int, c Classes, patterns []PatternKind) []string {
	out := []string{}
	if length < TargetLength {
		out = append(out, "Increase password length to at least 12 characters")
	}
	if c.Types() < 4 {
		out = append(out, "Use a mix of uppercase, lowercase, numbers, and special characters")
	}
	if containsPattern(patterns, PatternCommonWord) {
		out = append(out, "Avoid using common words or patterns")
	}
	if containsPattern(patterns, PatternSequentialCharacters) {
		out = append(out, "Avoid sequential characters like 'abc' or '123'")
	}
	if containsPattern(patterns, PatternRepeatedCharacters) {
		out = append(out, "Avoid repeating the same character multiple times")
	}
	return out
}
