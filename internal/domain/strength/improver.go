package strength

import (
	"fmt"
	"strings"
)

const (
	// StrongScore and above needs no improvement.
	StrongScore = 70
	// RegenerateBelow discards the original entirely.
	RegenerateBelow = 40

	appendSymbols = "!@#$%^&*"
)

// Improvement is a synthesized stronger variant of a password.
type Improvement struct {
	Password    string
	Explanation string
	Regenerated bool
}

// Improver synthesizes remediated passwords.
type Improver struct {
	Generator *Generator
	Source    Source
}

// NewImprover shares one random source between the improver and its generator.
func NewImprover(src Source) *Improver {
	return &Improver{Generator: &Generator{Source: src}, Source: src}
}

// Improve returns false when score is already strong. Every mutation is
// triggered by the original password's flags, never the partly mutated copy.
func (im *Improver) Improve(pwd string, score int, c Classes, length int) (Improvement, bool) {
	if score >= StrongScore {
		return Improvement{}, false
	}
	if score < RegenerateBelow {
		return Improvement{
			Password:    im.Generator.Generate(),
			Explanation: "Your password was too weak to build on, so a new 16-character password was generated that mixes uppercase, lowercase, numbers, and special characters.",
			Regenerated: true,
		}, true
	}

	runes := []rune(pwd)
	var changes []string
	if !c.Upper && swapFirst(runes, 'a', 'z', 'A'-'a') {
		changes = append(changes, "capitalized a letter")
	}
	if !c.Lower && swapFirst(runes, 'A', 'Z', 'a'-'A') {
		changes = append(changes, "lowercased a letter")
	}
	out := string(runes)
	if !c.Digit {
		out += string(digitChars[im.Source.Intn(len(digitChars))])
		changes = append(changes, "added a number")
	}
	if !c.Symbol {
		out += string(appendSymbols[im.Source.Intn(len(appendSymbols))])
		changes = append(changes, "added a special character")
	}
	if length < TargetLength {
		out += im.Generator.Generate()[:TargetLength-length]
		changes = append(changes, fmt.Sprintf("increased the length from %d to %d characters", length, Length(out)))
	}
	return Improvement{Password: out, Explanation: explainChanges(changes)}, true
}

// swapFirst shifts the first rune within [lo,hi] by delta.
func swapFirst(runes []rune, lo, hi, delta rune) bool {
	for i, r := range runes {
		if r >= lo && r <= hi {
			runes[i] = r + delta
			return true
		}
	}
	return false
}

func explainChanges(changes []string) string {
	switch len(changes) {
	case 0:
		return "No automatic change could strengthen this password without discarding it; follow the suggestions instead."
	case 1:
		return "The improved password " + changes[0] + "."
	case 2:
		return "The improved password " + changes[0] + " and " + changes[1] + "."
	default:
		last := len(changes) - 1
		return "The improved password " + strings.Join(changes[:last], ", ") + ", and " + changes[last] + "."
	}
}
