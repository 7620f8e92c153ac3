package strength

import "unicode/utf8"

// Classes holds character-class membership for a password. Letters and
// digits are ASCII-only; every other rune counts as a symbol.
type Classes struct {
	Upper  bool `json:"upper"`
	Lower  bool `json:"lower"`
	Digit  bool `json:"digit"`
	Symbol bool `json:"symbol"`
}

// Types is the diversity count (0..4).
func (c Classes) Types() int {
	n := 0
	for _, ok := range []bool{c.Upper, c.Lower, c.Digit, c.Symbol} {
		if ok {
			n++
		}
	}
	return n
}

// Classify derives class flags from raw input.
func Classify(pwd string) Classes {
	var c Classes
	for _, r := range pwd {
		switch {
		case r >= 'A' && r <= 'Z':
			c.Upper = true
		case r >= 'a' && r <= 'z':
			c.Lower = true
		case r >= '0' && r <= '9':
			c.Digit = true
		default:
			c.Symbol = true
		}
	}
	return c
}

// Length counts characters, not bytes.
func Length(pwd string) int {
	return utf8.RuneCountInString(pwd)
}
