package strength

import "math"

var crackBuckets = []struct {
	below int
	label CrackTime
}{
	{30, CrackSecondsToMinutes},
	{50, CrackHoursToDays},
	{70, CrackWeeksToMonths},
	{90, CrackYears},
}

// EstimateCrackTime maps a final score to its bucket; first match wins.
func EstimateCrackTime(score int) CrackTime {
	for _, b := range crackBuckets {
		if score < b.below {
			return b.label
		}
	}
	return CrackCenturies
}

// HorizonDays is the longest attack duration a bucket stands for, in days.
// Generation compares time_threshold_days against it.
func (c CrackTime) HorizonDays() int {
	switch c {
	case CrackSecondsToMinutes:
		return 0
	case CrackHoursToDays:
		return 30
	case CrackWeeksToMonths:
		return 365
	case CrackYears:
		return 100 * 365
	case CrackCenturies:
		return math.MaxInt32
	default:
		return 0
	}
}

// ClassifyAttackVector infers the cheapest likely attack.
func ClassifyAttackVector(c Classes, patterns []PatternKind) string {
	switch {
	case containsPattern(patterns, PatternCommonWord):
		return AttackDictionary
	case c.Types() <= 2:
		return AttackBruteForceLimited
	default:
		return AttackBruteForce
	}
}
