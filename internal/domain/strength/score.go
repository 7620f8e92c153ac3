package strength

const (
	MinScore = 10
	MaxScore = 100

	// ReachableMaxScore is the structural ceiling of the heuristic: length
	// tops out at 40 and diversity at 40, so nothing above 80 is produced.
	ReachableMaxScore = 80

	lengthWeight   = 4
	lengthCap      = 40
	diversityScore = 10
)

// penalty is applied in table order, each floored at MinScore.
var penalties = []struct {
	kind   PatternKind
	amount int
}{
	{PatternCommonWord, 30},
	{PatternSequentialCharacters, 15},
	{PatternRepeatedCharacters, 10},
}

// Score combines length, diversity and pattern penalties into [10,100].
func Score(length int, c Classes, patterns []PatternKind) int {
	score := min(length*lengthWeight, lengthCap) + c.Types()*diversityScore
	for _, p := range penalties {
		if containsPattern(patterns, p.kind) {
			score = max(score-p.amount, MinScore)
		}
	}
	// only empty input can land under the floor without a penalty
	return min(max(score, MinScore), MaxScore)
}
