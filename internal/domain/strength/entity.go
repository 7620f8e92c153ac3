package strength

// PatternKind names a weak structural pattern found in a password
type PatternKind string

const (
	PatternCommonWord           PatternKind = "common_word"
	PatternSequentialCharacters PatternKind = "sequential_characters"
	PatternRepeatedCharacters   PatternKind = "repeated_characters"
	PatternYear                 PatternKind = "year_pattern"
	PatternWordFollowedByNumber PatternKind = "word_followed_by_number"
)

// CrackTime bucket, ordered from weakest to strongest
type CrackTime string

const (
	CrackSecondsToMinutes CrackTime = "seconds to minutes"
	CrackHoursToDays      CrackTime = "hours to days"
	CrackWeeksToMonths    CrackTime = "weeks to months"
	CrackYears            CrackTime = "years"
	CrackCenturies        CrackTime = "centuries"
)

// AttackVector labels
const (
	AttackDictionary        = "dictionary attack"
	AttackBruteForceLimited = "brute force (limited character set)"
	AttackBruteForce        = "brute force attack"
)

// Report is the full analysis of one password
type Report struct {
	Score                  int           `json:"score"`
	TimeToCrack            CrackTime     `json:"time_to_crack"`
	VulnerabilityFactors   []string      `json:"vulnerability_factors"`
	PatternsDetected       []PatternKind `json:"patterns_detected"`
	IsCompromised          bool          `json:"is_compromised"`
	AttackVector           string        `json:"attack_vector"`
	Suggestions            []string      `json:"suggestions"`
	ImprovedPassword       string        `json:"improved_password,omitempty"`
	Reasoning              string        `json:"reasoning"`
	ImprovementExplanation string        `json:"improvement_explanation,omitempty"`
}

// Improved reports whether the analysis produced a stronger variant
func (r *Report) Improved() bool { return r.ImprovedPassword != "" }

// HasPattern reports whether k was among the detected patterns.
func (r *Report) HasPattern(k PatternKind) bool {
	return containsPattern(r.PatternsDetected, k)
}

// GenerationRequest carries the caller's strength constraints
type GenerationRequest struct {
	MinScore          int `json:"min_score"`
	TimeThresholdDays int `json:"time_threshold_days"`
}

// GenerationResult value object
type GenerationResult struct {
	Password    string    `json:"password"`
	Score       int       `json:"score"`
	TimeToCrack CrackTime `json:"time_to_crack"`
	Attempts    int       `json:"-"`
	Note        string    `json:"note,omitempty"`
}

func containsPattern(list []PatternKind, k PatternKind) bool {
	for _, p := range list {
		if p == k {
			return true
		}
	}
	return false
}
