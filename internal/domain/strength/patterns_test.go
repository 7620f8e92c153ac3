package strength

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestDetectPatterns(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []PatternKind
	}{
		{"common word any case", "xxPaSsWoRdxx", []PatternKind{PatternCommonWord}},
		{"digits common word", "zz123456!", []PatternKind{PatternCommonWord, PatternSequentialCharacters, PatternWordFollowedByNumber}},
		{"alpha run upper case", "xXYZ!", []PatternKind{PatternSequentialCharacters}},
		{"digit run", "#789#", []PatternKind{PatternSequentialCharacters}},
		{"descending is not a run", "cba!", []PatternKind{}},
		{"repeated symbol", "!!!", []PatternKind{PatternRepeatedCharacters}},
		{"two repeats only", "aabb", []PatternKind{}},
		{"year 1900s", "#1987#", []PatternKind{PatternYear}},
		{"year 2000s", "#2024#", []PatternKind{PatternYear}},
		{"not a year", "#2124#", []PatternKind{}},
		{"word then number", "abz9", []PatternKind{PatternWordFollowedByNumber}},
		{"number then word", "9zba", []PatternKind{}},
		{
			"all at once",
			"Welcome1999aaa",
			[]PatternKind{PatternCommonWord, PatternRepeatedCharacters, PatternYear, PatternWordFollowedByNumber},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewWithT(t)
			g.Expect(DetectPatterns(tc.in)).To(Equal(tc.want))
		})
	}
}

func TestRepeatedRunIsCaseSensitive(t *testing.T) {
	g := NewWithT(t)
	g.Expect(hasRepeatedRun("aAa")).To(BeFalse())
	g.Expect(hasRepeatedRun("xéééy")).To(BeTrue())
}

func TestClassify(t *testing.T) {
	g := NewWithT(t)

	c := Classify("password123")
	g.Expect(c).To(Equal(Classes{Lower: true, Digit: true}))
	g.Expect(c.Types()).To(Equal(2))

	c = Classify("Tr0ub4dor&3xQ!")
	g.Expect(c.Types()).To(Equal(4))

	// non-ASCII letters count as symbols
	c = Classify("é")
	g.Expect(c).To(Equal(Classes{Symbol: true}))
	g.Expect(Length("héllo")).To(Equal(5))
}
