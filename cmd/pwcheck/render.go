package main

import (
	"fmt"
	"io"

	"github.com/mgutz/ansi"

	domain "github.com/bryanwahyu/passwise/internal/domain/strength"
)

var (
	red    = ansi.ColorFunc("red+b")
	yellow = ansi.ColorFunc("yellow+b")
	green  = ansi.ColorFunc("green+b")
	faint  = ansi.ColorFunc("white+d")
)

func scoreColor(score int) func(string) string {
	switch {
	case score < 40:
		return red
	case score < domain.StrongScore:
		return yellow
	}
	return green
}

func renderReport(w io.Writer, r *domain.Report) {
	color := scoreColor(r.Score)
	fmt.Fprintf(w, "%s %d/100, cracked in %s (%s)\n", color("[SCORE]"), r.Score, r.TimeToCrack, r.AttackVector)
	if r.IsCompromised {
		fmt.Fprintf(w, "%s found in a known breach corpus\n", red("[BREACHED]"))
	}

	if len(r.VulnerabilityFactors) == 0 {
		fmt.Fprintf(w, "%s %s\n", green("[OK]"), domain.NoVulnerabilitiesMessage)
	}
	for _, v := range r.VulnerabilityFactors {
		fmt.Fprintf(w, "%s %s\n", red("[WEAK]"), v)
	}
	for _, p := range r.PatternsDetected {
		fmt.Fprintf(w, "%s %s\n", yellow("[PATTERN]"), p)
	}
	for _, s := range r.Suggestions {
		fmt.Fprintf(w, "%s %s\n", faint("[TIP]"), s)
	}
	if r.ImprovedPassword != "" {
		fmt.Fprintf(w, "%s %s\n", green("[IMPROVED]"), r.ImprovedPassword)
		fmt.Fprintf(w, "  %s\n", r.ImprovementExplanation)
	}
	fmt.Fprintf(w, "\n%s\n", r.Reasoning)
}

func renderGeneration(w io.Writer, res domain.GenerationResult) {
	fmt.Fprintf(w, "%s %s\n", green("[PASSWORD]"), res.Password)
	fmt.Fprintf(w, "%s %d/100, cracked in %s\n", scoreColor(res.Score)("[SCORE]"), res.Score, res.TimeToCrack)
	if res.Note != "" {
		fmt.Fprintf(w, "%s %s\n", yellow("[NOTE]"), res.Note)
	}
}
