package main

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	domain "github.com/bryanwahyu/passwise/internal/domain/strength"
)

func TestRenderReport(t *testing.T) {
	g := NewWithT(t)
	e, err := domain.Evaluate("password123")
	g.Expect(err).NotTo(HaveOccurred())
	report := e.Report(true, "Weak.", &domain.Improvement{Password: "Xy7!abcdEFGH1234", Explanation: "Regenerated."})

	var buf bytes.Buffer
	renderReport(&buf, report)
	plain := stripANSI(buf.String())

	g.Expect(plain).To(ContainSubstring("[SCORE] 15/100, cracked in seconds to minutes (dictionary attack)"))
	g.Expect(plain).To(ContainSubstring("[BREACHED]"))
	g.Expect(plain).To(ContainSubstring("[WEAK] No uppercase letters"))
	g.Expect(plain).To(ContainSubstring("[PATTERN] common_word"))
	g.Expect(plain).To(ContainSubstring("[IMPROVED] Xy7!abcdEFGH1234"))
	g.Expect(plain).To(HaveSuffix("Weak.\n"))
}

func TestRenderGenerationNote(t *testing.T) {
	g := NewWithT(t)
	var buf bytes.Buffer
	renderGeneration(&buf, domain.GenerationResult{Password: "abc", Score: 40, TimeToCrack: domain.CrackHoursToDays, Note: "advisory"})
	plain := stripANSI(buf.String())

	g.Expect(plain).To(ContainSubstring("[PASSWORD] abc"))
	g.Expect(plain).To(ContainSubstring("[NOTE] advisory"))
}

func TestReadLine(t *testing.T) {
	g := NewWithT(t)
	line, err := readLine(strings.NewReader("s3cret!\r\nignored\n"))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(line).To(Equal("s3cret!"))

	line, err = readLine(strings.NewReader("no-newline"))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(line).To(Equal("no-newline"))
}

// stripANSI drops SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
