package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/passwise/internal/domain/strength"
)

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt() string {
	return `You are a password security advisor. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a single JSON object with a single "reasoning" field.
- Explain in 3 to 5 plain sentences why the password has the given strength.
- Mention the estimated time to crack and the attack vector exactly as given.
- You never see the password itself. Do not invent characters, words or examples from it.
- Do not recommend a specific replacement password.

Schema:
{
  "reasoning": "<string>"
}`
}

// facts is the password shape sent to the model.
type facts struct {
	Length               int      `json:"length"`
	HasUppercase         bool     `json:"has_uppercase"`
	HasLowercase         bool     `json:"has_lowercase"`
	HasDigit             bool     `json:"has_digit"`
	HasSymbol            bool     `json:"has_symbol"`
	Score                int      `json:"score"`
	TimeToCrack          string   `json:"time_to_crack"`
	AttackVector         string   `json:"attack_vector"`
	VulnerabilityFactors []string `json:"vulnerability_factors"`
	Patterns             []string `json:"patterns_detected"`
	Compromised          bool     `json:"is_compromised"`
}

// GetUserPrompt builds the user message from a password's analysed shape.
func GetUserPrompt(in strength.ReasonInput) string {
	f := facts{
		Length:               in.Length,
		HasUppercase:         in.Classes.Upper,
		HasLowercase:         in.Classes.Lower,
		HasDigit:             in.Classes.Digit,
		HasSymbol:            in.Classes.Symbol,
		Score:                in.Score,
		TimeToCrack:          string(in.TimeToCrack),
		AttackVector:         in.AttackVector,
		VulnerabilityFactors: in.VulnerabilityFactors,
		Compromised:          in.Compromised,
	}
	for _, p := range in.Patterns {
		f.Patterns = append(f.Patterns, string(p))
	}
	b, _ := json.Marshal(f)
	return fmt.Sprintf("Explain this password analysis (score is out of 100) and respond with the JSON per schema. Analysis: %s", b)
}

// ParseReasoning extracts the reasoning field from the model output.
func ParseReasoning(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var out struct {
		Reasoning string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return "", fmt.Errorf("failed to decode reasoning: %w", err)
	}
	if strings.TrimSpace(out.Reasoning) == "" {
		return "", fmt.Errorf("reasoning field is empty")
	}
	return strings.TrimSpace(out.Reasoning), nil
}
