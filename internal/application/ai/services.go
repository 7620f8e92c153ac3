package ai

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/passwise/internal/domain/ai"
	"github.com/bryanwahyu/passwise/internal/domain/strength"
	"github.com/bryanwahyu/passwise/internal/infra/ai/prompt"
)

// Service turns an LLM client into a strength.Reasoner.
type Service struct {
	client ai.Client
}

func NewService(client ai.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Reason(ctx context.Context, in strength.ReasonInput) (string, error) {
	raw, err := s.client.Complete(ctx, prompt.GetSystemPrompt(), prompt.GetUserPrompt(in))
	if err != nil {
		return "", err
	}
	text, err := prompt.ParseReasoning(raw)
	if err != nil {
		return "", fmt.Errorf("reasoner: %w", err)
	}
	return text, nil
}
