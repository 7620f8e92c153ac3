package ai

import "context"

// Client is a chat-completion style LLM backend.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
