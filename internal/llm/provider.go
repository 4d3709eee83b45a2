// Package llm abstracts the chat-completion API the agents are built on.
package llm

import "context"

// Provider is a chat-completion backend capable of tool calling.
type Provider interface {
	// Name returns the provider identifier, e.g. "openai" or "azure".
	Name() string

	// Complete sends a completion request and returns the model's reply.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
