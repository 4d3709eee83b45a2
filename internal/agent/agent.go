// Package agent implements a chat agent: an LLM conversation with a fixed
// instruction set and a set of callable tools. The agent loops until the
// model stops requesting tool calls or the turn budget runs out.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ccg-demos/timesleuth/internal/llm"
)

// DefaultMaxTurns bounds the completion/tool-execution loop.
const DefaultMaxTurns = 8

// Handler executes one tool invocation. args is the raw JSON argument
// object produced by the model. The returned string is fed back to the
// model as the tool result.
type Handler func(ctx context.Context, args json.RawMessage) (string, error)

// Tool pairs a tool definition with its handler.
type Tool struct {
	Definition llm.ToolDefinition
	Handler    Handler
}

// Agent is a named, instructed conversation over an LLM provider.
type Agent struct {
	name         string
	instructions string
	provider     llm.Provider
	model        string
	tools        []Tool
	maxTurns     int
}

// Result is the outcome of one agent run.
type Result struct {
	Text         string
	InputTokens  int
	OutputTokens int
	ToolCalls    int
}

// New creates an agent with the given identity and tools.
func New(name, instructions string, provider llm.Provider, model string, tools ...Tool) *Agent {
	return &Agent{
		name:         name,
		instructions: instructions,
		provider:     provider,
		model:        model,
		tools:        tools,
		maxTurns:     DefaultMaxTurns,
	}
}

// Name returns the agent's display name.
func (a *Agent) Name() string { return a.name }

// Run sends prompt to the model and drives the tool-calling loop to a
// final text answer.
func (a *Agent) Run(ctx context.Context, prompt string) (*Result, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: a.instructions},
		{Role: llm.RoleUser, Content: prompt},
	}

	var defs []llm.ToolDefinition
	for _, t := range a.tools {
		defs = append(defs, t.Definition)
	}

	result := &Result{}
	for turn := 0; turn < a.maxTurns; turn++ {
		resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
			Model:    a.model,
			Messages: messages,
			Tools:    defs,
		})
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", a.name, err)
		}
		result.InputTokens += resp.InputTokens
		result.OutputTokens += resp.OutputTokens

		if len(resp.ToolCalls) == 0 {
			result.Text = resp.Content
			return result, nil
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			output := a.execute(ctx, call)
			result.ToolCalls++
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    output,
				ToolCallID: call.ID,
			})
		}
	}

	return nil, fmt.Errorf("agent %s: no final answer after %d turns", a.name, a.maxTurns)
}

// execute runs the named tool. Errors are reported back to the model as
// the tool result so it can recover or explain the failure.
func (a *Agent) execute(ctx context.Context, call llm.ToolCall) string {
	for _, t := range a.tools {
		if t.Definition.Name != call.Name {
			continue
		}
		out, err := t.Handler(ctx, json.RawMessage(call.Arguments))
		if err != nil {
			return fmt.Sprintf(`{"error": %q}`, err.Error())
		}
		return out
	}
	return fmt.Sprintf(`{"error": "unknown tool %s"}`, call.Name)
}
