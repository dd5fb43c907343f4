package completion

import (
	"context"
	"fmt"

	"github.com/nlpodyssey/openai-agents-go/agents"
)

// DefaultInstructions are used when no agent system prompt file is configured
const DefaultInstructions = "You are a helpful assistant."

// AgentCompleter runs each prompt through a single openai-agents-go agent
type AgentCompleter struct {
	agent        *agents.Agent
	instructions string
}

// NewAgentCompleter creates an agent-backed completer for the given model
func NewAgentCompleter(model, instructions string) *AgentCompleter {
	agent := agents.New("transcript-query-agent").
		WithInstructions(instructions).
		WithModel(model)

	return &AgentCompleter{agent: agent, instructions: instructions}
}

// Agent returns the underlying openai-agents-go instance
func (a *AgentCompleter) Agent() *agents.Agent {
	return a.agent
}

// Instructions returns the system instructions the agent was created with
func (a *AgentCompleter) Instructions() string {
	return a.instructions
}

// Complete runs the agent on the prompt and returns its final output
func (a *AgentCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := agents.Run(ctx, a.agent, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: agent execution failed: %w", ErrCompletion, err)
	}

	if result == nil || result.FinalOutput == nil {
		return "", fmt.Errorf("%w: agent returned no output", ErrCompletion)
	}

	return fmt.Sprintf("%v", result.FinalOutput), nil
}
