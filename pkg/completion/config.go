package completion

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/akasharts888/audio-transcriptor/pkg/utils"
)

const (
	ProviderChat  = "chat"  // OpenAI-compatible chat completions (Groq by default)
	ProviderAgent = "agent" // openai-agents-go runner against OpenAI

	DefaultBaseURL = "https://api.groq.com/openai/v1"
)

// NewFromConfig builds the completer selected by COMPLETION_PROVIDER.
// Missing model or credential settings are reported here, at startup.
func NewFromConfig(cfg *utils.Config) (Completer, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.GetWithDefault("COMPLETION_PROVIDER", ProviderChat)))

	switch provider {
	case ProviderChat:
		if err := cfg.Require("GROQ_MODEL", "GROQ_API"); err != nil {
			return nil, err
		}

		baseURL := cfg.GetWithDefault("COMPLETION_BASE_URL", DefaultBaseURL)
		log.Printf("[COMPLETION]: Using chat completions at %s with model %s", baseURL, cfg.Get("GROQ_MODEL"))
		return NewChatCompleter(cfg.Get("GROQ_API"), cfg.Get("GROQ_MODEL"), baseURL), nil

	case ProviderAgent:
		if err := cfg.Require("MODEL", "OPENAI_API_KEY"); err != nil {
			return nil, err
		}

		// openai-agents-go reads its key from the process environment
		if err := os.Setenv("OPENAI_API_KEY", cfg.Get("OPENAI_API_KEY")); err != nil {
			return nil, fmt.Errorf("failed to export OPENAI_API_KEY: %w", err)
		}

		instructions := utils.LoadPromptWithFallback(cfg.Get("AGENT_SYSPROMPT_PATH"), DefaultInstructions)
		log.Printf("[COMPLETION]: Using agent runner with model %s", cfg.Get("MODEL"))
		return NewAgentCompleter(cfg.Get("MODEL"), instructions), nil

	default:
		return nil, fmt.Errorf("unknown COMPLETION_PROVIDER %q (expected %q or %q)", provider, ProviderChat, ProviderAgent)
	}
}
