package llm

import (
	"context"
	"fmt"
)

type Config struct {
	Provider string
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
}

// New builds the generator for cfg.Provider, defaulting to Gemini.
func New(ctx context.Context, cfg Config) (Generator, error) {
	switch cfg.Provider {
	case "", ProviderGemini:
		return NewGeminiGenerator(ctx, cfg.Gemini)
	case ProviderOpenAI:
		return NewOpenAIGenerator(cfg.OpenAI)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
