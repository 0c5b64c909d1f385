// Package llm talks to hosted chat-completion models.
package llm

import (
	"context"
	"errors"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var ErrEmptyResponse = errors.New("model returned an empty response")

type (
	Image struct {
		MIMEType string
		Data     []byte
	}

	Request struct {
		System      string
		User        string
		Temperature float32
		// JSON asks the provider to constrain output to a JSON object.
		JSON  bool
		Image *Image
	}

	Response struct {
		Content          string
		Model            string
		PromptTokens     *int
		CompletionTokens *int
	}

	Generator interface {
		Generate(ctx context.Context, req Request) (*Response, error)
	}
)

func intPtr(v int) *int {
	return &v
}
