package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"
)

type (
	OpenAIConfig struct {
		APIKey  string
		BaseURL string
		Model   string
		Timeout time.Duration
	}

	openAIGenerator struct {
		apiKey     string
		baseURL    string
		model      string
		httpClient *http.Client
	}

	openAIMessage struct {
		Role    string      `json:"role"`
		Content interface{} `json:"content"`
	}

	openAIContentPart struct {
		Type     string          `json:"type"`
		Text     string          `json:"text,omitempty"`
		ImageURL *openAIImageURL `json:"image_url,omitempty"`
	}

	openAIImageURL struct {
		URL string `json:"url"`
	}

	openAIResponseFormat struct {
		Type string `json:"type"`
	}

	openAIRequest struct {
		Model          string                `json:"model"`
		Messages       []openAIMessage       `json:"messages"`
		Temperature    float32               `json:"temperature"`
		ResponseFormat *openAIResponseFormat `json:"response_format,omitempty"`
	}

	openAIResponse struct {
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage *struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
		} `json:"usage"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
)

// NewOpenAIGenerator returns a client for any OpenAI-compatible
// /chat/completions endpoint.
func NewOpenAIGenerator(cfg OpenAIConfig) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key not configured")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenAIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}

	return &openAIGenerator{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *openAIGenerator) Generate(ctx context.Context, req Request) (*Response, error) {
	var messages []openAIMessage
	if req.System != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: req.System})
	}
	if req.Image != nil {
		dataURL := fmt.Sprintf("data:%s;base64,%s", req.Image.MIMEType, base64.StdEncoding.EncodeToString(req.Image.Data))
		messages = append(messages, openAIMessage{Role: "user", Content: []openAIContentPart{
			{Type: "text", Text: req.User},
			{Type: "image_url", ImageURL: &openAIImageURL{URL: dataURL}},
		}})
	} else {
		messages = append(messages, openAIMessage{Role: "user", Content: req.User})
	}

	reqBody := openAIRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
	}
	if req.JSON {
		reqBody.ResponseFormat = &openAIResponseFormat{Type: "json_object"}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("openai: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("openai: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai: API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var parsed openAIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("openai: failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai: API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, ErrEmptyResponse
	}

	result := &Response{Content: content, Model: c.model}
	if parsed.Model != "" {
		result.Model = parsed.Model
	}
	if parsed.Usage != nil {
		result.PromptTokens = intPtr(parsed.Usage.PromptTokens)
		result.CompletionTokens = intPtr(parsed.Usage.CompletionTokens)
	}
	return result, nil
}
