package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIGenerateJSONMode(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "gpt-4o-mini-2024-07-18",
			"choices": [{"message": {"role": "assistant", "content": " {\"recipes\": []} "}}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 48}
		}`))
	}))
	defer srv.Close()

	gen, err := NewOpenAIGenerator(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	resp, err := gen.Generate(context.Background(), Request{
		System:      "only JSON",
		User:        "make dinner",
		Temperature: 0.8,
		JSON:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"recipes": []}`, resp.Content)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)
	require.NotNil(t, resp.PromptTokens)
	assert.Equal(t, 120, *resp.PromptTokens)
	assert.Equal(t, 48, *resp.CompletionTokens)

	assert.Equal(t, map[string]interface{}{"type": "json_object"}, captured["response_format"])
	assert.InDelta(t, 0.8, captured["temperature"], 0.001)
	messages := captured["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	assert.Equal(t, "make dinner", messages[1].(map[string]interface{})["content"])
}

func TestOpenAIGenerateSendsImageAsDataURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw struct {
			Messages []struct {
				Content []openAIContentPart `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		require.Len(t, raw.Messages, 1)
		require.Len(t, raw.Messages[0].Content, 2)
		assert.Equal(t, "image_url", raw.Messages[0].Content[1].Type)
		assert.Equal(t, "data:image/png;base64,AQID", raw.Messages[0].Content[1].ImageURL.URL)
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "{\"ingredients\": []}"}}]}`))
	}))
	defer srv.Close()

	gen, err := NewOpenAIGenerator(OpenAIConfig{APIKey: "k", BaseURL: srv.URL, Model: "vision"})
	require.NoError(t, err)

	resp, err := gen.Generate(context.Background(), Request{
		User:  "what is in the fridge",
		JSON:  true,
		Image: &Image{MIMEType: "image/png", Data: []byte{1, 2, 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, "vision", resp.Model)
	assert.Nil(t, resp.PromptTokens)
}

func TestOpenAIGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		target error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error": {"message": "boom"}}`},
		{name: "no choices", status: http.StatusOK, body: `{"choices": []}`, target: ErrEmptyResponse},
		{name: "empty content", status: http.StatusOK, body: `{"choices": [{"message": {"content": "  "}}]}`, target: ErrEmptyResponse},
		{name: "invalid json", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			gen, err := NewOpenAIGenerator(OpenAIConfig{APIKey: "k", BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = gen.Generate(context.Background(), Request{User: "x"})
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: "carrier-pigeon"})
	assert.Error(t, err)

	_, err = New(context.Background(), Config{Provider: ProviderOpenAI})
	assert.Error(t, err, "missing API key")
}
