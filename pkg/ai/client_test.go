package ai

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{APIKey: "test-key"})

	assert.Equal(t, DefaultBaseURL, client.config.BaseURL)
	assert.Equal(t, DefaultModel, client.config.Model)
	assert.InDelta(t, DefaultTemperature, *client.config.Temperature, 0.0001)
	assert.Equal(t, DefaultMaxTokens, *client.config.MaxTokens)
	assert.True(t, client.IsConfigured())
	assert.False(t, NewClient(Config{}).IsConfigured())
}

func TestClient_Complete(t *testing.T) {
	var received ChatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  Hi Dana, is 12 Elm St still available?  "}}],
			"usage": {"total_tokens": 42}
		}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL + "/"})

	content, err := client.Complete(t.Context(), ChatRequest{SystemPrompt: "be brief", UserPrompt: "property details"})
	require.NoError(t, err)
	assert.Equal(t, "Hi Dana, is 12 Elm St still available?", content)

	assert.Equal(t, DefaultModel, received.Model)
	assert.Equal(t, DefaultMaxTokens, received.MaxTokens)
	require.Len(t, received.Messages, 2)
	assert.Equal(t, Message{Role: "system", Content: "be brief"}, received.Messages[0])
	assert.Equal(t, Message{Role: "user", Content: "property details"}, received.Messages[1])
}

func TestClient_Complete_Overrides(t *testing.T) {
	var received ChatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "ok"}}]}`))
	}))
	defer server.Close()

	model := "gpt-4o"
	temperature := 0.1
	maxTokens := 50

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	_, err := client.Complete(t.Context(), ChatRequest{UserPrompt: "u", Model: &model, Temperature: &temperature, MaxTokens: &maxTokens})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", received.Model)
	assert.InDelta(t, 0.1, received.Temperature, 0.0001)
	assert.Equal(t, 50, received.MaxTokens)
	require.Len(t, received.Messages, 1)
}

func TestClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		checkFn func(t *testing.T, err error)
	}{
		{
			name:   "non-2xx status",
			status: http.StatusTooManyRequests,
			body:   `{"error": {"message": "rate limited"}}`,
			checkFn: func(t *testing.T, err error) {
				t.Helper()

				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
				assert.Contains(t, err.Error(), "rate limited")
			},
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"choices": []}`,
			checkFn: func(t *testing.T, err error) {
				t.Helper()
				assert.ErrorIs(t, err, ErrEmptyCompletion)
			},
		},
		{
			name:   "blank content",
			status: http.StatusOK,
			body:   `{"choices": [{"message": {"role": "assistant", "content": "   "}}]}`,
			checkFn: func(t *testing.T, err error) {
				t.Helper()
				assert.ErrorIs(t, err, ErrEmptyCompletion)
			},
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `not json`,
			checkFn: func(t *testing.T, err error) {
				t.Helper()
				assert.ErrorContains(t, err, "failed to unmarshal response")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(Config{APIKey: "k", BaseURL: server.URL})

			_, err := client.Complete(t.Context(), ChatRequest{UserPrompt: "u"})
			require.Error(t, err)
			tt.checkFn(t, err)
		})
	}
}

func TestClient_Complete_MissingAPIKey(t *testing.T) {
	called := false

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := NewClient(Config{BaseURL: server.URL}).Complete(t.Context(), ChatRequest{UserPrompt: "u"})

	assert.True(t, errors.Is(err, ErrMissingAPIKey))
	assert.False(t, called)
}
