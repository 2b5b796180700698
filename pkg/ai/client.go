// Package ai provides a chat-completion client for OpenAI-compatible APIs.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 100
)

var (
	ErrMissingAPIKey   = errors.New("AI API key not configured")
	ErrEmptyCompletion = errors.New("AI provider returned an empty message")
)

// APIError is returned when the provider answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("AI API request failed with status %d: %s", e.StatusCode, e.Body)
}

// Config holds client configuration. Zero values fall back to the defaults above.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature *float64
	MaxTokens   *int
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if config.Model == "" {
		config.Model = DefaultModel
	}

	if config.Temperature == nil {
		temperature := DefaultTemperature
		config.Temperature = &temperature
	}

	if config.MaxTokens == nil {
		maxTokens := DefaultMaxTokens
		config.MaxTokens = &maxTokens
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger.With("module", "ai_client"),
	}
}

// IsConfigured reports whether an API key is present.
func (c *Client) IsConfigured() bool {
	return c.config.APIKey != ""
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// ChatRequest is a single system+user exchange. Nil overrides use the client defaults.
type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	Model        *string
	Temperature  *float64
	MaxTokens    *int
}

// Complete sends one chat request and returns the trimmed text of the first choice.
// The request is not retried.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if !c.IsConfigured() {
		return "", ErrMissingAPIKey
	}

	completionReq := ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: *c.config.Temperature,
		MaxTokens:   *c.config.MaxTokens,
	}

	if req.Model != nil {
		completionReq.Model = *req.Model
	}

	if req.Temperature != nil {
		completionReq.Temperature = *req.Temperature
	}

	if req.MaxTokens != nil {
		completionReq.MaxTokens = *req.MaxTokens
	}

	if req.SystemPrompt != "" {
		completionReq.Messages = append(completionReq.Messages, Message{Role: "system", Content: req.SystemPrompt})
	}

	completionReq.Messages = append(completionReq.Messages, Message{Role: "user", Content: req.UserPrompt})

	c.logger.DebugContext(ctx, "AI chat request",
		"model", completionReq.Model,
		"temperature", completionReq.Temperature,
		"max_tokens", completionReq.MaxTokens,
	)

	resp, err := c.CreateChatCompletion(ctx, completionReq)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}

	c.logger.DebugContext(ctx, "AI chat response",
		"model", resp.Model,
		"total_tokens", resp.Usage.TotalTokens,
	)

	return content, nil
}

// CreateChatCompletion posts a raw request to the chat completions endpoint.
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			c.logger.ErrorContext(ctx, "failed to close response body", "error", err)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var chatResp ChatCompletionResponse

	err = json.Unmarshal(respBody, &chatResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &chatResp, nil
}
