package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// FunctionSender posts SMS requests to an HTTP function that fronts the SMS provider.
type FunctionSender struct {
	url        string
	serviceKey string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewFunctionSender(url, serviceKey string, httpClient *http.Client, logger *slog.Logger) *FunctionSender {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &FunctionSender{
		url:        url,
		serviceKey: serviceKey,
		httpClient: httpClient,
		logger:     logger.With("module", "sms_function_sender"),
	}
}

type functionResponse struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

// Send posts {to, message, propertyId}. A non-2xx status or a body of
// {"success": false} is reported as a *SendError.
func (s *FunctionSender) Send(ctx context.Context, request Request) error {
	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal SMS request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	if s.serviceKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.serviceKey)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call SMS function: %w", err)
	}

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to close response body", "error", err)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read SMS function response: %w", err)
	}

	var parsed functionResponse

	// Non-JSON bodies are fine as long as the status is 2xx.
	_ = json.Unmarshal(respBody, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := parsed.Error
		if message == "" {
			message = strings.TrimSpace(string(respBody))
		}

		return &SendError{StatusCode: resp.StatusCode, Message: message}
	}

	if parsed.Success != nil && !*parsed.Success {
		message := parsed.Error
		if message == "" {
			message = "SMS function reported failure"
		}

		return &SendError{Message: message}
	}

	s.logger.InfoContext(ctx, "SMS sent", "to", request.To, "property_id", request.PropertyID)

	return nil
}
