// Package sms delivers outbound text messages to seller agents.
package sms

import (
	"context"
	"fmt"
)

// Request is the payload handed to the SMS collaborator.
type Request struct {
	To         string `json:"to"`
	Message    string `json:"message"`
	PropertyID string `json:"propertyId,omitempty"`
}

// Sender delivers one SMS. A nil error means the collaborator accepted the message.
type Sender interface {
	Send(ctx context.Context, request Request) error
}

// SendError is returned when the collaborator explicitly rejects a message.
type SendError struct {
	StatusCode int
	Message    string
}

func (e *SendError) Error() string {
	if e.StatusCode == 0 {
		return "failed to send SMS: " + e.Message
	}

	return fmt.Sprintf("failed to send SMS (status %d): %s", e.StatusCode, e.Message)
}
