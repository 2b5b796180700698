// Package sendsms implements the send_sms action.
package sendsms

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dealflow/dealflow/pkg/ai"
	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/sms"
	"github.com/dealflow/dealflow/pkg/template"
)

const (
	ReasonNoPhone = "No property or phone number"

	// previewLength is how much of the sent message the outcome keeps.
	previewLength = 50
)

var ErrGeneratorNotConfigured = errors.New("AI message generator not configured")

// MessageGenerator writes a message from a chat prompt.
type MessageGenerator interface {
	Complete(ctx context.Context, request ai.ChatRequest) (string, error)
}

// Config is the typed send_sms node configuration.
type Config struct {
	Message        string
	AIAutopilot    bool
	AIInstructions string
}

type Action struct {
	config    Config
	sender    sms.Sender
	generator MessageGenerator
}

func NewAction(config Config, sender sms.Sender, generator MessageGenerator) *Action {
	return &Action{config: config, sender: sender, generator: generator}
}

func (a *Action) Execute(ctx context.Context, run *models.RunContext, logger *slog.Logger) models.ActionOutcome {
	property := run.Property
	if property == nil || strings.TrimSpace(property.SellerAgentPhone) == "" {
		return models.Skipped(ActionType, ReasonNoPhone)
	}

	phone := property.SellerAgentPhone

	message, err := a.compose(ctx, property)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to compose SMS", "error", err, "ai_autopilot", a.config.AIAutopilot)

		return failed(phone, err)
	}

	err = a.sender.Send(ctx, sms.Request{To: phone, Message: message, PropertyID: property.ID})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to send SMS", "error", err, "property_id", property.ID)

		return failed(phone, err)
	}

	logger.InfoContext(ctx, "SMS sent", "property_id", property.ID, "ai_generated", a.config.AIAutopilot)

	aiGenerated := a.config.AIAutopilot
	outcome := models.Success(ActionType)
	outcome.Phone = phone
	outcome.Message = preview(message)
	outcome.AIGenerated = &aiGenerated

	return outcome
}

func (a *Action) compose(ctx context.Context, property *models.Property) (string, error) {
	if !a.config.AIAutopilot {
		return template.Render(a.config.Message, property), nil
	}

	if a.generator == nil {
		return "", ErrGeneratorNotConfigured
	}

	return a.generator.Complete(ctx, ai.ChatRequest{
		SystemPrompt: SystemPrompt(a.config.AIInstructions),
		UserPrompt:   PropertyContext(property, a.config.AIInstructions),
	})
}

func failed(phone string, err error) models.ActionOutcome {
	outcome := models.Failed(ActionType, err)
	outcome.Phone = phone

	return outcome
}

func preview(message string) string {
	runes := []rune(message)
	if len(runes) <= previewLength {
		return message
	}

	return string(runes[:previewLength]) + "..."
}
