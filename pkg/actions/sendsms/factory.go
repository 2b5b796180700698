package sendsms

import (
	"context"

	"github.com/dealflow/dealflow/pkg/actions"
	"github.com/dealflow/dealflow/pkg/protocol"
	"github.com/dealflow/dealflow/pkg/sms"
)

const ActionType = "send_sms"

// ActionFactory is the factory for creating send_sms actions.
type ActionFactory struct {
	sender    sms.Sender
	generator MessageGenerator
}

// NewActionFactory creates a factory. generator may be nil, in which case
// auto-pilot actions fail with an error outcome.
func NewActionFactory(sender sms.Sender, generator MessageGenerator) *ActionFactory {
	return &ActionFactory{sender: sender, generator: generator}
}

func (*ActionFactory) ID() string {
	return ActionType
}

func (*ActionFactory) Name() string {
	return "Send SMS"
}

func (*ActionFactory) Description() string {
	return "Texts the seller agent of the property, from a template or from an AI-written message."
}

// Create decodes the node configuration. Fields of the wrong type read as unset.
func (f *ActionFactory) Create(_ context.Context, config map[string]any) (protocol.Action, error) {
	return NewAction(Config{
		Message:        actions.String(config, "message"),
		AIAutopilot:    actions.Bool(config, "ai_autopilot"),
		AIInstructions: actions.String(config, "ai_instructions"),
	}, f.sender, f.generator), nil
}

func (*ActionFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{
				"type": "string",
				"description": "Message template used when ai_autopilot is off. Supports {{AGENT_NAME}}, {{ADDRESS}}, " +
					"{{PRICE}}, {{BEDS}}, {{BATHS}} and {{SQFT}}.",
				"examples": []string{
					"Hi {{AGENT_NAME}}, is {{ADDRESS}} still available at {{PRICE}}?",
				},
			},
			"ai_autopilot": map[string]any{
				"type":        "boolean",
				"description": "Let the AI provider write the message from the property details",
				"default":     false,
			},
			"ai_instructions": map[string]any{
				"type":        "string",
				"description": "Extra instructions for the AI provider",
				"examples":    []string{"Mention we can close in 14 days with cash."},
			},
		},
	}
}
