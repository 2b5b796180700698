package updateworkflow

import (
	"context"
	"strings"

	"github.com/dealflow/dealflow/pkg/actions"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/dealflow/dealflow/pkg/protocol"
)

const ActionType = "update_workflow"

// ActionFactory is the factory for creating update_workflow actions.
type ActionFactory struct {
	properties persistence.PropertyRepository
}

func NewActionFactory(properties persistence.PropertyRepository) *ActionFactory {
	return &ActionFactory{properties: properties}
}

func (*ActionFactory) ID() string {
	return ActionType
}

func (*ActionFactory) Name() string {
	return "Update Workflow"
}

func (*ActionFactory) Description() string {
	return "Moves the property to another workflow state."
}

func (f *ActionFactory) Create(_ context.Context, config map[string]any) (protocol.Action, error) {
	return NewAction(Config{
		NewState: strings.TrimSpace(actions.String(config, "new_state")),
	}, f.properties), nil
}

func (*ActionFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"new_state": map[string]any{
				"type":        "string",
				"description": "Workflow state to assign to the property",
				"examples":    []string{"contacted", "offer_sent", "under_contract"},
			},
		},
		"required": []string{"new_state"},
	}
}
