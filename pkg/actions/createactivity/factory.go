package createactivity

import (
	"context"
	"math"
	"strings"

	"github.com/dealflow/dealflow/pkg/actions"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/dealflow/dealflow/pkg/protocol"
)

const (
	ActionType     = "create_activity"
	DefaultDueDays = 1

	// MaxDueDays bounds due_days in either direction.
	MaxDueDays = 36500
)

// ActionFactory is the factory for creating create_activity actions.
type ActionFactory struct {
	activities persistence.ActivityRepository
}

func NewActionFactory(activities persistence.ActivityRepository) *ActionFactory {
	return &ActionFactory{activities: activities}
}

func (*ActionFactory) ID() string {
	return ActionType
}

func (*ActionFactory) Name() string {
	return "Create Activity"
}

func (*ActionFactory) Description() string {
	return "Adds a pending task to the property, due a number of days after the run."
}

// Create decodes the node configuration. A missing, non-numeric or out of
// range due_days falls back to DefaultDueDays.
func (f *ActionFactory) Create(_ context.Context, config map[string]any) (protocol.Action, error) {
	dueDays := DefaultDueDays
	if days, ok := actions.Number(config, "due_days"); ok && math.Abs(days) <= MaxDueDays {
		dueDays = int(days)
	}

	return NewAction(Config{
		Type:    strings.TrimSpace(actions.String(config, "type")),
		Title:   strings.TrimSpace(actions.String(config, "title")),
		DueDays: dueDays,
	}, f.activities), nil
}

func (*ActionFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type": map[string]any{
				"type":        "string",
				"description": "Activity type",
				"examples":    []string{"call", "follow_up", "site_visit"},
			},
			"title": map[string]any{
				"type":        "string",
				"description": "Activity title",
				"examples":    []string{"Call listing agent about counter offer"},
			},
			"due_days": map[string]any{
				"type":        "number",
				"description": "Days from the run until the activity is due",
				"default":     DefaultDueDays,
				"minimum":     -MaxDueDays,
				"maximum":     MaxDueDays,
			},
		},
		"required": []string{"type", "title"},
	}
}
