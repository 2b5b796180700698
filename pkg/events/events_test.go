package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEvent(t *testing.T) {
	before := time.Now().UTC()
	event := NewBaseEvent(AutomationExecutedEvent, "auto-1", "exec-1")

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, AutomationExecutedEvent, event.Type)
	assert.Equal(t, "auto-1", event.AutomationID)
	assert.Equal(t, "exec-1", event.ExecutionID)
	assert.False(t, event.Timestamp.Before(before))
}

func TestAutomationExecuted_JSON(t *testing.T) {
	actions := []models.ActionOutcome{models.Skipped("frobnicate", "Action type not implemented")}
	event := AutomationExecuted{
		BaseEvent:   NewBaseEvent(AutomationExecutedEvent, "auto-1", "exec-1"),
		TriggerType: "manual",
		Actions:     actions,
		Summary:     models.Summarize(actions),
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded AutomationExecuted
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, AutomationExecutedEvent, decoded.GetType())
	assert.Equal(t, "auto-1", decoded.AutomationID)
	assert.Equal(t, 1, decoded.Summary.Skipped)
	assert.Equal(t, actions, decoded.Actions)
}

func TestEventTypes(t *testing.T) {
	assert.Equal(t, EventType("automation.executed"), AutomationExecuted{}.GetType())
	assert.Equal(t, EventType("automation.failed"), AutomationFailed{}.GetType())
	assert.Equal(t, "dealflow.automation.events", Topic)
}
