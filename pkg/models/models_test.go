package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomation_ActionNodes_KeepsStoredOrder(t *testing.T) {
	raw := `{
		"nodes": [
			{"id": "t1", "type": "trigger", "data": {"label": "property_added"}},
			{"id": "a1", "type": "action", "data": {"label": "send_sms", "config": {"message": "hi"}}},
			{"id": "c1", "type": "condition", "data": {"label": "price_below"}},
			{"id": "a2", "type": "action", "data": {"label": "create_activity"}}
		],
		"edges": [{"id": "e1", "source": "t1", "target": "a2"}]
	}`

	var flow FlowData
	require.NoError(t, json.Unmarshal([]byte(raw), &flow))

	automation := &Automation{ID: "auto-1", FlowData: &flow}
	actions := automation.ActionNodes()

	require.Len(t, actions, 2)
	assert.Equal(t, "a1", actions[0].ID)
	assert.Equal(t, "a2", actions[1].ID)
	assert.Equal(t, "hi", actions[0].ConfigOrEmpty()["message"])
	assert.NotNil(t, actions[1].ConfigOrEmpty())
}

func TestAutomation_Nodes_MissingFlowData(t *testing.T) {
	tests := []struct {
		name       string
		automation *Automation
	}{
		{name: "nil flow data", automation: &Automation{}},
		{name: "nil nodes", automation: &Automation{FlowData: &FlowData{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.automation.Nodes())
			assert.Empty(t, tt.automation.ActionNodes())
		})
	}
}

func TestSummarize(t *testing.T) {
	actions := []ActionOutcome{
		Success("send_sms"),
		Skipped("update_workflow", "No property or new state configured"),
		{Type: "create_activity", Status: OutcomeStatusError, Error: "boom"},
		Success("create_activity"),
	}

	summary := Summarize(actions)

	assert.Equal(t, Summary{Total: 4, Successful: 2, Failed: 1, Skipped: 1}, summary)
	assert.Equal(t, summary.Total, summary.Successful+summary.Failed+summary.Skipped)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestProperty_Sqft_FallsBackToLivingArea(t *testing.T) {
	primary, secondary := 1800, 1650

	assert.Equal(t, &primary, (&Property{SquareFeet: &primary, LivingAreaSqft: &secondary}).Sqft())
	assert.Equal(t, &secondary, (&Property{LivingAreaSqft: &secondary}).Sqft())
	assert.Nil(t, (&Property{}).Sqft())
}

func TestActionOutcome_JSONOmitsUnsetFields(t *testing.T) {
	data, err := json.Marshal(Skipped("frobnicate", "Action type not implemented"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"type":"frobnicate","status":"skipped","reason":"Action type not implemented"}`, string(data))
}

func TestRunRequest_HasProperty(t *testing.T) {
	empty := ""
	id := "prop-1"

	assert.False(t, RunRequest{}.HasProperty())
	assert.False(t, RunRequest{PropertyID: &empty}.HasProperty())
	assert.True(t, RunRequest{PropertyID: &id}.HasProperty())
}
