package registry

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAction struct {
	execute func(run *models.RunContext) models.ActionOutcome
}

func (a *stubAction) Execute(_ context.Context, run *models.RunContext, _ *slog.Logger) models.ActionOutcome {
	return a.execute(run)
}

type stubFactory struct {
	id        string
	createErr error
	execute   func(run *models.RunContext) models.ActionOutcome
	configs   []map[string]any
}

func (f *stubFactory) Create(_ context.Context, config map[string]any) (protocol.Action, error) {
	f.configs = append(f.configs, config)

	if f.createErr != nil {
		return nil, f.createErr
	}

	return &stubAction{execute: f.execute}, nil
}

func (f *stubFactory) ID() string             { return f.id }
func (f *stubFactory) Name() string           { return f.id }
func (f *stubFactory) Description() string    { return "stub " + f.id }
func (f *stubFactory) Schema() map[string]any { return map[string]any{"type": "object"} }

func actionNode(id, label string, config map[string]any) *models.Node {
	return &models.Node{ID: id, Type: models.NodeTypeAction, Data: models.NodeData{Label: label, Config: config}}
}

func TestRegistry_GetAvailableActions_Sorted(t *testing.T) {
	registry := NewRegistry(slog.Default())
	registry.RegisterAction(&stubFactory{id: "update_workflow"})
	registry.RegisterAction(&stubFactory{id: "create_activity"})
	registry.RegisterAction(&stubFactory{id: "send_sms"})

	ids := make([]string, 0)
	for _, factory := range registry.GetAvailableActions() {
		ids = append(ids, factory.ID())
	}

	assert.Equal(t, []string{"create_activity", "send_sms", "update_workflow"}, ids)
	assert.True(t, registry.IsActionRegistered("send_sms"))
	assert.False(t, registry.IsActionRegistered("frobnicate"))
}

func TestRegistry_CreateAction_Unregistered(t *testing.T) {
	registry := NewRegistry(slog.Default())

	_, err := registry.CreateAction(t.Context(), "frobnicate", nil)
	assert.ErrorContains(t, err, "not registered")
}

func TestDispatch_UnknownLabelIsSkipped(t *testing.T) {
	registry := NewRegistry(slog.Default())

	outcome := registry.Dispatch(t.Context(), actionNode("n1", "frobnicate", nil), &models.RunContext{})

	assert.Equal(t, models.ActionOutcome{
		Type:   "frobnicate",
		Status: models.OutcomeStatusSkipped,
		NodeID: "n1",
		Reason: ReasonNotImplemented,
	}, outcome)
}

func TestDispatch_PassesEmptyConfigWhenAbsent(t *testing.T) {
	factory := &stubFactory{id: "noop", execute: func(*models.RunContext) models.ActionOutcome {
		return models.Success("")
	}}

	registry := NewRegistry(slog.Default())
	registry.RegisterAction(factory)

	outcome := registry.Dispatch(t.Context(), actionNode("n1", "noop", nil), &models.RunContext{})

	assert.Equal(t, models.OutcomeStatusSuccess, outcome.Status)
	assert.Equal(t, "noop", outcome.Type)
	require.Len(t, factory.configs, 1)
	assert.NotNil(t, factory.configs[0])
}

func TestDispatch_CreateErrorBecomesErrorOutcome(t *testing.T) {
	registry := NewRegistry(slog.Default())
	registry.RegisterAction(&stubFactory{id: "broken", createErr: errors.New("bad config")})

	outcome := registry.Dispatch(t.Context(), actionNode("n1", "broken", map[string]any{}), &models.RunContext{})

	assert.Equal(t, models.OutcomeStatusError, outcome.Status)
	assert.Contains(t, outcome.Error, "bad config")
	assert.Equal(t, "n1", outcome.NodeID)
}

func TestDispatch_PanicBecomesErrorOutcome(t *testing.T) {
	registry := NewRegistry(slog.Default())
	registry.RegisterAction(&stubFactory{id: "explode", execute: func(*models.RunContext) models.ActionOutcome {
		panic("kaboom")
	}})

	outcome := registry.Dispatch(t.Context(), actionNode("n1", "explode", nil), &models.RunContext{})

	assert.Equal(t, models.OutcomeStatusError, outcome.Status)
	assert.Equal(t, "explode", outcome.Type)
	assert.Contains(t, outcome.Error, "kaboom")
}

func TestDispatch_ForwardsRunContext(t *testing.T) {
	var seen *models.RunContext

	registry := NewRegistry(slog.Default())
	registry.RegisterAction(&stubFactory{id: "spy", execute: func(run *models.RunContext) models.ActionOutcome {
		seen = run

		return models.Skipped("spy", "nothing to do")
	}})

	run := &models.RunContext{ExecutionID: "exec-1"}
	outcome := registry.Dispatch(t.Context(), actionNode("n1", "spy", nil), run)

	assert.Same(t, run, seen)
	assert.Equal(t, "nothing to do", outcome.Reason)
}

func TestRegistry_HealthCheck(t *testing.T) {
	registry := NewRegistry(slog.Default())

	_, ok := registry.HealthCheck()
	assert.False(t, ok)

	registry.RegisterAction(&stubFactory{id: "send_sms"})

	message, ok := registry.HealthCheck()
	assert.True(t, ok)
	assert.Equal(t, "1 actions registered", message)
}
