// Package protocol defines the interfaces and contracts for pluggable actions and triggers.
package protocol

import (
	"context"
	"log/slog"

	"github.com/dealflow/dealflow/pkg/models"
)

// Action executes one action node of an automation run.
//
// Execute never returns an error: every failure is reported through the
// returned outcome so that one action cannot abort the rest of the run.
type Action interface {
	Execute(ctx context.Context, run *models.RunContext, logger *slog.Logger) models.ActionOutcome
}

// ActionFactory creates action instances and provides metadata about the action type.
type ActionFactory interface {
	// Create decodes the node configuration into a ready-to-run action.
	Create(ctx context.Context, config map[string]any) (Action, error)

	// ID returns the node label this factory handles, e.g. "send_sms".
	ID() string

	// Name returns the human-readable name for this action type
	Name() string

	// Description returns a description of what this action does
	Description() string

	// Schema returns the JSON schema for configuring this action
	Schema() map[string]any
}
