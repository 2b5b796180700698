package registry

import (
	"context"
	"fmt"

	"github.com/dealflow/dealflow/pkg/models"
)

// ReasonNotImplemented is the skip reason for node labels without a registered factory.
const ReasonNotImplemented = "Action type not implemented"

// Dispatch produces exactly one outcome for an action node. Unknown labels are
// skipped; configuration errors and panics inside the action become error outcomes.
func (r *Registry) Dispatch(ctx context.Context, node *models.Node, run *models.RunContext) (outcome models.ActionOutcome) {
	label := node.Data.Label
	logger := r.logger.With("node_id", node.ID, "action_type", label)

	defer func() {
		if rec := recover(); rec != nil {
			logger.ErrorContext(ctx, "Action panicked", "panic", rec)

			outcome = models.Failed(label, fmt.Errorf("action panicked: %v", rec))
		}

		outcome.Type = label
		outcome.NodeID = node.ID
	}()

	factory, ok := r.factory(label)
	if !ok {
		logger.InfoContext(ctx, "Skipping unknown action type")

		return models.Skipped(label, ReasonNotImplemented)
	}

	action, err := factory.Create(ctx, node.ConfigOrEmpty())
	if err != nil {
		logger.ErrorContext(ctx, "Invalid action configuration", "error", err)

		return models.Failed(label, fmt.Errorf("invalid configuration: %w", err))
	}

	return action.Execute(ctx, run, logger)
}
