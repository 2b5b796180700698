// Package updateworkflow implements the update_workflow action.
package updateworkflow

import (
	"context"
	"log/slog"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence"
)

const ReasonMissingStateOrProperty = "No property or new state configured"

// Config is the typed update_workflow node configuration.
type Config struct {
	NewState string
}

type Action struct {
	config     Config
	properties persistence.PropertyRepository
}

func NewAction(config Config, properties persistence.PropertyRepository) *Action {
	return &Action{config: config, properties: properties}
}

func (a *Action) Execute(ctx context.Context, run *models.RunContext, logger *slog.Logger) models.ActionOutcome {
	if run.Property == nil || a.config.NewState == "" {
		return models.Skipped(ActionType, ReasonMissingStateOrProperty)
	}

	err := a.properties.UpdateWorkflowState(ctx, run.Property.ID, models.WorkflowState(a.config.NewState))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update workflow state",
			"property_id", run.Property.ID,
			"new_state", a.config.NewState,
			"error", err,
		)

		return models.Failed(ActionType, err)
	}

	logger.InfoContext(ctx, "Workflow state updated",
		"property_id", run.Property.ID,
		"previous_state", run.Property.WorkflowState,
		"new_state", a.config.NewState,
	)

	outcome := models.Success(ActionType)
	outcome.NewState = a.config.NewState

	return outcome
}
