// Package createactivity implements the create_activity action.
package createactivity

import (
	"context"
	"log/slog"
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence"
)

const ReasonMissingConfiguration = "Missing required configuration"

// Config is the typed create_activity node configuration.
type Config struct {
	Type    string
	Title   string
	DueDays int
}

type Action struct {
	config     Config
	activities persistence.ActivityRepository
}

func NewAction(config Config, activities persistence.ActivityRepository) *Action {
	return &Action{config: config, activities: activities}
}

func (a *Action) Execute(ctx context.Context, run *models.RunContext, logger *slog.Logger) models.ActionOutcome {
	if run.Property == nil || a.config.Type == "" || a.config.Title == "" {
		return models.Skipped(ActionType, ReasonMissingConfiguration)
	}

	now := run.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	activity := &models.Activity{
		CompanyID:  run.Property.CompanyID,
		PropertyID: run.Property.ID,
		Type:       a.config.Type,
		Title:      a.config.Title,
		DueDate:    now.AddDate(0, 0, a.config.DueDays),
		Status:     models.ActivityStatusPending,
		CreatedAt:  now,
	}

	if run.Automation != nil {
		activity.CompanyID = run.Automation.CompanyID
		activity.AutomationID = run.Automation.ID
		activity.Description = "Created by automation: " + run.Automation.Name
	}

	err := a.activities.Create(ctx, activity)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create activity", "property_id", run.Property.ID, "error", err)

		return models.Failed(ActionType, err)
	}

	logger.InfoContext(ctx, "Activity created",
		"property_id", run.Property.ID,
		"activity_id", activity.ID,
		"activity_type", activity.Type,
		"due_date", activity.DueDate,
	)

	outcome := models.Success(ActionType)
	outcome.ActivityType = activity.Type
	outcome.ActivityID = activity.ID

	return outcome
}
