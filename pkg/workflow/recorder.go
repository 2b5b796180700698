package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/dealflow/dealflow/pkg/eventbus"
	"github.com/dealflow/dealflow/pkg/events"
	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence"
)

// Recorder performs the post-run writes. Every step is best effort: failures
// are logged and never change the run result.
type Recorder struct {
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
	logger      *slog.Logger
}

// NewRecorder creates a recorder. publisher may be nil.
func NewRecorder(p persistence.Persistence, publisher eventbus.EventPublisher, logger *slog.Logger) *Recorder {
	return &Recorder{persistence: p, publisher: publisher, logger: logger}
}

// Completed writes the audit log entry, bumps the counters and publishes the run event.
func (r *Recorder) Completed(ctx context.Context, run *models.RunContext, request models.RunRequest, result *models.RunResult, duration time.Duration) {
	automation := run.Automation
	logger := r.logger.With("automation_id", automation.ID, "execution_id", run.ExecutionID)

	entry := &models.AutomationLog{
		AutomationID:    automation.ID,
		CompanyID:       automation.CompanyID,
		TriggerType:     request.TriggerType,
		PropertyID:      requestedProperty(request),
		Status:          models.AutomationLogStatusSuccess,
		ActionsExecuted: result.Actions,
	}

	err := r.persistence.AutomationLogRepository().Create(ctx, entry)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to write automation log", "error", err)
	}

	err = r.persistence.AutomationRepository().UpdateCounters(ctx, automation.ID,
		automation.TriggerCount+1, automation.SuccessCount+1)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update automation counters", "error", err)
	}

	if r.publisher == nil {
		return
	}

	event := events.AutomationExecuted{
		BaseEvent:   events.NewBaseEvent(events.AutomationExecutedEvent, automation.ID, run.ExecutionID),
		CompanyID:   automation.CompanyID,
		TriggerType: request.TriggerType,
		Actions:     result.Actions,
		Summary:     result.Summary,
		Duration:    duration,
	}

	if request.PropertyID != nil {
		event.PropertyID = *request.PropertyID
	}

	err = r.publisher.Publish(ctx, automation.ID, event)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to publish automation executed event", "error", err)
	}
}

// Failed publishes the rejection of a run. Nothing is written to the store.
func (r *Recorder) Failed(ctx context.Context, executionID string, request models.RunRequest, cause error) {
	if r.publisher == nil {
		return
	}

	event := events.AutomationFailed{
		BaseEvent:   events.NewBaseEvent(events.AutomationFailedEvent, request.AutomationID, executionID),
		TriggerType: request.TriggerType,
		Error:       cause.Error(),
	}

	if request.PropertyID != nil {
		event.PropertyID = *request.PropertyID
	}

	err := r.publisher.Publish(ctx, request.AutomationID, event)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to publish automation failed event",
			"automation_id", request.AutomationID, "error", err)
	}
}

func requestedProperty(request models.RunRequest) *string {
	if !request.HasProperty() {
		return nil
	}

	id := *request.PropertyID

	return &id
}
