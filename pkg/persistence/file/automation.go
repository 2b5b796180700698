package file

import (
	"context"
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/google/uuid"
)

// AutomationRepository handles automation file operations.
type AutomationRepository struct {
	records *records[models.Automation]
}

// GetByID retrieves an automation by its ID from the file system.
func (r *AutomationRepository) GetByID(_ context.Context, id string) (*models.Automation, error) {
	r.records.mu.RLock()
	defer r.records.mu.RUnlock()

	automation, err := r.records.read(id)
	if err != nil {
		return nil, persistence.NewRecordError("GetByID", "automations", id, err)
	}

	if automation == nil {
		return nil, persistence.NewRecordError("GetByID", "automations", id, persistence.ErrAutomationNotFound)
	}

	return automation, nil
}

// GetActiveByID retrieves an automation only if it is active.
func (r *AutomationRepository) GetActiveByID(ctx context.Context, id string) (*models.Automation, error) {
	automation, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !automation.IsActive {
		return nil, persistence.NewRecordError("GetActiveByID", "automations", id, persistence.ErrAutomationNotFound)
	}

	return automation, nil
}

// Save saves an automation to the file system.
func (r *AutomationRepository) Save(_ context.Context, automation *models.Automation) error {
	r.records.mu.Lock()
	defer r.records.mu.Unlock()

	if automation.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return persistence.NewRecordError("Save", "automations", "", err)
		}

		automation.ID = id.String()
	}

	now := time.Now().UTC()
	if automation.CreatedAt.IsZero() {
		automation.CreatedAt = now
	}

	automation.UpdatedAt = now

	err := r.records.write(automation.ID, automation)
	if err != nil {
		return persistence.NewRecordError("Save", "automations", automation.ID, err)
	}

	return nil
}

// UpdateCounters overwrites the trigger and success counters.
func (r *AutomationRepository) UpdateCounters(_ context.Context, id string, triggerCount, successCount int) error {
	r.records.mu.Lock()
	defer r.records.mu.Unlock()

	automation, err := r.records.read(id)
	if err != nil {
		return persistence.NewRecordError("UpdateCounters", "automations", id, err)
	}

	if automation == nil {
		return persistence.NewRecordError("UpdateCounters", "automations", id, persistence.ErrAutomationNotFound)
	}

	automation.TriggerCount = triggerCount
	automation.SuccessCount = successCount
	automation.UpdatedAt = time.Now().UTC()

	err = r.records.write(id, automation)
	if err != nil {
		return persistence.NewRecordError("UpdateCounters", "automations", id, err)
	}

	return nil
}
