// Package persistence provides the record store abstraction used by the automation executor.
package persistence

import (
	"context"

	"github.com/dealflow/dealflow/pkg/models"
)

// Persistence groups the repositories of the record store. Every write is a
// single statement; no operation spans more than one repository.
type Persistence interface {
	AutomationRepository() AutomationRepository
	PropertyRepository() PropertyRepository
	ActivityRepository() ActivityRepository
	AutomationLogRepository() AutomationLogRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// AutomationRepository stores automations and their run counters.
type AutomationRepository interface {
	// GetByID returns the automation regardless of its active flag.
	GetByID(ctx context.Context, id string) (*models.Automation, error)

	// GetActiveByID returns the automation only when it is active.
	// Missing and inactive automations both yield ErrAutomationNotFound.
	GetActiveByID(ctx context.Context, id string) (*models.Automation, error)

	// Save inserts or replaces the automation.
	Save(ctx context.Context, automation *models.Automation) error

	// UpdateCounters overwrites both counters with the given values.
	UpdateCounters(ctx context.Context, id string, triggerCount, successCount int) error
}

// PropertyRepository stores property records.
type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (*models.Property, error)
	Save(ctx context.Context, property *models.Property) error
	UpdateWorkflowState(ctx context.Context, id string, state models.WorkflowState) error
}

// ActivityRepository stores activities created by users and automations.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	ListByProperty(ctx context.Context, propertyID string) ([]*models.Activity, error)
}

// AutomationLogRepository stores the append-only run audit log.
type AutomationLogRepository interface {
	Create(ctx context.Context, entry *models.AutomationLog) error

	// ListByAutomation returns the newest entries first.
	ListByAutomation(ctx context.Context, automationID string, limit int) ([]*models.AutomationLog, error)
}
