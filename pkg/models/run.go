package models

import "time"

// RunRequest is the trigger event accepted by the executor.
type RunRequest struct {
	AutomationID string  `json:"automationId" validate:"required"`
	PropertyID   *string `json:"propertyId"`
	TriggerType  string  `json:"triggerType"`
}

// HasProperty reports whether the request names a property.
func (r RunRequest) HasProperty() bool {
	return r.PropertyID != nil && *r.PropertyID != ""
}

// RunResult is the response of a completed executor invocation.
type RunResult struct {
	Success bool            `json:"success"`
	Actions []ActionOutcome `json:"actions"`
	Summary Summary         `json:"summary"`
}

// RunContext is the read-only context handed to every action of one run.
// Property is nil when none was requested or it could not be loaded.
type RunContext struct {
	ExecutionID string
	Automation  *Automation
	Property    *Property
	TriggerType string
	Now         time.Time
}
