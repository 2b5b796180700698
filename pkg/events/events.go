// Package events defines event types and structures for automation run notifications.
package events

import (
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/google/uuid"
)

type EventType string

// Topic carries every automation run event.
const Topic = "dealflow.automation.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	AutomationExecutedEvent EventType = "automation.executed"
	AutomationFailedEvent   EventType = "automation.failed"
)

type BaseEvent struct {
	ID           string    `json:"id"`
	Type         EventType `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	AutomationID string    `json:"automation_id"`
	ExecutionID  string    `json:"execution_id"`
}

// NewBaseEvent fills the identity fields of an event.
func NewBaseEvent(eventType EventType, automationID, executionID string) BaseEvent {
	return BaseEvent{
		ID:           uuid.NewString(),
		Type:         eventType,
		Timestamp:    time.Now().UTC(),
		AutomationID: automationID,
		ExecutionID:  executionID,
	}
}

// AutomationExecuted is published after a run produced its outcomes.
type AutomationExecuted struct {
	BaseEvent

	CompanyID   string                 `json:"company_id"`
	PropertyID  string                 `json:"property_id,omitempty"`
	TriggerType string                 `json:"trigger_type"`
	Actions     []models.ActionOutcome `json:"actions"`
	Summary     models.Summary         `json:"summary"`
	Duration    time.Duration          `json:"duration"`
}

func (e AutomationExecuted) GetType() EventType {
	return AutomationExecutedEvent
}

// AutomationFailed is published when a run was rejected before any action ran.
type AutomationFailed struct {
	BaseEvent

	PropertyID  string `json:"property_id,omitempty"`
	TriggerType string `json:"trigger_type"`
	Error       string `json:"error"`
}

func (e AutomationFailed) GetType() EventType {
	return AutomationFailedEvent
}
