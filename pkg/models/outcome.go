package models

import "time"

// OutcomeStatus is the result class of a single action.
type OutcomeStatus string

const (
	OutcomeStatusSuccess OutcomeStatus = "success"
	OutcomeStatusError   OutcomeStatus = "error"
	OutcomeStatusSkipped OutcomeStatus = "skipped"
)

// ActionOutcome is the per-action record. The ordered list of outcomes is
// persisted verbatim in the automation log.
type ActionOutcome struct {
	Type         string        `json:"type"`
	Status       OutcomeStatus `json:"status"`
	NodeID       string        `json:"node_id,omitempty"`
	Reason       string        `json:"reason,omitempty"`
	Error        string        `json:"error,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	Message      string        `json:"message,omitempty"`
	AIGenerated  *bool         `json:"ai_generated,omitempty"`
	NewState     string        `json:"new_state,omitempty"`
	ActivityType string        `json:"activity_type,omitempty"`
	ActivityID   string        `json:"activity_id,omitempty"`
}

// Success builds a success outcome for the given action type.
func Success(actionType string) ActionOutcome {
	return ActionOutcome{Type: actionType, Status: OutcomeStatusSuccess}
}

// Skipped builds a skipped outcome carrying the reason.
func Skipped(actionType, reason string) ActionOutcome {
	return ActionOutcome{Type: actionType, Status: OutcomeStatusSkipped, Reason: reason}
}

// Failed builds an error outcome from err.
func Failed(actionType string, err error) ActionOutcome {
	return ActionOutcome{Type: actionType, Status: OutcomeStatusError, Error: err.Error()}
}

// Summary counts outcomes by status.
type Summary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
}

// Summarize counts the status values in actions.
func Summarize(actions []ActionOutcome) Summary {
	summary := Summary{Total: len(actions)}

	for _, action := range actions {
		switch action.Status {
		case OutcomeStatusSuccess:
			summary.Successful++
		case OutcomeStatusError:
			summary.Failed++
		case OutcomeStatusSkipped:
			summary.Skipped++
		}
	}

	return summary
}

// AutomationLogStatusSuccess is the only status a run log is written with.
const AutomationLogStatusSuccess = "success"

// AutomationLog is the immutable audit entry written once per run.
type AutomationLog struct {
	ID              string          `json:"id"`
	AutomationID    string          `json:"automation_id"`
	CompanyID       string          `json:"company_id"`
	TriggerType     string          `json:"trigger_type"`
	PropertyID      *string         `json:"property_id,omitempty"`
	Status          string          `json:"status"`
	ActionsExecuted []ActionOutcome `json:"actions_executed"`
	CreatedAt       time.Time       `json:"created_at"`
}
