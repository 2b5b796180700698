package web

import "github.com/dealflow/dealflow/pkg/models"

// RunErrorResponse is returned by the run endpoint when the run could not complete.
type RunErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ActionResponse describes one registered action type.
type ActionResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Schema      map[string]any `json:"schema"`
}

// AutomationLogsResponse wraps the newest run log entries of an automation.
type AutomationLogsResponse struct {
	AutomationID string                  `json:"automation_id"`
	Logs         []*models.AutomationLog `json:"logs"`
	Limit        int                     `json:"limit"`
}
