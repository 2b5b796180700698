package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/dealflow/dealflow/pkg/protocol"
	"github.com/xeipuuv/gojsonschema"
)

const (
	DefaultLogLimit = 20
	MaxLogLimit     = 100
)

// ActionCatalog lists the action factories whose config schemas are enforced on save.
type ActionCatalog interface {
	GetAvailableActions() []protocol.ActionFactory
}

// Automation serves the admin operations on automations.
type Automation struct {
	persistence persistence.Persistence
	catalog     ActionCatalog
}

// NewAutomation creates a new automation service.
func NewAutomation(persistence persistence.Persistence, catalog ActionCatalog) *Automation {
	return &Automation{
		persistence: persistence,
		catalog:     catalog,
	}
}

// HealthCheck checks the health of the persistence layer.
func (a *Automation) HealthCheck(ctx context.Context) (string, bool) {
	if a.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := a.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// GetAutomation returns the automation whether or not it is active.
func (a *Automation) GetAutomation(ctx context.Context, id string) (*models.Automation, error) {
	if id == "" {
		return nil, NewValidationError("GetAutomation", "EMPTY_ID", "automation id cannot be empty", ErrInvalidRequest)
	}

	automation, err := a.persistence.AutomationRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get automation: %w", err)
	}

	return automation, nil
}

// ListLogs returns the newest run log entries of an automation. A limit of
// zero selects the default; larger than the maximum is rejected.
func (a *Automation) ListLogs(ctx context.Context, automationID string, limit int) ([]*models.AutomationLog, error) {
	if limit == 0 {
		limit = DefaultLogLimit
	}

	if limit < 1 || limit > MaxLogLimit {
		return nil, NewValidationError("ListLogs", "INVALID_LIMIT",
			fmt.Sprintf("limit must be between 1 and %d", MaxLogLimit), ErrInvalidRequest)
	}

	_, err := a.GetAutomation(ctx, automationID)
	if err != nil {
		return nil, err
	}

	entries, err := a.persistence.AutomationLogRepository().ListByAutomation(ctx, automationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list automation logs: %w", err)
	}

	return entries, nil
}

// UpdateFlow replaces the flow data of an automation after checking its shape
// and the configuration of every registered action node.
func (a *Automation) UpdateFlow(ctx context.Context, automationID string, raw []byte) (*models.Automation, error) {
	err := validateJSONSchema(flowDataSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, NewValidationError("UpdateFlow", "INVALID_FLOW_DATA", err.Error(), ErrInvalidFlowData)
	}

	var flow models.FlowData

	err = json.Unmarshal(raw, &flow)
	if err != nil {
		return nil, NewValidationError("UpdateFlow", "INVALID_FLOW_DATA", err.Error(), ErrInvalidFlowData)
	}

	err = a.validateActionConfigs(&flow)
	if err != nil {
		return nil, err
	}

	automation, err := a.GetAutomation(ctx, automationID)
	if err != nil {
		return nil, err
	}

	automation.FlowData = &flow
	automation.UpdatedAt = time.Now().UTC()

	err = a.persistence.AutomationRepository().Save(ctx, automation)
	if err != nil {
		return nil, fmt.Errorf("failed to save automation: %w", err)
	}

	return automation, nil
}

// validateActionConfigs checks action nodes with a registered label. Unknown
// labels are accepted; they are skipped at run time.
func (a *Automation) validateActionConfigs(flow *models.FlowData) error {
	if a.catalog == nil {
		return nil
	}

	schemas := make(map[string]map[string]any)
	for _, factory := range a.catalog.GetAvailableActions() {
		schemas[factory.ID()] = factory.Schema()
	}

	automation := &models.Automation{FlowData: flow}

	for _, node := range automation.ActionNodes() {
		schema, ok := schemas[node.Data.Label]
		if !ok {
			continue
		}

		err := validateJSONSchema(schema, gojsonschema.NewGoLoader(node.ConfigOrEmpty()))
		if err != nil {
			return NewValidationError("UpdateFlow", "INVALID_ACTION_CONFIG",
				fmt.Sprintf("node %s (%s): %v", node.ID, node.Data.Label, err), ErrInvalidConfig)
		}
	}

	return nil
}
