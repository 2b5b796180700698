// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"github.com/dealflow/dealflow/pkg/models"
)

// CreateTestAutomation creates an active automation with default values that can be overridden.
func CreateTestAutomation(overrides ...func(*models.Automation)) *models.Automation {
	automation := &models.Automation{
		ID:        "auto-1",
		CompanyID: "company-1",
		Name:      "New listing outreach",
		IsActive:  true,
		FlowData: &models.FlowData{
			Nodes: []*models.Node{TriggerNode("trigger-1", "property_added")},
			Edges: []*models.Edge{},
		},
	}

	for _, override := range overrides {
		override(automation)
	}

	return automation
}

// WithNodes appends nodes to the automation flow.
func WithNodes(nodes ...*models.Node) func(*models.Automation) {
	return func(a *models.Automation) {
		a.FlowData.Nodes = append(a.FlowData.Nodes, nodes...)
	}
}

func Inactive() func(*models.Automation) {
	return func(a *models.Automation) {
		a.IsActive = false
	}
}

func ActionNode(id, label string, config map[string]any) *models.Node {
	return &models.Node{ID: id, Type: models.NodeTypeAction, Data: models.NodeData{Label: label, Config: config}}
}

func ConditionNode(id, label string) *models.Node {
	return &models.Node{ID: id, Type: models.NodeTypeCondition, Data: models.NodeData{Label: label}}
}

func TriggerNode(id, label string) *models.Node {
	return &models.Node{ID: id, Type: models.NodeTypeTrigger, Data: models.NodeData{Label: label}}
}

// CreateTestProperty creates a listed property with a reachable seller agent.
func CreateTestProperty(overrides ...func(*models.Property)) *models.Property {
	price := 235000.0

	property := &models.Property{
		ID:               "prop-1",
		CompanyID:        "company-1",
		Address:          "12 Elm St",
		Price:            &price,
		SellerAgentName:  "Dana Reyes",
		SellerAgentPhone: "+15551234567",
		WorkflowState:    "new",
	}

	for _, override := range overrides {
		override(property)
	}

	return property
}
