// Package models defines the core domain models for deal-flow automations
package models

import "time"

// NodeType is the structural kind of a node in an automation flow graph.
type NodeType string

const (
	NodeTypeTrigger   NodeType = "trigger"   // Editor-only entry point
	NodeTypeCondition NodeType = "condition" // Editor-only, not evaluated at run time
	NodeTypeAction    NodeType = "action"    // Executed by the automation executor
)

// Automation is a user-authored flow graph plus activation state and run counters.
type Automation struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	IsActive     bool      `json:"is_active"`
	FlowData     *FlowData `json:"flow_data,omitempty"`
	TriggerCount int       `json:"trigger_count"`
	SuccessCount int       `json:"success_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FlowData is the graph stored by the flow editor.
type FlowData struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`
}

// Node is an element of FlowData.Nodes.
type Node struct {
	ID       string    `json:"id"`
	Type     NodeType  `json:"type"`
	Position *Position `json:"position,omitempty"`
	Data     NodeData  `json:"data"`
}

// NodeData carries the behavior label and its untyped configuration.
type NodeData struct {
	Label  string         `json:"label"`
	Config map[string]any `json:"config,omitempty"`
}

// Position is the canvas placement of a node. Ignored by the executor.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Edge connects two nodes on the canvas. Edges do not gate or order execution.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
	Label        string `json:"label,omitempty"`
}

// IsAction reports whether the node is executed by the automation executor.
func (n *Node) IsAction() bool {
	return n.Type == NodeTypeAction
}

// ConfigOrEmpty returns the node configuration, never nil.
func (n *Node) ConfigOrEmpty() map[string]any {
	if n.Data.Config == nil {
		return map[string]any{}
	}

	return n.Data.Config
}

// Nodes returns the flow nodes, or an empty slice when the flow data is absent.
func (a *Automation) Nodes() []*Node {
	if a.FlowData == nil || a.FlowData.Nodes == nil {
		return []*Node{}
	}

	return a.FlowData.Nodes
}

// ActionNodes returns the action-typed nodes in stored order.
func (a *Automation) ActionNodes() []*Node {
	actions := make([]*Node, 0)

	for _, node := range a.Nodes() {
		if node != nil && node.IsAction() {
			actions = append(actions, node)
		}
	}

	return actions
}
