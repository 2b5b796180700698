package models

import "time"

// WorkflowState is the deal pipeline stage of a property.
type WorkflowState string

// Property is the denormalized listing record an automation runs against.
type Property struct {
	ID               string        `json:"id"`
	CompanyID        string        `json:"company_id"`
	Address          string        `json:"address"`
	City             string        `json:"city,omitempty"`
	State            string        `json:"state,omitempty"`
	ZipCode          string        `json:"zip_code,omitempty"`
	Price            *float64      `json:"price,omitempty"`
	Bedrooms         *float64      `json:"bedrooms,omitempty"`
	Bathrooms        *float64      `json:"bathrooms,omitempty"`
	SquareFeet       *int          `json:"square_feet,omitempty"`
	LivingAreaSqft   *int          `json:"living_area_sqft,omitempty"`
	DaysOnMarket     *int          `json:"days_on_market,omitempty"`
	PropertyType     string        `json:"property_type,omitempty"`
	SellerAgentName  string        `json:"seller_agent_name,omitempty"`
	SellerAgentPhone string        `json:"seller_agent_phone,omitempty"`
	SellerAgentEmail string        `json:"seller_agent_email,omitempty"`
	WorkflowState    WorkflowState `json:"workflow_state,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Sqft returns the primary square footage, falling back to the living area.
func (p *Property) Sqft() *int {
	if p.SquareFeet != nil {
		return p.SquareFeet
	}

	return p.LivingAreaSqft
}

// ActivityStatus is the lifecycle state of an activity.
type ActivityStatus string

const (
	ActivityStatusPending   ActivityStatus = "pending"
	ActivityStatusCompleted ActivityStatus = "completed"
)

// Activity is a task or follow-up scoped to a property.
type Activity struct {
	ID           string         `json:"id"`
	CompanyID    string         `json:"company_id"`
	PropertyID   string         `json:"property_id"`
	AutomationID string         `json:"automation_id,omitempty"`
	Type         string         `json:"type"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	DueDate      time.Time      `json:"due_date"`
	Status       ActivityStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
}
