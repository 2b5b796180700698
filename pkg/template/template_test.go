package template

import (
	"testing"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func fullProperty() *models.Property {
	return &models.Property{
		Address:          "12 Elm St",
		Price:            ptr(235000.0),
		Bedrooms:         ptr(3.0),
		Bathrooms:        ptr(2.5),
		SquareFeet:       ptr(1800),
		SellerAgentName:  "Dana Reyes",
		SellerAgentPhone: "+15551234567",
	}
}

func TestRender_NoPlaceholdersIsUnchanged(t *testing.T) {
	inputs := []string{
		"",
		"Hi there, is the house still available?",
		"Braces without a known name: {{NAME}} {{ price_per_sqft }} {PRICE}",
	}

	for _, input := range inputs {
		assert.Equal(t, input, Render(input, fullProperty()))
	}
}

func TestRender_AllPlaceholders(t *testing.T) {
	input := "Hi {{AGENT_NAME}}, {{ADDRESS}} at {{PRICE}} with {{BEDS}} bd / {{BATHS}} ba, {{SQFT}} sqft?"

	result := Render(input, fullProperty())

	assert.Equal(t, "Hi Dana Reyes, 12 Elm St at $235,000 with 3 bd / 2.5 ba, 1800 sqft?", result)
	assert.NotContains(t, result, "{{")
}

func TestRender_CaseInsensitive(t *testing.T) {
	result := Render("{{agent_name}} / {{Address}} / {{pRiCe}}", fullProperty())

	assert.Equal(t, "Dana Reyes / 12 Elm St / $235,000", result)
}

func TestRender_RepeatedPlaceholders(t *testing.T) {
	result := Render("{{PRICE}} {{PRICE}}", fullProperty())

	assert.Equal(t, "$235,000 $235,000", result)
}

func TestRender_MissingValuesBecomeEmpty(t *testing.T) {
	property := &models.Property{Address: "9 Oak Ave"}

	result := Render("[{{AGENT_NAME}}][{{ADDRESS}}][{{PRICE}}][{{BEDS}}][{{BATHS}}][{{SQFT}}]", property)

	assert.Equal(t, "[][9 Oak Ave][][][][]", result)
}

func TestRender_NilProperty(t *testing.T) {
	assert.Equal(t, "Hi ", Render("Hi {{AGENT_NAME}}", nil))
}

func TestRender_SqftFallsBackToLivingArea(t *testing.T) {
	property := &models.Property{LivingAreaSqft: ptr(1650)}

	assert.Equal(t, "1650", Render("{{SQFT}}", property))
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    *float64
		expected string
	}{
		{name: "nil", price: nil, expected: ""},
		{name: "thousands", price: ptr(235000.0), expected: "$235,000"},
		{name: "millions", price: ptr(1250000.0), expected: "$1,250,000"},
		{name: "small", price: ptr(950.0), expected: "$950"},
		{name: "cents", price: ptr(199999.5), expected: "$199,999.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPrice(tt.price))
		})
	}
}
