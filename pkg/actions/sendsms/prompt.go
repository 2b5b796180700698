package sendsms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/template"
)

const baseSystemPrompt = "You are a real estate investor texting the listing agent of a property you are interested in. " +
	"Write one concise SMS of about 160 characters, in the first person and in a professional tone, " +
	"that references specific details of the property. Reply with the message text only."

// SystemPrompt returns the instruction for the chat provider, extended by the
// node's free-text instructions when present.
func SystemPrompt(instructions string) string {
	instructions = strings.TrimSpace(instructions)
	if instructions == "" {
		return baseSystemPrompt
	}

	return baseSystemPrompt + " Also follow these instructions: " + instructions
}

// PropertyContext renders the property details block sent as the user message.
// Unknown fields are left out.
func PropertyContext(property *models.Property, instructions string) string {
	var b strings.Builder

	b.WriteString("Property details:\n")

	if location := joinNonEmpty(", ", property.Address, property.City, joinNonEmpty(" ", property.State, property.ZipCode)); location != "" {
		writeLine(&b, "Address", location)
	}

	writeLine(&b, "Price", template.FormatPrice(property.Price))

	if property.Bedrooms != nil {
		writeLine(&b, "Bedrooms", strconv.FormatFloat(*property.Bedrooms, 'f', -1, 64))
	}

	if property.Bathrooms != nil {
		writeLine(&b, "Bathrooms", strconv.FormatFloat(*property.Bathrooms, 'f', -1, 64))
	}

	if sqft := property.Sqft(); sqft != nil {
		writeLine(&b, "Square feet", strconv.Itoa(*sqft))
	}

	if property.DaysOnMarket != nil {
		writeLine(&b, "Days on market", strconv.Itoa(*property.DaysOnMarket))
	}

	writeLine(&b, "Listing agent", property.SellerAgentName)

	if instructions = strings.TrimSpace(instructions); instructions != "" {
		fmt.Fprintf(&b, "\nAdditional instructions: %s\n", instructions)
	}

	return b.String()
}

func writeLine(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}

	fmt.Fprintf(b, "- %s: %s\n", label, value)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))

	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}

	return strings.Join(kept, sep)
}
