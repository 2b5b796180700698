// Package template renders SMS message templates against property records.
package template

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dealflow/dealflow/pkg/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder names recognized inside {{...}}, matched case-insensitively.
const (
	PlaceholderAgentName = "AGENT_NAME"
	PlaceholderAddress   = "ADDRESS"
	PlaceholderPrice     = "PRICE"
	PlaceholderBeds      = "BEDS"
	PlaceholderBaths     = "BATHS"
	PlaceholderSqft      = "SQFT"
)

var placeholderPattern = regexp.MustCompile(`(?i)\{\{(AGENT_NAME|ADDRESS|PRICE|BEDS|BATHS|SQFT)\}\}`)

var printer = message.NewPrinter(language.English)

// Render substitutes every known placeholder in input with the matching
// property field. Missing fields render as the empty string, and text without
// placeholders is returned unchanged.
func Render(input string, property *models.Property) string {
	values := Values(property)

	return placeholderPattern.ReplaceAllStringFunc(input, func(token string) string {
		name := strings.ToUpper(strings.Trim(token, "{}"))

		return values[name]
	})
}

// Values returns the rendered value of each placeholder for the property.
func Values(property *models.Property) map[string]string {
	values := map[string]string{
		PlaceholderAgentName: "",
		PlaceholderAddress:   "",
		PlaceholderPrice:     "",
		PlaceholderBeds:      "",
		PlaceholderBaths:     "",
		PlaceholderSqft:      "",
	}

	if property == nil {
		return values
	}

	values[PlaceholderAgentName] = property.SellerAgentName
	values[PlaceholderAddress] = property.Address
	values[PlaceholderPrice] = FormatPrice(property.Price)
	values[PlaceholderBeds] = formatCount(property.Bedrooms)
	values[PlaceholderBaths] = formatCount(property.Bathrooms)

	if sqft := property.Sqft(); sqft != nil {
		values[PlaceholderSqft] = strconv.Itoa(*sqft)
	}

	return values
}

// FormatPrice renders a price as "$" followed by the amount with thousands
// separators, e.g. 235000 becomes "$235,000". A nil price renders as "".
func FormatPrice(price *float64) string {
	if price == nil {
		return ""
	}

	return "$" + printer.Sprint(number.Decimal(*price, number.MaxFractionDigits(2)))
}

func formatCount(v *float64) string {
	if v == nil {
		return ""
	}

	return strconv.FormatFloat(*v, 'f', -1, 64)
}
