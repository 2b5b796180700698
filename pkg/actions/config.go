// Package actions holds the built-in automation actions and the helpers they
// share for reading untyped node configuration.
package actions

import (
	"math"
	"strconv"
	"strings"
)

// String returns config[key] when it is a string. Any other type reads as "".
func String(config map[string]any, key string) string {
	value, _ := config[key].(string)

	return value
}

// Bool returns config[key] when it is a bool or the strings "true"/"false".
func Bool(config map[string]any, key string) bool {
	switch value := config[key].(type) {
	case bool:
		return value
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))

		return err == nil && parsed
	default:
		return false
	}
}

// Number returns config[key] as a float64 when it is a finite number or a
// numeric string. The second result reports whether a number was found.
func Number(config map[string]any, key string) (float64, bool) {
	var number float64

	switch value := config[key].(type) {
	case float64:
		number = value
	case float32:
		number = float64(value)
	case int:
		number = float64(value)
	case int64:
		number = float64(value)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, false
		}

		number = parsed
	default:
		return 0, false
	}

	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}

	return number, true
}
