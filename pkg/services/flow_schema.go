package services

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// flowDataSchema is the shape accepted from the flow editor. Extra keys are allowed.
var flowDataSchema = map[string]any{
	"type":     "object",
	"required": []string{"nodes"},
	"properties": map[string]any{
		"nodes": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"id", "type", "data"},
				"properties": map[string]any{
					"id":   map[string]any{"type": "string", "minLength": 1},
					"type": map[string]any{"type": "string", "enum": []string{"trigger", "condition", "action"}},
					"position": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"x": map[string]any{"type": "number"},
							"y": map[string]any{"type": "number"},
						},
					},
					"data": map[string]any{
						"type":     "object",
						"required": []string{"label"},
						"properties": map[string]any{
							"label":  map[string]any{"type": "string", "minLength": 1},
							"config": map[string]any{"type": []string{"object", "null"}},
						},
					},
				},
			},
		},
		"edges": map[string]any{
			"type": []string{"array", "null"},
			"items": map[string]any{
				"type":     "object",
				"required": []string{"source", "target"},
				"properties": map[string]any{
					"source": map[string]any{"type": "string"},
					"target": map[string]any{"type": "string"},
				},
			},
		},
	},
}

// validateJSONSchema validates document against schema and joins every violation.
func validateJSONSchema(schema map[string]any, document gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), document)
	if err != nil {
		return err
	}

	if !result.Valid() {
		var errors []string
		for _, desc := range result.Errors() {
			errors = append(errors, desc.String())
		}

		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}
