package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// catalogSchema is the JSON Schema the embedded catalog file must satisfy.
// Referential rules (stage membership, answer ranges) are checked separately
// in validate().
const catalogSchema = `{
	"type": "object",
	"required": ["stages", "subjects", "lessons"],
	"properties": {
		"stages": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["id", "title", "icon"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"title": {"type": "string", "minLength": 1},
					"icon": {"type": "string"}
				}
			}
		},
		"subjects": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["id", "title", "icon", "description", "stage"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"title": {"type": "string", "minLength": 1},
					"icon": {"type": "string"},
					"description": {"type": "string"},
					"stage": {"type": "string", "minLength": 1}
				}
			}
		},
		"lessons": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"additionalProperties": {
					"type": "object",
					"required": ["title", "theory", "question"],
					"properties": {
						"title": {"type": "string", "minLength": 1},
						"theory": {"type": "string", "minLength": 1},
						"question": {"type": "string", "minLength": 1},
						"quiz": {
							"type": "object",
							"required": ["question", "options", "answer"],
							"properties": {
								"question": {"type": "string", "minLength": 1},
								"options": {"type": "array", "items": {"type": "string"}, "minItems": 2},
								"answer": {"type": "integer", "minimum": 0}
							}
						}
					}
				}
			}
		}
	}
}`

var (
	compiledSchema     *jsonschema.Schema
	compileSchemaOnce  sync.Once
	compileSchemaError error
)

// validateSchema checks raw catalog JSON against the catalog schema.
func validateSchema(data []byte) error {
	compileSchemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(catalogSchema), &def); err != nil {
			compileSchemaError = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://catalog.json", def); err != nil {
			compileSchemaError = fmt.Errorf("add catalog schema: %w", err)
			return
		}
		compiledSchema, compileSchemaError = c.Compile("schema://catalog.json")
	})
	if compileSchemaError != nil {
		return compileSchemaError
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("catalog is not valid JSON: %w", err)
	}
	if err := compiledSchema.Validate(parsed); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}
	return nil
}
