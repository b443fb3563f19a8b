package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// LayoutValidator checks a persisted layout document before the Store trusts
// it. Invalid documents are treated as absent (the default layout takes over),
// so a corrupted or future-versioned payload can never crash the dashboard.
type LayoutValidator interface {
	ValidateLayout(widgets []Widget) error
}

var layoutSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []string{"id", "type", "title", "size", "position"},
		"properties": map[string]any{
			"id":    map[string]any{"type": "string", "minLength": 1},
			"type":  map[string]any{"type": "string", "minLength": 1},
			"title": map[string]any{"type": "string"},
			"size": map[string]any{
				"type": "string",
				"enum": []string{string(SizeSmall), string(SizeMedium), string(SizeLarge), string(SizeFull)},
			},
			"position": map[string]any{"type": "integer", "minimum": 0},
		},
		"additionalProperties": false,
	},
}

// JSONSchemaValidator validates layout documents against the widget schema
// and rejects duplicate ids, which the schema alone cannot express.
type JSONSchemaValidator struct {
	once     sync.Once
	compiled *jsonschema.Schema
	initErr  error
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5. The
// schema is compiled lazily on first use.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{}
}

// ValidateLayout ensures the document satisfies the layout schema.
func (v *JSONSchemaValidator) ValidateLayout(widgets []Widget) error {
	schema, err := v.schema()
	if err != nil {
		return err
	}
	data, err := json.Marshal(widgets)
	if err != nil {
		return fmt.Errorf("dashboard: marshal layout document: %w", err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("dashboard: normalize layout document: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("dashboard: layout document failed validation: %w", err)
	}
	seen := make(map[string]struct{}, len(widgets))
	for _, w := range widgets {
		if _, dup := seen[w.ID]; dup {
			return fmt.Errorf("dashboard: layout document duplicates widget id %s", w.ID)
		}
		seen[w.ID] = struct{}{}
	}
	return nil
}

func (v *JSONSchemaValidator) schema() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		data, err := json.Marshal(layoutSchema)
		if err != nil {
			v.initErr = fmt.Errorf("dashboard: marshal layout schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		const name = "layout.json"
		if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
			v.initErr = fmt.Errorf("dashboard: load layout schema: %w", err)
			return
		}
		v.compiled, v.initErr = compiler.Compile(name)
	})
	return v.compiled, v.initErr
}
