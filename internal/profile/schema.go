package profile

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// cachedProfileSchema guards reads of the locally cached profile blob.
// A blob that fails this check is treated as absent, never fatal.
var cachedProfileSchema = map[string]any{
	"type":     "object",
	"required": []any{"name", "preferences"},
	"properties": map[string]any{
		"name":  map[string]any{"type": "string"},
		"email": map[string]any{"type": "string"},
		"preferences": map[string]any{
			"type":     "object",
			"required": []any{"targetLanguage", "nativeLanguage", "proficiencyLevel"},
			"properties": map[string]any{
				"targetLanguage":   map[string]any{"type": "string"},
				"nativeLanguage":   map[string]any{"type": "string"},
				"proficiencyLevel": map[string]any{"type": "string"},
				"learningStyle":    stringArray(),
				"dailyGoalMinutes": map[string]any{
					"type":    "integer",
					"minimum": float64(MinDailyGoal),
					"maximum": float64(MaxDailyGoal),
				},
				"availableDays":       stringArray(),
				"preferredTimeOfDay":  stringArray(),
				"learningGoals":       stringArray(),
				"motivation":          map[string]any{"type": "string"},
				"focusAreas":          stringArray(),
				"topicsOfInterest":    stringArray(),
				"preferredVoiceSpeed": map[string]any{"type": "string"},
				"correctionStyle":     map[string]any{"type": "string"},
			},
		},
	},
}

func stringArray() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(cachedProfileSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(defBytes, &parsed); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://cached-profile.json"
		if err := c.AddResource(url, parsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// ParseCached decodes and validates a locally cached profile blob.
// Any failure, whether invalid JSON or a schema mismatch, is returned
// to the caller, which should treat the blob as missing.
func ParseCached(raw []byte) (*Profile, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiled()
	if err != nil {
		return nil, fmt.Errorf("compile cached-profile schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("cached profile does not match schema: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
