package questionbank

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// fileFormat is the on-disk layout of a question bank file.
type fileFormat struct {
	Version   int        `json:"version"`
	Questions []Question `json:"questions"`
}

const bankSchemaURL = "schema://question-bank.json"

// bankSchema describes a question bank file. Structural rules the schema
// cannot express (unique IDs) are checked by validateQuestions.
var bankSchema = map[string]any{
	"type":     "object",
	"required": []any{"questions"},
	"properties": map[string]any{
		"version": map[string]any{"type": "integer", "minimum": 1},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "category", "text", "options", "correct_index", "difficulty"},
				"properties": map[string]any{
					"id":       map[string]any{"type": "string", "minLength": 1},
					"category": map[string]any{"enum": categoryEnum()},
					"text":     map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"minItems": OptionCount,
						"maxItems": OptionCount,
						"items":    map[string]any{"type": "string", "minLength": 1},
					},
					"correct_index":  map[string]any{"type": "integer", "minimum": 0, "maximum": OptionCount - 1},
					"difficulty":     map[string]any{"type": "integer", "minimum": MinDifficulty, "maximum": MaxDifficulty},
					"explanation":    map[string]any{"type": "string"},
					"current_events": map[string]any{"type": "boolean"},
				},
				"additionalProperties": false,
			},
		},
	},
}

func categoryEnum() []any {
	var out []any
	for _, c := range AllCategories() {
		out = append(out, string(c))
	}
	return out
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, not Go-typed maps.
		raw, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(bankSchemaURL)
	})
	return compiledSchema, compileErr
}

// Parse decodes and validates a JSON question bank.
func Parse(data []byte) (*Bank, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compile question bank schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	return New(f.Questions)
}

// LoadFile reads a question bank from a JSON file.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return b, nil
}

// Encode serializes questions in the file format accepted by Parse.
func Encode(questions []Question) ([]byte, error) {
	return json.MarshalIndent(fileFormat{Version: 1, Questions: questions}, "", "  ")
}
