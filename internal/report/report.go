package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"soldocs/internal/validator"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://soldocs.local/schema/validation_report.json"

const reportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["root", "started_at", "files", "summary"],
  "properties": {
    "root": {"type": "string"},
    "started_at": {"type": "string"},
    "duration": {"type": "string"},
    "files": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["path", "dialect", "sections", "issues"],
        "properties": {
          "path": {"type": "string", "minLength": 1},
          "dialect": {"enum": ["docstring", "jsdoc", "unsupported"]},
          "sections": {"type": "array", "items": {"type": "string"}},
          "issues": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["code", "severity", "message"],
              "properties": {
                "code": {"type": "string", "minLength": 1},
                "severity": {"enum": ["error", "warning"]},
                "section": {"type": "string"},
                "message": {"type": "string"}
              }
            }
          }
        }
      }
    },
    "summary": {
      "type": "object",
      "required": ["files", "passed", "failed", "warnings"],
      "properties": {
        "files": {"type": "integer", "minimum": 0},
        "passed": {"type": "integer", "minimum": 0},
        "failed": {"type": "integer", "minimum": 0},
        "warnings": {"type": "integer", "minimum": 0}
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, strings.NewReader(reportSchema)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Encode marshals r and checks the result against the report schema.
func Encode(r *validator.Report) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("report is nil")
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := Validate(b); err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Validate checks raw JSON against the report schema.
func Validate(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile report schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("failed to decode report: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("report schema validation failed: %w", err)
	}
	return nil
}

// Save writes r to path as JSON after validating it.
func Save(path string, r *validator.Report) error {
	b, err := Encode(r)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
