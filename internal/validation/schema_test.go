package validation

import (
	"errors"
	"testing"
)

var sectionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"country": map[string]any{"type": "string", "minLength": 1},
		"section": map[string]any{"enum": []any{"overview", "visa"}},
	},
	"required": []any{"country", "section"},
}

func TestValidatorAcceptsValidPayload(t *testing.T) {
	v, err := Compile(sectionSchema)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := v.Validate(map[string]any{"country": "france", "section": "visa"}); err != nil {
		t.Fatalf("expected payload to validate, got %v", err)
	}
}

func TestValidatorReportsIssues(t *testing.T) {
	v := MustCompile(sectionSchema)

	err := v.Validate(map[string]any{"country": "france", "section": "nightlife"})
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	issues := Issues(err)
	if len(issues) == 0 {
		t.Fatal("expected at least one issue")
	}
	if issues[0].Location != "/section" {
		t.Fatalf("expected issue at /section, got %+v", issues[0])
	}
}

func TestValidatorMissingRequired(t *testing.T) {
	err := ValidatePayload(sectionSchema, nil)
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestCompileRejectsEmptySchema(t *testing.T) {
	if _, err := Compile(nil); !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}
