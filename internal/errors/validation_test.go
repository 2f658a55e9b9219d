package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("section_name", "is required", "")

	if err.Field != "section_name" {
		t.Errorf("Expected field to be 'section_name', got '%s'", err.Field)
	}

	if err.Message != "is required" {
		t.Errorf("Expected message to be 'is required', got '%s'", err.Message)
	}

	expected := "validation error on field 'section_name': is required"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("file", "unsupported file format", ".pdf"))
	expected := "validation failed: file unsupported file format"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("name", "is required", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("grade_level", "must be between Kinder (0) and Grade 12", "grade_level", 15)

	if err.Rule != "grade_level" {
		t.Errorf("Expected rule to be 'grade_level', got '%s'", err.Rule)
	}

	if err.Field != "grade_level" {
		t.Errorf("Expected field to be 'grade_level', got '%s'", err.Field)
	}
}
