package validation

import (
	"fmt"
	"sort"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

const (
	CodeRequired     = "REQUIRED"
	CodeUnknownField = "UNKNOWN_FIELD"
)

// ValidateSubmission checks a submitted field set against the variables the
// template currently requires. The contract is exact: every required variable
// must be submitted and nothing else may be. Field errors come back in a
// deterministic order.
func ValidateSubmission(submission map[string]string, required []string) *ValidationResult {
	errors := []ValidationError{}

	requiredSet := make(map[string]bool, len(required))
	for _, name := range required {
		requiredSet[name] = true
		if _, ok := submission[name]; !ok {
			errors = append(errors, ValidationError{
				Field:   name,
				Message: fmt.Sprintf("Field '%s' is required", name),
				Code:    CodeRequired,
			})
		}
	}

	var unknown []string
	for name := range submission {
		if !requiredSet[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		errors = append(errors, ValidationError{
			Field:   name,
			Message: fmt.Sprintf("Field '%s' is not a variable of this template", name),
			Code:    CodeUnknownField,
		})
	}

	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

// Missing returns the names of required fields absent from the submission.
func (r *ValidationResult) Missing() []string {
	return r.fieldsWithCode(CodeRequired)
}

// Unexpected returns the names of submitted fields the template does not use.
func (r *ValidationResult) Unexpected() []string {
	return r.fieldsWithCode(CodeUnknownField)
}

func (r *ValidationResult) fieldsWithCode(code string) []string {
	var fields []string
	for _, e := range r.Errors {
		if e.Code == code {
			fields = append(fields, e.Field)
		}
	}
	return fields
}
