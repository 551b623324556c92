// Package validation runs explicit rule lists against a subject and collects
// every violation before reporting.
package validation

import (
	"os"
	"path/filepath"

	"dpm-integrator/internal/core/domain"
)

// Check inspects one value. A nil result means the value passed.
type Check func(field, value string) *domain.ValidationError

// Rule ties a field name to the accessor reading it from the subject and the
// check applied to the value.
type Rule[T any] struct {
	Field string
	Value func(T) string
	Check Check
}

// Run applies every rule in order and returns all violations, or nil.
func Run[T any](subject T, rules []Rule[T]) error {
	var errs domain.ValidationErrors
	for _, r := range rules {
		if v := r.Check(r.Field, r.Value(subject)); v != nil {
			errs = append(errs, *v)
		}
	}
	return errs.Err()
}

func Required(field, value string) *domain.ValidationError {
	if value == "" {
		return &domain.ValidationError{Field: field, Problem: "missing required parameter value"}
	}
	return nil
}

// ExistingFile requires a value that names a regular file on disk.
func ExistingFile(field, value string) *domain.ValidationError {
	if value == "" {
		return Required(field, value)
	}
	path := value
	if abs, err := filepath.Abs(value); err == nil {
		path = abs
	}
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return &domain.ValidationError{Field: field, Problem: "file not found", Value: path}
	case info.IsDir():
		return &domain.ValidationError{Field: field, Problem: "is a directory, not a file", Value: path}
	}
	return nil
}

// OneOf accepts the empty value or one of the allowed values.
func OneOf(allowed ...string) Check {
	return func(field, value string) *domain.ValidationError {
		if value == "" {
			return nil
		}
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}
		return &domain.ValidationError{Field: field, Problem: "unsupported value", Value: value}
	}
}
