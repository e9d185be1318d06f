package directus

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/iancoleman/strcase"
)

// validationError carries every problem found in one payload.
type validationError struct {
	errs *multierror.Error
}

func (e *validationError) Error() string {
	return e.errs.Error()
}

func (e *validationError) Unwrap() []error {
	return append([]error{ErrValidation}, e.errs.Errors...)
}

func newValidationError(errs *multierror.Error) error {
	if errs.ErrorOrNil() == nil {
		return nil
	}
	errs.ErrorFormat = formatValidation
	return &validationError{errs: errs}
}

func formatValidation(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// RequireAttributes checks that data holds a non-empty value for every key.
// All missing keys are reported together.
func RequireAttributes(data map[string]any, keys ...string) error {
	var errs *multierror.Error
	for _, key := range keys {
		if isBlank(data[key]) {
			errs = multierror.Append(errs, fmt.Errorf("missing required attribute %q", key))
		}
	}
	return newValidationError(errs)
}

// RequireOneAttribute checks that data holds a non-empty value for at least
// one of keys.
func RequireOneAttribute(data map[string]any, keys ...string) error {
	for _, key := range keys {
		if !isBlank(data[key]) {
			return nil
		}
	}

	var errs *multierror.Error
	errs = multierror.Append(errs, fmt.Errorf("one of %s is required", strings.Join(quoteAll(keys), ", ")))
	return newValidationError(errs)
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func quoteAll(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = fmt.Sprintf("%q", k)
	}
	return out
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// CleanTableName checks that name only holds letters, digits, underscores
// and dashes, and returns it in lower snake case.
func CleanTableName(name string) (string, error) {
	if !tableNamePattern.MatchString(name) {
		return "", fmt.Errorf("%w: invalid table name %q", ErrValidation, name)
	}
	return strcase.ToSnake(name), nil
}
