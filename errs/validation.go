package errs

import (
	"errors"
	"net/http"
	"sort"
)

var ErrValidation = errors.New("the given data was invalid")

// FieldErrors collects validation messages keyed by input field name.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

func (f FieldErrors) Has(field string) bool {
	return len(f[field]) > 0
}

// Err returns nil when no field failed, otherwise a validation ApiErr.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return NewValidationError(f)
}

func NewValidationError(fields map[string][]string) *ApiErr {
	apiErr := &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		err:        ErrValidation,
		Fields:     fields,
	}

	if len(fields) == 1 {
		for field, messages := range fields {
			apiErr.Field = field
			if len(messages) > 0 {
				apiErr.Details = messages[0]
			}
		}
	}

	return apiErr
}

// ValidationFields returns the sorted names of the fields that failed.
func ValidationFields(err error) []string {
	var apiErr *ApiErr
	if !errors.As(err, &apiErr) || !errors.Is(err, ErrValidation) {
		return nil
	}

	fields := make([]string, 0, len(apiErr.Fields))
	for field := range apiErr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
