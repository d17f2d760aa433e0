package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrStorage = errors.New("storage operation failed")

// NewStorageError reports a failed blob store call. key may be empty for puts.
func NewStorageError(operation, key string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s blob", operation)
	if key != "" {
		details = fmt.Sprintf("Failed to %s blob %s", operation, key)
	}

	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrStorage,
		Details:    details,
		Cause:      cause,
	}
}

func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}
