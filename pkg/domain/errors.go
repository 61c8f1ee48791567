package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ConfigError reports a missing or invalid startup setting
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %q: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// StorageError wraps any failure coming from the connection pool or
// statement execution.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// DecodeError reports a malformed request body or path parameter.
// Status is the 4xx code the request should be answered with.
type DecodeError struct {
	Field  string
	Reason string
	Status int
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewDecodeError creates a DecodeError answered with 422 Unprocessable Entity
func NewDecodeError(field, reason string) *DecodeError {
	return &DecodeError{Field: field, Reason: reason, Status: http.StatusUnprocessableEntity}
}

// IsStorageError reports whether err wraps a StorageError
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
