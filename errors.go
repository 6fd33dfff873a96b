package arraysort

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrAllocationFailed is the cause of every resource error returned when the
// snapshot or the receiver's storage cannot be allocated.
var ErrAllocationFailed = errors.New("allocation failed")

// ComparisonError represents a panic raised by a comparison function. Errors
// returned by a comparison function are propagated unchanged instead.
type ComparisonError struct {
	// Cause is the recovered panic value
	Cause interface{}
	// Context provides additional information about when the comparison failed
	Context string
}

func (e *ComparisonError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("comparison panic in %s: %v", e.Context, e.Cause)
	}
	return fmt.Sprintf("comparison panic: %v", e.Cause)
}

func (e *ComparisonError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// NewComparisonError creates a ComparisonError
func NewComparisonError(cause interface{}, context string) error {
	return &ComparisonError{Cause: cause, Context: context}
}

// ConfigError represents an error in configuration parameters
type ConfigError struct {
	// Field is the name of the configuration field that's invalid
	Field string
	// Value is the invalid value provided
	Value interface{}
	// Reason explains why the value is invalid
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field %s (value: %v): %s", e.Field, e.Value, e.Reason)
}

// NewResourceError creates a resource error wrapping the underlying error
func NewResourceError(err error, resource, context string) error {
	if context != "" {
		return errors.Wrapf(err, "resource error (%s) in %s", resource, context)
	}
	return errors.Wrapf(err, "resource error (%s)", resource)
}

// newAllocationError reports that n slots of resource could not be allocated.
func newAllocationError(resource string, n int, limit int64) error {
	return NewResourceError(
		errors.Wrapf(ErrAllocationFailed, "%d elements exceeds limit %d", n, limit),
		resource, "")
}
