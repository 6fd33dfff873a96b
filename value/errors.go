package value

import (
	"github.com/cockroachdb/errors"
)

// ErrTypeError marks errors that correspond to a thrown TypeError.
var ErrTypeError = errors.New("TypeError")

// NewTypeError returns an abrupt completion marked with ErrTypeError.
func NewTypeError(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf("TypeError: "+format, args...), ErrTypeError)
}

// Exception is an abrupt completion carrying a thrown runtime value.
type Exception struct {
	Value Value
}

func (e *Exception) Error() string {
	return "uncaught exception: " + Inspect(e.Value)
}

// Throw returns an abrupt completion that throws v.
func Throw(v Value) error {
	return &Exception{Value: v}
}

// Thrown extracts the thrown value from err, if err is an Exception.
func Thrown(err error) (Value, bool) {
	var e *Exception
	if errors.As(err, &e) {
		return e.Value, true
	}
	return nil, false
}
