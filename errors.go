package falconbridge

import (
	"errors"
	"fmt"

	"github.com/opengovern/falcon-bridge/endpoint"
)

// NoContentMessage is the envelope message for a successful response with
// no decodable JSON body.
const NoContentMessage = "No content returned"

// Sentinel errors for each failure class. Validation failures are returned
// as *ValidationError and match the first three through errors.Is.
var (
	ErrMissingArgument       = errors.New("missing argument")
	ErrUnknownArgument       = errors.New("unknown argument")
	ErrTypeMismatch          = errors.New("type mismatch")
	ErrUnsupportedMethod     = errors.New("unsupported method")
	ErrTransportFailure      = errors.New("transport failure")
	ErrDecodeEmpty           = errors.New("no content returned")
	ErrUnrecognizedOperation = endpoint.ErrUnrecognizedOperation
	ErrAmbiguousOperation    = endpoint.ErrAmbiguousOperation
)

// ValidationKind categorizes a payload validation failure.
type ValidationKind int

const (
	// MissingArgument means a required key is absent from the body.
	MissingArgument ValidationKind = iota
	// UnknownArgument means the body carries a key the schema does not declare.
	UnknownArgument
	// TypeMismatch means a value does not have the declared kind.
	TypeMismatch
)

// String returns the string representation of ValidationKind.
func (k ValidationKind) String() string {
	switch k {
	case MissingArgument:
		return "missing_argument"
	case UnknownArgument:
		return "unknown_argument"
	case TypeMismatch:
		return "type_mismatch"
	default:
		return "unknown"
	}
}

func (k ValidationKind) sentinel() error {
	switch k {
	case MissingArgument:
		return ErrMissingArgument
	case UnknownArgument:
		return ErrUnknownArgument
	default:
		return ErrTypeMismatch
	}
}

// ValidationError reports the first problem found in a request body.
type ValidationError struct {
	Kind     ValidationKind
	Key      string
	Expected Kind
	Actual   string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingArgument:
		return fmt.Sprintf("Argument %s must be specified.", e.Key)
	case UnknownArgument:
		return fmt.Sprintf("%s is not a valid argument.", e.Key)
	default:
		return fmt.Sprintf("%s is not the valid type. Should be: %s, was %s", e.Key, e.Expected, e.Actual)
	}
}

// Is matches the sentinel for the failure kind, or another *ValidationError
// of the same kind.
func (e *ValidationError) Is(target error) bool {
	if t, ok := target.(*ValidationError); ok {
		return e.Kind == t.Kind
	}
	return target == e.Kind.sentinel()
}
