package failure_predictor

import (
	"errors"
	"fmt"
)

// InvalidInputPrefix starts every validation message shown in place of a prediction.
const InvalidInputPrefix = "Invalid input: "

// ValidationKind enumerates the ways a submission can be rejected.
type ValidationKind int

const (
	MissingField ValidationKind = iota + 1
	InvalidNumber
	InvalidType
)

func (k ValidationKind) String() string {
	switch k {
	case MissingField:
		return "missing_field"
	case InvalidNumber:
		return "invalid_number"
	case InvalidType:
		return "invalid_type"
	default:
		return "unknown"
	}
}

// ValidationError reports a user-supplied value that cannot be turned into a SensorReading.
// It is recovered locally and never treated as a server failure.
type ValidationError struct {
	Kind  ValidationKind
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("missing value for %s", e.Field)
	case InvalidNumber:
		return fmt.Sprintf("could not convert string to float: %q", e.Value)
	case InvalidType:
		return "Invalid type. Enter H, M, or L."
	default:
		return fmt.Sprintf("invalid value for %s", e.Field)
	}
}

// Message is the text displayed to the user.
func (e *ValidationError) Message() string {
	return InvalidInputPrefix + e.Error()
}

// AsValidationError unwraps err into a *ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
