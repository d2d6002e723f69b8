package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrMismatchedKeys matches any key-set divergence reported by Check.
	ErrMismatchedKeys = errors.New(string(FailureMismatchedKeys))
	// ErrBadType matches any value-shape divergence reported by Check.
	ErrBadType = errors.New(string(FailureBadType))

	// ErrUnknownKind is returned when a type name is not recognized.
	ErrUnknownKind = errors.New("unknown kind")
	// ErrMalformedTemplate is returned when a template document holds
	// something other than type names and nested mappings.
	ErrMalformedTemplate = errors.New("malformed template")
)

// FailureKind names the two ways a record can diverge from its template.
type FailureKind string

const (
	FailureMismatchedKeys FailureKind = "mismatched keys"
	FailureBadType        FailureKind = "bad type"
)

// ValidationError is the single divergence found by Check.
type ValidationError struct {
	Kind FailureKind
	Path string // dot-joined key path, no leading dot
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

// Is lets errors.Is match ErrMismatchedKeys and ErrBadType.
func (e *ValidationError) Is(target error) bool {
	switch e.Kind {
	case FailureMismatchedKeys:
		return target == ErrMismatchedKeys
	case FailureBadType:
		return target == ErrBadType
	}
	return false
}

// AsValidationError extracts a *ValidationError from err, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
