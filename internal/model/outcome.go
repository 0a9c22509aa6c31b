package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a required field is missing.
	ErrInvalidInput = errors.New("invalid input")
	// ErrPreconditionFailed is returned when the actor's role or ownership
	// does not allow a transition.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrNotFound is returned when no listing has the requested id.
	ErrNotFound = errors.New("not found")
	// ErrPersistenceUnavailable wraps blob store read and write failures.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)

// Reason classifies a rejected operation.
type Reason string

const (
	ReasonInvalidInput       Reason = "invalid_input"
	ReasonPreconditionFailed Reason = "precondition_failed"
	ReasonNotFound           Reason = "not_found"
)

// Outcome is the result of a core operation. A rejected outcome means the
// state was left unchanged.
type Outcome struct {
	Applied bool   `json:"applied"`
	Reason  Reason `json:"reason,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Ok is the outcome of an operation that changed state.
func Ok() Outcome {
	return Outcome{Applied: true}
}

// Rejected is the outcome of an operation that left state unchanged.
func Rejected(reason Reason, detail string) Outcome {
	return Outcome{Reason: reason, Detail: detail}
}

// Err returns nil for applied outcomes and a sentinel-wrapping error otherwise.
func (o Outcome) Err() error {
	if o.Applied {
		return nil
	}
	var base error
	switch o.Reason {
	case ReasonInvalidInput:
		base = ErrInvalidInput
	case ReasonNotFound:
		base = ErrNotFound
	default:
		base = ErrPreconditionFailed
	}
	if o.Detail == "" {
		return base
	}
	return fmt.Errorf("%w: %s", base, o.Detail)
}
