package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a Failure so callers can decide how to surface it.
type Kind string

const (
	KindValidation          Kind = "validation"
	KindInvalidTransition   Kind = "invalid_transition"
	KindSimulatedNetwork    Kind = "simulated_network"
	KindInsufficientBalance Kind = "insufficient_balance"
	KindNotFound            Kind = "not_found"
	KindConflict            Kind = "conflict"
	KindUnauthorized        Kind = "unauthorized"
	KindInternal            Kind = "internal"
)

// Failure is a domain error with a kind and a human-readable message.
// From and To are only set for invalid transitions.
type Failure struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
}

var PaymentDeclined = &Failure{Kind: KindSimulatedNetwork, Message: "Payment declined. Please check your details."}
var NetworkError = &Failure{Kind: KindSimulatedNetwork, Message: "Network error. Please try again."}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// Is matches another *Failure of the same kind and message.
func (e *Failure) Is(target error) bool {
	var other *Failure
	if !errors.As(target, &other) {
		return false
	}

	return e.Kind == other.Kind && e.Message == other.Message
}

// Validation returns a new Failure for unmet input requirements.
func Validation(msg string) error {
	return &Failure{
		Kind:    KindValidation,
		Message: msg,
	}
}

// ValidationFromError returns a new Failure for unmet input requirements with message derived from an error.
func ValidationFromError(err error) error {
	if err != nil {
		return &Failure{
			Kind:    KindValidation,
			Message: err.Error(),
		}
	}

	return nil
}

// InvalidTransition returns a new Failure naming the current status and the attempted one.
func InvalidTransition(from, to string) error {
	return &Failure{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot change booking status from %s to %s", from, to),
		From:    from,
		To:      to,
	}
}

// SimulatedNetwork returns a new Failure for an injected round-trip failure.
func SimulatedNetwork(msg string) error {
	return &Failure{
		Kind:    KindSimulatedNetwork,
		Message: msg,
	}
}

// InsufficientBalance returns a new Failure for wallet payments that exceed the balance.
func InsufficientBalance(balance, required float64) error {
	return &Failure{
		Kind:    KindInsufficientBalance,
		Message: fmt.Sprintf("Insufficient wallet balance. You have %.2f, %.2f is required.", balance, required),
	}
}

// NotFound returns a new Failure for a missing entity.
func NotFound(entityName string) error {
	return &Failure{
		Kind:    KindNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Kind:    KindConflict,
		Message: message,
	}
}

func Unauthorized(msg string) error {
	return &Failure{
		Kind:    KindUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with kind internal and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Kind:    KindInternal,
			Message: err.Error(),
		}
	}

	return nil
}

// GetKind returns the kind of an error interface.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return KindInternal
}

// IsKind reports whether err is a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind == kind
	}

	return false
}

// Retryable reports whether the user may simply repeat the operation.
func Retryable(err error) bool {
	return IsKind(err, KindSimulatedNetwork)
}
