package workflow

import "errors"

var (
	// ErrDeliveryNotFound is returned when an operation names an id that is not in the collection.
	ErrDeliveryNotFound = errors.New("delivery not found")
	// ErrIllegalTransition is returned when a status change is not in the transition table.
	ErrIllegalTransition = errors.New("illegal status transition")

	ErrDamageUndetermined = errors.New("return quantity given but damaged container not determined")
	ErrStepNotReachable   = errors.New("step not reached yet")
	ErrWrongStage         = errors.New("operation not available at current stage")
	ErrSessionClosed      = errors.New("session closed")
	ErrBusy               = errors.New("another operation is in progress")
)
