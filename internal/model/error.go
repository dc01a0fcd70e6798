package model

import (
	"errors"
	"fmt"
)

var (
	ErrorMessageNotFound         = errors.New("message not found")
	ErrorDuplicateMessage        = errors.New("duplicate message id")
	ErrorInvalidStatusTransition = errors.New("invalid status transition")
)

// ValidationError reports which field of a message submission was rejected.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DeliveryError wraps a transport failure with the ID of the message that
// failed to leave the system, so callers can reconcile against the store.
type DeliveryError struct {
	MessageID MessageID
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivering message %s: %v", e.MessageID, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
