package billing

import (
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
)

// GatewayError wraps a failed provider call with the provider's own message.
// No retry happens at this layer; callers decide what a failed call means.
type GatewayError struct {
	Op      string
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("billing gateway %s: %s", e.Op, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &GatewayError{Op: op, Message: stripeErr.Msg, Err: err}
	}
	return &GatewayError{Op: op, Message: err.Error(), Err: err}
}

// IsGatewayError reports whether err came from a provider call.
func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
