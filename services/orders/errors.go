package orders

import "fmt"

// ValidationError reports bad or missing caller input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an unknown order, product or session reference.
type NotFoundError struct {
	Resource string
	Ref      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Ref)
}

// PreconditionError reports an operation invoked out of sequence, such as
// verifying a payment that was never initiated.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string { return e.Reason }

// GatewayError carries a failed payment-processor call. When the gateway
// answered with an error response, StatusCode and Payload hold what it
// sent, verbatim, for diagnostics.
type GatewayError struct {
	Op         string
	StatusCode int
	Payload    []byte
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("gateway %s: status %d: %s", e.Op, e.StatusCode, e.Payload)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// PersistenceError wraps a storage read or write failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *PersistenceError) Unwrap() error { return e.Err }
