package reconciler

import "errors"

// Sentinel errors for the webhook pipeline. Transport adapters map these onto
// HTTP status codes; everything else surfaces as a 500.
var (
	// ErrMissingEvent: the delivery envelope carries no usable event object.
	ErrMissingEvent = errors.New("missing event object")
	// ErrInvalidTimestamp: a vendor timestamp is absent or fails to parse to
	// a finite epoch-millisecond integer.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	// ErrPlanNotFound: the resolved plan name has no row in the plan table.
	// This is a data-setup bug, not a client error.
	ErrPlanNotFound = errors.New("plan not found")
)
