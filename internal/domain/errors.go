package domain

import "errors"

// Error taxonomy. Handlers map these to transport codes; usecases wrap them
// with fmt.Errorf("...: %w", ...) for detail.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrOrderNotFound      = errors.New("order not found")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrBrokerNotFound     = errors.New("broker not found")
	ErrPreconditionFailed = errors.New("operation not allowed in current status")

	// ErrRelationshipConflict: duplicate relationship log for the same
	// (target, order) pair. Batch callers catch and log it per item.
	ErrRelationshipConflict = errors.New("lead already assigned to this target in this order")

	// ErrProxyUnavailable aborts a single lead's submission; the pipeline
	// records one failure and moves on.
	ErrProxyUnavailable = errors.New("no proxy available")

	ErrFingerprintExists = errors.New("lead already has a fingerprint assigned")
)
