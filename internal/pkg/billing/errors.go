package billing

import "errors"

var (
	// ErrMalformedReference means external_reference is not "<userId>:<planName>".
	ErrMalformedReference = errors.New("malformed external reference")
	// ErrUnknownPlan means the referenced plan has no role mapping.
	ErrUnknownPlan = errors.New("unknown plan")
)
