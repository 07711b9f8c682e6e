package approval

import "errors"

// Approval workflow errors
var (
	ErrRequestNotFound         = errors.New("request not found")
	ErrInvalidTransition       = errors.New("request is not in a state that allows this action")
	ErrUnauthorized            = errors.New("actor is not authorized for this approval action")
	ErrRejectionReasonRequired = errors.New("a rejection reason is required")
	ErrVersionConflict         = errors.New("request was modified concurrently")
)
