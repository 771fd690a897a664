package billing

import "errors"

var (
	// ErrSubscriptionNotFound is returned when no subscription exists for a principal
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrUnknownPlanTier is returned when a tier has no entry in the plan table
	ErrUnknownPlanTier = errors.New("unknown plan tier")
)
