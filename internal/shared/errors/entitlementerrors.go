package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Entitlement and orchestration error types. These map directly to the
// boundary status codes: subscription and plan failures are 403, quota
// exhaustion is 429, upstream collaborator failures are 502.
const (
	ErrorTypeSubscriptionRequired ErrorType = "subscription_required"
	ErrorTypePlanUpgradeRequired  ErrorType = "plan_upgrade_required"
	ErrorTypeUsageLimitReached    ErrorType = "usage_limit_reached"
	ErrorTypeUpstream             ErrorType = "upstream_error"
	ErrorTypeSafetyLimitExceeded  ErrorType = "safety_limit_exceeded"
)

// NewSubscriptionRequiredError is returned when no active or trialing
// subscription exists for the principal.
func NewSubscriptionRequiredError(details ...string) *AppError {
	detail := "An active subscription is required for this feature"
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    ErrorTypeSubscriptionRequired,
		Message: "Subscription required",
		Code:    http.StatusForbidden,
		Details: detail,
	}
}

// NewPlanUpgradeRequiredError is returned when the current plan tier does
// not include the requested feature.
func NewPlanUpgradeRequiredError(details ...string) *AppError {
	detail := "Your current plan does not include this feature"
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    ErrorTypePlanUpgradeRequired,
		Message: "Plan upgrade required",
		Code:    http.StatusForbidden,
		Details: detail,
	}
}

// NewUsageLimitReachedError is returned when the billing-period quota for a
// metric is exhausted.
func NewUsageLimitReachedError(metric string, limit int) *AppError {
	return &AppError{
		Type:    ErrorTypeUsageLimitReached,
		Message: "Usage limit reached",
		Code:    http.StatusTooManyRequests,
		Details: fmt.Sprintf("%s limit of %d reached for the current billing period", metric, limit),
	}
}

// NewUpstreamError is returned when an external collaborator (model endpoint
// or discovery service) fails. The message stays generic; callers log the
// full detail server-side.
func NewUpstreamError(service string) *AppError {
	return &AppError{
		Type:    ErrorTypeUpstream,
		Message: "Upstream service error",
		Code:    http.StatusBadGateway,
		Details: fmt.Sprintf("%s is temporarily unavailable", service),
	}
}

// NewSafetyLimitExceededError is returned when the orchestration loop hits
// its hard iteration bound.
func NewSafetyLimitExceededError() *AppError {
	return &AppError{
		Type:    ErrorTypeSafetyLimitExceeded,
		Message: "Conversation could not be completed",
		Code:    http.StatusInternalServerError,
		Details: "the assistant exceeded the maximum number of reasoning steps",
	}
}

// IsUsageLimitError checks if the error is a usage limit error (supports wrapped errors)
func IsUsageLimitError(err error) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == ErrorTypeUsageLimitReached
	}
	return false
}
