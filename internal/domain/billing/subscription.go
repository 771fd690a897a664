package billing

import (
	"fmt"
	"time"

	"beacon/internal/shared/biztime"
	"beacon/internal/shared/id"
)

type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusTrialing SubscriptionStatus = "trialing"
	StatusPastDue  SubscriptionStatus = "past_due"
	StatusCanceled SubscriptionStatus = "canceled"
	StatusUnpaid   SubscriptionStatus = "unpaid"
)

func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusTrialing, StatusPastDue, StatusCanceled, StatusUnpaid:
		return true
	}
	return false
}

// Subscription is the billing record for a principal. It is written by the
// external checkout/webhook plumbing; this core only reads it to decide
// entitlements. A subscription is usable while active or trialing.
type Subscription struct {
	id               uint
	sid              string
	userID           string
	planTier         PlanTier
	status           SubscriptionStatus
	currentPeriodEnd time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

func NewSubscription(userID string, tier PlanTier, status SubscriptionStatus, currentPeriodEnd time.Time) (*Subscription, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if !tier.IsValid() {
		return nil, fmt.Errorf("invalid plan tier: %s", tier)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}

	now := biztime.NowUTC()
	return &Subscription{
		sid:              id.NewSubscriptionID(),
		userID:           userID,
		planTier:         tier,
		status:           status,
		currentPeriodEnd: currentPeriodEnd,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructSubscription(sid uint, externalSID, userID string, tier PlanTier,
	status SubscriptionStatus, currentPeriodEnd, createdAt, updatedAt time.Time) (*Subscription, error) {

	if sid == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}
	return &Subscription{
		id:               sid,
		sid:              externalSID,
		userID:           userID,
		planTier:         tier,
		status:           status,
		currentPeriodEnd: currentPeriodEnd,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (s *Subscription) ID() uint {
	return s.id
}

func (s *Subscription) SID() string {
	return s.sid
}

func (s *Subscription) UserID() string {
	return s.userID
}

func (s *Subscription) PlanTier() PlanTier {
	return s.planTier
}

func (s *Subscription) Status() SubscriptionStatus {
	return s.status
}

func (s *Subscription) CurrentPeriodEnd() time.Time {
	return s.currentPeriodEnd
}

func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the internal ID (only for persistence layer use)
func (s *Subscription) SetID(sid uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if sid == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = sid
	return nil
}

// IsActive reports whether the subscription grants access. Trialing counts
// as active; past_due, canceled, and unpaid do not.
func (s *Subscription) IsActive() bool {
	return s.status == StatusActive || s.status == StatusTrialing
}

// PeriodStart computes the start of the usage-metering window at the given
// instant. When the billing anchor (CurrentPeriodEnd) is strictly in the
// future the window is anchored to it; otherwise a rolling window ending at
// now is used. This is a rolling approximation, not a calendar-aligned
// billing cycle.
func (s *Subscription) PeriodStart(now time.Time, periodDays int) time.Time {
	if periodDays <= 0 {
		periodDays = 30
	}
	window := time.Duration(periodDays) * 24 * time.Hour
	if s.currentPeriodEnd.After(now) {
		return s.currentPeriodEnd.Add(-window)
	}
	return now.Add(-window)
}
