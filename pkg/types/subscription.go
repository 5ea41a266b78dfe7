package types

type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusPastDue   SubscriptionStatus = "past_due"
	SubscriptionStatusNone      SubscriptionStatus = "none"
)

// PlanName is the internal plan catalog key. The vendor SKU is mapped onto one
// of these names before the plan row is looked up.
type PlanName string

const (
	PlanNamePremiumMonthly PlanName = "Premium Monthly"
	PlanNamePremiumYearly  PlanName = "Premium Yearly"
)

// ExpectedDurationDays returns the nominal length of one billing period.
func (p PlanName) ExpectedDurationDays() int {
	if p == PlanNamePremiumYearly {
		return 365
	}
	return 30
}
