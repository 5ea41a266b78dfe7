package models

import (
	"time"

	"github.com/humidor/entitlements/pkg/types"
)

// UserSubscription is the single entitlement row per user. Every processed
// vendor event overwrites it whole (upsert on user_id); it is not an event
// log, and the last completed write wins.
type UserSubscription struct {
	UserID                string                   `gorm:"column:user_id;type:varchar(64);primary_key" json:"user_id"`
	PlanID                string                   `gorm:"column:plan_id;type:uuid;not null" json:"plan_id"`
	Status                types.SubscriptionStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	SubscriptionStartDate time.Time                `gorm:"column:subscription_start_date;not null" json:"subscription_start_date"`
	SubscriptionEndDate   time.Time                `gorm:"column:subscription_end_date;not null" json:"subscription_end_date"`
	AutoRenew             bool                     `gorm:"column:auto_renew;not null" json:"auto_renew"`
	IsPremium             bool                     `gorm:"column:is_premium;not null" json:"is_premium"`
	VendorUserID          string                   `gorm:"column:vendor_user_id;type:varchar(128)" json:"vendor_user_id"`
	// LastEventAt is the purchase timestamp of the event that produced this
	// row state. Diagnostic only; it does not gate writes.
	LastEventAt *time.Time `gorm:"column:last_event_at" json:"last_event_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

// PremiumAt reports whether the row grants paid access at the given time.
// A cancelled subscription keeps access until its end date passes.
func (s *UserSubscription) PremiumAt(at time.Time) bool {
	if s == nil {
		return false
	}
	switch s.Status {
	case types.SubscriptionStatusActive, types.SubscriptionStatusCancelled:
		return s.SubscriptionEndDate.After(at)
	default:
		return false
	}
}
