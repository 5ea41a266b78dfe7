package models

import (
	"time"

	"github.com/humidor/entitlements/pkg/types"
)

// SubscriptionPlan is reference data managed in the store (Supabase owns the
// schema); rows are only ever read here, keyed by name.
type SubscriptionPlan struct {
	ID        string         `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Name      types.PlanName `gorm:"column:name;type:varchar(64);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// ExpectedDurationDays is the nominal billing-period length for this plan.
func (p *SubscriptionPlan) ExpectedDurationDays() int {
	return p.Name.ExpectedDurationDays()
}
