package reconciler

import (
	"strings"

	"github.com/humidor/entitlements/pkg/types"
)

// ResolvePlanName maps a vendor SKU onto the internal plan catalog. Yearly
// naming patterns (and the vendor's "$rc_annual" sentinel) resolve to the
// yearly plan; everything else, including unknown SKUs, falls back to
// monthly.
func ResolvePlanName(productID string) types.PlanName {
	p := strings.ToLower(productID)
	if strings.Contains(p, "yearly") || strings.Contains(p, "annual") || p == "$rc_annual" {
		return types.PlanNamePremiumYearly
	}
	return types.PlanNamePremiumMonthly
}
