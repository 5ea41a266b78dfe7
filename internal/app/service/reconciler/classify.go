package reconciler

import "github.com/humidor/entitlements/pkg/types"

// Classify maps a vendor event type onto a subscription status. The mapping
// is total: unknown event types (including future vendor additions) leave the
// subscription active rather than revoking access. Status never consults
// prior state. TEST events are short-circuited by the caller and never reach
// this function.
func Classify(eventType string) types.SubscriptionStatus {
	switch eventType {
	case types.EventTypeCancellation:
		return types.SubscriptionStatusCancelled
	case types.EventTypeExpiration:
		return types.SubscriptionStatusExpired
	case types.EventTypeBillingIssue:
		return types.SubscriptionStatusPastDue
	default:
		return types.SubscriptionStatusActive
	}
}
