package types

// Vendor event types delivered by the RevenueCat webhook. The set is open:
// unknown types are still processed and classify as an active subscription.
const (
	EventTypeInitialPurchase = "INITIAL_PURCHASE"
	EventTypeRenewal         = "RENEWAL"
	EventTypeCancellation    = "CANCELLATION"
	EventTypeUncancellation  = "UNCANCELLATION"
	EventTypeExpiration      = "EXPIRATION"
	EventTypeBillingIssue    = "BILLING_ISSUE"
	EventTypeTest            = "TEST"
)

type Environment string

const (
	EnvironmentSandbox    Environment = "SANDBOX"
	EnvironmentProduction Environment = "PRODUCTION"
)

// WebhookEnvelope is the body of a vendor webhook delivery.
type WebhookEnvelope struct {
	APIVersion string        `json:"api_version"`
	Event      *WebhookEvent `json:"event"`
}

// WebhookEvent is a single purchase-lifecycle event. The timestamp fields are
// untyped on purpose: the vendor has been observed sending them as JSON numbers
// and as numeric strings, and both must be parsed explicitly before any
// arithmetic happens.
type WebhookEvent struct {
	ID                    string      `json:"id"`
	Type                  string      `json:"type"`
	AppUserID             string      `json:"app_user_id"`
	OriginalAppUserID     string      `json:"original_app_user_id"`
	ProductID             string      `json:"product_id"`
	PeriodType            string      `json:"period_type"`
	PurchasedAtMs         any         `json:"purchased_at_ms"`
	ExpirationAtMs        any         `json:"expiration_at_ms"`
	Store                 string      `json:"store"`
	IsTrialPeriod         bool        `json:"is_trial_period"`
	AutoRenewStatus       bool        `json:"auto_renew_status"`
	OriginalTransactionID string      `json:"original_transaction_id"`
	TransactionID         string      `json:"transaction_id"`
	Environment           Environment `json:"environment"`
}
