package response

// Response envelopes for the webhook surface. The vendor's retry logic keys
// off the HTTP status code; the bodies exist for operators reading delivery
// logs, so they stay flat and small.

// WebhookResult is the success body for a processed webhook delivery.
type WebhookResult struct {
	Success        bool `json:"success"`
	Data           any  `json:"data"`
	CorrectedDates bool `json:"corrected_dates"`
}

// WebhookError is the error body for a rejected or failed delivery.
type WebhookError struct {
	Error string `json:"error"`
}

// HealthOK is the body for a passing health probe.
type HealthOK struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// HealthError is the body for a failing health probe.
type HealthError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func OK(data any, corrected bool) *WebhookResult {
	return &WebhookResult{Success: true, Data: data, CorrectedDates: corrected}
}

func Error(msg string) *WebhookError {
	return &WebhookError{Error: msg}
}
