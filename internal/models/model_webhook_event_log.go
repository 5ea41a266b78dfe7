package models

import (
	"time"

	"gorm.io/datatypes"
)

type WebhookEventLogStatus string

const (
	WebhookEventLogStatusReceived     WebhookEventLogStatus = "received"
	WebhookEventLogStatusHandled      WebhookEventLogStatus = "handled"
	WebhookEventLogStatusHandleFailed WebhookEventLogStatus = "handle_failed"
)

// WebhookEventLog is the append-only audit trail of raw vendor deliveries.
// Writes are best-effort; a failed insert never fails the webhook request.
type WebhookEventLog struct {
	ID            string                `gorm:"column:id;type:uuid;primary_key" json:"id"`
	EventID       string                `gorm:"column:event_id;type:varchar(128);index" json:"event_id"`
	EventType     string                `gorm:"column:event_type;type:varchar(64);not null" json:"event_type"`
	UserID        *string               `gorm:"column:user_id;type:varchar(64)" json:"user_id"`
	TraceID       string                `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	ProductID     string                `gorm:"column:product_id;type:varchar(128)" json:"product_id"`
	TransactionID string                `gorm:"column:transaction_id;type:varchar(128)" json:"transaction_id"`
	Store         string                `gorm:"column:store;type:varchar(32)" json:"store"`
	Environment   string                `gorm:"column:environment;type:varchar(32)" json:"environment"`
	PeriodType    string                `gorm:"column:period_type;type:varchar(32)" json:"period_type"`
	Duplicate     bool                  `gorm:"column:duplicate;not null;default:false" json:"duplicate"`
	Payload       datatypes.JSON        `gorm:"column:payload;type:jsonb" json:"payload"`
	Result        *datatypes.JSON       `gorm:"column:result;type:jsonb" json:"result"`
	Status        WebhookEventLogStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
}

func (WebhookEventLog) TableName() string { return "webhook_event_log" }
