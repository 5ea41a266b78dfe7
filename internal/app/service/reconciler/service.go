package reconciler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/humidor/entitlements/internal/app/service/entitlement"
	"github.com/humidor/entitlements/internal/models"
	"github.com/humidor/entitlements/internal/platform/cache"
	"github.com/humidor/entitlements/pkg/logctx"
	"github.com/humidor/entitlements/pkg/types"
)

// Result is the outcome of one processed delivery.
type Result struct {
	// Record is the persisted entitlement row; nil for TEST events.
	Record *models.UserSubscription
	// CorrectedDates reports whether the sanitizer repaired the window.
	CorrectedDates bool
	// TestEvent reports the TEST shortcut: acknowledged, nothing written.
	TestEvent bool
	// FallbackWrite reports that the direct upsert ran instead of the
	// store procedure.
	FallbackWrite bool
}

// Reconciler turns one inbound vendor delivery into a corrected, persisted
// entitlement record. It is transport-free; both HTTP bindings call it.
type Reconciler interface {
	Reconcile(ctx context.Context, env *types.WebhookEnvelope) (*Result, error)
}

// AuditLog appends raw deliveries to the audit trail, best-effort.
type AuditLog interface {
	Save(ctx context.Context, row *models.WebhookEventLog)
}

type Service struct {
	store  entitlement.Store
	audit  AuditLog
	marker cache.DeliveryMarker
	log    *zap.SugaredLogger
}

func NewService(store entitlement.Store, audit AuditLog, marker cache.DeliveryMarker, log *zap.SugaredLogger) *Service {
	return &Service{store: store, audit: audit, marker: marker, log: log}
}

var _ Reconciler = (*Service)(nil)

func (s *Service) Reconcile(ctx context.Context, env *types.WebhookEnvelope) (res *Result, resErr error) {
	if env == nil || env.Event == nil {
		return nil, ErrMissingEvent
	}
	ev := env.Event
	lg := logctx.FromCtx(ctx, s.log)

	firstDelivery := s.marker.MarkDelivered(ctx, ev.ID)
	if !firstDelivery {
		duplicateDeliveriesTotal.Inc()
		lg.Infow("duplicate_delivery", "event_id", ev.ID, "event_type", ev.Type)
	}

	s.audit.Save(ctx, s.auditRow(ctx, ev, !firstDelivery, models.WebhookEventLogStatusReceived, nil, nil))
	defer func() {
		status := models.WebhookEventLogStatusHandled
		if resErr != nil {
			status = models.WebhookEventLogStatusHandleFailed
		}
		s.audit.Save(ctx, s.auditRow(ctx, ev, !firstDelivery, status, res, resErr))
		eventsTotal.WithLabelValues(ev.Type, outcome(resErr)).Inc()
	}()

	// TEST deliveries are acknowledged before anything is derived or
	// written, including timestamp validation.
	if ev.Type == types.EventTypeTest {
		lg.Infow("test_event_acknowledged")
		return &Result{TestEvent: true}, nil
	}

	if ev.AppUserID == "" {
		return nil, fmt.Errorf("%w: app_user_id is empty", ErrMissingEvent)
	}

	purchasedMs, err := ParseEpochMs(ev.PurchasedAtMs)
	if err != nil {
		return nil, fmt.Errorf("purchased_at_ms: %w", err)
	}
	expirationMs, err := ParseEpochMs(ev.ExpirationAtMs)
	if err != nil {
		return nil, fmt.Errorf("expiration_at_ms: %w", err)
	}

	purchasedMs, expirationMs, corrected := Sanitize(purchasedMs, expirationMs, ev.ProductID)
	if corrected {
		correctedWindowsTotal.Inc()
		lg.Warnw("corrected_event_window",
			"event_type", ev.Type,
			"product_id", ev.ProductID,
			"expiration_at_ms", expirationMs,
		)
	}

	status := Classify(ev.Type)

	plan, err := s.store.FindPlanByName(ctx, ResolvePlanName(ev.ProductID))
	if err != nil {
		if errors.Is(err, entitlement.ErrPlanMissing) {
			return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, ev.ProductID)
		}
		return nil, err
	}

	now := time.Now()
	start := time.UnixMilli(purchasedMs)
	end := time.UnixMilli(expirationMs)
	rec := &models.UserSubscription{
		UserID:                ev.AppUserID,
		PlanID:                plan.ID,
		Status:                status,
		SubscriptionStartDate: start,
		SubscriptionEndDate:   end,
		AutoRenew:             ev.AutoRenewStatus,
		VendorUserID:          vendorUserID(ev),
		LastEventAt:           lo.ToPtr(start),
		UpdatedAt:             now,
	}
	rec.IsPremium = rec.PremiumAt(now)

	rec, fellBack, err := s.store.Write(ctx, rec)
	if err != nil {
		return nil, err
	}
	if fellBack {
		fallbackWritesTotal.Inc()
	}

	lg.Infow("entitlement_reconciled",
		"user_id", rec.UserID,
		"event_type", ev.Type,
		"status", rec.Status,
		"corrected_dates", corrected,
		"fallback_write", fellBack,
	)
	return &Result{Record: rec, CorrectedDates: corrected, FallbackWrite: fellBack}, nil
}

func (s *Service) auditRow(ctx context.Context, ev *types.WebhookEvent, duplicate bool, status models.WebhookEventLogStatus, res *Result, resErr error) *models.WebhookEventLog {
	payload, _ := json.Marshal(ev)
	row := &models.WebhookEventLog{
		EventID:       ev.ID,
		EventType:     ev.Type,
		UserID:        nilIfEmpty(ev.AppUserID),
		TraceID:       traceID(ctx),
		ProductID:     ev.ProductID,
		TransactionID: ev.TransactionID,
		Store:         ev.Store,
		Environment:   string(ev.Environment),
		PeriodType:    ev.PeriodType,
		Duplicate:     duplicate,
		Payload:       datatypes.JSON(payload),
		Status:        status,
	}
	if status != models.WebhookEventLogStatusReceived {
		resMap := map[string]any{}
		if res != nil {
			resMap["record"] = res.Record
			resMap["corrected_dates"] = res.CorrectedDates
		}
		if resErr != nil {
			resMap["error"] = resErr.Error()
		}
		resBytes, _ := json.Marshal(resMap)
		row.Result = lo.ToPtr(datatypes.JSON(resBytes))
	}
	return row
}

func vendorUserID(ev *types.WebhookEvent) string {
	if ev.OriginalAppUserID != "" {
		return ev.OriginalAppUserID
	}
	return ev.AppUserID
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return lo.ToPtr(s)
}

func traceID(ctx context.Context) string {
	if tid, ok := ctx.Value("traceID").(string); ok {
		return tid
	}
	return ""
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	switch {
	case errors.Is(err, ErrMissingEvent), errors.Is(err, ErrInvalidTimestamp):
		return "rejected"
	default:
		return "failed"
	}
}
