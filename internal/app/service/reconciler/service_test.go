package reconciler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/humidor/entitlements/internal/app/service/entitlement"
	"github.com/humidor/entitlements/internal/models"
	"github.com/humidor/entitlements/pkg/types"
)

type stubStore struct {
	planErr       error
	written       *models.UserSubscription
	writeErr      error
	fellBack      bool
	planLookups   int
	writes        int
	requestedPlan types.PlanName
}

func (s *stubStore) FindPlanByName(_ context.Context, name types.PlanName) (*models.SubscriptionPlan, error) {
	s.planLookups++
	s.requestedPlan = name
	if s.planErr != nil {
		return nil, s.planErr
	}
	return &models.SubscriptionPlan{ID: "plan-1", Name: name}, nil
}

func (s *stubStore) Write(_ context.Context, rec *models.UserSubscription) (*models.UserSubscription, bool, error) {
	s.writes++
	if s.writeErr != nil {
		return nil, true, s.writeErr
	}
	s.written = rec
	return rec, s.fellBack, nil
}

func (s *stubStore) Ping(context.Context) error { return nil }

type stubAudit struct{ rows []*models.WebhookEventLog }

func (a *stubAudit) Save(_ context.Context, row *models.WebhookEventLog) {
	a.rows = append(a.rows, row)
}

type stubMarker struct{ seen map[string]bool }

func (m *stubMarker) MarkDelivered(_ context.Context, id string) bool {
	if m.seen == nil {
		m.seen = map[string]bool{}
	}
	first := !m.seen[id]
	m.seen[id] = true
	return first
}

func newTestService(store *stubStore) (*Service, *stubAudit) {
	audit := &stubAudit{}
	return NewService(store, audit, &stubMarker{}, zap.NewNop().Sugar()), audit
}

func TestReconcile_MissingEvent(t *testing.T) {
	svc, _ := newTestService(&stubStore{})

	_, err := svc.Reconcile(context.Background(), nil)
	require.ErrorIs(t, err, ErrMissingEvent)

	_, err = svc.Reconcile(context.Background(), &types.WebhookEnvelope{})
	require.ErrorIs(t, err, ErrMissingEvent)

	_, err = svc.Reconcile(context.Background(), &types.WebhookEnvelope{
		Event: &types.WebhookEvent{Type: types.EventTypeRenewal},
	})
	require.ErrorIs(t, err, ErrMissingEvent, "empty app_user_id is an unusable event")
}

func TestReconcile_TestShortcut(t *testing.T) {
	store := &stubStore{}
	svc, _ := newTestService(store)

	res, err := svc.Reconcile(context.Background(), &types.WebhookEnvelope{
		Event: &types.WebhookEvent{Type: types.EventTypeTest},
	})
	require.NoError(t, err)
	assert.True(t, res.TestEvent)
	assert.Nil(t, res.Record)
	assert.Zero(t, store.planLookups, "TEST events must not resolve plans")
	assert.Zero(t, store.writes, "TEST events must not write")
}

func TestReconcile_InvalidTimestamps(t *testing.T) {
	store := &stubStore{}
	svc, _ := newTestService(store)

	for _, ev := range []*types.WebhookEvent{
		{Type: types.EventTypeRenewal, AppUserID: "u1", ExpirationAtMs: "123"},
		{Type: types.EventTypeRenewal, AppUserID: "u1", PurchasedAtMs: "123"},
		{Type: types.EventTypeRenewal, AppUserID: "u1", PurchasedAtMs: "abc", ExpirationAtMs: "123"},
	} {
		_, err := svc.Reconcile(context.Background(), &types.WebhookEnvelope{Event: ev})
		require.ErrorIs(t, err, ErrInvalidTimestamp)
	}
	assert.Zero(t, store.writes)
}

func TestReconcile_CorruptMonthlyWindow(t *testing.T) {
	store := &stubStore{}
	svc, audit := newTestService(store)

	purchased := int64(1698123456789)
	res, err := svc.Reconcile(context.Background(), &types.WebhookEnvelope{
		Event: &types.WebhookEvent{
			ID:              "ev-1",
			Type:            types.EventTypeInitialPurchase,
			AppUserID:       "user-1",
			ProductID:       "premium_monthly",
			PurchasedAtMs:   "1698123456789",
			ExpirationAtMs:  "1698123636789", // three minutes later
			AutoRenewStatus: true,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Record)

	assert.True(t, res.CorrectedDates)
	assert.Equal(t, "user-1", res.Record.UserID)
	assert.Equal(t, types.SubscriptionStatusActive, res.Record.Status)
	assert.Equal(t, time.UnixMilli(purchased), res.Record.SubscriptionStartDate)
	assert.Equal(t, time.UnixMilli(purchased+monthMs), res.Record.SubscriptionEndDate)
	assert.True(t, res.Record.AutoRenew)

	// received + handled audit rows, fire-and-forget
	require.Len(t, audit.rows, 2)
	assert.Equal(t, models.WebhookEventLogStatusReceived, audit.rows[0].Status)
	assert.Equal(t, models.WebhookEventLogStatusHandled, audit.rows[1].Status)
}

func TestReconcile_ValidYearlyCancellation(t *testing.T) {
	store := &stubStore{}
	svc, _ := newTestService(store)

	purchased := time.Now().Add(-30 * 24 * time.Hour).UnixMilli()
	expiration := purchased + yearMs
	res, err := svc.Reconcile(context.Background(), &types.WebhookEnvelope{
		Event: &types.WebhookEvent{
			Type:              types.EventTypeCancellation,
			AppUserID:         "user-2",
			OriginalAppUserID: "orig-2",
			ProductID:         "premium_yearly",
			PurchasedAtMs:     purchased,
			ExpirationAtMs:    expiration,
		},
	})
	require.NoError(t, err)

	assert.False(t, res.CorrectedDates, "valid windows pass through")
	assert.Equal(t, types.SubscriptionStatusCancelled, res.Record.Status)
	assert.Equal(t, time.UnixMilli(expiration), res.Record.SubscriptionEndDate)
	assert.Equal(t, "orig-2", res.Record.VendorUserID)
	// cancelled but not yet past the end date: still premium
	assert.True(t, res.Record.IsPremium)
	assert.Equal(t, types.PlanNamePremiumYearly, store.requestedPlan)
}

func TestReconcile_PlanNotFound(t *testing.T) {
	store := &stubStore{planErr: entitlement.ErrPlanMissing}
	svc, audit := newTestService(store)

	now := time.Now().UnixMilli()
	_, err := svc.Reconcile(context.Background(), &types.WebhookEnvelope{
		Event: &types.WebhookEvent{
			Type:           types.EventTypeRenewal,
			AppUserID:      "user-3",
			ProductID:      "premium_monthly",
			PurchasedAtMs:  now,
			ExpirationAtMs: now + monthMs,
		},
	})
	require.ErrorIs(t, err, ErrPlanNotFound)
	assert.Zero(t, store.writes)
	require.Len(t, audit.rows, 2)
	assert.Equal(t, models.WebhookEventLogStatusHandleFailed, audit.rows[1].Status)
}

func TestReconcile_ExpirationEventIsNotPremium(t *testing.T) {
	store := &stubStore{}
	svc, _ := newTestService(store)

	purchased := time.Now().Add(-40 * 24 * time.Hour).UnixMilli()
	res, err := svc.Reconcile(context.Background(), &types.WebhookEnvelope{
		Event: &types.WebhookEvent{
			Type:           types.EventTypeExpiration,
			AppUserID:      "user-4",
			ProductID:      "premium_monthly",
			PurchasedAtMs:  purchased,
			ExpirationAtMs: purchased + monthMs,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, types.SubscriptionStatusExpired, res.Record.Status)
	assert.False(t, res.Record.IsPremium)
}
