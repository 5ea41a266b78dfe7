package entitlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/humidor/entitlements/internal/models"
	"github.com/humidor/entitlements/pkg/logctx"
	"github.com/humidor/entitlements/pkg/types"
)

// Bounds for outbound store calls. A timed-out call behaves exactly like a
// failed one: the primary path falls back, the fallback surfaces the error.
const (
	writeTimeout = 6 * time.Second
	probeTimeout = 5 * time.Second
)

// ErrPlanMissing reports a plan-catalog lookup miss.
var ErrPlanMissing = errors.New("plan row not found")

// Store is the persistence surface the reconciler writes through.
type Store interface {
	// FindPlanByName looks up a plan row by catalog name. A miss returns
	// ErrPlanMissing.
	FindPlanByName(ctx context.Context, name types.PlanName) (*models.SubscriptionPlan, error)
	// Write persists the entitlement row. It first invokes the store-side
	// procedure (so privileged server logic can apply), and on any procedure
	// error falls back to a direct full-field upsert keyed by user_id. Only a
	// fallback failure is returned. The second result reports whether the
	// fallback path ran.
	Write(ctx context.Context, rec *models.UserSubscription) (*models.UserSubscription, bool, error)
	// Ping performs a trivial read against the store.
	Ping(ctx context.Context) error
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

var _ Store = (*Service)(nil)

func (s *Service) FindPlanByName(ctx context.Context, name types.PlanName) (*models.SubscriptionPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var plan models.SubscriptionPlan
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPlanMissing, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan %s: %w", name, err)
	}
	return &plan, nil
}

func (s *Service) Write(ctx context.Context, rec *models.UserSubscription) (*models.UserSubscription, bool, error) {
	if err := s.callProcedure(ctx, rec); err == nil {
		return rec, false, nil
	} else {
		logctx.FromCtx(ctx, s.log).Warnw("store procedure failed, falling back to direct upsert",
			"user_id", rec.UserID, "err", err)
	}

	if err := s.upsert(ctx, rec); err != nil {
		return nil, true, fmt.Errorf("fallback upsert failed: %w", err)
	}
	return rec, true, nil
}

// callProcedure runs the store-side reconciliation function under the
// privileged role. Its failure is never fatal; the caller falls back.
func (s *Service) callProcedure(ctx context.Context, rec *models.UserSubscription) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	return s.db.WithContext(ctx).Exec(
		"SELECT handle_revenuecat_event(?, ?, ?, ?, ?, ?, ?, ?)",
		rec.UserID,
		rec.VendorUserID,
		rec.PlanID,
		string(rec.Status),
		rec.SubscriptionStartDate,
		rec.SubscriptionEndDate,
		rec.AutoRenew,
		rec.IsPremium,
	).Error
}

// upsert is the direct write path: a full-field insert-or-update keyed by
// user_id. Because every field is written, redelivery of the same event
// converges to the same row state.
func (s *Service) upsert(ctx context.Context, rec *models.UserSubscription) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"plan_id",
			"status",
			"subscription_start_date",
			"subscription_end_date",
			"auto_renew",
			"is_premium",
			"vendor_user_id",
			"last_event_at",
			"updated_at",
		}),
	}).Create(rec).Error
}

func (s *Service) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var one int
	if err := s.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return fmt.Errorf("store probe failed: %w", err)
	}
	return nil
}
