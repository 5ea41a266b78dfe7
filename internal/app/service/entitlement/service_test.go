package entitlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/humidor/entitlements/internal/models"
	"github.com/humidor/entitlements/pkg/types"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	return NewService(gdb, zap.NewNop().Sugar()), mock
}

func testRecord() *models.UserSubscription {
	now := time.Now()
	return &models.UserSubscription{
		UserID:                "user-1",
		PlanID:                "plan-1",
		Status:                types.SubscriptionStatusActive,
		SubscriptionStartDate: now,
		SubscriptionEndDate:   now.Add(30 * 24 * time.Hour),
		AutoRenew:             true,
		IsPremium:             true,
		VendorUserID:          "orig-1",
		UpdatedAt:             now,
	}
}

func TestFindPlanByName(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "subscription_plans"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow("plan-y", string(types.PlanNamePremiumYearly), time.Now()))

	plan, err := svc.FindPlanByName(context.Background(), types.PlanNamePremiumYearly)
	require.NoError(t, err)
	assert.Equal(t, "plan-y", plan.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPlanByName_Miss(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "subscription_plans"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}))

	_, err := svc.FindPlanByName(context.Background(), types.PlanNamePremiumMonthly)
	require.ErrorIs(t, err, ErrPlanMissing)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWrite_ProcedurePathSucceeds(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectExec("SELECT handle_revenuecat_event").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec, fellBack, err := svc.Write(context.Background(), testRecord())
	require.NoError(t, err)
	assert.False(t, fellBack, "no fallback when the procedure succeeds")
	assert.Equal(t, "user-1", rec.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWrite_ProcedureFailureFallsBackToUpsert(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectExec("SELECT handle_revenuecat_event").
		WillReturnError(errors.New("function handle_revenuecat_event does not exist"))
	mock.ExpectExec(`INSERT INTO "user_subscriptions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec, fellBack, err := svc.Write(context.Background(), testRecord())
	require.NoError(t, err)
	assert.True(t, fellBack, "procedure failure must trigger the direct upsert")
	assert.Equal(t, "user-1", rec.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWrite_FallbackFailureIsFatal(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectExec("SELECT handle_revenuecat_event").
		WillReturnError(errors.New("permission denied"))
	mock.ExpectExec(`INSERT INTO "user_subscriptions"`).
		WillReturnError(errors.New("connection reset"))

	_, fellBack, err := svc.Write(context.Background(), testRecord())
	require.Error(t, err)
	assert.True(t, fellBack)
	assert.Contains(t, err.Error(), "fallback upsert failed")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPing(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery("SELECT 1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	require.NoError(t, svc.Ping(context.Background()))

	mock.ExpectQuery("SELECT 1").
		WillReturnError(errors.New("dial tcp: connection refused"))
	require.Error(t, svc.Ping(context.Background()))

	require.NoError(t, mock.ExpectationsWereMet())
}
