package db

import (
	"context"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/humidor/entitlements/internal/models"
	cfgpkg "github.com/humidor/entitlements/pkg/config"
	gormzap "github.com/humidor/entitlements/pkg/gormlog"
)

// NewDB opens the store connection. Missing credentials are logged but not
// fatal at startup: the connection is lazy, so a misconfigured deploy fails on
// the first request (and on the health probe) rather than at boot.
func NewDB(l *zap.SugaredLogger, cfg *cfgpkg.Config) (*gorm.DB, error) {
	if cfg.Store.DSN == "" {
		l.Errorw("store DSN is empty; requests will fail until configured")
	}
	if cfg.Store.ServiceKey == "" {
		l.Errorw("store service key is empty; server-side procedure path unavailable")
	}
	db, err := gorm.Open(postgres.Open(storeDSN(cfg.Store)), &gorm.Config{
		Logger:               gormzap.New(l),
		DisableAutomaticPing: true,
	})
	if err != nil {
		l.Errorf("failed to open store connection: %v", err)
		return nil, err
	}
	l.Infow("store connection configured")
	return db, nil
}

// storeDSN folds the service key into a keyword/value DSN as its password
// when the DSN does not already carry one. URL-form DSNs embed their own
// credentials and pass through untouched.
func storeDSN(store cfgpkg.StoreConfig) string {
	dsn := store.DSN
	if dsn == "" || store.ServiceKey == "" {
		return dsn
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return dsn
	}
	if strings.Contains(dsn, "password=") {
		return dsn
	}
	return dsn + " password=" + store.ServiceKey
}

var Module = fx.Options(
	fx.Provide(NewDB),
	fx.Invoke(AutoMigrate),
	fx.Invoke(registerDBClose),
)

// AutoMigrate is best-effort: the production schema belongs to the Supabase
// project, so a migration failure is logged and startup proceeds.
func AutoMigrate(l *zap.SugaredLogger, db *gorm.DB) {
	if err := db.AutoMigrate(
		&models.SubscriptionPlan{},
		&models.UserSubscription{},
		&models.WebhookEventLog{},
	); err != nil {
		l.Warnw("automigrate skipped", "err", err)
		return
	}
	l.Infow("automigrate completed")
}

// registerDBClose ensures the underlying *sql.DB is closed on shutdown
func registerDBClose(lc fx.Lifecycle, l *zap.SugaredLogger, gdb *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				l.Warnw("gorm: get sql.DB failed", "err", err)
				return nil
			}
			l.Infow("closing store connection pool")
			return sqlDB.Close()
		},
	})
}
