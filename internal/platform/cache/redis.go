package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/humidor/entitlements/pkg/config"
)

const deliveryTTL = 24 * time.Hour

// DeliveryMarker remembers which vendor event ids have already been seen, so
// retried deliveries can be tagged in logs and the audit trail. It never gates
// the write path: the upsert stays last-write-wins whether or not a delivery
// is a retry.
type DeliveryMarker interface {
	// MarkDelivered records the event id and reports whether this is the
	// first delivery. Errors are swallowed and reported as first delivery.
	MarkDelivered(ctx context.Context, eventID string) bool
}

type redisMarker struct {
	rdb *redis.Client
	log *zap.SugaredLogger
}

type noopMarker struct{}

func (noopMarker) MarkDelivered(context.Context, string) bool { return true }

// New returns a Redis-backed marker, or a no-op when no cache is configured.
func New(lc fx.Lifecycle, cfg *cfgpkg.Config, log *zap.SugaredLogger) DeliveryMarker {
	if cfg.Cache.Addr == "" {
		log.Infow("delivery marker disabled (no cache addr)")
		return noopMarker{}
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return rdb.Close()
		},
	})
	return &redisMarker{rdb: rdb, log: log}
}

func (m *redisMarker) MarkDelivered(ctx context.Context, eventID string) bool {
	if eventID == "" {
		return true
	}
	first, err := m.rdb.SetNX(ctx, "webhook:event:"+eventID, time.Now().Unix(), deliveryTTL).Result()
	if err != nil {
		m.log.Warnw("delivery marker unavailable", "err", err)
		return true
	}
	return first
}

var Module = fx.Options(
	fx.Provide(New),
)
