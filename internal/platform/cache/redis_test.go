package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMarker(t *testing.T) DeliveryMarker {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return &redisMarker{
		rdb: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		log: zap.NewNop().Sugar(),
	}
}

func TestMarkDelivered_FirstAndRetry(t *testing.T) {
	m := newTestMarker(t)
	ctx := context.Background()

	assert.True(t, m.MarkDelivered(ctx, "ev-1"), "first delivery")
	assert.False(t, m.MarkDelivered(ctx, "ev-1"), "retried delivery")
	assert.True(t, m.MarkDelivered(ctx, "ev-2"), "different event")
}

func TestMarkDelivered_EmptyEventID(t *testing.T) {
	m := newTestMarker(t)
	assert.True(t, m.MarkDelivered(context.Background(), ""))
}

func TestMarkDelivered_FailsOpen(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	m := &redisMarker{
		rdb: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		log: zap.NewNop().Sugar(),
	}
	mr.Close()

	// unreachable cache must never block processing
	assert.True(t, m.MarkDelivered(context.Background(), "ev-1"))
}

func TestNoopMarker(t *testing.T) {
	var m DeliveryMarker = noopMarker{}
	assert.True(t, m.MarkDelivered(context.Background(), "ev-1"))
	assert.True(t, m.MarkDelivered(context.Background(), "ev-1"))
}
