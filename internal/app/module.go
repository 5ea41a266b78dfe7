package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/humidor/entitlements/internal/app/api/server"
	"github.com/humidor/entitlements/internal/app/service/entitlement"
	"github.com/humidor/entitlements/internal/app/service/eventlog"
	"github.com/humidor/entitlements/internal/app/service/reconciler"
	"github.com/humidor/entitlements/internal/platform/cache"
	"github.com/humidor/entitlements/internal/platform/db"
	"github.com/humidor/entitlements/pkg/config"
	"github.com/humidor/entitlements/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	cache.Module,
	server.Module,
	eventlog.Module,
	entitlement.Module,
	reconciler.Module,
)
