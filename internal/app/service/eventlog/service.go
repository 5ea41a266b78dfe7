package eventlog

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/humidor/entitlements/internal/app/service/reconciler"
	"github.com/humidor/entitlements/internal/models"
	"github.com/humidor/entitlements/pkg/logctx"
	"github.com/humidor/entitlements/pkg/tool"
)

// Service appends raw webhook deliveries to the audit trail.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// Save asynchronously persists an audit row. Nil input is ignored and insert
// failures are logged only; the webhook request never fails on account of the
// audit trail.
func (s *Service) Save(ctx context.Context, row *models.WebhookEventLog) {
	go func() {
		if row == nil {
			return
		}
		if row.ID == "" {
			row.ID = tool.GenerateUUIDV7()
		}
		if err := s.db.Save(row).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save webhook event log: %v", err)
		}
	}()
}

var Module = fx.Options(
	fx.Provide(
		fx.Annotate(New, fx.As(new(reconciler.AuditLog))),
	),
)
