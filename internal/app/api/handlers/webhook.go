package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/humidor/entitlements/internal/app/service/reconciler"
	"github.com/humidor/entitlements/pkg/logctx"
	"github.com/humidor/entitlements/pkg/response"
	"github.com/humidor/entitlements/pkg/types"
)

// StatusForError maps a reconciler error onto an HTTP status code. Malformed
// payloads are the client's to fix (400); everything else is server-side and
// left to the vendor's delivery retry (500).
func StatusForError(err error) int {
	switch {
	case errors.Is(err, reconciler.ErrMissingEvent),
		errors.Is(err, reconciler.ErrInvalidTimestamp):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// @Summary      RevenueCat Webhook
// @Description  Receives a purchase-lifecycle event, repairs corrupt timestamp windows and upserts the user's entitlement row.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        payload body types.WebhookEnvelope true "Vendor webhook envelope"
// @Success      200  {object}  response.WebhookResult
// @Failure      400  {object}  response.WebhookError
// @Failure      500  {object}  response.WebhookError
// @Router       /webhook [post]
func ApiWebhook(rec reconciler.Reconciler, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var env types.WebhookEnvelope
		if err := c.ShouldBindJSON(&env); err != nil {
			logctx.FromGin(c, log).Warnw("webhook_bad_payload", "err", err)
			c.JSON(http.StatusBadRequest, response.Error("invalid JSON payload"))
			return
		}

		res, err := rec.Reconcile(c.Request.Context(), &env)
		if err != nil {
			logctx.FromGin(c, log).Errorw("webhook_handle_error", "error", err.Error())
			c.JSON(StatusForError(err), response.Error(err.Error()))
			return
		}

		if res.TestEvent {
			c.JSON(http.StatusOK, response.OK(gin.H{"message": "test event acknowledged"}, false))
			return
		}
		c.JSON(http.StatusOK, response.OK(res.Record, res.CorrectedDates))
	}
}

// MethodNotAllowed answers any verb outside the webhook surface contract.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, response.Error("Method not allowed"))
}

// RegisterWebhookRoutes mounts the webhook surface on the given router group.
func RegisterWebhookRoutes(r gin.IRouter, rec reconciler.Reconciler, log *zap.SugaredLogger) {
	r.POST("/webhook", ApiWebhook(rec, log))
	// Preflight is answered by the CORS middleware before reaching this.
	r.OPTIONS("/webhook", func(c *gin.Context) { c.Status(http.StatusOK) })
}
