package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/humidor/entitlements/internal/app/api/middleware"
	"github.com/humidor/entitlements/internal/app/service/reconciler"
	"github.com/humidor/entitlements/pkg/response"
	"github.com/humidor/entitlements/pkg/types"
)

// FunctionHandler is a framework-free binding of the same reconciliation
// pipeline, for single-function deployments (Netlify/Lambda-style runtimes
// that mount one http.Handler). The gin binding and this one share the
// reconciler and the error-to-status mapping; neither carries its own
// decision logic.
type FunctionHandler struct {
	rec   reconciler.Reconciler
	store StorePinger
	log   *zap.SugaredLogger
}

func NewFunctionHandler(rec reconciler.Reconciler, store StorePinger, log *zap.SugaredLogger) *FunctionHandler {
	return &FunctionHandler{rec: rec, store: store, log: log}
}

func (h *FunctionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	middleware.SetCORSHeaders(w.Header())

	switch {
	case r.Method == http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodGet && r.URL.Path == "/webhook/health":
		h.health(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/webhook":
		h.webhook(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, response.Error("Method not allowed"))
	}
}

func (h *FunctionHandler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, &response.HealthError{
			Error:   "database unreachable",
			Details: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, &response.HealthOK{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *FunctionHandler) webhook(w http.ResponseWriter, r *http.Request) {
	var env types.WebhookEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		writeJSON(w, http.StatusBadRequest, response.Error("invalid JSON payload"))
		return
	}

	res, err := h.rec.Reconcile(r.Context(), &env)
	if err != nil {
		h.log.Errorw("webhook_handle_error", "error", err.Error())
		writeJSON(w, StatusForError(err), response.Error(err.Error()))
		return
	}

	if res.TestEvent {
		writeJSON(w, http.StatusOK, response.OK(map[string]string{"message": "test event acknowledged"}, false))
		return
	}
	writeJSON(w, http.StatusOK, response.OK(res.Record, res.CorrectedDates))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
