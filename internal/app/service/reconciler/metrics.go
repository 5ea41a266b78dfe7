package reconciler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entitlement_events_total",
		Help: "Webhook events processed, partitioned by vendor event type and outcome.",
	}, []string{"type", "outcome"})

	correctedWindowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "entitlement_corrected_windows_total",
		Help: "Events whose purchase/expiration window was repaired by the sanitizer.",
	})

	fallbackWritesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "entitlement_fallback_writes_total",
		Help: "Writes that bypassed the store procedure and used the direct upsert.",
	})

	duplicateDeliveriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "entitlement_duplicate_deliveries_total",
		Help: "Webhook deliveries whose event id was already seen.",
	})
)
