// Package telemetry provides Prometheus metrics for the bid workflow.
package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	UpdatesReceived     prometheus.Counter
	BidsCommitted       prometheus.Counter
	BidsRejected        *prometheus.CounterVec
	NotificationsSent   *prometheus.CounterVec
	NotificationsFailed *prometheus.CounterVec
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		UpdatesReceived = promauto.NewCounter(prometheus.CounterOpts{
			Name: "aspybot_updates_received_total",
			Help: "Inbound chat updates routed to the workflow",
		})
		BidsCommitted = promauto.NewCounter(prometheus.CounterOpts{
			Name: "aspybot_bids_committed_total",
			Help: "Bets successfully written to the record store",
		})
		BidsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aspybot_bids_rejected_total",
			Help: "Bid attempts rejected before commit",
		}, []string{"reason"})
		NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aspybot_notifications_sent_total",
			Help: "Outbound notifications delivered",
		}, []string{"kind"})
		NotificationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aspybot_notifications_failed_total",
			Help: "Outbound notifications that failed to deliver",
		}, []string{"kind"})
	})
}

// RejectBid increments the rejection counter when metrics are initialized.
func RejectBid(reason string) {
	if BidsRejected != nil {
		BidsRejected.WithLabelValues(reason).Inc()
	}
}

// CountNotification records a notification outcome.
func CountNotification(kind string, ok bool) {
	if ok {
		if NotificationsSent != nil {
			NotificationsSent.WithLabelValues(kind).Inc()
		}
		return
	}
	if NotificationsFailed != nil {
		NotificationsFailed.WithLabelValues(kind).Inc()
	}
}
