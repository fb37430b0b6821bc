package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bidsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auction_bids_accepted_total",
			Help: "Total bids committed to the ledger",
		},
	)

	bidsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auction_bids_rejected_total",
			Help: "Total bids rejected by validation, per rejection code",
		},
		[]string{"code"},
	)

	snipeExtensions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auction_snipe_extensions_total",
			Help: "Total anti-sniper end time extensions applied",
		},
	)

	lockWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auction_store_lock_wait_seconds",
			Help:    "Time spent waiting for the dataset locks per transaction",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)
)

// BidAccepted counts a committed bid.
func BidAccepted() {
	bidsAccepted.Inc()
}

// BidRejected counts a validation rejection by code.
func BidRejected(code string) {
	bidsRejected.WithLabelValues(code).Inc()
}

// SnipeExtension counts an applied anti-sniper extension.
func SnipeExtension() {
	snipeExtensions.Inc()
}

// LockWait records how long a transaction waited for its dataset locks.
func LockWait(d time.Duration) {
	lockWait.Observe(d.Seconds())
}
