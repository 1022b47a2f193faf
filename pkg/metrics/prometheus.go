package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	SearchesTotal   prometheus.Counter
	OffersSaved     prometheus.Counter
	OffersRejected  prometheus.Counter
	UpstreamLatency prometheus.Histogram
	ErrorsCount     *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SearchesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "The total number of flight searches run against the provider",
		}),
		OffersSaved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_saved_total",
			Help:      "The total number of offers persisted",
		}),
		OffersRejected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_rejected_total",
			Help:      "The total number of raw offers that failed normalization",
		}),
		UpstreamLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Time taken by provider search requests",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
