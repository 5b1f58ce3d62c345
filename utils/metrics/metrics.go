package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RoutingMetrics instruments trade searches. Every metric is labeled with
// the trade type ("EXACT_INPUT" or "EXACT_OUTPUT").
type RoutingMetrics struct {
	Searches      *prometheus.CounterVec
	TradesFound   *prometheus.CounterVec
	QuoteErrors   *prometheus.CounterVec
	CacheHits     *prometheus.CounterVec
	CacheMisses   *prometheus.CounterVec
	SearchLatency *prometheus.HistogramVec
}

// NewRoutingMetrics registers the routing metrics on reg. A nil reg
// creates unregistered collectors.
func NewRoutingMetrics(namespace string, reg prometheus.Registerer) *RoutingMetrics {
	factory := promauto.With(reg)
	labels := []string{"trade_type"}

	return &RoutingMetrics{
		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of trade searches",
		}, labels),
		TradesFound: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trades_found_total",
			Help:      "Total number of trades returned by searches",
		}, labels),
		QuoteErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_errors_total",
			Help:      "Total number of failed quotes",
		}, labels),
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_cache_hits_total",
			Help:      "Total number of quotes served from cache",
		}, labels),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_cache_misses_total",
			Help:      "Total number of quotes computed",
		}, labels),
		SearchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_latency_seconds",
			Help:      "Trade search latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}, labels),
	}
}
