// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Classification metrics
	QueriesProcessed  *prometheus.CounterVec
	RuleCascadeHits   *prometheus.CounterVec
	SemanticFallbacks prometheus.Counter
	QueriesUndecided  prometheus.Counter
	QueryDuration     prometheus.Histogram

	// Token registry metrics
	TokenCacheHits     prometheus.Counter
	TokenCacheMisses   prometheus.Counter
	TokenVerifications *prometheus.CounterVec

	// External call metrics
	ExternalCallLatency *prometheus.HistogramVec
	ExternalCallErrors  *prometheus.CounterVec

	// Query log metrics
	QueryLogWrites prometheus.Counter
	QueryLogErrors prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "blink_bot"
	}

	return &Metrics{
		QueriesProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classify",
			Name:      "queries_processed_total",
			Help:      "Total number of queries processed, by resolved intent",
		}, []string{"intent"}),
		RuleCascadeHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classify",
			Name:      "rule_cascade_hits_total",
			Help:      "Total number of queries resolved by the rule cascade, by rule",
		}, []string{"rule"}),
		SemanticFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classify",
			Name:      "semantic_fallbacks_total",
			Help:      "Total number of queries that reached the semantic fallback",
		}),
		QueriesUndecided: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classify",
			Name:      "queries_undecided_total",
			Help:      "Total number of queries with no resolved intent",
		}),
		QueryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "classify",
			Name:      "query_duration_seconds",
			Help:      "End-to-end query processing duration",
			Buckets:   prometheus.DefBuckets,
		}),

		TokenCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "cache_hits_total",
			Help:      "Total number of token lookups answered from the in-memory set",
		}),
		TokenCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "cache_misses_total",
			Help:      "Total number of token lookups missing the in-memory set",
		}),
		TokenVerifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "verifications_total",
			Help:      "Total number of external token verifications, by result",
		}, []string{"result"}),

		ExternalCallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "external",
			Name:      "call_duration_seconds",
			Help:      "External service call latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service"}),
		ExternalCallErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "external",
			Name:      "call_errors_total",
			Help:      "External service call errors",
		}, []string{"service"}),

		QueryLogWrites: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "querylog",
			Name:      "writes_total",
			Help:      "Total number of query log records written",
		}),
		QueryLogErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "querylog",
			Name:      "write_errors_total",
			Help:      "Total number of query log write failures",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordQueryProcessed increments the processed counter for an intent label.
func RecordQueryProcessed(intent string) {
	if intent == "" {
		intent = "none"
	}
	DefaultMetrics.QueriesProcessed.WithLabelValues(intent).Inc()
}

// RecordRuleHit increments the rule cascade counter for a rule name.
func RecordRuleHit(rule string) {
	DefaultMetrics.RuleCascadeHits.WithLabelValues(rule).Inc()
}

// RecordSemanticFallback increments the semantic fallback counter.
func RecordSemanticFallback() {
	DefaultMetrics.SemanticFallbacks.Inc()
}

// RecordUndecided increments the undecided counter.
func RecordUndecided() {
	DefaultMetrics.QueriesUndecided.Inc()
}

// RecordQueryDuration observes end-to-end query processing time.
func RecordQueryDuration(seconds float64) {
	DefaultMetrics.QueryDuration.Observe(seconds)
}

// RecordCacheHit increments the registry cache hit counter.
func RecordCacheHit() {
	DefaultMetrics.TokenCacheHits.Inc()
}

// RecordCacheMiss increments the registry cache miss counter.
func RecordCacheMiss() {
	DefaultMetrics.TokenCacheMisses.Inc()
}

// RecordVerification increments the verification counter for a result
// (found, not_found, error).
func RecordVerification(result string) {
	DefaultMetrics.TokenVerifications.WithLabelValues(result).Inc()
}

// RecordExternalCall observes one external service call.
func RecordExternalCall(service string, seconds float64, err error) {
	DefaultMetrics.ExternalCallLatency.WithLabelValues(service).Observe(seconds)
	if err != nil {
		DefaultMetrics.ExternalCallErrors.WithLabelValues(service).Inc()
	}
}

// RecordQueryLogWrite counts one query log write attempt.
func RecordQueryLogWrite(err error) {
	if err != nil {
		DefaultMetrics.QueryLogErrors.Inc()
		return
	}
	DefaultMetrics.QueryLogWrites.Inc()
}
