package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success Outcome = "success"
	Error   Outcome = "error"
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                         sync.Once
	metricsRouter                *chi.Mux
	httpRequestDurationHistogram *prometheus.HistogramVec
	jobDurationHistogram         *prometheus.HistogramVec
	payoutCounter                *prometheus.CounterVec
	distributionPoolGauge        prometheus.Gauge
	clientRequestLatency         *prometheus.HistogramVec
)

// Init initializes the metrics package.
func Init(addr string) {
	once.Do(func() {
		initMetricsRouter(addr)
		registerMetrics()
	})
}

// initMetricsRouter serves /metrics on addr in the background.
func initMetricsRouter(addr string) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(addr, metricsRouter); err != nil {
			log.Fatal().Err(err).Msgf("error starting metrics server on %s", addr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of http request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"endpoint", "status"},
	)

	jobDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "job_duration_seconds",
			Help:    "Histogram of scheduled job durations in seconds.",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 3600},
		},
		[]string{"job"},
	)

	payoutCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payouts_total",
			Help: "Number of payouts by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	distributionPoolGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "distribution_pool_tokens",
			Help: "Pool balance used by the last monthly distribution.",
		},
	)

	clientRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outbound client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"client", "method", "outcome"},
	)

	prometheus.MustRegister(
		httpRequestDurationHistogram,
		jobDurationHistogram,
		payoutCounter,
		distributionPoolGauge,
		clientRequestLatency,
	)
}

// StartHttpRequestDurationTimer starts a timer to measure http request handling duration.
func StartHttpRequestDurationTimer(endpoint string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		if httpRequestDurationHistogram == nil {
			return
		}
		duration := time.Since(startTime).Seconds()
		httpRequestDurationHistogram.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Observe(duration)
	}
}

// StartClientRequestDurationTimer starts a timer for one outbound call.
func StartClientRequestDurationTimer(client, method string) func(outcome Outcome) {
	startTime := time.Now()
	return func(outcome Outcome) {
		if clientRequestLatency == nil {
			return
		}
		clientRequestLatency.WithLabelValues(client, method, outcome.String()).Observe(time.Since(startTime).Seconds())
	}
}

func ObserveJobDuration(job string, d time.Duration) {
	if jobDurationHistogram == nil {
		return
	}
	jobDurationHistogram.WithLabelValues(job).Observe(d.Seconds())
}

// RecordPayout counts one payout. kind is "stake" or "distribution"; outcome
// is a free-form label such as "paid" or "failed".
func RecordPayout(kind, outcome string) {
	if payoutCounter == nil {
		return
	}
	payoutCounter.WithLabelValues(kind, outcome).Inc()
}

func SetDistributionPool(pool float64) {
	if distributionPoolGauge == nil {
		return
	}
	distributionPoolGauge.Set(pool)
}
