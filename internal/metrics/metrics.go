package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sandarbhasthana/pms-app-sub005/internal/opday"
)

const (
	metricPrefix = "pms_"

	resultSuccess         = "success"
	resultError           = "error"
	resultInvalidTimezone = "invalid_timezone"
)

var (
	registerOnce sync.Once
	registry     = prometheus.NewRegistry()

	calcTotal *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	auditClosures *prometheus.CounterVec
	auditLatency  prometheus.Histogram
)

// Init registers all collectors. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		calcTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "opday_calculations_total",
				Help: "Operational-day calculations by operation and result",
			},
			[]string{"op", "result"},
		)

		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		)

		auditClosures = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "audit_day_closures_total",
				Help: "Night-audit day closures by result",
			},
			[]string{"result"},
		)
		auditLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "audit_tick_duration_seconds",
				Help:    "Night-audit tick latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		)

		registry.MustRegister(
			calcTotal,
			httpRequests,
			httpLatency,
			auditClosures,
			auditLatency,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	Init()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// Gatherer exposes the registry to tests.
func Gatherer() prometheus.Gatherer {
	Init()
	return registry
}

// ObserveCalc counts one calculator call.
func ObserveCalc(op string, err error) {
	Init()
	calcTotal.WithLabelValues(op, resultOf(err)).Inc()
}

// CalcObserver counts calculator calls; plug it into opday.Calculator.
type CalcObserver struct{}

func (CalcObserver) ObserveCalc(op string, err error) { ObserveCalc(op, err) }

// ObserveHTTP records one served request.
func ObserveHTTP(route string, code int, elapsed time.Duration) {
	Init()
	httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	httpLatency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveAuditClosure counts one day closure attempt.
func ObserveAuditClosure(err error) {
	Init()
	auditClosures.WithLabelValues(resultOf(err)).Inc()
}

// ObserveAuditTick records how long one audit pass took.
func ObserveAuditTick(elapsed time.Duration) {
	Init()
	auditLatency.Observe(elapsed.Seconds())
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case errors.Is(err, opday.ErrInvalidTimezone):
		return resultInvalidTimezone
	default:
		return resultError
	}
}
