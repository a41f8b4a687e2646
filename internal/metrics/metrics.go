package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultMetricsNamespace = "nsproxy"

// Error kinds used as the "kind" label of the error counter.
const (
	KindTransport = "transport"
	KindRemote    = "remote"
)

// Config contains metrics configuration.
type Config struct {
	// Namespace is the prometheus namespace for all metrics. If empty, defaults to "nsproxy".
	Namespace string
	// ConstLabels are labels that will be added to all metrics as constant labels.
	ConstLabels map[string]string
	// Registerer is the prometheus registerer to use. If nil, prometheus.DefaultRegisterer is used.
	Registerer prometheus.Registerer
}

// Registry holds matrix client call metrics.
type Registry struct {
	callDurationSummary   *prometheus.SummaryVec
	callDurationHistogram *prometheus.HistogramVec
	callErrorCount        *prometheus.CounterVec
	callInflightRequests  *prometheus.GaugeVec
}

// New creates call metrics and registers them. Collectors already registered
// with an identical description are reused, so several clients may share one
// registerer.
func New(cfg Config) (*Registry, error) {
	registerer := cfg.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	metricsNamespace := cfg.Namespace
	if metricsNamespace == "" {
		metricsNamespace = defaultMetricsNamespace
	}

	constLabels := prometheus.Labels(cfg.ConstLabels)

	m := &Registry{}

	m.callDurationSummary = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "client",
		Name:        "call_duration_seconds",
		Objectives:  map[float64]float64{0.5: 0.05, 0.99: 0.001, 0.999: 0.0001},
		Help:        "Duration of matrix service call.",
		ConstLabels: constLabels,
	}, []string{"op"})

	m.callDurationHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "client",
		Name:        "call_duration_seconds_histogram",
		Buckets:     prometheus.DefBuckets,
		Help:        "Histogram of duration of matrix service call.",
		ConstLabels: constLabels,
	}, []string{"op"})

	m.callErrorCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "client",
		Name:        "call_errors_total",
		Help:        "Matrix service call error count.",
		ConstLabels: constLabels,
	}, []string{"op", "kind"})

	m.callInflightRequests = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "client",
		Name:        "inflight_requests",
		Help:        "Number of inflight matrix service calls.",
		ConstLabels: constLabels,
	}, []string{"op"})

	var err error
	if m.callDurationSummary, err = register(registerer, m.callDurationSummary); err != nil {
		return nil, err
	}
	if m.callDurationHistogram, err = register(registerer, m.callDurationHistogram); err != nil {
		return nil, err
	}
	if m.callErrorCount, err = register(registerer, m.callErrorCount); err != nil {
		return nil, err
	}
	if m.callInflightRequests, err = register(registerer, m.callInflightRequests); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) (C, error) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}
	var alreadyRegistered prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		if existing, ok := alreadyRegistered.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return collector, err
}

// CallStarted marks a call in flight and returns a function that must be
// called once the call is finished.
func (m *Registry) CallStarted(op string) func() {
	gauge := m.callInflightRequests.WithLabelValues(op)
	gauge.Inc()
	return gauge.Dec
}

// ObserveCall observes the duration of a finished call.
func (m *Registry) ObserveCall(started time.Time, op string) {
	duration := time.Since(started).Seconds()
	m.callDurationSummary.WithLabelValues(op).Observe(duration)
	m.callDurationHistogram.WithLabelValues(op).Observe(duration)
}

// IncError increments the error counter for op and kind.
func (m *Registry) IncError(op string, kind string) {
	m.callErrorCount.WithLabelValues(op, kind).Inc()
}

// Errors returns the error counter labelled by op and kind.
func (m *Registry) Errors() *prometheus.CounterVec {
	return m.callErrorCount
}

// Inflight returns the inflight calls gauge labelled by op.
func (m *Registry) Inflight() *prometheus.GaugeVec {
	return m.callInflightRequests
}
