package matrixclient

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout is the per-call deadline used unless WithTimeout is given.
const DefaultTimeout = 5 * time.Second

// Option configures a Conn.
type Option func(*options)

type options struct {
	timeout          time.Duration
	tlsConfig        *tls.Config
	credentialsKey   string
	credentialsValue string
	dialer           func(context.Context, string) (net.Conn, error)
	tracing          bool
	rateLimit        float64
	rateBurst        int
	logger           zerolog.Logger
	metrics          bool
	registerer       prometheus.Registerer
}

func defaultOptions() options {
	return options{
		timeout: DefaultTimeout,
		logger:  log.Logger,
	}
}

// WithTimeout sets the deadline applied to every call. Zero disables it and
// leaves the caller's context deadline in charge.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithTLSConfig dials the server over TLS instead of plaintext.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(o *options) {
		o.tlsConfig = cfg
	}
}

// WithCredentials attaches key: value metadata to every call.
func WithCredentials(key, value string) Option {
	return func(o *options) {
		o.credentialsKey = key
		o.credentialsValue = value
	}
}

// WithContextDialer replaces the network dialer, mostly useful in tests.
func WithContextDialer(dialer func(context.Context, string) (net.Conn, error)) Option {
	return func(o *options) {
		o.dialer = dialer
	}
}

// WithTracing instruments calls with OpenTelemetry using the global tracer provider.
func WithTracing() Option {
	return func(o *options) {
		o.tracing = true
	}
}

// WithRateLimit caps the call rate of the Conn. Calls wait for a token right
// before going to the network, bounded by their deadline.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(o *options) {
		o.rateLimit = perSecond
		o.rateBurst = burst
	}
}

// WithLogger sets the logger used for per-call logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics enables Prometheus call metrics registered with registerer, or
// with the default registerer when it is nil.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(o *options) {
		o.metrics = true
		o.registerer = registerer
	}
}
