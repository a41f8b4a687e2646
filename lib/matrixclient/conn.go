// Package matrixclient is a client for a remote matrix service. Matrices live
// on the server; the client only holds handles (a name plus the dimensions
// known when the handle was produced) and asks the server to operate on them.
//
//	conn, err := matrixclient.Open("localhost:50051")
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//	client := matrixclient.NewClient(conn)
//	z, err := client.CreateZero(ctx, "z", 5, 10)
//
// Every operation returns one of three error kinds, which callers tell apart
// with errors.As: *TransportError (the call did not complete),
// *RemoteOperationError (the server rejected it) and *UnboundHandleError
// (a convenience method was used on a handle without a client). Nothing is
// retried automatically.
package matrixclient

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	addr "github.com/nextproxy/nsproxy/internal/address"
	"github.com/nextproxy/nsproxy/internal/matrixproto"
	"github.com/nextproxy/nsproxy/internal/metrics"
	"github.com/nextproxy/nsproxy/lib/configtypes"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

const requestIDMetadataKey = "x-request-id"

// Conn owns a single channel to one matrix service address. It is created by
// Open and released by Close; a closed Conn is never reopened.
type Conn struct {
	address string
	cc      *grpc.ClientConn
	service matrixproto.MatrixServiceClient
	timeout time.Duration
	limiter *rate.Limiter
	logger  zerolog.Logger
	metrics *metrics.Registry
	closed  atomic.Bool
}

type rpcCredentials struct {
	key   string
	value string
}

func (t rpcCredentials) GetRequestMetadata(_ context.Context, _ ...string) (map[string]string, error) {
	return map[string]string{
		t.key: t.value,
	}, nil
}

func (t rpcCredentials) RequireTransportSecurity() bool {
	return false
}

func getDialOpts(o options) []grpc.DialOption {
	var dialOpts []grpc.DialOption
	if o.credentialsKey != "" {
		dialOpts = append(dialOpts, grpc.WithPerRPCCredentials(&rpcCredentials{
			key:   o.credentialsKey,
			value: o.credentialsValue,
		}))
	}
	if o.tlsConfig != nil {
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(credentials.NewTLS(o.tlsConfig)))
	} else {
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	if o.dialer != nil {
		dialOpts = append(dialOpts, grpc.WithContextDialer(o.dialer))
	}
	if o.tracing {
		dialOpts = append(dialOpts, grpc.WithStatsHandler(otelgrpc.NewClientHandler()))
	}
	return dialOpts
}

// Open creates a Conn to address (host:port, optionally prefixed with
// grpc://). Only the address syntax is checked: the server does not have to
// be reachable yet, the channel connects lazily on the first call.
func Open(address string, opts ...Option) (*Conn, error) {
	target, err := addr.Normalize(address)
	if err != nil {
		return nil, &ConnectionError{Address: address, Err: err}
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rateLimit < 0 || (o.rateLimit > 0 && o.rateBurst < 1) {
		return nil, &ConnectionError{Address: address, Err: fmt.Errorf("invalid rate limit %v with burst %d", o.rateLimit, o.rateBurst)}
	}

	cc, err := grpc.NewClient(target, getDialOpts(o)...)
	if err != nil {
		return nil, &ConnectionError{Address: address, Err: err}
	}

	c := &Conn{
		address: target,
		cc:      cc,
		service: matrixproto.NewMatrixServiceClient(cc),
		timeout: o.timeout,
		logger:  o.logger.With().Str("component", "matrixclient").Str("address", target).Logger(),
	}
	if o.rateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(o.rateLimit), o.rateBurst)
	}
	if o.metrics {
		c.metrics, err = metrics.New(metrics.Config{Registerer: o.registerer})
		if err != nil {
			_ = cc.Close()
			return nil, fmt.Errorf("matrixclient: error registering metrics: %w", err)
		}
	}
	c.logger.Debug().Msg("matrix service channel created")
	return c, nil
}

// OpenConfig opens a Conn described by cfg. Extra options are applied after
// the ones derived from cfg.
func OpenConfig(cfg configtypes.Client, extra ...Option) (*Conn, error) {
	opts := []Option{WithTimeout(cfg.Timeout.ToDuration())}
	tlsConfig, err := cfg.TLS.ToGoTLSConfig()
	if err != nil {
		return nil, &ConnectionError{Address: cfg.Address, Err: err}
	}
	if tlsConfig != nil {
		opts = append(opts, WithTLSConfig(tlsConfig))
	}
	if cfg.CredentialsKey != "" {
		opts = append(opts, WithCredentials(cfg.CredentialsKey, cfg.CredentialsValue))
	}
	if cfg.Tracing {
		opts = append(opts, WithTracing())
	}
	if cfg.Metrics {
		opts = append(opts, WithMetrics(nil))
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, WithRateLimit(cfg.RateLimit, cfg.RateBurst))
	}
	return Open(cfg.Address, append(opts, extra...)...)
}

// Address returns the normalized host:port the Conn dials.
func (c *Conn) Address() string {
	return c.address
}

// IsClosed reports whether Close has been called.
func (c *Conn) IsClosed() bool {
	return c.closed.Load()
}

// Close releases the channel. Closing an already closed Conn is a no-op.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.logger.Debug().Msg("matrix service channel closed")
	return c.cc.Close()
}

// invoke runs one remote call. call must return nil, a gRPC error, or a
// *RemoteOperationError built from a success=false response.
func (c *Conn) invoke(ctx context.Context, op string, subject string, call func(context.Context, matrixproto.MatrixServiceClient) error) error {
	if c.closed.Load() {
		return &TransportError{Op: op, Code: codes.Canceled, Message: ErrConnClosed.Error(), err: ErrConnClosed}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	requestID := uuid.NewString()
	ctx = metadata.AppendToOutgoingContext(ctx, requestIDMetadataKey, requestID)
	logger := c.logger.With().Str("op", op).Str("matrix", subject).Str("request_id", requestID).Logger()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			code := codes.DeadlineExceeded
			if errors.Is(ctx.Err(), context.Canceled) {
				code = codes.Canceled
			}
			c.incError(op, metrics.KindTransport)
			logger.Error().Err(err).Msg("rate limiter wait failed")
			return &TransportError{Op: op, Code: code, Message: err.Error()}
		}
	}

	started := time.Now()
	if c.metrics != nil {
		done := c.metrics.CallStarted(op)
		defer done()
	}
	err := call(ctx, c.service)
	if c.metrics != nil {
		c.metrics.ObserveCall(started, op)
	}
	duration := time.Since(started)

	if err == nil {
		logger.Debug().Dur("duration", duration).Msg("matrix service call succeeded")
		return nil
	}
	var remoteErr *RemoteOperationError
	if !errors.As(err, &remoteErr) {
		err = classifyError(op, err)
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) && transportErr.Code == codes.Canceled && transportErr.err == nil && c.closed.Load() {
		// Close ran while the call was in flight.
		transportErr.err = ErrConnClosed
	}
	if errors.As(err, &remoteErr) {
		c.incError(op, metrics.KindRemote)
		logger.Debug().Dur("duration", duration).Str("error_message", remoteErr.Message).Msg("matrix service rejected call")
		return err
	}
	c.incError(op, metrics.KindTransport)
	logger.Error().Err(err).Dur("duration", duration).Msg("error calling matrix service")
	return err
}

func (c *Conn) incError(op string, kind string) {
	if c.metrics != nil {
		c.metrics.IncError(op, kind)
	}
}
