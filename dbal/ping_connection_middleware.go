package dbal

import (
	"context"
	"errors"
	"time"

	command "github.com/io-da/command-dbal"
	"github.com/rs/zerolog"
)

// PingConnectionMiddleware probes its connection before every command and reconnects it when the probe fails.
// It performs no locking: commands sharing the connection must not be handled concurrently.
type PingConnectionMiddleware struct {
	connection   Connection
	logger       zerolog.Logger
	metrics      *Metrics
	probeTimeout time.Duration
}

// Option configures a PingConnectionMiddleware.
type Option func(mdl *PingConnectionMiddleware)

// WithLogger sets the logger used to report probe failures and reconnections.
func WithLogger(logger zerolog.Logger) Option {
	return func(mdl *PingConnectionMiddleware) {
		mdl.logger = logger
	}
}

// WithMetrics sets the collectors updated on every probe and reconnection.
func WithMetrics(metrics *Metrics) Option {
	return func(mdl *PingConnectionMiddleware) {
		mdl.metrics = metrics
	}
}

// WithProbeTimeout bounds the probe query. Zero disables the deadline.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(mdl *PingConnectionMiddleware) {
		mdl.probeTimeout = timeout
	}
}

// NewPingConnectionMiddleware instantiates the middleware for the given connection.
func NewPingConnectionMiddleware(connection Connection, opts ...Option) *PingConnectionMiddleware {
	mdl := &PingConnectionMiddleware{
		connection: connection,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(mdl)
	}
	return mdl
}

// Handle makes sure the connection is alive and then hands the command over to next.
// A failed reconnection is returned as a *ReconnectError and next is not invoked.
func (mdl *PingConnectionMiddleware) Handle(ctx context.Context, cmd command.Command, next command.Next) (any, error) {
	if probeErr := mdl.probe(ctx); probeErr != nil {
		mdl.logger.Warn().
			Err(probeErr.Err).
			Str("func", "*PingConnectionMiddleware.Handle").
			Str("command", string(cmd.Identifier())).
			Stringer("kind", probeErr.Kind).
			Bool("connection_lost", errors.Is(probeErr, ConnectionLostError)).
			Msg("connection probe failed, reconnecting")
		if err := mdl.reconnect(ctx, probeErr); err != nil {
			mdl.logger.Error().
				Err(err.Err).
				Str("func", "*PingConnectionMiddleware.Handle").
				Str("command", string(cmd.Identifier())).
				Str("op", err.Op).
				Msg("reconnection failed")
			return nil, err
		}
		mdl.logger.Info().
			Str("func", "*PingConnectionMiddleware.Handle").
			Str("command", string(cmd.Identifier())).
			Msg("reconnected")
	}
	return next(ctx, cmd)
}

// probe issues the dummy select of the connection's platform.
// Panics raised by the connection are recovered into a ProbeWarning.
func (mdl *PingConnectionMiddleware) probe(ctx context.Context) (probeErr *ProbeError) {
	if mdl.probeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, mdl.probeTimeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			probeErr = &ProbeError{Kind: ProbeWarning, Err: recovered(r)}
		}
		mdl.metrics.observeProbe(probeErr)
	}()

	platform, err := mdl.connection.DatabasePlatform()
	if err != nil {
		return &ProbeError{Kind: ProbeFailure, Err: err}
	}
	if err = mdl.connection.ExecuteQuery(ctx, platform.DummySelectSQL()); err != nil {
		return &ProbeError{Kind: ProbeFailure, Err: err}
	}
	return nil
}

func (mdl *PingConnectionMiddleware) reconnect(ctx context.Context, probeErr *ProbeError) (reconnectErr *ReconnectError) {
	defer func() {
		mdl.metrics.observeReconnect(reconnectErr)
	}()
	if err := mdl.connection.Close(); err != nil {
		return &ReconnectError{Op: "close", Probe: probeErr, Err: err}
	}
	if err := mdl.connection.Connect(ctx); err != nil {
		return &ReconnectError{Op: "connect", Probe: probeErr, Err: err}
	}
	return nil
}
