package udpbeat

import (
	"github.com/bft-labs/udpbeat/internal/ports"
	"github.com/bft-labs/udpbeat/pkg/log"
	"github.com/bft-labs/udpbeat/pkg/metrics"
)

// Socket is an open datagram socket; any net.PacketConn satisfies it.
type Socket = ports.Socket

// SocketOpener opens the emitter's socket. Override it in tests to count
// socket opens and closes or to inject failures.
type SocketOpener = ports.SocketOpener

// Resolver resolves the destination on every tick.
type Resolver = ports.Resolver

// Option configures optional behavior of an Emitter.
type Option func(*options)

type options struct {
	logger       log.Logger
	eventHandler EventHandler
	metrics      *metrics.Collector
	opener       SocketOpener
	resolver     Resolver
	bufferSize   int
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets the structured logger. Without it nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for state and send events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithMetrics records send outcomes and state in c.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) {
		o.metrics = c
	}
}

// WithSocketOpener replaces the UDP socket opener.
func WithSocketOpener(opener SocketOpener) Option {
	return func(o *options) {
		o.opener = opener
	}
}

// WithResolver replaces the destination resolver.
func WithResolver(resolver Resolver) Option {
	return func(o *options) {
		o.resolver = resolver
	}
}

// WithOutcomeBuffer sets how many send outcomes may queue ahead of the
// reporter before send goroutines block.
func WithOutcomeBuffer(n int) Option {
	return func(o *options) {
		o.bufferSize = n
	}
}
