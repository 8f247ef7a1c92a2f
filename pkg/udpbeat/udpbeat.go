package udpbeat

import (
	"context"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/udpbeat/internal/adapters/udp"
	"github.com/bft-labs/udpbeat/internal/app"
	"github.com/bft-labs/udpbeat/internal/domain"
	"github.com/bft-labs/udpbeat/pkg/log"
)

// Emitter periodically sends a fixed payload to a fixed destination.
// Use New or NewFromConfig, then Start. All methods are safe for concurrent use.
type Emitter struct {
	id      string
	config  Config
	payload domain.Payload
	core    *app.Emitter
}

// New creates an Emitter for destination, payload and interval with the
// default network (udp4). No socket is opened until Start.
func New(destination Destination, payload []byte, interval time.Duration, opts ...Option) (*Emitter, error) {
	return NewFromConfig(Config{
		Host:     destination.Host,
		Port:     destination.Port,
		Payload:  payload,
		Interval: interval,
	}, opts...)
}

// NewFromConfig creates an Emitter from cfg. It returns a *ConfigError if cfg
// is invalid. No socket is opened until Start.
func NewFromConfig(cfg Config, opts ...Option) (*Emitter, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.NewString()
	logger := o.logger.With(log.String("emitter_id", id))

	opener := o.opener
	if opener == nil {
		opener = udp.NewOpener(cfg.Network, udp.SocketOptions{TTL: cfg.TTL, TOS: cfg.TOS}, logger)
	}
	resolver := o.resolver
	if resolver == nil {
		resolver = udp.NewResolver(cfg.Network)
	}

	payload := domain.NewPayload(cfg.Payload)
	cfg.Payload = nil

	bridge := &eventBridge{
		handler:     o.eventHandler,
		metrics:     o.metrics,
		destination: cfg.Destination().String(),
		emitterID:   id,
	}
	if bridge.metrics != nil {
		bridge.metrics.SetState(bridge.destination, id, int(StateNotStarted))
	}

	core, err := app.NewEmitter(app.EmitterConfig{
		Destination:   cfg.Destination(),
		Payload:       payload,
		Interval:      cfg.Interval,
		OutcomeBuffer: o.bufferSize,
	}, opener, resolver, logger, bridge, bridge)
	if err != nil {
		return nil, err
	}

	return &Emitter{
		id:      id,
		config:  cfg,
		payload: payload,
		core:    core,
	}, nil
}

// Start opens the socket and begins sending every interval. It returns
// immediately. Cancelling ctx is equivalent to calling Stop.
// Returns ErrAlreadyRunning or ErrStopped if the emitter is not in
// StateNotStarted.
func (e *Emitter) Start(ctx context.Context) error {
	return e.core.Start(ctx)
}

// Stop stops future ticks, waits for in-flight sends to be reported and
// closes the socket. Calling Stop more than once has no further effect.
// Stop must not be called synchronously from an EventHandler callback.
func (e *Emitter) Stop() error {
	return e.core.Stop()
}

// Status returns the current lifecycle state.
func (e *Emitter) Status() State {
	return e.core.State()
}

// ID returns the random identifier stamped on this emitter's log lines.
func (e *Emitter) ID() string { return e.id }

// Destination returns the configured destination.
func (e *Emitter) Destination() Destination { return e.config.Destination() }

// Payload returns a copy of the payload.
func (e *Emitter) Payload() []byte { return e.payload.Bytes() }

// Interval returns the tick interval.
func (e *Emitter) Interval() time.Duration { return e.config.Interval }

// LocalAddr returns the ephemeral local address while running, nil otherwise.
func (e *Emitter) LocalAddr() net.Addr { return e.core.LocalAddr() }

// Ticks returns the number of ticks fired.
func (e *Emitter) Ticks() uint64 { return e.core.Ticks() }

// Sent returns the number of successful sends reported.
func (e *Emitter) Sent() uint64 { return e.core.Sent() }

// Failed returns the number of failed sends reported.
func (e *Emitter) Failed() uint64 { return e.core.Failed() }
