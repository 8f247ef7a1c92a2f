package app

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bft-labs/udpbeat/internal/domain"
	"github.com/bft-labs/udpbeat/internal/ports"
)

// DefaultOutcomeBuffer is the capacity of the outcome channel between send
// goroutines and the reporter.
const DefaultOutcomeBuffer = 64

// EmitterConfig contains everything fixed at construction.
type EmitterConfig struct {
	Destination domain.Destination
	Payload     domain.Payload
	Interval    time.Duration

	// OutcomeBuffer defaults to DefaultOutcomeBuffer when <= 0.
	OutcomeBuffer int
}

// Validate reports a *domain.ConfigError for an unusable configuration.
func (c EmitterConfig) Validate() error {
	if err := c.Destination.Validate(); err != nil {
		return err
	}
	if c.Interval <= 0 {
		return &domain.ConfigError{Field: "interval", Reason: fmt.Sprintf("must be positive, got %s", c.Interval)}
	}
	return nil
}

// Emitter sends the payload to the destination once per tick over a single
// socket. Sends are fire-and-forget: each tick dispatches its send on its own
// goroutine and the ticker never waits for it. Results travel back as
// domain.Outcome values on a channel drained by one reporter goroutine.
type Emitter struct {
	config    EmitterConfig
	opener    ports.SocketOpener
	resolver  ports.Resolver
	logger    ports.Logger
	observer  ports.OutcomeObserver
	lifecycle *Lifecycle

	// mu serialises Start and Stop.
	mu       sync.Mutex
	cancel   context.CancelFunc
	stopping atomic.Bool

	// sockMu guards sock against Close racing an in-flight WriteTo.
	sockMu sync.RWMutex
	sock   ports.Socket
	closed bool

	loopDone   chan struct{}
	reportDone chan struct{}
	outcomes   chan domain.Outcome
	sends      sync.WaitGroup

	seq    atomic.Uint64
	sent   atomic.Uint64
	failed atomic.Uint64
}

// NewEmitter validates config and returns an emitter in StateNotStarted.
// No socket is opened until Start.
func NewEmitter(
	config EmitterConfig,
	opener ports.SocketOpener,
	resolver ports.Resolver,
	logger ports.Logger,
	observer ports.OutcomeObserver,
	stateObserver StateObserver,
) (*Emitter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.OutcomeBuffer <= 0 {
		config.OutcomeBuffer = DefaultOutcomeBuffer
	}

	return &Emitter{
		config:    config,
		opener:    opener,
		resolver:  resolver,
		logger:    logger,
		observer:  observer,
		lifecycle: NewLifecycle(logger, stateObserver),
	}, nil
}

// Start opens the socket and starts the ticker. Cancelling ctx has the same
// effect as calling Stop.
func (e *Emitter) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.lifecycle.State() {
	case StateRunning:
		return domain.ErrAlreadyRunning
	case StateStopped:
		return domain.ErrStopped
	}

	sock, err := e.opener.Open(ctx)
	if err != nil {
		return fmt.Errorf("open socket: %w", err)
	}

	e.sockMu.Lock()
	e.sock = sock
	e.closed = false
	e.sockMu.Unlock()

	if err := e.lifecycle.TransitionTo(StateRunning, "Start() called"); err != nil {
		e.closeSocket()
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.outcomes = make(chan domain.Outcome, e.config.OutcomeBuffer)
	e.loopDone = make(chan struct{})
	e.reportDone = make(chan struct{})

	go e.report()
	go e.loop(runCtx)

	e.logger.Info("emitter started",
		ports.Stringer("local", sock.LocalAddr()),
		ports.String("destination", e.config.Destination.String()),
		ports.Duration("interval", e.config.Interval),
		ports.Int("payload_bytes", e.config.Payload.Len()),
	)
	return nil
}

// Stop cancels the ticker, waits for in-flight sends to report and closes
// the socket. It is idempotent. Stop before Start moves the emitter straight
// to StateStopped.
func (e *Emitter) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.lifecycle.State() {
	case StateStopped:
		return nil
	case StateNotStarted:
		return e.lifecycle.TransitionTo(StateStopped, "Stop() before Start()")
	}

	e.stopping.Store(true)
	e.cancel()
	<-e.loopDone

	e.sends.Wait()
	close(e.outcomes)
	<-e.reportDone

	err := e.closeSocket()
	_ = e.lifecycle.TransitionTo(StateStopped, "Stop() called")

	e.logger.Info("emitter stopped",
		ports.Uint64("ticks", e.seq.Load()),
		ports.Uint64("sent", e.sent.Load()),
		ports.Uint64("failed", e.failed.Load()),
	)
	if err != nil {
		return fmt.Errorf("close socket: %w", err)
	}
	return nil
}

// State returns the current lifecycle state.
func (e *Emitter) State() State {
	return e.lifecycle.State()
}

// Ticks returns the number of ticks fired so far.
func (e *Emitter) Ticks() uint64 { return e.seq.Load() }

// Sent returns the number of successful sends reported so far.
func (e *Emitter) Sent() uint64 { return e.sent.Load() }

// Failed returns the number of failed sends reported so far.
func (e *Emitter) Failed() uint64 { return e.failed.Load() }

// LocalAddr returns the socket's local address, or nil when no socket is open.
func (e *Emitter) LocalAddr() net.Addr {
	e.sockMu.RLock()
	defer e.sockMu.RUnlock()
	if e.sock == nil || e.closed {
		return nil
	}
	return e.sock.LocalAddr()
}

func (e *Emitter) loop(ctx context.Context) {
	defer close(e.loopDone)

	ticker := time.NewTicker(e.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if !e.stopping.Load() {
				// Parent context cancelled; release the socket.
				go e.Stop()
			}
			return
		case <-ticker.C:
			seq := e.seq.Add(1)
			e.sends.Add(1)
			go e.send(ctx, seq)
		}
	}
}

// send performs one tick's send and always delivers exactly one outcome.
func (e *Emitter) send(ctx context.Context, seq uint64) {
	defer e.sends.Done()

	start := time.Now()
	out := domain.Outcome{Seq: seq}

	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("send panicked: %v", r)
		}
		out.Duration = time.Since(start)
		if out.Err != nil {
			out.Err = &domain.SendError{Seq: seq, Destination: e.config.Destination, Err: out.Err}
		}
		e.outcomes <- out
	}()

	dst := e.config.Destination
	addr, err := e.resolver.Resolve(ctx, dst.Host, dst.Port)
	if err != nil {
		out.Err = err
		return
	}
	out.Remote = addr

	e.sockMu.RLock()
	defer e.sockMu.RUnlock()
	if e.closed {
		out.Err = net.ErrClosed
		return
	}
	out.Bytes, out.Err = e.sock.WriteTo(e.config.Payload.View(), addr)
}

func (e *Emitter) report() {
	defer close(e.reportDone)

	for o := range e.outcomes {
		if o.OK() {
			e.sent.Add(1)
			e.logger.Info("datagram sent",
				ports.Uint64("seq", o.Seq),
				ports.Int("bytes", o.Bytes),
				ports.Stringer("remote", o.Remote),
				ports.Duration("elapsed", o.Duration),
			)
		} else {
			e.failed.Add(1)
			e.logger.Warn("datagram send failed",
				ports.Uint64("seq", o.Seq),
				ports.String("destination", e.config.Destination.String()),
				ports.Err(o.Err),
			)
		}
		if e.observer != nil {
			e.observer.OnOutcome(o)
		}
	}
}

func (e *Emitter) closeSocket() error {
	e.sockMu.Lock()
	defer e.sockMu.Unlock()
	if e.closed || e.sock == nil {
		return nil
	}
	e.closed = true
	return e.sock.Close()
}
