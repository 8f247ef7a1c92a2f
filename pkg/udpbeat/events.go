package udpbeat

import (
	"net"
	"time"

	"github.com/bft-labs/udpbeat/internal/app"
	"github.com/bft-labs/udpbeat/internal/domain"
	"github.com/bft-labs/udpbeat/pkg/metrics"
)

// State is the lifecycle state of an Emitter.
type State = app.State

const (
	StateNotStarted = app.StateNotStarted
	StateRunning    = app.StateRunning
	StateStopped    = app.StateStopped
)

// StateChangeEvent is delivered on every lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// SendSuccessEvent is delivered when a tick's datagram was written.
type SendSuccessEvent struct {
	Seq      uint64
	Remote   net.Addr
	Bytes    int
	Duration time.Duration
}

// SendFailureEvent is delivered when a tick's send failed. Error is a *SendError.
type SendFailureEvent struct {
	Seq      uint64
	Error    error
	Duration time.Duration
}

// EventHandler receives emitter events. Send events arrive one at a time on
// the emitter's reporter goroutine; state events arrive on the goroutine that
// called Start or Stop.
//
// Stop waits for every pending event to be delivered, so a handler must not
// call Stop (or Start) synchronously. To stop from a handler, call it on a new
// goroutine:
//
//	func (h *handler) OnSendSuccess(SendSuccessEvent) {
//		if h.n.Add(1) == 100 {
//			go h.emitter.Stop()
//		}
//	}
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnSendSuccess(event SendSuccessEvent)
	OnSendFailure(event SendFailureEvent)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to override
// only the events you care about.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent) {}
func (BaseEventHandler) OnSendSuccess(SendSuccessEvent) {}
func (BaseEventHandler) OnSendFailure(SendFailureEvent) {}

// eventBridge adapts EventHandler and the metrics collector to the internal
// observer interfaces.
type eventBridge struct {
	handler     EventHandler
	metrics     *metrics.Collector
	destination string
	emitterID   string
}

func (b *eventBridge) OnStateChange(previous, current app.State, reason string) {
	if b.metrics != nil {
		b.metrics.SetState(b.destination, b.emitterID, int(current))
	}
	if b.handler != nil {
		b.handler.OnStateChange(StateChangeEvent{Previous: previous, Current: current, Reason: reason})
	}
}

func (b *eventBridge) OnOutcome(o domain.Outcome) {
	if o.OK() {
		if b.metrics != nil {
			b.metrics.ObserveSuccess(b.destination, o.Bytes, o.Duration)
		}
		if b.handler != nil {
			b.handler.OnSendSuccess(SendSuccessEvent{Seq: o.Seq, Remote: o.Remote, Bytes: o.Bytes, Duration: o.Duration})
		}
		return
	}

	if b.metrics != nil {
		b.metrics.ObserveFailure(b.destination, o.Duration)
	}
	if b.handler != nil {
		b.handler.OnSendFailure(SendFailureEvent{Seq: o.Seq, Error: o.Err, Duration: o.Duration})
	}
}
