package app

import (
	"sync"

	"github.com/bft-labs/udpbeat/internal/domain"
	"github.com/bft-labs/udpbeat/internal/ports"
)

// State represents the lifecycle state of an emitter.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateStopped
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// StateObserver is called when lifecycle state changes.
type StateObserver interface {
	OnStateChange(previous, current State, reason string)
}

// Lifecycle is the one-way state machine NotStarted -> Running -> Stopped.
// NotStarted -> Stopped is also allowed. Nothing leaves Stopped.
type Lifecycle struct {
	mu       sync.RWMutex
	state    State
	logger   ports.Logger
	observer StateObserver
}

// NewLifecycle creates a lifecycle in StateNotStarted.
func NewLifecycle(logger ports.Logger, observer StateObserver) *Lifecycle {
	return &Lifecycle{
		state:    StateNotStarted,
		logger:   logger,
		observer: observer,
	}
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo attempts to transition to a new state.
// Returns ErrAlreadyRunning or ErrStopped if the transition is not valid.
func (l *Lifecycle) TransitionTo(newState State, reason string) error {
	l.mu.Lock()
	oldState := l.state

	switch oldState {
	case StateNotStarted:
		if newState != StateRunning && newState != StateStopped {
			l.mu.Unlock()
			return domain.ErrStopped
		}
	case StateRunning:
		if newState != StateStopped {
			l.mu.Unlock()
			return domain.ErrAlreadyRunning
		}
	case StateStopped:
		l.mu.Unlock()
		return domain.ErrStopped
	}

	l.state = newState
	l.mu.Unlock()

	// Emit event outside of lock
	if l.observer != nil {
		l.observer.OnStateChange(oldState, newState, reason)
	}

	l.logger.Info("state transition",
		ports.String("from", oldState.String()),
		ports.String("to", newState.String()),
		ports.String("reason", reason),
	)

	return nil
}
