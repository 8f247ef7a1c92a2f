package app

import (
	"sync"
	"testing"

	"github.com/bft-labs/udpbeat/internal/domain"
	"github.com/bft-labs/udpbeat/pkg/log"
)

// mockObserver tracks state change events for testing.
type mockObserver struct {
	mu     sync.Mutex
	events []stateChangeEvent
}

type stateChangeEvent struct {
	previous State
	current  State
	reason   string
}

func (m *mockObserver) OnStateChange(previous, current State, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, stateChangeEvent{previous, current, reason})
}

func (m *mockObserver) Events() []stateChangeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]stateChangeEvent{}, m.events...)
}

func TestNewLifecycle(t *testing.T) {
	l := NewLifecycle(log.NewNoopLogger(), nil)

	if l == nil {
		t.Fatal("NewLifecycle returned nil")
	}
	if l.State() != StateNotStarted {
		t.Errorf("initial state = %v, want StateNotStarted", l.State())
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateNotStarted, "NotStarted"},
		{StateRunning, "Running"},
		{StateStopped, "Stopped"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		got := tt.state.String()
		if got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}

func TestLifecycle_TransitionTo_ValidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from State
		to   State
	}{
		{"not started to running", StateNotStarted, StateRunning},
		{"not started to stopped", StateNotStarted, StateStopped},
		{"running to stopped", StateRunning, StateStopped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLifecycle(log.NewNoopLogger(), nil)
			l.state = tt.from

			if err := l.TransitionTo(tt.to, "test"); err != nil {
				t.Errorf("TransitionTo() error = %v", err)
			}
			if l.State() != tt.to {
				t.Errorf("state = %v after transition, want %v", l.State(), tt.to)
			}
		})
	}
}

func TestLifecycle_TransitionTo_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		to      State
		wantErr error
	}{
		{"not started to not started", StateNotStarted, StateNotStarted, domain.ErrStopped},
		{"running to running", StateRunning, StateRunning, domain.ErrAlreadyRunning},
		{"running to not started", StateRunning, StateNotStarted, domain.ErrAlreadyRunning},
		{"stopped to running", StateStopped, StateRunning, domain.ErrStopped},
		{"stopped to stopped", StateStopped, StateStopped, domain.ErrStopped},
		{"stopped to not started", StateStopped, StateNotStarted, domain.ErrStopped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLifecycle(log.NewNoopLogger(), nil)
			l.state = tt.from

			err := l.TransitionTo(tt.to, "test")

			if err != tt.wantErr {
				t.Errorf("TransitionTo() error = %v, want %v", err, tt.wantErr)
			}
			// State should not change on invalid transition
			if l.State() != tt.from {
				t.Errorf("state changed to %v on invalid transition, want %v", l.State(), tt.from)
			}
		})
	}
}

func TestLifecycle_TransitionTo_EmitsEvents(t *testing.T) {
	observer := &mockObserver{}
	l := NewLifecycle(log.NewNoopLogger(), observer)

	_ = l.TransitionTo(StateRunning, "start test")
	_ = l.TransitionTo(StateStopped, "stop test")
	_ = l.TransitionTo(StateRunning, "rejected")

	events := observer.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	if events[0].previous != StateNotStarted || events[0].current != StateRunning {
		t.Errorf("event 0: got %v->%v, want NotStarted->Running", events[0].previous, events[0].current)
	}
	if events[1].previous != StateRunning || events[1].current != StateStopped || events[1].reason != "stop test" {
		t.Errorf("event 1: got %+v, want Running->Stopped (stop test)", events[1])
	}
}

func TestLifecycle_Concurrency(t *testing.T) {
	l := NewLifecycle(log.NewNoopLogger(), nil)

	var wg sync.WaitGroup

	// Concurrent state reads
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = l.State()
			}
		}()
	}

	// Concurrent transitions (all but one of each will fail)
	var started, stopped sync.Map
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if l.TransitionTo(StateRunning, "test") == nil {
				started.Store(i, true)
			}
			if l.TransitionTo(StateStopped, "test") == nil {
				stopped.Store(i, true)
			}
		}(i)
	}

	wg.Wait()

	count := func(m *sync.Map) int {
		n := 0
		m.Range(func(_, _ any) bool { n++; return true })
		return n
	}
	if count(&started) != 1 || count(&stopped) != 1 {
		t.Errorf("started=%d stopped=%d, want exactly one of each", count(&started), count(&stopped))
	}
	if l.State() != StateStopped {
		t.Errorf("final state = %v, want Stopped", l.State())
	}
}
