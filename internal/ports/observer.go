package ports

import "github.com/bft-labs/udpbeat/internal/domain"

// OutcomeObserver receives the outcome of every tick.
// Calls come from a single goroutine, one at a time, in completion order.
type OutcomeObserver interface {
	OnOutcome(o domain.Outcome)
}
