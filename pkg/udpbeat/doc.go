// Package udpbeat provides an embeddable periodic UDP emitter.
//
// An [Emitter] owns one UDP socket bound to an ephemeral local port, a fixed
// destination, a fixed payload and a fixed interval. On every tick it sends
// the payload once, fire-and-forget. A failed send is logged and reported to
// the event handler; it never stops the emitter, is never retried, and never
// reaches the caller as an error.
//
// # Basic Usage
//
//	e, err := udpbeat.New(
//	    udpbeat.Destination{Host: "198.51.100.1", Port: 8888},
//	    []byte("coucou"),
//	    16*time.Millisecond,
//	)
//	if err != nil {
//	    log.Fatal(err) // *udpbeat.ConfigError
//	}
//	if err := e.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Stop()
//
// # Configuration
//
// [New] takes the destination, payload and interval directly. [NewFromConfig]
// takes a [Config] and also exposes the network family and socket options.
// Both reject an empty host, a port outside [1,65535] and a non-positive
// interval with a [*ConfigError] before any socket is opened.
//
// # Event Handling
//
// Implement [EventHandler] (embedding [BaseEventHandler] for defaults) and
// pass it via [WithEventHandler]. Send events are delivered from a single
// goroutine in completion order; handlers should return quickly.
//
// # Lifecycle States
//
// An Emitter moves from [StateNotStarted] to [StateRunning] to [StateStopped]
// and never back. Stop is idempotent. To resume after Stop, construct a new
// Emitter.
package udpbeat
