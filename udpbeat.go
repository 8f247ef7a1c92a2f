// Package udpbeat sends a fixed UDP datagram to a fixed destination on a
// fixed interval, best effort.
//
// Example usage:
//
//	cfg := udpbeat.Config{
//	    Host:     "198.51.100.1",
//	    Port:     8888,
//	    Payload:  []byte("coucou"),
//	    Interval: 16 * time.Millisecond,
//	}
//	if err := udpbeat.Run(ctx, cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// For lifecycle control, events and metrics use pkg/udpbeat directly.
package udpbeat

import (
	"context"

	"github.com/bft-labs/udpbeat/pkg/udpbeat"
)

// Config holds the emitter configuration.
type Config = udpbeat.Config

// Destination is the host and port datagrams are sent to.
type Destination = udpbeat.Destination

// Option configures optional behavior of the emitter.
type Option = udpbeat.Option

// Run starts an emitter for cfg and blocks until ctx is cancelled, then
// stops it. Send failures never end Run; only an invalid config or a socket
// that cannot be opened does.
func Run(ctx context.Context, cfg Config, opts ...Option) error {
	e, err := udpbeat.NewFromConfig(cfg, opts...)
	if err != nil {
		return err
	}
	if err := e.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return e.Stop()
}
