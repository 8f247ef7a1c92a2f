// Package ports defines the interfaces that connect the emitter core in
// internal/app to its infrastructure adapters.
//
// # Port Interfaces
//
//   - [Socket]: an open datagram socket
//   - [SocketOpener]: opens the emitter's one socket on an ephemeral port
//   - [Resolver]: turns the destination into a network address
//   - [OutcomeObserver]: receives each tick's outcome
//   - [Logger]: structured logging abstraction
//
// The application layer depends only on these interfaces; internal/adapters
// provides the UDP and zerolog implementations. Tests substitute fakes to
// count socket opens and closes or to force send failures.
package ports
