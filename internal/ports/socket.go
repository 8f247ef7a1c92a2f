package ports

import (
	"context"
	"net"
)

// Socket is an open, unconnected datagram socket.
// *net.UDPConn and any net.PacketConn satisfy it.
type Socket interface {
	// WriteTo sends one datagram. It does not wait for any acknowledgement.
	WriteTo(p []byte, addr net.Addr) (int, error)

	// LocalAddr returns the bound local address.
	LocalAddr() net.Addr

	// Close releases the socket.
	Close() error
}

// SocketOpener opens a socket bound to an ephemeral local port.
type SocketOpener interface {
	Open(ctx context.Context) (Socket, error)
}

// Resolver resolves a host and port to the address passed to Socket.WriteTo.
type Resolver interface {
	Resolve(ctx context.Context, host string, port int) (net.Addr, error)
}
