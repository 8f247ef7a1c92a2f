// Package udp implements the socket ports over the operating system's UDP stack.
package udp

import (
	"context"
	"fmt"
	"net"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"github.com/bft-labs/udpbeat/internal/ports"
)

// Supported network names.
const (
	NetworkUDP  = "udp"
	NetworkUDP4 = "udp4"
	NetworkUDP6 = "udp6"
)

// ValidNetwork reports whether network is one of udp, udp4 or udp6.
func ValidNetwork(network string) bool {
	switch network {
	case NetworkUDP, NetworkUDP4, NetworkUDP6:
		return true
	}
	return false
}

// SocketOptions are applied to the socket right after it is bound.
// Zero values leave the operating system defaults in place.
type SocketOptions struct {
	// TTL is the IPv4 time-to-live, or the IPv6 hop limit on udp6.
	TTL int

	// TOS is the IPv4 type-of-service byte, or the IPv6 traffic class on udp6.
	TOS int
}

// Opener opens unconnected UDP sockets on an ephemeral local port.
type Opener struct {
	network string
	opts    SocketOptions
	logger  ports.Logger
}

// NewOpener returns an Opener for network ("udp", "udp4" or "udp6").
func NewOpener(network string, opts SocketOptions, logger ports.Logger) *Opener {
	return &Opener{network: network, opts: opts, logger: logger}
}

// Open binds a new socket. On any error after bind the socket is closed
// before returning, so a failed Open never leaks a handle.
func (o *Opener) Open(ctx context.Context) (ports.Socket, error) {
	var lc net.ListenConfig
	pc, err := lc.ListenPacket(ctx, o.network, ":0")
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", o.network, err)
	}

	if err := o.applyOptions(pc); err != nil {
		pc.Close()
		return nil, err
	}

	o.logger.Debug("socket opened",
		ports.String("network", o.network),
		ports.Stringer("local", pc.LocalAddr()),
	)
	return pc, nil
}

func (o *Opener) applyOptions(pc net.PacketConn) error {
	if o.opts.TTL == 0 && o.opts.TOS == 0 {
		return nil
	}

	if o.network == NetworkUDP6 {
		p := ipv6.NewPacketConn(pc)
		if o.opts.TTL > 0 {
			if err := p.SetHopLimit(o.opts.TTL); err != nil {
				return fmt.Errorf("set hop limit: %w", err)
			}
		}
		if o.opts.TOS > 0 {
			if err := p.SetTrafficClass(o.opts.TOS); err != nil {
				return fmt.Errorf("set traffic class: %w", err)
			}
		}
		return nil
	}

	p := ipv4.NewPacketConn(pc)
	if o.opts.TTL > 0 {
		if err := p.SetTTL(o.opts.TTL); err != nil {
			return fmt.Errorf("set ttl: %w", err)
		}
	}
	if o.opts.TOS > 0 {
		if err := p.SetTOS(o.opts.TOS); err != nil {
			return fmt.Errorf("set tos: %w", err)
		}
	}
	return nil
}

var _ ports.SocketOpener = (*Opener)(nil)
