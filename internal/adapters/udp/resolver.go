package udp

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"github.com/bft-labs/udpbeat/internal/ports"
)

// Resolver resolves destinations for one network family. IP literals are
// parsed without a lookup; hostnames go through net.DefaultResolver on every
// call, so DNS changes are picked up on the next tick.
type Resolver struct {
	network string
}

// NewResolver returns a Resolver for network ("udp", "udp4" or "udp6").
func NewResolver(network string) *Resolver {
	return &Resolver{network: network}
}

// Resolve returns a *net.UDPAddr for host:port.
func (r *Resolver) Resolve(ctx context.Context, host string, port int) (net.Addr, error) {
	if ip, err := netip.ParseAddr(host); err == nil {
		if !r.accepts(ip) {
			return nil, fmt.Errorf("address %s is not usable on %s", host, r.network)
		}
		return net.UDPAddrFromAddrPort(netip.AddrPortFrom(ip, uint16(port))), nil
	}

	ips, err := net.DefaultResolver.LookupNetIP(ctx, r.ipNetwork(), host)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", host, err)
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("resolve %s: no addresses", host)
	}
	return net.UDPAddrFromAddrPort(netip.AddrPortFrom(ips[0].Unmap(), uint16(port))), nil
}

func (r *Resolver) accepts(ip netip.Addr) bool {
	switch r.network {
	case NetworkUDP4:
		return ip.Unmap().Is4()
	case NetworkUDP6:
		return ip.Is6() && !ip.Is4In6()
	default:
		return true
	}
}

func (r *Resolver) ipNetwork() string {
	switch r.network {
	case NetworkUDP4:
		return "ip4"
	case NetworkUDP6:
		return "ip6"
	default:
		return "ip"
	}
}

var _ ports.Resolver = (*Resolver)(nil)
