package udp

import (
	"net"

	"golang.org/x/net/ipv4"

	"github.com/bft-labs/udpbeat/internal/ports"
)

func ipv4TTL(s ports.Socket) (int, error) {
	return ipv4.NewPacketConn(s.(net.PacketConn)).TTL()
}
