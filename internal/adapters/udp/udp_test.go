package udp

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/udpbeat/pkg/log"
)

func TestOpener_EphemeralPort(t *testing.T) {
	o := NewOpener(NetworkUDP4, SocketOptions{}, log.NewNoopLogger())

	sock, err := o.Open(context.Background())
	require.NoError(t, err)
	defer sock.Close()

	addr, ok := sock.LocalAddr().(*net.UDPAddr)
	require.True(t, ok, "local addr type %T", sock.LocalAddr())
	assert.NotZero(t, addr.Port)
}

func TestOpener_WithTTL(t *testing.T) {
	o := NewOpener(NetworkUDP4, SocketOptions{TTL: 4}, log.NewNoopLogger())

	sock, err := o.Open(context.Background())
	require.NoError(t, err)
	defer sock.Close()

	ttl, err := ipv4TTL(sock)
	require.NoError(t, err)
	assert.Equal(t, 4, ttl)
}

func TestOpener_SendsToLoopbackReceiver(t *testing.T) {
	recv, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer recv.Close()

	sock, err := NewOpener(NetworkUDP4, SocketOptions{}, log.NewNoopLogger()).Open(context.Background())
	require.NoError(t, err)
	defer sock.Close()

	port := recv.LocalAddr().(*net.UDPAddr).Port
	dst, err := NewResolver(NetworkUDP4).Resolve(context.Background(), "127.0.0.1", port)
	require.NoError(t, err)

	n, err := sock.WriteTo([]byte("coucou"), dst)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	require.NoError(t, recv.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 64)
	n, from, err := recv.ReadFromUDP(buf)
	require.NoError(t, err)
	assert.Equal(t, "coucou", string(buf[:n]))
	assert.Equal(t, sock.LocalAddr().(*net.UDPAddr).Port, from.Port)
}

func TestResolver_Literals(t *testing.T) {
	tests := []struct {
		name    string
		network string
		host    string
		want    string
		wantErr bool
	}{
		{"ipv4 on udp4", NetworkUDP4, "198.51.100.1", "198.51.100.1:8888", false},
		{"ipv6 on udp4", NetworkUDP4, "2001:db8::1", "", true},
		{"ipv6 on udp6", NetworkUDP6, "2001:db8::1", "[2001:db8::1]:8888", false},
		{"ipv4 on udp6", NetworkUDP6, "198.51.100.1", "", true},
		{"ipv6 on udp", NetworkUDP, "2001:db8::1", "[2001:db8::1]:8888", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := NewResolver(tt.network).Resolve(context.Background(), tt.host, 8888)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr.String())
		})
	}
}

func TestResolver_Localhost(t *testing.T) {
	addr, err := NewResolver(NetworkUDP4).Resolve(context.Background(), "localhost", 53)
	require.NoError(t, err)

	udpAddr := addr.(*net.UDPAddr)
	assert.True(t, udpAddr.IP.IsLoopback())
	assert.Equal(t, 53, udpAddr.Port)
}

func TestValidNetwork(t *testing.T) {
	assert.True(t, ValidNetwork("udp"))
	assert.True(t, ValidNetwork("udp4"))
	assert.True(t, ValidNetwork("udp6"))
	assert.False(t, ValidNetwork("tcp"))
	assert.False(t, ValidNetwork(""))
}
