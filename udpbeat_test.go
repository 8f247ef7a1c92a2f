package udpbeat_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/bft-labs/udpbeat"
	lib "github.com/bft-labs/udpbeat/pkg/udpbeat"
)

func TestRun_InvalidConfig(t *testing.T) {
	err := udpbeat.Run(context.Background(), udpbeat.Config{Host: "127.0.0.1", Port: 8888})
	if !errors.Is(err, lib.ErrInvalidConfig) {
		t.Fatalf("Run() error = %v, want ErrInvalidConfig", err)
	}
}

func TestRun_SendsUntilCancelled(t *testing.T) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- udpbeat.Run(ctx, udpbeat.Config{
			Host:     "127.0.0.1",
			Port:     conn.LocalAddr().(*net.UDPAddr).Port,
			Payload:  []byte("coucou"),
			Interval: 5 * time.Millisecond,
		})
	}()

	buf := make([]byte, 16)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := conn.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(buf[:n]) != "coucou" {
		t.Errorf("payload = %q, want coucou", buf[:n])
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
