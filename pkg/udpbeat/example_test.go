package udpbeat_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/bft-labs/udpbeat/pkg/udpbeat"
)

// ExampleNew sends a datagram to a local receiver.
func ExampleNew() {
	recv, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer recv.Close()

	dst := udpbeat.Destination{Host: "127.0.0.1", Port: recv.LocalAddr().(*net.UDPAddr).Port}
	e, err := udpbeat.New(dst, []byte("coucou"), 16*time.Millisecond)
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := e.Start(context.Background()); err != nil {
		fmt.Println(err)
		return
	}
	defer e.Stop()

	buf := make([]byte, 64)
	_ = recv.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := recv.ReadFromUDP(buf)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(buf[:n]))

	// Output: coucou
}

// ExampleNew_invalidInterval shows the construction-time error.
func ExampleNew_invalidInterval() {
	_, err := udpbeat.New(udpbeat.Destination{Host: "198.51.100.1", Port: 8888}, []byte("coucou"), 0)

	var cfgErr *udpbeat.ConfigError
	fmt.Println(errors.As(err, &cfgErr), cfgErr.Field)
	fmt.Println(errors.Is(err, udpbeat.ErrInvalidConfig))

	// Output:
	// true interval
	// true
}

// ExampleEmitter_Status walks through the lifecycle.
func ExampleEmitter_Status() {
	e, _ := udpbeat.New(udpbeat.Destination{Host: "127.0.0.1", Port: 9}, []byte("x"), time.Hour)
	fmt.Println(e.Status())

	_ = e.Start(context.Background())
	fmt.Println(e.Status())

	_ = e.Stop()
	_ = e.Stop()
	fmt.Println(e.Status())
	fmt.Println(e.Start(context.Background()))

	// Output:
	// NotStarted
	// Running
	// Stopped
	// udpbeat: emitter stopped
}

type printingHandler struct {
	udpbeat.BaseEventHandler
}

func (printingHandler) OnStateChange(event udpbeat.StateChangeEvent) {
	fmt.Printf("%s -> %s\n", event.Previous, event.Current)
}

// ExampleWithEventHandler receives lifecycle events.
func ExampleWithEventHandler() {
	e, _ := udpbeat.New(udpbeat.Destination{Host: "127.0.0.1", Port: 9}, []byte("x"), time.Hour,
		udpbeat.WithEventHandler(printingHandler{}))

	_ = e.Start(context.Background())
	_ = e.Stop()

	// Output:
	// NotStarted -> Running
	// Running -> Stopped
}
