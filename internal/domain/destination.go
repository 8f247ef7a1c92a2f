package domain

import (
	"net"
	"strconv"
)

// MaxPort is the largest valid UDP port.
const MaxPort = 65535

// Destination is the fixed host and port every datagram is sent to.
type Destination struct {
	Host string
	Port int
}

// NewDestination validates host and port.
func NewDestination(host string, port int) (Destination, error) {
	d := Destination{Host: host, Port: port}
	if err := d.Validate(); err != nil {
		return Destination{}, err
	}
	return d, nil
}

// Validate reports a *ConfigError if the destination cannot be used.
func (d Destination) Validate() error {
	if d.Host == "" {
		return &ConfigError{Field: "host", Reason: "must not be empty"}
	}
	if d.Port < 1 || d.Port > MaxPort {
		return &ConfigError{Field: "port", Reason: "must be in [1,65535], got " + strconv.Itoa(d.Port)}
	}
	return nil
}

// String returns host:port, bracketing IPv6 literals.
func (d Destination) String() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}
