package udpbeat

import (
	"fmt"
	"time"

	"github.com/bft-labs/udpbeat/internal/adapters/udp"
	"github.com/bft-labs/udpbeat/internal/domain"
)

// DefaultNetwork matches a plain IPv4 datagram socket.
const DefaultNetwork = udp.NetworkUDP4

// Config holds everything an Emitter is constructed from.
type Config struct {
	// Host and Port name the destination. Host may be an IP literal or a
	// hostname; hostnames are resolved on every tick.
	Host string
	Port int

	// Payload is copied at construction.
	Payload []byte

	// Interval between ticks. Must be positive.
	Interval time.Duration

	// Network is "udp4" (default), "udp6" or "udp".
	Network string

	// TTL sets the IPv4 TTL (IPv6 hop limit on udp6). 0 keeps the OS default.
	TTL int

	// TOS sets the IPv4 TOS byte (IPv6 traffic class on udp6). 0 keeps the OS default.
	TOS int
}

// SetDefaults fills zero-valued optional fields.
func (c *Config) SetDefaults() {
	if c.Network == "" {
		c.Network = DefaultNetwork
	}
}

// Validate returns a *ConfigError for the first invalid field.
func (c Config) Validate() error {
	if err := c.Destination().Validate(); err != nil {
		return err
	}
	if c.Interval <= 0 {
		return &domain.ConfigError{Field: "interval", Reason: fmt.Sprintf("must be positive, got %s", c.Interval)}
	}
	if !udp.ValidNetwork(c.Network) {
		return &domain.ConfigError{Field: "network", Reason: fmt.Sprintf("must be udp, udp4 or udp6, got %q", c.Network)}
	}
	if c.TTL < 0 || c.TTL > 255 {
		return &domain.ConfigError{Field: "ttl", Reason: fmt.Sprintf("must be in [0,255], got %d", c.TTL)}
	}
	if c.TOS < 0 || c.TOS > 255 {
		return &domain.ConfigError{Field: "tos", Reason: fmt.Sprintf("must be in [0,255], got %d", c.TOS)}
	}
	return nil
}

// Destination returns the configured destination.
func (c Config) Destination() Destination {
	return Destination{Host: c.Host, Port: c.Port}
}
