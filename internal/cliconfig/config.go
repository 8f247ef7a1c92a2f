package cliconfig

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/bft-labs/udpbeat/pkg/udpbeat"
)

// Defaults for the CLI. Port, payload and interval match the classic
// "coucou every 16ms" probe.
const (
	DefaultPort      = 8888
	DefaultPayload   = "coucou"
	DefaultInterval  = 16 * time.Millisecond
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Config holds CLI configuration for udpbeat.
type Config struct {
	Host       string
	Port       int
	Payload    string
	PayloadHex string
	Interval   time.Duration

	Network string
	TTL     int
	TOS     int

	// Count stops the emitter after this many ticks have reported. 0 runs forever.
	Count int

	MetricsAddr string
	LogLevel    string
	LogFormat   string

	// Watch reloads the emitter when the config file changes.
	Watch bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Port:      DefaultPort,
		Payload:   DefaultPayload,
		Interval:  DefaultInterval,
		Network:   udpbeat.DefaultNetwork,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Validate checks the configuration, including everything udpbeat.NewFromConfig
// would reject, so errors surface before any socket or server is opened.
func (c *Config) Validate() error {
	if c.Host == "" {
		return &udpbeat.ConfigError{Field: "host", Reason: "is required"}
	}
	if c.Count < 0 {
		return &udpbeat.ConfigError{Field: "count", Reason: fmt.Sprintf("must not be negative, got %d", c.Count)}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return &udpbeat.ConfigError{Field: "log_level", Reason: err.Error()}
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return &udpbeat.ConfigError{Field: "log_format", Reason: fmt.Sprintf("must be console or json, got %q", c.LogFormat)}
	}

	ec, err := c.EmitterConfig()
	if err != nil {
		return &udpbeat.ConfigError{Field: "payload_hex", Reason: err.Error()}
	}
	ec.SetDefaults()
	return ec.Validate()
}

// PayloadBytes returns the payload, decoding PayloadHex when set.
func (c *Config) PayloadBytes() ([]byte, error) {
	if c.PayloadHex == "" {
		return []byte(c.Payload), nil
	}
	b, err := hex.DecodeString(c.PayloadHex)
	if err != nil {
		return nil, fmt.Errorf("decode payload-hex: %w", err)
	}
	return b, nil
}

// EmitterConfig converts the CLI configuration to the library configuration.
func (c *Config) EmitterConfig() (udpbeat.Config, error) {
	payload, err := c.PayloadBytes()
	if err != nil {
		return udpbeat.Config{}, err
	}
	return udpbeat.Config{
		Host:     c.Host,
		Port:     c.Port,
		Payload:  payload,
		Interval: c.Interval,
		Network:  c.Network,
		TTL:      c.TTL,
		TOS:      c.TOS,
	}, nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if present and flag not changed. Zero and negative
// values are applied so Validate can reject them.
func (s *configSetter) setInt(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setMillis sets a duration from a whole number of milliseconds if present.
func (s *configSetter) setMillis(flag string, value *int, dst *time.Duration) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = time.Duration(*value) * time.Millisecond
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
