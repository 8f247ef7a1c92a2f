package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (UDPBEAT_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", os.Getenv("UDPBEAT_HOST"), &cfg.Host)
	s.setString("payload", os.Getenv("UDPBEAT_PAYLOAD"), &cfg.Payload)
	s.setString("payload-hex", os.Getenv("UDPBEAT_PAYLOAD_HEX"), &cfg.PayloadHex)
	s.setString("network", os.Getenv("UDPBEAT_NETWORK"), &cfg.Network)
	s.setString("metrics-addr", os.Getenv("UDPBEAT_METRICS_ADDR"), &cfg.MetricsAddr)
	s.setString("log-level", os.Getenv("UDPBEAT_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv("UDPBEAT_LOG_FORMAT"), &cfg.LogFormat)

	if err := s.setDuration("interval", os.Getenv("UDPBEAT_INTERVAL"), &cfg.Interval); err != nil {
		return err
	}

	if err := s.setIntFromString("port", os.Getenv("UDPBEAT_PORT"), &cfg.Port); err != nil {
		return err
	}
	if err := s.setIntFromString("ttl", os.Getenv("UDPBEAT_TTL"), &cfg.TTL); err != nil {
		return err
	}
	if err := s.setIntFromString("tos", os.Getenv("UDPBEAT_TOS"), &cfg.TOS); err != nil {
		return err
	}
	if err := s.setIntFromString("count", os.Getenv("UDPBEAT_COUNT"), &cfg.Count); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("UDPBEAT_WATCH"), &cfg.Watch)

	return nil
}
