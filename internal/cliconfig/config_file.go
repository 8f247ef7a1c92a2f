package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
// Numeric keys are pointers so an explicit 0 is told apart from an absent key.
type FileConfig struct {
	Host        string `toml:"host"`
	Port        *int   `toml:"port"`
	Payload     string `toml:"payload"`
	PayloadHex  string `toml:"payload_hex"`
	Interval    string `toml:"interval"`
	IntervalMS  *int   `toml:"interval_ms"`
	Network     string `toml:"network"`
	TTL         *int   `toml:"ttl"`
	TOS         *int   `toml:"tos"`
	Count       *int   `toml:"count"`
	MetricsAddr string `toml:"metrics_addr"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
	Watch       *bool  `toml:"watch"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	f, err := os.Open(path)
	if err != nil {
		return fc, err
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			keys := make([]string, 0, len(sme.Errors))
			for _, e := range sme.Errors {
				keys = append(keys, strings.Join(e.Key(), "."))
			}
			return fc, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
		}
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.udpbeat/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".udpbeat", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
// interval takes precedence over interval_ms when both are present.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", fc.Host, &cfg.Host)
	s.setString("payload", fc.Payload, &cfg.Payload)
	s.setString("payload-hex", fc.PayloadHex, &cfg.PayloadHex)
	s.setString("network", fc.Network, &cfg.Network)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)

	s.setMillis("interval", fc.IntervalMS, &cfg.Interval)
	if err := s.setDuration("interval", fc.Interval, &cfg.Interval); err != nil {
		return err
	}

	s.setInt("port", fc.Port, &cfg.Port)
	s.setInt("ttl", fc.TTL, &cfg.TTL)
	s.setInt("tos", fc.TOS, &cfg.TOS)
	s.setInt("count", fc.Count, &cfg.Count)

	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
