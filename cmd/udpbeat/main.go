package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/udpbeat/internal/cliconfig"
	"github.com/bft-labs/udpbeat/pkg/log"
	"github.com/bft-labs/udpbeat/pkg/metrics"
)

const helpDescription = `
Send the same UDP datagram to one destination on a fixed interval.

Every tick fires one datagram without waiting for the previous one. Sends are
best effort: failures are logged and counted, never retried, and never stop
the ticker.

Configure via file ($HOME/.udpbeat/config.toml), UDPBEAT_* environment
variables, or flags. Flags win over env, env wins over the file.
`

var exampleUsage = strings.TrimSpace(`
  udpbeat --host 198.51.100.1
  udpbeat --host 198.51.100.1 --port 8888 --payload coucou --interval 16ms
  udpbeat --host ::1 --network udp6 --payload-hex deadbeef --count 100
  udpbeat --config ./udpbeat.toml --watch --metrics-addr :9464
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	bootLog := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "udpbeat",
		Short:   "Periodic best-effort UDP emitter",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			// cfg holds defaults plus flag values; reloads start again from it.
			base := cfg
			loaded, err := loadConfig(base, cfgFile, changed)
			if err != nil {
				return err
			}

			zl, err := cliconfig.NewLogger(loaded, os.Stderr)
			if err != nil {
				return err
			}
			logConfiguration(zl, loaded)
			logger := log.NewZerologLogger(zl)

			registry := prometheus.NewRegistry()
			collector, err := metrics.NewCollector(registry)
			if err != nil {
				return fmt.Errorf("register metrics: %w", err)
			}
			if loaded.MetricsAddr != "" {
				srv := metrics.NewServer(loaded.MetricsAddr, "", registry, logger)
				if err := srv.Start(); err != nil {
					return fmt.Errorf("start metrics server: %w", err)
				}
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := srv.Stop(shutdownCtx); err != nil {
						logger.Warn("metrics server shutdown", log.Err(err))
					}
				}()
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			r := newRunner(base, cfgFile, changed, logger, collector)
			return r.Run(ctx, loaded)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.udpbeat/config.toml)")
	root.Flags().StringVar(&cfg.Host, "host", cfg.Host, "destination host or IP literal (required)")
	root.Flags().IntVar(&cfg.Port, "port", cfg.Port, "destination port")
	root.Flags().StringVar(&cfg.Payload, "payload", cfg.Payload, "payload sent on every tick")
	root.Flags().StringVar(&cfg.PayloadHex, "payload-hex", cfg.PayloadHex, "payload as hex, overrides --payload")
	root.Flags().DurationVar(&cfg.Interval, "interval", cfg.Interval, "time between ticks")

	root.Flags().StringVar(&cfg.Network, "network", cfg.Network, "socket family: udp4, udp6 or udp")
	root.Flags().IntVar(&cfg.TTL, "ttl", cfg.TTL, "IPv4 TTL / IPv6 hop limit (0 keeps the OS default)")
	root.Flags().IntVar(&cfg.TOS, "tos", cfg.TOS, "IPv4 TOS / IPv6 traffic class (0 keeps the OS default)")
	root.Flags().IntVar(&cfg.Count, "count", cfg.Count, "stop after this many sends have reported (0 runs until interrupted)")

	root.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address (disabled when empty)")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	root.Flags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: console or json")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "rebuild the emitter when the config file changes")

	if err := root.Execute(); err != nil {
		bootLog.Error().Err(err).Msg("udpbeat")
		os.Exit(1)
	}
}
