package main

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/bft-labs/udpbeat/internal/cliconfig"
	"github.com/bft-labs/udpbeat/pkg/log"
	"github.com/bft-labs/udpbeat/pkg/metrics"
	"github.com/bft-labs/udpbeat/pkg/udpbeat"
	"github.com/bft-labs/udpbeat/plugins/configwatcher"
)

// loadConfig layers the config file and UDPBEAT_* variables over base, which
// holds defaults and flag values, and validates the result.
func loadConfig(base cliconfig.Config, cfgFile string, changed map[string]bool) (cliconfig.Config, error) {
	cfg := base

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
			return cfg, err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// logConfiguration logs the effective settings. The payload itself is not
// logged, only its length.
func logConfiguration(logger zerolog.Logger, cfg cliconfig.Config) {
	payloadBytes := 0
	if b, err := cfg.PayloadBytes(); err == nil {
		payloadBytes = len(b)
	}
	logger.Info().
		Str("destination", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))).
		Dur("interval", cfg.Interval).
		Int("payload_bytes", payloadBytes).
		Str("network", cfg.Network).
		Int("count", cfg.Count).
		Bool("watch", cfg.Watch).
		Str("metrics_addr", cfg.MetricsAddr).
		Msg("configuration")
}

// sendCounter signals done once limit sends have reported, successful or not.
type sendCounter struct {
	udpbeat.BaseEventHandler

	limit uint64
	n     atomic.Uint64
	once  sync.Once
	done  chan struct{}
}

func newSendCounter(limit int) *sendCounter {
	return &sendCounter{limit: uint64(limit), done: make(chan struct{})}
}

func (c *sendCounter) OnSendSuccess(udpbeat.SendSuccessEvent) { c.add() }
func (c *sendCounter) OnSendFailure(udpbeat.SendFailureEvent) { c.add() }

func (c *sendCounter) add() {
	if c.n.Add(1) == c.limit {
		c.once.Do(func() { close(c.done) })
	}
}

// runner owns the running emitter and swaps it when the config file changes.
// A stopped emitter cannot be restarted, so every reload builds a new one.
type runner struct {
	base    cliconfig.Config
	cfgFile string
	changed map[string]bool
	logger  log.Logger
	metrics *metrics.Collector

	mu      sync.Mutex
	ctx     context.Context
	counter *sendCounter
	current *udpbeat.Emitter
}

func newRunner(base cliconfig.Config, cfgFile string, changed map[string]bool, logger log.Logger, collector *metrics.Collector) *runner {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &runner{
		base:    base,
		cfgFile: cfgFile,
		changed: changed,
		logger:  logger,
		metrics: collector,
	}
}

// Run starts an emitter for cfg and blocks until ctx is cancelled or
// cfg.Count sends have reported, then stops whichever emitter is current.
func (r *runner) Run(ctx context.Context, cfg cliconfig.Config) error {
	r.mu.Lock()
	r.ctx = ctx
	r.counter = newSendCounter(cfg.Count)
	r.mu.Unlock()

	e, err := r.newEmitter(cfg)
	if err != nil {
		return fmt.Errorf("create emitter: %w", err)
	}
	if err := e.Start(ctx); err != nil {
		return fmt.Errorf("start emitter: %w", err)
	}

	r.mu.Lock()
	r.current = e
	r.mu.Unlock()

	if cfg.Watch {
		w := configwatcher.New(configwatcher.DefaultConfig(), r.cfgFile, r.reload, r.logger)
		if err := w.Start(ctx); err != nil {
			r.logger.Warn("config reload disabled", log.Err(err))
		} else {
			defer w.Shutdown(context.Background())
		}
	}

	select {
	case <-ctx.Done():
		r.logger.Info("received signal, stopping")
	case <-r.counter.done:
		r.logger.Info("count reached, stopping", log.Int("count", cfg.Count))
	}

	r.mu.Lock()
	e = r.current
	r.current = nil
	r.mu.Unlock()

	if err := e.Stop(); err != nil {
		return fmt.Errorf("stop emitter: %w", err)
	}
	return nil
}

func (r *runner) newEmitter(cfg cliconfig.Config) (*udpbeat.Emitter, error) {
	ec, err := cfg.EmitterConfig()
	if err != nil {
		return nil, err
	}
	opts := []udpbeat.Option{
		udpbeat.WithLogger(r.logger),
		udpbeat.WithEventHandler(r.counter),
	}
	if r.metrics != nil {
		opts = append(opts, udpbeat.WithMetrics(r.metrics))
	}
	return udpbeat.NewFromConfig(ec, opts...)
}

// reload builds and starts an emitter from the changed file, then stops the
// old one. An invalid file leaves the current emitter running.
func (r *runner) reload(path string) {
	cfg, err := loadConfig(r.base, path, r.changed)
	if err != nil {
		r.logger.Error("config reload rejected, keeping current emitter", log.Err(err))
		return
	}

	next, err := r.newEmitter(cfg)
	if err != nil {
		r.logger.Error("config reload rejected, keeping current emitter", log.Err(err))
		return
	}

	r.mu.Lock()
	ctx := r.ctx
	r.mu.Unlock()
	if err := next.Start(ctx); err != nil {
		r.logger.Error("reloaded emitter failed to start, keeping current emitter", log.Err(err))
		return
	}

	r.mu.Lock()
	prev := r.current
	if prev == nil {
		// Run is already shutting down.
		r.mu.Unlock()
		_ = next.Stop()
		return
	}
	r.current = next
	r.mu.Unlock()

	if err := prev.Stop(); err != nil {
		r.logger.Warn("stop previous emitter", log.Err(err))
	}
	if r.metrics != nil {
		r.metrics.ForgetState(prev.Destination().String(), prev.ID())
	}
	r.logger.Info("emitter reloaded",
		log.String("previous", prev.ID()),
		log.String("current", next.ID()),
		log.Stringer("destination", next.Destination()),
	)
}
