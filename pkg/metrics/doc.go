// Package metrics exposes emitter activity as Prometheus metrics.
//
// A [Collector] is registered once against a prometheus.Registerer and may be
// shared by several emitters (for example across a config reload); every
// series carries the destination as a label.
//
//	reg := prometheus.NewRegistry()
//	c, err := metrics.NewCollector(reg)
//	e, err := udpbeat.New(dst, payload, interval, udpbeat.WithMetrics(c))
//	srv := metrics.NewServer(":9464", "/metrics", reg, logger)
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package metrics
