package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "udpbeat"

// Collector holds the emitter metrics.
type Collector struct {
	datagramsSent *prometheus.CounterVec
	sendFailures  *prometheus.CounterVec
	bytesSent     *prometheus.CounterVec
	sendDuration  *prometheus.HistogramVec
	state         *prometheus.GaugeVec
}

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		datagramsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datagrams_sent_total",
			Help:      "Datagrams handed to the network stack without error",
		}, []string{"destination"}),
		sendFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datagram_send_failures_total",
			Help:      "Ticks whose send failed",
		}, []string{"destination"}),
		bytesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_sent_total",
			Help:      "Payload bytes written",
		}, []string{"destination"}),
		sendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "send_duration_seconds",
			Help:      "Time to resolve the destination and write one datagram",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"destination"}),
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "emitter_state",
			Help:      "Emitter lifecycle state (0=not started, 1=running, 2=stopped)",
		}, []string{"destination", "emitter_id"}),
	}

	for _, col := range []prometheus.Collector{c.datagramsSent, c.sendFailures, c.bytesSent, c.sendDuration, c.state} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return c, nil
}

// ObserveSuccess records one successful send.
func (c *Collector) ObserveSuccess(destination string, bytes int, d time.Duration) {
	c.datagramsSent.WithLabelValues(destination).Inc()
	c.bytesSent.WithLabelValues(destination).Add(float64(bytes))
	c.sendDuration.WithLabelValues(destination).Observe(d.Seconds())
}

// ObserveFailure records one failed send.
func (c *Collector) ObserveFailure(destination string, d time.Duration) {
	c.sendFailures.WithLabelValues(destination).Inc()
	c.sendDuration.WithLabelValues(destination).Observe(d.Seconds())
}

// SetState records the numeric lifecycle state of one emitter. Emitters
// sharing a destination each get their own series.
func (c *Collector) SetState(destination, emitterID string, state int) {
	c.state.WithLabelValues(destination, emitterID).Set(float64(state))
}

// ForgetState removes the state series of an emitter that has been replaced.
func (c *Collector) ForgetState(destination, emitterID string) {
	c.state.DeleteLabelValues(destination, emitterID)
}
