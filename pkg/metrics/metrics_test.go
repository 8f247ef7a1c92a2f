package metrics

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/udpbeat/pkg/log"
)

const dst = "198.51.100.1:8888"

func TestCollector_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.ObserveSuccess(dst, 6, time.Millisecond)
	c.ObserveSuccess(dst, 6, time.Millisecond)
	c.ObserveFailure(dst, time.Millisecond)
	c.SetState(dst, "a", 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.datagramsSent.WithLabelValues(dst)))
	assert.Equal(t, 12.0, testutil.ToFloat64(c.bytesSent.WithLabelValues(dst)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.sendFailures.WithLabelValues(dst)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.state.WithLabelValues(dst, "a")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.sendDuration))
}

func TestCollector_StatePerEmitter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	// Replacement on the same destination: next starts, then prev stops.
	c.SetState(dst, "prev", 1)
	c.SetState(dst, "next", 1)
	c.SetState(dst, "prev", 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.state.WithLabelValues(dst, "next")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.state))

	c.ForgetState(dst, "prev")
	assert.Equal(t, 1, testutil.CollectAndCount(c.state))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.state.WithLabelValues(dst, "next")))
}

func TestCollector_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)
}

func TestServer_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)
	c.ObserveSuccess(dst, 6, time.Millisecond)

	srv := NewServer("127.0.0.1:0", "", reg, log.NewNoopLogger())
	require.NoError(t, srv.Start())
	defer srv.Stop(context.Background())

	assert.Error(t, srv.Start(), "second Start must fail")

	resp, err := http.Get("http://" + srv.Addr().String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `udpbeat_datagrams_sent_total{destination="198.51.100.1:8888"} 1`), string(body))
}

func TestServer_StopIdempotent(t *testing.T) {
	srv := NewServer("127.0.0.1:0", "/m", prometheus.NewRegistry(), log.NewNoopLogger())
	assert.NoError(t, srv.Stop(context.Background()))
	require.NoError(t, srv.Start())
	assert.NoError(t, srv.Stop(context.Background()))
	assert.NoError(t, srv.Stop(context.Background()))
	assert.Nil(t, srv.Addr())
}
