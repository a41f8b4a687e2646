package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegistryCountsErrorsByKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(Config{Registerer: reg})
	require.NoError(t, err)

	m.IncError("get_size", KindRemote)
	m.IncError("get_size", KindRemote)
	m.IncError("get_size", KindTransport)

	require.Equal(t, 2.0, testutil.ToFloat64(m.callErrorCount.WithLabelValues("get_size", KindRemote)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.callErrorCount.WithLabelValues("get_size", KindTransport)))
}

func TestRegistryInflightGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(Config{Registerer: reg, Namespace: "test"})
	require.NoError(t, err)

	done := m.CallStarted("multiply")
	require.Equal(t, 1.0, testutil.ToFloat64(m.callInflightRequests.WithLabelValues("multiply")))
	m.ObserveCall(time.Now(), "multiply")
	done()
	require.Equal(t, 0.0, testutil.ToFloat64(m.callInflightRequests.WithLabelValues("multiply")))
}

func TestRegistryReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(Config{Registerer: reg})
	require.NoError(t, err)
	second, err := New(Config{Registerer: reg})
	require.NoError(t, err)

	second.IncError("create_zero", KindTransport)
	require.Equal(t, 1.0, testutil.ToFloat64(first.callErrorCount.WithLabelValues("create_zero", KindTransport)))
}
