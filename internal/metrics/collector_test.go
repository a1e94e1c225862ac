package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("flexstack", reg)

	c.ObserveRequest("POST", "/ai/text_completion", 200, 120*time.Millisecond)
	c.ObserveRequest("POST", "/ai/text_completion", 200, 80*time.Millisecond)
	c.ObserveRequest("GET", "/ai/models", 502, 10*time.Millisecond)

	require.InDelta(t, 2, testutil.ToFloat64(
		c.requestsTotal.WithLabelValues("POST", "/ai/text_completion", "200")), 0.001)
	require.InDelta(t, 1, testutil.ToFloat64(
		c.requestsTotal.WithLabelValues("GET", "/ai/models", "502")), 0.001)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 2)
}

func TestObserveRequestNilCollector(t *testing.T) {
	// A nil collector is a no-op so callers never branch on metrics being enabled.
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveRequest("GET", "/lora/types", 200, time.Millisecond)
	})
}
