package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, func() int { return 3 })
	m.ObserveRequest(http.MethodGet, "/account", http.StatusOK, time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	registered := make(map[string]bool)
	for _, family := range families {
		registered[family.GetName()] = true
	}

	for _, name := range []string{
		"tokenauth_http_requests_total",
		"tokenauth_http_request_duration_seconds",
		"tokenauth_refresh_tokens_active",
	} {
		assert.True(t, registered[name], "metric %q should be registered", name)
	}
}

func TestMetrics_ObserveRequest(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry(), func() int { return 0 })

	m.ObserveRequest(http.MethodPost, "/login", http.StatusForbidden, 5*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/login", http.StatusForbidden, 5*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/login", http.StatusOK, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "/login", "403")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "/login", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

func TestMetrics_ActiveRefreshFollowsSource(t *testing.T) {
	active := 0
	m := NewMetrics(prometheus.NewRegistry(), func() int { return active })

	assert.Equal(t, 0.0, testutil.ToFloat64(m.ActiveRefresh))
	active = 7
	assert.Equal(t, 7.0, testutil.ToFloat64(m.ActiveRefresh))
}

func TestNewRegistry_RuntimeCollectors(t *testing.T) {
	families, err := NewRegistry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
