package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	before := testutil.ToFloat64(Observer.prometheus.Crosses.WithLabelValues("test", "BTC", "golden"))
	Observer.Cross("test", "BTC", "golden")
	Observer.Cross("test", "BTC", "golden")
	after := testutil.ToFloat64(Observer.prometheus.Crosses.WithLabelValues("test", "BTC", "golden"))
	assert.Equal(t, 2.0, after-before)

	Observer.ActiveOrders(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(Observer.prometheus.ActiveOrders))
}

func TestHandler(t *testing.T) {
	Observer.Order("BTCUSDT", "open", "ok")

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "coin_orders")
}
