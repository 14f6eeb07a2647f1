package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var Observer = &Metrics{
	mutex:      new(sync.RWMutex),
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(Observer.prometheus.collectors()...)
}

type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
}

// Handler exposes the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) Volume(exchange, symbol, outcome string) {
	m.prometheus.Volumes.WithLabelValues(exchange, symbol, outcome).Inc()
}

func (m *Metrics) Cross(exchange, symbol, crossType string) {
	m.prometheus.Crosses.WithLabelValues(exchange, symbol, crossType).Inc()
}

func (m *Metrics) Recommendation(symbol, status string) {
	m.prometheus.Recommendations.WithLabelValues(symbol, status).Inc()
}

func (m *Metrics) Order(symbol, action, outcome string) {
	m.prometheus.Orders.WithLabelValues(symbol, action, outcome).Inc()
}

// ActiveOrders sets the number of live orders.
func (m *Metrics) ActiveOrders(n int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.prometheus.ActiveOrders.Set(float64(n))
}
