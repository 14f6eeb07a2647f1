package metrics

import "github.com/prometheus/client_golang/prometheus"

type Prometheus struct {
	Volumes         *prometheus.CounterVec
	Crosses         *prometheus.CounterVec
	Recommendations *prometheus.CounterVec
	Orders          *prometheus.CounterVec
	ActiveOrders    prometheus.Gauge
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Volumes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "coin",
				Name:      "volume_samples",
				Help:      "quote volume samples by exchange, symbol and outcome",
			}, []string{"exchange", "symbol", "outcome"}),
		Crosses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "coin",
				Name:      "crosses",
				Help:      "detected moving average crosses",
			}, []string{"exchange", "symbol", "type"}),
		Recommendations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "coin",
				Name:      "recommendations",
				Help:      "recommendation lifecycle transitions",
			}, []string{"symbol", "status"}),
		Orders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "coin",
				Name:      "orders",
				Help:      "order operations by outcome",
			}, []string{"symbol", "action", "outcome"}),
		ActiveOrders: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "coin",
				Name:      "active_orders",
				Help:      "orders currently tracked as live",
			}),
	}
}

func (p Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		p.Volumes,
		p.Crosses,
		p.Recommendations,
		p.Orders,
		p.ActiveOrders,
	}
}
