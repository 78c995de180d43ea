package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter increments a labelled counter
type Counter interface {
	Increment(labels ...string)
}

type counterVec struct {
	vec *prometheus.CounterVec
}

func (c *counterVec) Increment(labels ...string) {
	c.vec.WithLabelValues(labels...).Inc()
}

// NewCounter registers a counter vector on reg
func NewCounter(reg prometheus.Registerer, name, help string, labels ...string) Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yiconnect",
		Name:      name,
		Help:      help,
	}, labels)
	reg.MustRegister(vec)
	return &counterVec{vec: vec}
}

// Noop discards increments. Used when metrics are not wired, e.g. in tests.
type Noop struct{}

func (Noop) Increment(...string) {}

// Handler serves the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
