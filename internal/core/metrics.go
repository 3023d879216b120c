package core

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/lexweb/internal/model"
)

// Metrics counts core operations by name and outcome.
type Metrics struct {
	ops *prometheus.CounterVec
}

// NewMetrics creates the operation counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lexweb",
			Name:      "operations_total",
			Help:      "Core operations by operation name and outcome.",
		}, []string{"op", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.ops)
	}
	return m
}

// observe records one operation. The outcome is "ok", the lower-cased model
// error code, or "error" for storage failures. Safe on a nil receiver.
func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if code := model.CodeOf(err); code != "" {
		return strings.ToLower(string(code))
	}
	return "error"
}
