package buffer

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/streamdash/metric"
)

// bufferMetrics exposes buffer activity as Prometheus metrics.
type bufferMetrics struct {
	writes      prometheus.Counter
	reads       prometheus.Counter
	drops       prometheus.Counter
	overflows   prometheus.Counter
	utilization prometheus.Gauge
}

func newBufferMetrics(reg *metric.Registry, prefix string) (*bufferMetrics, error) {
	m := &bufferMetrics{
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_buffer_writes_total",
			Help: "Total items written to the buffer",
		}),
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_buffer_reads_total",
			Help: "Total items read from the buffer",
		}),
		drops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_buffer_drops_total",
			Help: "Total items dropped due to the overflow policy",
		}),
		overflows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_buffer_overflows_total",
			Help: "Total overflow events",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "_buffer_utilization_ratio",
			Help: "Buffer usage (0-1) showing backpressure",
		}),
	}

	component := prefix + "_buffer"
	if err := reg.RegisterCounter(component, "writes_total", m.writes); err != nil {
		return nil, err
	}
	if err := reg.RegisterCounter(component, "reads_total", m.reads); err != nil {
		return nil, err
	}
	if err := reg.RegisterCounter(component, "drops_total", m.drops); err != nil {
		return nil, err
	}
	if err := reg.RegisterCounter(component, "overflows_total", m.overflows); err != nil {
		return nil, err
	}
	if err := reg.RegisterGauge(component, "utilization_ratio", m.utilization); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *bufferMetrics) recordWrite(size, capacity int) {
	m.writes.Inc()
	m.updateSize(size, capacity)
}

func (m *bufferMetrics) recordRead(size, capacity int) {
	m.reads.Inc()
	m.updateSize(size, capacity)
}

func (m *bufferMetrics) recordDrop() {
	m.drops.Inc()
}

func (m *bufferMetrics) recordOverflow() {
	m.overflows.Inc()
}

func (m *bufferMetrics) updateSize(size, capacity int) {
	if capacity > 0 {
		m.utilization.Set(float64(size) / float64(capacity))
	}
}
