package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains pipeline-level metrics shared by every session
// (not component-specific ones, which components register themselves).
type Metrics struct {
	FramesExtracted    *prometheus.CounterVec
	FramesDecoded      *prometheus.CounterVec
	DecodeErrors       *prometheus.CounterVec
	Overflows          *prometheus.CounterVec
	UpdatesEmitted     *prometheus.CounterVec
	ProcessingDuration *prometheus.HistogramVec
	SessionStatus      *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance with all pipeline metrics
func NewMetrics() *Metrics {
	return &Metrics{
		FramesExtracted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamdash",
				Subsystem: "frames",
				Name:      "extracted_total",
				Help:      "Total number of complete frames extracted from the byte stream",
			},
			[]string{"session", "bus"},
		),

		FramesDecoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamdash",
				Subsystem: "frames",
				Name:      "decoded_total",
				Help:      "Total number of frames decoded",
			},
			[]string{"session", "method", "status"},
		),

		DecodeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamdash",
				Subsystem: "frames",
				Name:      "decode_errors_total",
				Help:      "Total number of frames skipped due to malformed payloads",
			},
			[]string{"session", "method"},
		),

		Overflows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamdash",
				Subsystem: "extractor",
				Name:      "overflows_total",
				Help:      "Total number of accumulation buffer overflows",
			},
			[]string{"session"},
		),

		UpdatesEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamdash",
				Subsystem: "dashboard",
				Name:      "updates_emitted_total",
				Help:      "Total number of ordered dashboard updates handed to the sink",
			},
			[]string{"session"},
		),

		ProcessingDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "streamdash",
				Subsystem: "processing",
				Name:      "duration_seconds",
				Help:      "Frame processing duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"session", "operation"},
		),

		SessionStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "streamdash",
				Subsystem: "session",
				Name:      "status",
				Help:      "Session status (0=created, 1=initialized, 2=started, 3=stopped, 4=failed)",
			},
			[]string{"session"},
		),
	}
}

// RecordFrameExtracted increments the extracted frame counter
func (m *Metrics) RecordFrameExtracted(session, bus string) {
	m.FramesExtracted.WithLabelValues(session, bus).Inc()
}

// RecordFrameDecoded increments the decoded frame counter
func (m *Metrics) RecordFrameDecoded(session, method, status string) {
	m.FramesDecoded.WithLabelValues(session, method, status).Inc()
}

// RecordDecodeError increments the decode error counter
func (m *Metrics) RecordDecodeError(session, method string) {
	m.DecodeErrors.WithLabelValues(session, method).Inc()
}

// RecordOverflow increments the overflow counter
func (m *Metrics) RecordOverflow(session string) {
	m.Overflows.WithLabelValues(session).Inc()
}

// RecordUpdateEmitted increments the emitted update counter
func (m *Metrics) RecordUpdateEmitted(session string) {
	m.UpdatesEmitted.WithLabelValues(session).Inc()
}

// RecordProcessingDuration records frame processing time
func (m *Metrics) RecordProcessingDuration(session, operation string, duration time.Duration) {
	m.ProcessingDuration.WithLabelValues(session, operation).Observe(duration.Seconds())
}

// RecordSessionStatus updates the session status gauge
func (m *Metrics) RecordSessionStatus(session string, status int) {
	m.SessionStatus.WithLabelValues(session).Set(float64(status))
}
