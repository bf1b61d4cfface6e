package buffer

import "github.com/c360/streamdash/metric"

// Option configures a buffer at construction time.
type Option[T any] func(*bufferOptions[T])

type bufferOptions[T any] struct {
	overflowPolicy OverflowPolicy
	dropCallback   DropCallback[T]
	metricsReg     *metric.Registry
	metricsPrefix  string
}

// WithOverflowPolicy sets the behavior when the buffer is full.
// The default is DropOldest.
func WithOverflowPolicy[T any](policy OverflowPolicy) Option[T] {
	return func(o *bufferOptions[T]) {
		o.overflowPolicy = policy
	}
}

// WithDropCallback registers a callback invoked for every dropped item.
func WithDropCallback[T any](cb DropCallback[T]) Option[T] {
	return func(o *bufferOptions[T]) {
		o.dropCallback = cb
	}
}

// WithMetrics exposes buffer statistics as Prometheus metrics under the
// given prefix. A nil registry leaves metrics disabled.
func WithMetrics[T any](reg *metric.Registry, prefix string) Option[T] {
	return func(o *bufferOptions[T]) {
		o.metricsReg = reg
		o.metricsPrefix = prefix
	}
}

func applyOptions[T any](options ...Option[T]) *bufferOptions[T] {
	opts := &bufferOptions[T]{
		overflowPolicy: DropOldest,
	}
	for _, opt := range options {
		opt(opts)
	}
	return opts
}
