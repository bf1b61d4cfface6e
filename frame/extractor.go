// Package frame extracts discrete frames from an unbounded byte stream.
//
// The Extractor is a streaming state machine: transports hand it
// arbitrarily-chunked byte slices, and it emits every frame completed by
// each chunk. Partial delimiter matches are buffered across calls, so the
// emitted frame sequence never depends on how the transport happened to
// chunk the stream.
//
// An Extractor holds sequential buffering state and must be driven by a
// single logical writer; run one extractor per connection.
package frame

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/streamdash/bus"
	"github.com/c360/streamdash/errors"
	"github.com/c360/streamdash/metric"
)

// DefaultMaxFrameSize bounds the accumulation buffer when no delimiter
// arrives. The original threshold is not documented anywhere; 10 MiB is
// far beyond any sane telemetry frame while still failing fast on a
// misconfigured delimiter.
const DefaultMaxFrameSize = 10 * 1024 * 1024

// Frame is one complete, delimited unit of payload bytes extracted from a
// continuous stream. Seq is strictly increasing per extractor.
type Frame struct {
	Seq      uint64
	Data     []byte
	Bus      bus.Type
	Received time.Time
}

// Stats is a snapshot of extractor activity counters.
type Stats struct {
	FramesEmitted  uint64
	BytesConsumed  uint64
	BytesDiscarded uint64
	Overflows      uint64
}

// Extractor consumes a byte stream and produces discrete frames under a
// configured Detection strategy. Not safe for concurrent mutation; Stats
// may be read from any goroutine.
type Extractor struct {
	mode         Detection
	start        []byte
	end          []byte
	maxFrameSize int
	busType      bus.Type

	buf     []byte
	inFrame bool // StartAndEndDelimiter: start seen, accumulating payload
	seq     uint64

	framesEmitted  atomic.Uint64
	bytesConsumed  atomic.Uint64
	bytesDiscarded atomic.Uint64
	overflows      atomic.Uint64

	logger  *slog.Logger
	onError func(error)
	metrics *extractorMetrics
}

// Option configures an Extractor at construction time.
type Option func(*Extractor)

// WithStartDelimiter sets the byte sequence that opens a frame
// (StartAndEndDelimiter mode only).
func WithStartDelimiter(d []byte) Option {
	return func(e *Extractor) { e.start = bytes.Clone(d) }
}

// WithEndDelimiter sets the byte sequence that terminates a frame.
func WithEndDelimiter(d []byte) Option {
	return func(e *Extractor) { e.end = bytes.Clone(d) }
}

// WithMaxFrameSize bounds the accumulation buffer. Exceeding the bound
// discards the buffered partial frame and reports an overflow error
// instead of growing without limit.
func WithMaxFrameSize(n int) Option {
	return func(e *Extractor) { e.maxFrameSize = n }
}

// WithBus stamps emitted frames with the originating transport type.
func WithBus(t bus.Type) Option {
	return func(e *Extractor) { e.busType = t }
}

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// WithErrorHandler registers a callback receiving recoverable errors
// (currently only overflows). Called synchronously from Write.
func WithErrorHandler(fn func(error)) Option {
	return func(e *Extractor) { e.onError = fn }
}

// WithMetrics exposes extractor counters as Prometheus metrics under the
// given prefix. A nil registry leaves metrics disabled.
func WithMetrics(reg *metric.Registry, prefix string) Option {
	return func(e *Extractor) {
		if reg == nil || prefix == "" {
			return
		}
		e.metrics = newExtractorMetrics(reg, prefix)
	}
}

// NewExtractor creates a frame extractor for the given detection mode.
// Malformed configuration is rejected here, before streaming begins,
// never per frame.
func NewExtractor(mode Detection, opts ...Option) (*Extractor, error) {
	e := &Extractor{
		mode:         mode,
		maxFrameSize: DefaultMaxFrameSize,
	}
	for _, opt := range opts {
		opt(e)
	}

	if !mode.Valid() {
		return nil, errors.WrapConfiguration(
			fmt.Errorf("%w: detection mode %d", errors.ErrInvalidConfig, mode),
			"extractor", "NewExtractor", "mode validation")
	}
	if e.maxFrameSize <= 0 {
		return nil, errors.WrapConfiguration(
			fmt.Errorf("%w: max frame size %d", errors.ErrInvalidConfig, e.maxFrameSize),
			"extractor", "NewExtractor", "frame size validation")
	}

	switch mode {
	case EndDelimiterOnly:
		if len(e.end) == 0 {
			return nil, errors.WrapConfiguration(
				fmt.Errorf("%w: end delimiter required in end_delimiter_only mode", errors.ErrMissingDelimiter),
				"extractor", "NewExtractor", "delimiter validation")
		}
	case StartAndEndDelimiter:
		if len(e.start) == 0 || len(e.end) == 0 {
			return nil, errors.WrapConfiguration(
				fmt.Errorf("%w: start and end delimiters required in start_and_end_delimiter mode",
					errors.ErrMissingDelimiter),
				"extractor", "NewExtractor", "delimiter validation")
		}
		if bytes.Equal(e.start, e.end) {
			return nil, errors.WrapConfiguration(
				fmt.Errorf("%w: start and end delimiters must differ", errors.ErrInvalidConfig),
				"extractor", "NewExtractor", "delimiter validation")
		}
	}

	if e.logger == nil {
		e.logger = slog.Default().With("component", "extractor", "mode", mode.String())
	}

	return e, nil
}

// Write appends a transport chunk to the stream and returns every frame
// completed by it, in order. Bytes that do not yet belong to a complete
// frame are retained for the next call; they are never dropped except by
// the overflow bound or Reset.
func (e *Extractor) Write(chunk []byte) []Frame {
	if len(chunk) == 0 {
		return nil
	}
	e.bytesConsumed.Add(uint64(len(chunk)))

	if e.mode == NoDelimiters {
		// One frame per read; nothing is buffered in this mode.
		return []Frame{e.emit(bytes.Clone(chunk))}
	}

	e.buf = append(e.buf, chunk...)

	var frames []Frame
	switch e.mode {
	case EndDelimiterOnly:
		frames = e.scanEndOnly()
	case StartAndEndDelimiter:
		frames = e.scanStartEnd()
	}

	e.checkOverflow()
	if e.metrics != nil {
		e.metrics.buffered.Set(float64(len(e.buf)))
	}
	return frames
}

// scanEndOnly emits a frame for every end delimiter in the buffer.
func (e *Extractor) scanEndOnly() []Frame {
	var frames []Frame
	for {
		idx := bytes.Index(e.buf, e.end)
		if idx < 0 {
			return frames
		}
		frames = append(frames, e.emit(bytes.Clone(e.buf[:idx])))
		e.consume(idx + len(e.end))
	}
}

// scanStartEnd runs the searching/accumulating state machine. A start
// delimiter seen while accumulating resets the candidate frame
// (last-start-wins); bytes outside any frame are discarded.
func (e *Extractor) scanStartEnd() []Frame {
	var frames []Frame
	for {
		if !e.inFrame {
			idx := bytes.Index(e.buf, e.start)
			if idx < 0 {
				// Keep only a tail that could be a partial start delimiter.
				e.discardAllBut(len(e.start) - 1)
				return frames
			}
			e.discard(idx + len(e.start))
			e.inFrame = true
		}

		idxEnd := bytes.Index(e.buf, e.end)
		idxStart := bytes.Index(e.buf, e.start)

		if idxStart >= 0 && (idxEnd < 0 || idxStart < idxEnd) {
			// Orphaned start: a new start delimiter arrived before the end.
			// Restart accumulation after it.
			e.discard(idxStart + len(e.start))
			continue
		}
		if idxEnd < 0 {
			return frames
		}

		frames = append(frames, e.emit(bytes.Clone(e.buf[:idxEnd])))
		e.consume(idxEnd + len(e.end))
		e.inFrame = false
	}
}

func (e *Extractor) emit(data []byte) Frame {
	e.seq++
	e.framesEmitted.Add(1)
	if e.metrics != nil {
		e.metrics.frames.Inc()
	}
	return Frame{
		Seq:      e.seq,
		Data:     data,
		Bus:      e.busType,
		Received: time.Now(),
	}
}

// consume drops n leading bytes that became part of an emitted frame or
// its delimiter.
func (e *Extractor) consume(n int) {
	e.buf = e.buf[n:]
	if len(e.buf) == 0 {
		e.buf = nil
	}
}

// discard drops n leading bytes that belong to no frame.
func (e *Extractor) discard(n int) {
	e.bytesDiscarded.Add(uint64(n))
	e.consume(n)
}

// discardAllBut discards buffered bytes except the trailing keep bytes.
func (e *Extractor) discardAllBut(keep int) {
	if keep < 0 {
		keep = 0
	}
	if len(e.buf) <= keep {
		return
	}
	e.discard(len(e.buf) - keep)
}

// checkOverflow enforces the accumulation bound. On overflow the buffered
// partial frame is discarded, scanning resumes from a clean state, and
// the event is reported through the error handler.
func (e *Extractor) checkOverflow() {
	if len(e.buf) <= e.maxFrameSize {
		return
	}

	discarded := len(e.buf)
	e.buf = nil
	e.inFrame = false
	e.bytesDiscarded.Add(uint64(discarded))
	e.overflows.Add(1)
	if e.metrics != nil {
		e.metrics.overflows.Inc()
	}

	e.logger.Warn("accumulation buffer overflow, discarding partial frame",
		"discarded_bytes", discarded,
		"max_frame_size", e.maxFrameSize)

	if e.onError != nil {
		e.onError(errors.WrapOverflow(
			fmt.Errorf("%w: %d bytes buffered without a delimiter (max %d)",
				errors.ErrBufferOverflow, discarded, e.maxFrameSize),
			"extractor", "Write", "accumulation bound"))
	}
}

// Reset discards all buffered state without emitting a partial frame.
// The frame sequence counter is preserved.
func (e *Extractor) Reset() {
	if len(e.buf) > 0 {
		e.bytesDiscarded.Add(uint64(len(e.buf)))
	}
	e.buf = nil
	e.inFrame = false
	if e.metrics != nil {
		e.metrics.buffered.Set(0)
	}
}

// Pending returns the number of buffered bytes not yet part of a frame.
func (e *Extractor) Pending() int {
	return len(e.buf)
}

// Stats returns a snapshot of extractor activity counters. Safe to call
// from any goroutine.
func (e *Extractor) Stats() Stats {
	return Stats{
		FramesEmitted:  e.framesEmitted.Load(),
		BytesConsumed:  e.bytesConsumed.Load(),
		BytesDiscarded: e.bytesDiscarded.Load(),
		Overflows:      e.overflows.Load(),
	}
}

// extractorMetrics exposes extractor counters as Prometheus metrics.
type extractorMetrics struct {
	frames    prometheus.Counter
	overflows prometheus.Counter
	buffered  prometheus.Gauge
}

func newExtractorMetrics(reg *metric.Registry, prefix string) *extractorMetrics {
	m := &extractorMetrics{
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_frames_emitted_total",
			Help: "Total complete frames emitted by the extractor",
		}),
		overflows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_overflows_total",
			Help: "Total accumulation buffer overflows",
		}),
		buffered: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "_buffered_bytes",
			Help: "Bytes currently buffered waiting for a delimiter",
		}),
	}

	component := prefix + "_extractor"
	if reg.RegisterCounter(component, "frames_emitted_total", m.frames) != nil {
		return nil
	}
	if reg.RegisterCounter(component, "overflows_total", m.overflows) != nil {
		return nil
	}
	if reg.RegisterGauge(component, "buffered_bytes", m.buffered) != nil {
		return nil
	}
	return m
}
