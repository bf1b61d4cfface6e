package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/c360/streamdash/bus"
	"github.com/c360/streamdash/component"
	"github.com/c360/streamdash/config"
	"github.com/c360/streamdash/decoder"
	"github.com/c360/streamdash/errors"
	"github.com/c360/streamdash/frame"
	"github.com/c360/streamdash/metric"
	"github.com/c360/streamdash/pkg/buffer"
	"github.com/c360/streamdash/pkg/retry"
	"github.com/c360/streamdash/pkg/worker"
	"github.com/c360/streamdash/telemetry"
	"github.com/c360/streamdash/widget"
)

// sessionVersion is reported through Meta for management tooling.
const sessionVersion = "1.0.0"

// Session drives one streaming connection end to end: it reads chunks
// from a bus.Source, extracts frames, decodes and parses them on a worker
// pool, and emits ordered updates to the sink. It implements
// component.Component.
type Session struct {
	id     string
	cfg    config.Session
	source bus.Source
	sink   UpdateSink
	parser GroupParser

	logger     *slog.Logger
	metrics    *metric.Metrics
	registry   *metric.Registry
	errLimiter *rate.Limiter

	extractor *frame.Extractor
	pool      *worker.Pool[frame.Frame]
	reseq     *resequencer

	// Ordered updates queue between the resequencer and the sink. A slow
	// sink sheds the oldest updates instead of stalling decode workers.
	updates buffer.Buffer[Update]
	notify  chan struct{}
	drainCh chan struct{}
	emitWG  sync.WaitGroup

	// Quick plot series accumulation. Touched only from the resequencer
	// emit path, which is serialized.
	series  *telemetry.MultiLineSeries
	seriesX float64

	lifecycleMu sync.Mutex
	state       atomic.Int32
	cancel      context.CancelFunc
	group       *errgroup.Group
	startedAt   time.Time

	bytesRead      atomic.Uint64
	framesRead     atomic.Uint64
	updatesEmitted atomic.Uint64
	updatesDropped atomic.Uint64
	errorCount     atomic.Int64
	lastActivity   atomic.Int64

	lastErrMu sync.Mutex
	lastErr   string
}

// SessionOption configures a Session at construction time.
type SessionOption func(*Session)

// WithLogger sets the structured logger. Defaults to slog.Default with
// the session id attached.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithGroupParser sets the frame-text parser. Required for project file
// and device JSON modes, where the schema parser lives outside this
// module. Quick plot mode defaults to QuickPlotParser.
func WithGroupParser(p GroupParser) SessionOption {
	return func(s *Session) { s.parser = p }
}

// WithMetrics attaches the shared pipeline metrics.
func WithMetrics(m *metric.Metrics) SessionOption {
	return func(s *Session) { s.metrics = m }
}

// WithRegistry attaches a metric registry for per-stage metrics such as
// decode pool depth. A nil registry leaves them disabled.
func WithRegistry(r *metric.Registry) SessionOption {
	return func(s *Session) { s.registry = r }
}

// NewSession creates a session for the given configuration and transport.
// Configuration problems are rejected here; per-frame data problems never
// construct errors at this level.
func NewSession(cfg config.Session, source bus.Source, sink UpdateSink, opts ...SessionOption) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source == nil || sink == nil {
		return nil, errors.WrapConfiguration(
			fmt.Errorf("%w: source and sink are required", errors.ErrInvalidConfig),
			"session", "NewSession", "collaborator check")
	}

	s := &Session{
		id:         uuid.NewString(),
		cfg:        cfg.Clone(),
		source:     source,
		sink:       sink,
		errLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
	s.state.Store(int32(component.StateCreated))

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "session", "session_id", s.id)

	if s.parser == nil {
		if cfg.Mode() != config.QuickPlot {
			return nil, errors.WrapConfiguration(
				fmt.Errorf("%w: %s mode requires a group parser", errors.ErrInvalidConfig, cfg.Mode()),
				"session", "NewSession", "parser check")
		}
		s.parser = NewQuickPlotParser()
	}

	return s, nil
}

// ID returns the unique session identifier.
func (s *Session) ID() string {
	return s.id
}

// Meta returns basic component information.
func (s *Session) Meta() component.Metadata {
	return component.Metadata{
		Name:        "streaming-session",
		Type:        "pipeline",
		Description: "Frame extraction, decoding and widget resolution for one connection",
		Version:     sessionVersion,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() component.State {
	return component.State(s.state.Load())
}

// Initialize builds the extractor, decode pool and resequencer.
func (s *Session) Initialize() error {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	if s.State() != component.StateCreated {
		return errors.Wrap(errors.ErrAlreadyStarted, "session", "Initialize", "state check")
	}

	extractorOpts := []frame.Option{
		frame.WithBus(s.source.Bus()),
		frame.WithLogger(s.logger),
		frame.WithErrorHandler(s.onOverflow),
	}
	// Zero means "use the default", like the pool and queue sizes.
	if s.cfg.MaxFrameSize > 0 {
		extractorOpts = append(extractorOpts, frame.WithMaxFrameSize(s.cfg.MaxFrameSize))
	}
	switch s.cfg.Detection() {
	case frame.EndDelimiterOnly:
		extractorOpts = append(extractorOpts, frame.WithEndDelimiter(s.cfg.EndDelimiterBytes()))
	case frame.StartAndEndDelimiter:
		extractorOpts = append(extractorOpts,
			frame.WithStartDelimiter(s.cfg.StartDelimiterBytes()),
			frame.WithEndDelimiter(s.cfg.EndDelimiterBytes()))
	}

	extractor, err := frame.NewExtractor(s.cfg.Detection(), extractorOpts...)
	if err != nil {
		s.state.Store(int32(component.StateFailed))
		return err
	}
	s.extractor = extractor

	poolOpts := []worker.Option[frame.Frame]{}
	if s.registry != nil {
		poolOpts = append(poolOpts, worker.WithMetrics[frame.Frame](s.registry, "decode"))
	}
	s.pool = worker.NewPool(s.cfg.Workers, s.cfg.QueueSize, s.process, poolOpts...)

	updates, err := buffer.NewCircular[Update](s.cfg.QueueSize,
		buffer.WithOverflowPolicy[Update](buffer.DropOldest),
		buffer.WithDropCallback[Update](func(Update) { s.updatesDropped.Add(1) }))
	if err != nil {
		s.state.Store(int32(component.StateFailed))
		return err
	}
	s.updates = updates
	s.notify = make(chan struct{}, 1)
	s.drainCh = make(chan struct{})

	s.reseq = newResequencer(1, s.emitUpdate)

	s.state.Store(int32(component.StateInitialized))
	return nil
}

// Start launches the decode pool and the reader goroutine. It returns
// immediately; streaming continues until the source closes, the context
// is cancelled, or Stop is called.
func (s *Session) Start(ctx context.Context) error {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	switch s.State() {
	case component.StateInitialized:
	case component.StateStarted:
		return errors.Wrap(errors.ErrAlreadyStarted, "session", "Start", "state check")
	default:
		return errors.Wrap(errors.ErrNotStarted, "session", "Start", "state check")
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	if err := s.pool.Start(runCtx); err != nil {
		cancel()
		s.state.Store(int32(component.StateFailed))
		return errors.Wrap(err, "session", "Start", "pool start")
	}

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return s.readLoop(gctx) })
	s.group = g

	s.emitWG.Add(1)
	go s.emitLoop()

	s.startedAt = time.Now()
	s.touch()
	s.state.Store(int32(component.StateStarted))
	s.recordStatus()

	s.logger.Info("session started",
		"bus", s.source.Bus().String(),
		"decoder", s.cfg.DecoderMethod,
		"detection", s.cfg.FrameDetection,
		"workers", s.cfg.Workers)
	return nil
}

// Stop shuts the session down. Buffered partial-frame bytes are discarded
// without emitting an update; in-flight decode work drains within the
// timeout.
func (s *Session) Stop(timeout time.Duration) error {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	switch s.State() {
	case component.StateStarted, component.StateFailed:
	case component.StateStopped:
		return errors.Wrap(errors.ErrAlreadyStopped, "session", "Stop", "state check")
	default:
		return errors.Wrap(errors.ErrNotStarted, "session", "Stop", "state check")
	}

	deadline := time.Now().Add(timeout)
	if s.cancel != nil {
		s.cancel()
	}
	if err := s.source.Close(); err != nil {
		s.logger.Warn("source close failed", "error", err)
	}

	if s.group != nil {
		done := make(chan struct{})
		go func() {
			_ = s.group.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Until(deadline)):
			s.logger.Warn("reader did not exit before deadline")
		}
	}

	var stopErr error
	if s.pool != nil {
		stopErr = s.pool.Stop(time.Until(deadline))
	}
	if s.drainCh != nil {
		close(s.drainCh)
		s.emitWG.Wait()
		_ = s.updates.Close()
		s.drainCh = nil
	}
	if s.extractor != nil {
		if pending := s.extractor.Pending(); pending > 0 {
			s.logger.Info("discarding partial frame on shutdown", "pending_bytes", pending)
		}
		s.extractor.Reset()
	}

	s.state.Store(int32(component.StateStopped))
	s.recordStatus()
	s.logger.Info("session stopped",
		"frames", s.framesRead.Load(),
		"updates", s.updatesEmitted.Load(),
		"dropped_updates", s.updatesDropped.Load(),
		"errors", s.errorCount.Load())

	if stopErr != nil {
		return errors.Wrap(stopErr, "session", "Stop", "pool drain")
	}
	return nil
}

// Health returns the current health status.
func (s *Session) Health() component.HealthStatus {
	s.lastErrMu.Lock()
	lastErr := s.lastErr
	s.lastErrMu.Unlock()

	var uptime time.Duration
	if !s.startedAt.IsZero() {
		uptime = time.Since(s.startedAt)
	}
	return component.HealthStatus{
		Healthy:    s.State() == component.StateStarted,
		LastCheck:  time.Now(),
		ErrorCount: int(s.errorCount.Load()),
		LastError:  lastErr,
		Uptime:     uptime,
	}
}

// DataFlow returns current throughput metrics.
func (s *Session) DataFlow() component.FlowMetrics {
	var perSecond float64
	if !s.startedAt.IsZero() {
		if secs := time.Since(s.startedAt).Seconds(); secs > 0 {
			perSecond = 1 / secs
		}
	}

	frames := s.framesRead.Load()
	var errorRate float64
	if frames > 0 {
		errorRate = float64(s.errorCount.Load()) / float64(frames)
	}

	var lastActivity time.Time
	if ns := s.lastActivity.Load(); ns > 0 {
		lastActivity = time.Unix(0, ns)
	}

	return component.FlowMetrics{
		MessagesPerSecond: float64(frames) * perSecond,
		BytesPerSecond:    float64(s.bytesRead.Load()) * perSecond,
		ErrorRate:         errorRate,
		LastActivity:      lastActivity,
	}
}

// readLoop is the single goroutine that owns the extractor. Transient
// read errors are retried with backoff; EOF ends the stream cleanly.
func (s *Session) readLoop(ctx context.Context) error {
	for {
		chunk, err := retry.DoWithResult(ctx, retry.Quick(), func() ([]byte, error) {
			data, rerr := s.source.Read(ctx)
			if rerr != nil && !errors.IsTransient(rerr) {
				return nil, retry.NonRetryable(rerr)
			}
			return data, rerr
		})
		if err != nil {
			if stderrors.Is(err, io.EOF) || stderrors.Is(err, errors.ErrSourceClosed) {
				s.logger.Info("source closed", "frames", s.framesRead.Load())
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			s.recordError(err)
			s.logger.Error("source read failed", "error", err)
			return errors.WrapTransient(err, "session", "readLoop", "source read")
		}
		if len(chunk) == 0 {
			continue
		}

		s.bytesRead.Add(uint64(len(chunk)))
		s.touch()

		for _, f := range s.extractor.Write(chunk) {
			s.framesRead.Add(1)
			if s.metrics != nil {
				s.metrics.RecordFrameExtracted(s.id, f.Bus.String())
			}
			if serr := s.pool.Submit(f); serr != nil {
				s.recordError(serr)
				s.logLimited("frame dropped, decode queue full", "seq", f.Seq)
				s.reseq.Skip(f.Seq)
			}
		}
	}
}

// process runs on the decode pool: payload to text, text to group, group
// to widgets. Failures release the frame's sequence slot so later frames
// are not held back.
func (s *Session) process(_ context.Context, f frame.Frame) error {
	start := time.Now()
	method := s.cfg.Decoder()

	data, err := verifyChecksum(s.cfg.ChecksumAlgorithm(), f.Data)
	if err != nil {
		s.skipFrame(f, method, "checksum", err)
		return err
	}

	text, err := decoder.Decode(data, method)
	if err != nil {
		s.skipFrame(f, method, "decode", err)
		return err
	}

	group, err := s.parser.Parse(text)
	if err != nil {
		s.skipFrame(f, method, "parse", err)
		return err
	}

	u := Update{
		Frame:   f,
		Text:    text,
		Group:   group,
		Widgets: resolveWidgets(group),
	}

	if s.metrics != nil {
		s.metrics.RecordFrameDecoded(s.id, method.String(), "success")
		s.metrics.RecordProcessingDuration(s.id, "decode", time.Since(start))
	}
	s.reseq.Deliver(f.Seq, &u)
	return nil
}

// skipFrame records a per-frame failure and releases its sequence slot.
func (s *Session) skipFrame(f frame.Frame, method decoder.Method, stage string, err error) {
	s.recordError(err)
	if s.metrics != nil {
		s.metrics.RecordFrameDecoded(s.id, method.String(), "error")
		s.metrics.RecordDecodeError(s.id, method.String())
	}
	s.logLimited("frame skipped", "seq", f.Seq, "stage", stage, "error", err)
	s.reseq.Skip(f.Seq)
}

// emitUpdate runs serialized inside the resequencer, in frame order. It
// queues the update for the emitter goroutine rather than calling the
// sink directly, so a slow sink never blocks decode workers.
func (s *Session) emitUpdate(u Update) {
	if s.cfg.Mode() == config.QuickPlot && u.Group != nil {
		s.appendSeries(&u)
	}

	if err := s.updates.Write(u); err != nil {
		return
	}
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// emitLoop drains the update queue to the sink. Runs until Stop signals
// the final drain; FIFO order through the queue preserves the frame
// ordering the resequencer established.
func (s *Session) emitLoop() {
	defer s.emitWG.Done()
	for {
		select {
		case <-s.notify:
			s.drainUpdates()
		case <-s.drainCh:
			s.drainUpdates()
			return
		}
	}
}

func (s *Session) drainUpdates() {
	for {
		batch := s.updates.ReadBatch(64)
		if len(batch) == 0 {
			return
		}
		for _, u := range batch {
			s.updatesEmitted.Add(1)
			s.touch()
			if s.metrics != nil {
				s.metrics.RecordUpdateEmitted(s.id)
			}
			s.sink.Consume(u)
		}
	}
}

// appendSeries folds the group's numeric values into the session-owned
// multi-line series. A channel-count change restarts the series, matching
// how a reconfigured device invalidates accumulated curves. Each update
// carries its own snapshot: queued updates are read by the emitter and
// the sink while later frames keep appending, so they must not alias the
// growing series.
func (s *Session) appendSeries(u *Update) {
	values := make([]float64, 0, len(u.Group.Datasets))
	for _, d := range u.Group.Datasets {
		v, err := strconv.ParseFloat(d.Value, 64)
		if err != nil {
			return
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return
	}

	if s.series == nil || len(s.series.Y) != len(values) {
		s.series = telemetry.NewMultiLineSeries(len(values))
		s.seriesX = 0
	}
	if err := s.series.Append(s.seriesX, values); err != nil {
		return
	}
	s.seriesX++
	u.Series = s.series.Clone()
}

func (s *Session) onOverflow(err error) {
	s.recordError(err)
	if s.metrics != nil {
		s.metrics.RecordOverflow(s.id)
	}
}

func (s *Session) recordError(err error) {
	s.errorCount.Add(1)
	s.lastErrMu.Lock()
	s.lastErr = err.Error()
	s.lastErrMu.Unlock()
}

// logLimited logs at Warn, rate limited so a torrent of malformed frames
// cannot drown the log.
func (s *Session) logLimited(msg string, args ...any) {
	if s.errLimiter.Allow() {
		s.logger.Warn(msg, args...)
	}
}

func (s *Session) touch() {
	s.lastActivity.Store(time.Now().UnixNano())
}

func (s *Session) recordStatus() {
	if s.metrics != nil {
		s.metrics.RecordSessionStatus(s.id, int(s.State()))
	}
}

// resolveWidgets maps a parsed group to the dashboard widgets it
// requests: the group-level widget first, then dataset widgets in their
// fixed enumeration order.
func resolveWidgets(g *telemetry.Group) []widget.DashboardWidget {
	if g == nil {
		return nil
	}

	var widgets []widget.DashboardWidget
	if w := widget.GetDashboardWidget(*g); w != widget.DashboardNoWidget {
		widgets = append(widgets, w)
	}
	for _, d := range g.Datasets {
		widgets = append(widgets, widget.ResolveDatasetWidgets(d)...)
	}
	return widgets
}
