// Package pipeline assembles the streaming session: transport chunks in,
// ordered dashboard updates out.
//
// A Session owns one frame extractor fed by a single reader goroutine, a
// worker pool that decodes and parses frames concurrently, and a
// resequencer that restores frame order before updates reach the sink.
// Decode failures skip the affected frame and streaming continues.
package pipeline

import (
	"github.com/c360/streamdash/frame"
	"github.com/c360/streamdash/telemetry"
	"github.com/c360/streamdash/widget"
)

// Update is one fully-processed frame, ready for rendering. Series, when
// present, is the session-owned accumulation the plotting widgets read;
// consumers treat it as read-only.
type Update struct {
	Frame   frame.Frame
	Text    string
	Group   *telemetry.Group
	Widgets []widget.DashboardWidget
	Series  *telemetry.MultiLineSeries
}

// UpdateSink receives updates strictly in frame-sequence order. Consume is
// called from pipeline goroutines and must not retain the Update's Frame
// data beyond the call.
type UpdateSink interface {
	Consume(Update)
}

// SinkFunc adapts a plain function to the UpdateSink interface.
type SinkFunc func(Update)

// Consume calls f(u).
func (f SinkFunc) Consume(u Update) { f(u) }

// GroupParser turns decoded frame text into a telemetry group. The project
// schema parser is an external collaborator implementing this interface;
// QuickPlotParser covers the schema-less quick plot mode. Parse must be
// safe for concurrent use, since frames are parsed on a worker pool.
type GroupParser interface {
	Parse(text string) (*telemetry.Group, error)
}
