package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/c360/streamdash/pipeline"
	"github.com/c360/streamdash/widget"
)

// consoleSink prints one line per update: sequence number, frame text and
// the widgets the dashboard would render. It stands in for the rendering
// layer, which lives outside this module.
type consoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsoleSink(w io.Writer) *consoleSink {
	return &consoleSink{w: w}
}

// Consume implements pipeline.UpdateSink.
func (c *consoleSink) Consume(u pipeline.Update) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var widgets string
	if len(u.Widgets) > 0 {
		titles := make([]string, 0, len(u.Widgets))
		for _, w := range u.Widgets {
			titles = append(titles, widget.DashboardWidgetTitle(w))
		}
		widgets = strings.Join(titles, ", ")
	} else {
		widgets = "-"
	}

	points := 0
	if u.Series != nil && u.Series.X != nil {
		points = len(*u.Series.X)
	}

	_, _ = fmt.Fprintf(c.w, "#%d  %s  [%s]  points=%d\n",
		u.Frame.Seq, u.Text, widgets, points)
}
