package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/c360/streamdash/errors"
	"github.com/c360/streamdash/telemetry"
	"github.com/c360/streamdash/widget"
)

// QuickPlotGroupTitle names the synthetic group quick plot frames land in.
const QuickPlotGroupTitle = "Quick Plot"

// QuickPlotParser parses schema-less numeric frames: fields separated by
// commas or whitespace, one dataset per field. Frames with a single field
// become a plain plot; multi-field frames request the multiplot group
// widget. The parser is stateless and safe for concurrent use.
type QuickPlotParser struct{}

// NewQuickPlotParser returns a parser for quick plot mode.
func NewQuickPlotParser() *QuickPlotParser {
	return &QuickPlotParser{}
}

// Parse splits the frame text into numeric fields and builds one group
// with a plot-flagged dataset per field. Non-numeric or empty frames are
// decode failures; the caller skips the frame.
func (p *QuickPlotParser) Parse(text string) (*telemetry.Group, error) {
	fields := splitQuickPlotFields(text)
	if len(fields) == 0 {
		return nil, errors.WrapDecode(
			fmt.Errorf("%w: no fields in frame", errors.ErrDecodeFailed),
			"quickplot", "Parse", "field split")
	}

	g := &telemetry.Group{
		Title:    QuickPlotGroupTitle,
		Datasets: make([]telemetry.Dataset, 0, len(fields)),
	}
	if len(fields) > 1 {
		g.WidgetID = widget.GroupWidgetID(widget.MultiPlot)
	}

	for i, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return nil, errors.WrapDecode(
				fmt.Errorf("%w: field %d %q is not numeric", errors.ErrDecodeFailed, i, f),
				"quickplot", "Parse", "numeric parse")
		}
		g.Datasets = append(g.Datasets, telemetry.Dataset{
			Title:   fmt.Sprintf("Channel %d", i+1),
			Value:   f,
			Index:   i + 1,
			Options: uint32(widget.DatasetPlot),
		})
	}
	return g, nil
}

// splitQuickPlotFields splits on commas when present, otherwise on any
// whitespace. Blank fields are dropped.
func splitQuickPlotFields(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var raw []string
	if strings.Contains(text, ",") {
		raw = strings.Split(text, ",")
	} else {
		raw = strings.Fields(text)
	}

	fields := raw[:0]
	for _, f := range raw {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
