// Package telemetry defines the data model flowing between the decoded
// frame stream and the dashboard: Groups and Datasets produced by the
// (external) project-schema parser, and the X/Y series containers the
// plotting widgets consume.
package telemetry

// Dataset is a single named data channel within a Group. It may request
// widgets through an explicit identifier, through option bit flags, or
// both; the resolver gives flags precedence.
type Dataset struct {
	Title      string `json:"title"`
	Units      string `json:"units,omitempty"`
	WidgetID   string `json:"widget,omitempty"`
	Value      string `json:"value,omitempty"`
	Index      int    `json:"index"`
	FFTSamples int    `json:"fft_samples,omitempty"`

	// Options carries the rendering-intent bit flags. Stored as a plain
	// integer here so the schema parser stays decoupled from the widget
	// package; widget.DatasetOption values are assigned directly.
	Options uint32 `json:"options,omitempty"`

	// Graph and LED are the legacy boolean toggles older project files
	// use instead of option bits. The resolver treats them as the plot
	// and LED bits respectively.
	Graph bool `json:"graph,omitempty"`
	LED   bool `json:"led,omitempty"`
}

// Group is a named collection of related Datasets, optionally requesting
// a specific group widget via its identifier string.
type Group struct {
	Title    string    `json:"title"`
	WidgetID string    `json:"widget,omitempty"`
	Datasets []Dataset `json:"datasets"`
}
