// Package widget defines the closed catalog of dashboard visualization
// widgets and the deterministic resolution from parsed Groups and
// Datasets onto it.
//
// Everything here is enum-driven: closed sets dispatched with exhaustive
// switches, bit-flag options as a small bitmask, and immutable
// package-level lookup tables. Nothing in this package ever fails at
// runtime; unknown identifiers degrade to the No* sentinels so project
// files written by newer or older schema versions still load.
package widget

// GroupWidget is the widget a Group may request explicitly via its
// identifier string.
type GroupWidget int

const (
	DataGrid GroupWidget = iota
	Accelerometer
	Gyroscope
	GPS
	MultiPlot
	NoGroupWidget
)

// DatasetWidget is the widget a Dataset may request explicitly via its
// identifier string (the legacy single-widget path).
type DatasetWidget int

const (
	Bar DatasetWidget = iota
	Gauge
	Compass
	NoDatasetWidget
)

// DashboardWidget is the final, concrete widget assigned for rendering.
// DashboardNoWidget means "no widget applicable" and is never rendered.
type DashboardWidget int

const (
	DashboardDataGrid DashboardWidget = iota
	DashboardMultiPlot
	DashboardAccelerometer
	DashboardGyroscope
	DashboardGPS
	DashboardFFT
	DashboardLED
	DashboardPlot
	DashboardBar
	DashboardGauge
	DashboardCompass
	DashboardNoWidget
)

// DatasetOption is a bit-flag set of rendering intents declared on a
// Dataset. Flags combine with bitwise OR and are order-independent.
type DatasetOption uint32

const (
	DatasetGeneric DatasetOption = 0b000000
	DatasetPlot    DatasetOption = 0b000001
	DatasetFFT     DatasetOption = 0b000010
	DatasetBar     DatasetOption = 0b000100
	DatasetGauge   DatasetOption = 0b001000
	DatasetCompass DatasetOption = 0b010000
	DatasetLED     DatasetOption = 0b100000
)

// Has reports whether every bit in flag is set in o.
func (o DatasetOption) Has(flag DatasetOption) bool {
	return o&flag == flag && flag != 0
}

// AxisVisibility controls which plot axes render. Independent of widget
// selection.
type AxisVisibility uint8

const (
	NoAxesVisible AxisVisibility = 0b00
	AxisX         AxisVisibility = 0b01
	AxisY         AxisVisibility = 0b10
	AxisXY        AxisVisibility = 0b11
)
