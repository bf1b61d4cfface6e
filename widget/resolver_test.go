package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360/streamdash/telemetry"
)

var allDashboardWidgets = []DashboardWidget{
	DashboardDataGrid, DashboardMultiPlot, DashboardAccelerometer,
	DashboardGyroscope, DashboardGPS, DashboardFFT, DashboardLED,
	DashboardPlot, DashboardBar, DashboardGauge, DashboardCompass,
	DashboardNoWidget,
}

func TestResolveGroupWidget(t *testing.T) {
	tests := []struct {
		id   string
		want GroupWidget
	}{
		{"datagrid", DataGrid},
		{"accelerometer", Accelerometer},
		{"gyro", Gyroscope},
		{"map", GPS},
		{"multiplot", MultiPlot},
		{"", NoGroupWidget},
		{"unknown-xyz", NoGroupWidget},
	}

	for _, tt := range tests {
		g := telemetry.Group{Title: "g", WidgetID: tt.id}
		assert.Equal(t, tt.want, ResolveGroupWidget(g), "id %q", tt.id)
	}
}

func TestGetDashboardWidget(t *testing.T) {
	tests := []struct {
		id   string
		want DashboardWidget
	}{
		{"datagrid", DashboardDataGrid},
		{"accelerometer", DashboardAccelerometer},
		{"gyro", DashboardGyroscope},
		{"map", DashboardGPS},
		{"multiplot", DashboardMultiPlot},
		{"bogus", DashboardNoWidget},
	}

	for _, tt := range tests {
		g := telemetry.Group{WidgetID: tt.id}
		assert.Equal(t, tt.want, GetDashboardWidget(g), "id %q", tt.id)
	}
}

func TestResolveDatasetWidgets_FixedOrder(t *testing.T) {
	d := telemetry.Dataset{Options: uint32(DatasetPlot | DatasetFFT)}
	assert.Equal(t, []DashboardWidget{DashboardPlot, DashboardFFT}, ResolveDatasetWidgets(d))

	// Order is fixed by the enumeration table regardless of how the bits
	// were combined or what other metadata the dataset carries.
	d = telemetry.Dataset{
		Title:    "chan",
		WidgetID: "compass",
		Options:  uint32(DatasetLED | DatasetBar | DatasetPlot),
	}
	assert.Equal(t,
		[]DashboardWidget{DashboardPlot, DashboardBar, DashboardLED},
		ResolveDatasetWidgets(d))
}

func TestResolveDatasetWidgets_EmptyAndFull(t *testing.T) {
	assert.Empty(t, ResolveDatasetWidgets(telemetry.Dataset{Options: uint32(DatasetGeneric)}))

	all := DatasetPlot | DatasetFFT | DatasetBar | DatasetGauge | DatasetCompass | DatasetLED
	assert.Equal(t,
		[]DashboardWidget{DashboardPlot, DashboardFFT, DashboardBar,
			DashboardGauge, DashboardCompass, DashboardLED},
		ResolveDatasetWidgets(telemetry.Dataset{Options: uint32(all)}))
}

func TestResolveDatasetWidgets_LegacyBooleans(t *testing.T) {
	d := telemetry.Dataset{Graph: true, LED: true}
	assert.Equal(t, []DashboardWidget{DashboardPlot, DashboardLED}, ResolveDatasetWidgets(d))

	// Booleans merge with explicit bits without duplicating widgets.
	d = telemetry.Dataset{Options: uint32(DatasetPlot | DatasetGauge), Graph: true}
	assert.Equal(t,
		[]DashboardWidget{DashboardPlot, DashboardGauge},
		ResolveDatasetWidgets(d))
}

func TestResolveDatasetWidget_LegacyPath(t *testing.T) {
	assert.Equal(t, Compass, ResolveDatasetWidget(telemetry.Dataset{WidgetID: "compass"}))
	assert.Equal(t, NoDatasetWidget, ResolveDatasetWidget(telemetry.Dataset{WidgetID: "nope"}))
	assert.Equal(t, NoDatasetWidget, ResolveDatasetWidget(telemetry.Dataset{}))
}

func TestClassification_TotalAndDisjoint(t *testing.T) {
	groupLevel := 0
	datasetLevel := 0
	for _, w := range allDashboardWidgets {
		g, d := IsGroupWidget(w), IsDatasetWidget(w)
		assert.False(t, g && d, "widget %d classifies as both families", w)
		if g {
			groupLevel++
		}
		if d {
			datasetLevel++
		}
	}

	assert.Equal(t, 5, groupLevel)
	assert.Equal(t, 6, datasetLevel)
	assert.False(t, IsGroupWidget(DashboardNoWidget))
	assert.False(t, IsDatasetWidget(DashboardNoWidget))
}

func TestDatasetOption_Has(t *testing.T) {
	opts := DatasetPlot | DatasetGauge

	assert.True(t, opts.Has(DatasetPlot))
	assert.True(t, opts.Has(DatasetGauge))
	assert.False(t, opts.Has(DatasetFFT))
	assert.False(t, opts.Has(DatasetGeneric))
	assert.False(t, DatasetGeneric.Has(DatasetGeneric))
}
