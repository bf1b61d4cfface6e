package widget

// Static, read-only registries mapping widgets to display metadata and
// identifier strings. Initialized once at load, never mutated, safe for
// unsynchronized concurrent reads.

// groupWidgetIDs are the stable identifier strings persisted verbatim in
// project files. Changing one breaks every saved project.
var groupWidgetIDs = map[GroupWidget]string{
	DataGrid:      "datagrid",
	Accelerometer: "accelerometer",
	Gyroscope:     "gyro",
	GPS:           "map",
	MultiPlot:     "multiplot",
}

var datasetWidgetIDs = map[DatasetWidget]string{
	Bar:     "bar",
	Gauge:   "gauge",
	Compass: "compass",
}

var dashboardWidgetTitles = map[DashboardWidget]string{
	DashboardDataGrid:      "Data Grid",
	DashboardMultiPlot:     "Multiple Plots",
	DashboardAccelerometer: "Accelerometer",
	DashboardGyroscope:     "Gyroscope",
	DashboardGPS:           "GPS Map",
	DashboardFFT:           "FFT Plot",
	DashboardLED:           "LED Panel",
	DashboardPlot:          "Plot",
	DashboardBar:           "Bar/Level",
	DashboardGauge:         "Gauge",
	DashboardCompass:       "Compass",
}

var dashboardWidgetIcons = map[DashboardWidget]string{
	DashboardDataGrid:      "datagrid",
	DashboardMultiPlot:     "multiplot",
	DashboardAccelerometer: "accelerometer",
	DashboardGyroscope:     "gyroscope",
	DashboardGPS:           "gps",
	DashboardFFT:           "fft",
	DashboardLED:           "led",
	DashboardPlot:          "plot",
	DashboardBar:           "bar",
	DashboardGauge:         "gauge",
	DashboardCompass:       "compass",
}

// GroupWidgetID returns the identifier string for a group widget, empty
// for NoGroupWidget.
func GroupWidgetID(w GroupWidget) string {
	return groupWidgetIDs[w]
}

// GroupWidgetFromID parses an identifier string. Unknown identifiers map
// to NoGroupWidget so project files from other schema versions load.
func GroupWidgetFromID(id string) GroupWidget {
	for w, s := range groupWidgetIDs {
		if s == id {
			return w
		}
	}
	return NoGroupWidget
}

// DatasetWidgetID returns the identifier string for a dataset widget,
// empty for NoDatasetWidget.
func DatasetWidgetID(w DatasetWidget) string {
	return datasetWidgetIDs[w]
}

// DatasetWidgetFromID parses an identifier string. Unknown identifiers
// map to NoDatasetWidget.
func DatasetWidgetFromID(id string) DatasetWidget {
	for w, s := range datasetWidgetIDs {
		if s == id {
			return w
		}
	}
	return NoDatasetWidget
}

// DashboardWidgetTitle returns the human display title, empty for the
// DashboardNoWidget sentinel. Total over the enum.
func DashboardWidgetTitle(w DashboardWidget) string {
	return dashboardWidgetTitles[w]
}

// DashboardWidgetIcon returns the icon identifier, empty for the
// DashboardNoWidget sentinel. Total over the enum.
func DashboardWidgetIcon(w DashboardWidget) string {
	return dashboardWidgetIcons[w]
}
