package widget

import "github.com/c360/streamdash/telemetry"

// datasetOptionOrder fixes the emission order of dataset-level dashboard
// widgets. Resolution iterates this table, not the raw bit positions, so
// the dashboard layout is deterministic across runs even if flag values
// are ever renumbered.
var datasetOptionOrder = []struct {
	option DatasetOption
	widget DashboardWidget
}{
	{DatasetPlot, DashboardPlot},
	{DatasetFFT, DashboardFFT},
	{DatasetBar, DashboardBar},
	{DatasetGauge, DashboardGauge},
	{DatasetCompass, DashboardCompass},
	{DatasetLED, DashboardLED},
}

// ResolveGroupWidget selects the widget a Group should render with:
// the explicit identifier when recognized, NoGroupWidget otherwise.
func ResolveGroupWidget(g telemetry.Group) GroupWidget {
	return GroupWidgetFromID(g.WidgetID)
}

// GetDashboardWidget maps a Group to at most one dashboard widget based
// on its resolved group widget.
func GetDashboardWidget(g telemetry.Group) DashboardWidget {
	switch ResolveGroupWidget(g) {
	case DataGrid:
		return DashboardDataGrid
	case Accelerometer:
		return DashboardAccelerometer
	case Gyroscope:
		return DashboardGyroscope
	case GPS:
		return DashboardGPS
	case MultiPlot:
		return DashboardMultiPlot
	case NoGroupWidget:
		return DashboardNoWidget
	default:
		return DashboardNoWidget
	}
}

// ResolveDatasetWidgets returns one dashboard widget per rendering
// intent set in the dataset's option flags, in the fixed order Plot,
// FFT, Bar, Gauge, Compass, LED. The legacy Graph and LED booleans are
// folded in as the plot and LED bits. A dataset with no flags set yields
// an empty list. Option flags take precedence over the explicit
// identifier; the identifier only governs the legacy single-widget path
// (ResolveDatasetWidget).
func ResolveDatasetWidgets(d telemetry.Dataset) []DashboardWidget {
	opts := DatasetOption(d.Options)
	if d.Graph {
		opts |= DatasetPlot
	}
	if d.LED {
		opts |= DatasetLED
	}
	if opts == DatasetGeneric {
		return nil
	}

	var widgets []DashboardWidget
	for _, entry := range datasetOptionOrder {
		if opts.Has(entry.option) {
			widgets = append(widgets, entry.widget)
		}
	}
	return widgets
}

// ResolveDatasetWidget selects the single dataset widget from the
// explicit identifier. Only meaningful when no option flags are set.
func ResolveDatasetWidget(d telemetry.Dataset) DatasetWidget {
	return DatasetWidgetFromID(d.WidgetID)
}

// IsGroupWidget reports whether a dashboard widget belongs to the
// group-level family. Disjoint with IsDatasetWidget; the sentinel is
// neither.
func IsGroupWidget(w DashboardWidget) bool {
	switch w {
	case DashboardDataGrid, DashboardMultiPlot, DashboardAccelerometer,
		DashboardGyroscope, DashboardGPS:
		return true
	case DashboardFFT, DashboardLED, DashboardPlot, DashboardBar,
		DashboardGauge, DashboardCompass, DashboardNoWidget:
		return false
	default:
		return false
	}
}

// IsDatasetWidget reports whether a dashboard widget belongs to the
// dataset-level family. Disjoint with IsGroupWidget; the sentinel is
// neither.
func IsDatasetWidget(w DashboardWidget) bool {
	switch w {
	case DashboardFFT, DashboardLED, DashboardPlot, DashboardBar,
		DashboardGauge, DashboardCompass:
		return true
	case DashboardDataGrid, DashboardMultiPlot, DashboardAccelerometer,
		DashboardGyroscope, DashboardGPS, DashboardNoWidget:
		return false
	default:
		return false
	}
}
