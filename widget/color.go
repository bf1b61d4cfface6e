package widget

// datasetColors is the fixed palette for dataset curves, chosen for
// visual distinctness on dark dashboards. Indexes wrap modulo the
// palette size, so a given index always yields the same color.
var datasetColors = []string{
	"#007aff", // blue
	"#ff9500", // orange
	"#34c759", // green
	"#ff3b30", // red
	"#af52de", // purple
	"#5ac8fa", // teal
	"#ffcc00", // yellow
	"#ff2d55", // pink
	"#a2845e", // brown
	"#8e8e93", // gray
}

// PaletteSize is the number of distinct dataset colors before wraparound.
var PaletteSize = len(datasetColors)

// DatasetColor deterministically maps a non-negative dataset index to a
// display color, wrapping once the index exceeds the palette length.
// Negative indexes are treated as 0.
func DatasetColor(index int) string {
	if index < 0 {
		index = 0
	}
	return datasetColors[index%len(datasetColors)]
}
