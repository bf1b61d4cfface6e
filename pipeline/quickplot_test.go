package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streamdash/errors"
	"github.com/c360/streamdash/widget"
)

func TestQuickPlotParser_CommaSeparated(t *testing.T) {
	p := NewQuickPlotParser()

	g, err := p.Parse("1.5, -2, 3e2")
	require.NoError(t, err)

	assert.Equal(t, QuickPlotGroupTitle, g.Title)
	assert.Equal(t, "multiplot", g.WidgetID)
	require.Len(t, g.Datasets, 3)

	assert.Equal(t, "Channel 1", g.Datasets[0].Title)
	assert.Equal(t, "1.5", g.Datasets[0].Value)
	assert.Equal(t, 1, g.Datasets[0].Index)
	assert.Equal(t, uint32(widget.DatasetPlot), g.Datasets[0].Options)
	assert.Equal(t, "-2", g.Datasets[1].Value)
	assert.Equal(t, "3e2", g.Datasets[2].Value)
}

func TestQuickPlotParser_WhitespaceSeparated(t *testing.T) {
	p := NewQuickPlotParser()

	g, err := p.Parse("  10\t20  30 ")
	require.NoError(t, err)
	require.Len(t, g.Datasets, 3)
	assert.Equal(t, "20", g.Datasets[1].Value)
}

func TestQuickPlotParser_SingleField(t *testing.T) {
	p := NewQuickPlotParser()

	g, err := p.Parse("42")
	require.NoError(t, err)
	require.Len(t, g.Datasets, 1)
	// A single channel does not need the multiplot group widget.
	assert.Empty(t, g.WidgetID)
}

func TestQuickPlotParser_BlankFieldsDropped(t *testing.T) {
	p := NewQuickPlotParser()

	g, err := p.Parse("1,,2,")
	require.NoError(t, err)
	require.Len(t, g.Datasets, 2)
}

func TestQuickPlotParser_Rejections(t *testing.T) {
	p := NewQuickPlotParser()

	for _, text := range []string{"", "   ", "1,abc,3", "hello world"} {
		_, err := p.Parse(text)
		require.Error(t, err, "text %q", text)
		assert.True(t, errors.IsDecode(err), "text %q", text)
	}
}
