package telemetry

import (
	"fmt"
	"sort"

	"github.com/c360/streamdash/errors"
)

// PlotDataX is the ordered X-axis point sequence for a plot. Values are
// strictly unique and ascending; producers maintain the invariant with
// SortedInsert and hand the series to consumers only in valid states.
type PlotDataX []float64

// PlotDataY is the Y-axis point sequence for one curve, index-aligned 1:1
// with its PlotDataX. Duplicates are permitted.
type PlotDataY []float64

// Validate checks the strictly-ascending-unique invariant.
func (x PlotDataX) Validate() error {
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return errors.WrapConfiguration(
				fmt.Errorf("%w: x[%d]=%v not greater than x[%d]=%v",
					errors.ErrInvalidConfig, i, x[i], i-1, x[i-1]),
				"PlotDataX", "Validate", "ordering invariant")
		}
	}
	return nil
}

// SortedInsert adds v keeping the sequence sorted and duplicate-free.
// Returns the insertion index and false when v was already present.
func (x *PlotDataX) SortedInsert(v float64) (int, bool) {
	i := sort.SearchFloat64s(*x, v)
	if i < len(*x) && (*x)[i] == v {
		return i, false
	}
	*x = append(*x, 0)
	copy((*x)[i+1:], (*x)[i:])
	(*x)[i] = v
	return i, true
}

// LineSeries pairs one X sequence exclusively with one Y sequence. The X
// sequence is owned by a single LineSeries; sharing X across curves is
// the MultiLineSeries pattern.
type LineSeries struct {
	X *PlotDataX
	Y *PlotDataY
}

// Validate checks index alignment and the X ordering invariant.
func (s *LineSeries) Validate() error {
	if s.X == nil || s.Y == nil {
		return errors.WrapConfiguration(
			fmt.Errorf("%w: nil series data", errors.ErrInvalidConfig),
			"LineSeries", "Validate", "presence check")
	}
	if err := s.X.Validate(); err != nil {
		return err
	}
	if len(*s.X) != len(*s.Y) {
		return errors.WrapConfiguration(
			fmt.Errorf("%w: x length %d != y length %d",
				errors.ErrInvalidConfig, len(*s.X), len(*s.Y)),
			"LineSeries", "Validate", "alignment check")
	}
	return nil
}

// MultiLineSeries renders multiple curves against one shared X sequence.
// The X sequence is read-only for every consumer; its lifetime is that of
// the longest-lived consumer.
type MultiLineSeries struct {
	X *PlotDataX
	Y []PlotDataY
}

// NewMultiLineSeries creates a series with the given number of empty
// curves, all sharing one X sequence.
func NewMultiLineSeries(curves int) *MultiLineSeries {
	x := make(PlotDataX, 0)
	return &MultiLineSeries{
		X: &x,
		Y: make([]PlotDataY, curves),
	}
}

// Append adds one sample per curve at the given x position. Every curve
// must receive a value so the alignment invariant holds; samples at an
// existing x are rejected to preserve uniqueness.
func (m *MultiLineSeries) Append(x float64, values []float64) error {
	if len(values) != len(m.Y) {
		return errors.WrapConfiguration(
			fmt.Errorf("%w: %d values for %d curves", errors.ErrInvalidConfig, len(values), len(m.Y)),
			"MultiLineSeries", "Append", "cardinality check")
	}
	if n := len(*m.X); n > 0 && x <= (*m.X)[n-1] {
		return errors.WrapConfiguration(
			fmt.Errorf("%w: x=%v not greater than last x=%v", errors.ErrInvalidConfig, x, (*m.X)[n-1]),
			"MultiLineSeries", "Append", "ordering invariant")
	}

	*m.X = append(*m.X, x)
	for i, v := range values {
		m.Y[i] = append(m.Y[i], v)
	}
	return nil
}

// Clone returns a deep copy sharing no backing arrays with the
// original, so the copy stays stable while the original keeps growing.
func (m *MultiLineSeries) Clone() *MultiLineSeries {
	x := make(PlotDataX, len(*m.X))
	copy(x, *m.X)

	out := &MultiLineSeries{
		X: &x,
		Y: make([]PlotDataY, len(m.Y)),
	}
	for i, y := range m.Y {
		out.Y[i] = append(PlotDataY(nil), y...)
	}
	return out
}

// Validate checks that every Y sequence aligns with the shared X and that
// X holds its ordering invariant.
func (m *MultiLineSeries) Validate() error {
	if m.X == nil {
		return errors.WrapConfiguration(
			fmt.Errorf("%w: nil shared x", errors.ErrInvalidConfig),
			"MultiLineSeries", "Validate", "presence check")
	}
	if err := m.X.Validate(); err != nil {
		return err
	}
	for i, y := range m.Y {
		if len(y) != len(*m.X) {
			return errors.WrapConfiguration(
				fmt.Errorf("%w: curve %d length %d != x length %d",
					errors.ErrInvalidConfig, i, len(y), len(*m.X)),
				"MultiLineSeries", "Validate", "alignment check")
		}
	}
	return nil
}
