package pagedraw

import (
	"slices"
)

// LabelAlignment selects where data labels are drawn relative to the
// element they annotate.
type LabelAlignment int

const (
	LabelNone LabelAlignment = iota // do not draw labels
	LabelAbove
	LabelEnd
	LabelMiddle
	LabelStart
)

// DataSet is a numeric series charted by a chart shape.
type DataSet struct {
	Title  string
	Values []float64
	Fill   Color
	Labels LabelAlignment

	colors []Color
}

// NewDataSet creates a data set with a transparent fill and no labels.
func NewDataSet(title string, values ...float64) DataSet {
	return DataSet{Title: title, Values: slices.Clone(values), Fill: ColorTransparent}
}

// SetFill returns a copy with the given series color.
func (d DataSet) SetFill(c Color) DataSet {
	d = d.Clone()
	d.Fill = c
	return d
}

// SetColors returns a copy with explicit per-value colors.
func (d DataSet) SetColors(colors ...Color) DataSet {
	d = d.Clone()
	d.colors = slices.Clone(colors)
	return d
}

// SetLabels returns a copy with the given label alignment.
func (d DataSet) SetLabels(a LabelAlignment) DataSet {
	d = d.Clone()
	d.Labels = a
	return d
}

// HasColors reports whether explicit per-value colors were supplied.
func (d DataSet) HasColors() bool { return len(d.colors) > 0 }

// Colors returns one color per value. When fewer colors than values were
// supplied, the last supplied color is repeated. Without explicit colors
// the result is nil.
func (d DataSet) Colors() []Color {
	if len(d.colors) == 0 {
		return nil
	}
	n := max(len(d.Values), len(d.colors))
	out := make([]Color, n)
	for i := range out {
		out[i] = d.colors[min(i, len(d.colors)-1)]
	}
	return out
}

// ColorAt resolves the color of element i: an explicit color list wins,
// then a transparent fill falls back to black, then the fill is used.
func (d DataSet) ColorAt(i int) Color {
	if cs := d.Colors(); len(cs) > 0 {
		return cs[((i%len(cs))+len(cs))%len(cs)]
	}
	if d.Fill.IsTransparent() {
		return ColorBlack
	}
	return d.Fill
}

// Clone returns a deep copy.
func (d DataSet) Clone() DataSet {
	d.Values = slices.Clone(d.Values)
	d.colors = slices.Clone(d.colors)
	return d
}

// valueAt returns value i, or 0 past the end of the series.
func (d DataSet) valueAt(i int) float64 {
	if i < 0 || i >= len(d.Values) {
		return 0
	}
	return d.Values[i]
}

func cloneDataSets(sets []DataSet) []DataSet {
	out := make([]DataSet, len(sets))
	for i, d := range sets {
		out[i] = d.Clone()
	}
	return out
}
