package pagedraw

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"seehuhn.de/go/geom/vec"
)

// ChartKind selects the chart layout.
type ChartKind int

const (
	ChartPie ChartKind = iota
	ChartLine
	ChartArea
	ChartColumn
	ChartBar
	ChartColumnStacked
	ChartBarStacked
)

var chartNames = [...]string{
	ChartPie:           "pie",
	ChartLine:          "line",
	ChartArea:          "area",
	ChartColumn:        "column",
	ChartBar:           "bar",
	ChartColumnStacked: "column-stacked",
	ChartBarStacked:    "bar-stacked",
}

func (k ChartKind) String() string {
	if k >= 0 && int(k) < len(chartNames) {
		return chartNames[k]
	}
	return fmt.Sprintf("ChartKind(%d)", int(k))
}

// ParseChartKind returns the kind with the given name.
func ParseChartKind(name string) (ChartKind, error) {
	for k, n := range chartNames {
		if n == name {
			return ChartKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChartKind, name)
}

// Chart layout errors.
var (
	ErrNoDataSets       = errors.New("pagedraw: chart has no data sets")
	ErrEmptyDataSet     = errors.New("pagedraw: data set has no values")
	ErrInvalidValue     = errors.New("pagedraw: data value is not finite")
	ErrUnknownChartKind = errors.New("pagedraw: unknown chart kind")
)

// Primitive is one positioned chart element in document coordinates.
type Primitive struct {
	Points []vec.Vec2
	Bezier bool // Points are cubic control points (see BezierPolyline)
	Closed bool
	Filled bool
}

// Path converts the primitive to a path.
func (p Primitive) Path() *Outline {
	return ToPath([][]vec.Vec2{p.Points}, p.Bezier, p.Closed)
}

// ChartLabel is a text annotation produced by the layout.
type ChartLabel struct {
	Text  string
	At    vec.Vec2 // horizontal center of the text baseline
	Title bool
}

// ChartResult is the output of ChartLayout. Primitives and Colors have the
// same length.
type ChartResult struct {
	Primitives []Primitive
	Colors     []Color
	Labels     []ChartLabel

	// Fractions holds cumulative fractions: the slice boundaries of a pie
	// (one row), or per category the stacked series ends relative to the
	// largest category total.
	Fractions [][]float64
}

func (r *ChartResult) add(p Primitive, c Color) {
	r.Primitives = append(r.Primitives, p)
	r.Colors = append(r.Colors, c)
}

// chartFrame is the square plot area inside a chart boundary. Offsets are
// measured from the lower-left corner along the boundary plane axes.
type chartFrame struct {
	plane      Plane
	cornerU    float64
	cornerV    float64
	radius     float64
	categories int
}

func newChartFrame(boundary Rectangle, sets []DataSet) chartFrame {
	side := 0.8 * min(boundary.Width(), boundary.Height())
	r := side / 2
	f := chartFrame{
		plane:   boundary.Plane,
		cornerU: boundary.X.Mid() - r,
		cornerV: boundary.Y.Mid() - r,
		radius:  r,
	}
	for _, d := range sets {
		f.categories = max(f.categories, len(d.Values))
	}
	return f
}

func (f chartFrame) at(du, dv float64) vec.Vec2 {
	return f.plane.PointAt(f.cornerU+du, f.cornerV+dv).XY()
}

func (f chartFrame) rect(u0, v0, u1, v1 float64) Primitive {
	return Primitive{
		Points: []vec.Vec2{f.at(u0, v0), f.at(u1, v0), f.at(u1, v1), f.at(u0, v1)},
		Closed: true,
		Filled: true,
	}
}

// CumulativeFractions returns the running sum of values divided by their
// total. The result is nil when the total is zero.
func CumulativeFractions(values []float64) []float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	if total == 0 {
		return nil
	}
	out := make([]float64, len(values))
	var run float64
	for i, v := range values {
		run += v
		out[i] = run / total
	}
	return out
}

// ChartLayout positions the elements of a chart inside boundary.
//
// The plot area is a square of 0.8 times the smaller boundary side,
// centered in the boundary. Pie charts use only the first data set; every
// other kind requires all data sets to be non-empty.
func ChartLayout(sets []DataSet, kind ChartKind, boundary Rectangle) (ChartResult, error) {
	if len(sets) == 0 {
		return ChartResult{}, ErrNoDataSets
	}
	if kind == ChartPie {
		sets = sets[:1]
	}
	for i, d := range sets {
		if len(d.Values) == 0 {
			return ChartResult{}, fmt.Errorf("%w: data set %d", ErrEmptyDataSet, i)
		}
		for j, v := range d.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return ChartResult{}, fmt.Errorf("%w: data set %d value %d", ErrInvalidValue, i, j)
			}
		}
	}

	f := newChartFrame(boundary, sets)
	var res ChartResult
	switch kind {
	case ChartPie:
		layoutPie(&res, f, sets[0])
	case ChartLine, ChartArea:
		layoutLine(&res, f, sets, kind == ChartArea)
	case ChartColumn, ChartBar:
		layoutBars(&res, f, sets, kind == ChartBar)
	case ChartColumnStacked, ChartBarStacked:
		layoutStacked(&res, f, sets, kind == ChartBarStacked)
	default:
		return ChartResult{}, fmt.Errorf("%w: %d", ErrUnknownChartKind, int(kind))
	}

	if t := sets[0].Title; t != "" {
		res.Labels = append(res.Labels, ChartLabel{
			Text:  t,
			At:    f.at(f.radius, 2*f.radius+0.1*f.radius),
			Title: true,
		})
	}
	return res, nil
}

func layoutPie(res *ChartResult, f chartFrame, d DataSet) {
	r := f.radius
	center := f.plane
	center.Origin = f.plane.PointAt(f.cornerU+r, f.cornerV+r)
	circle := Circle{Plane: center, Radius: r}

	res.add(Primitive{
		Points: BezierPolyline(circle.ToCurve(DefaultTolerance)),
		Bezier: true,
		Closed: true,
	}, ColorBlack)

	fr := CumulativeFractions(d.Values)
	if fr == nil {
		Logger().Debug("pagedraw: pie values sum to zero")
		return
	}
	res.Fractions = [][]float64{fr}

	prev := 0.0
	for i, t := range fr {
		spoke := circle.PointAt(2 * math.Pi * t)
		res.add(Primitive{Points: []vec.Vec2{center.Origin.XY(), spoke.XY()}}, d.ColorAt(i))

		if d.Labels != LabelNone {
			k := map[LabelAlignment]float64{LabelAbove: 1.15, LabelEnd: 0.85, LabelMiddle: 0.6, LabelStart: 0.3}[d.Labels]
			mid := math.Pi * (prev + t)
			at := center.PointAt(k*r*math.Cos(mid), k*r*math.Sin(mid))
			res.Labels = append(res.Labels, ChartLabel{Text: formatValue(d.Values[i]), At: at.XY()})
		}
		prev = t
	}
}

// valueRange returns the minimum and maximum over all values.
func valueRange(sets []DataSet) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, d := range sets {
		for _, v := range d.Values {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi
}

func normalizer(sets []DataSet) func(float64) float64 {
	lo, hi := valueRange(sets)
	if hi-lo < epsilon {
		return func(float64) float64 { return 0.5 }
	}
	return func(v float64) float64 { return (v - lo) / (hi - lo) }
}

func layoutLine(res *ChartResult, f chartFrame, sets []DataSet, area bool) {
	norm := normalizer(sets)
	span := 2 * f.radius
	xAt := func(i int) float64 {
		if f.categories < 2 {
			return f.radius
		}
		return float64(i) / float64(f.categories-1) * span
	}

	for s, d := range sets {
		var pts []vec.Vec2
		if area {
			pts = append(pts, f.at(xAt(0), 0))
		}
		for i, v := range d.Values {
			x, y := xAt(i), norm(v)*span
			pts = append(pts, f.at(x, y))
			if d.Labels != LabelNone {
				res.Labels = append(res.Labels, ChartLabel{
					Text: formatValue(v),
					At:   f.at(x, labelOffset(d.Labels, y, span)),
				})
			}
		}
		if area {
			pts = append(pts, f.at(xAt(len(d.Values)-1), 0))
		}
		res.add(Primitive{Points: pts, Closed: area, Filled: area}, d.ColorAt(s))
	}
}

// labelOffset places a label along the value axis of an element that
// extends from 0 to ext.
func labelOffset(a LabelAlignment, ext, span float64) float64 {
	pad := 0.03 * span
	switch a {
	case LabelAbove:
		return ext + pad
	case LabelEnd:
		return ext - pad
	case LabelMiddle:
		return ext / 2
	default:
		return pad
	}
}

func layoutBars(res *ChartResult, f chartFrame, sets []DataSet, horizontal bool) {
	norm := normalizer(sets)
	span := 2 * f.radius
	step := span / float64(f.categories)
	lane := step / float64(len(sets))

	for s, d := range sets {
		for i, v := range d.Values {
			ext := max(min(norm(v)*span, span-1), 1)
			a0 := float64(i)*step + float64(s)*lane
			a1 := a0 + lane
			if horizontal {
				res.add(f.rect(0, a0, ext, a1), d.ColorAt(i))
			} else {
				res.add(f.rect(a0, 0, a1, ext), d.ColorAt(i))
			}
			if d.Labels != LabelNone {
				pos := labelOffset(d.Labels, ext, span)
				at := f.at((a0+a1)/2, pos)
				if horizontal {
					at = f.at(pos, (a0+a1)/2)
				}
				res.Labels = append(res.Labels, ChartLabel{Text: formatValue(v), At: at})
			}
		}
	}
}

// CategoryTotals returns, per category index, the sum of the values of
// all data sets at that index.
func CategoryTotals(sets []DataSet) []float64 {
	n := 0
	for _, d := range sets {
		n = max(n, len(d.Values))
	}
	out := make([]float64, n)
	for _, d := range sets {
		for i, v := range d.Values {
			out[i] += v
		}
	}
	return out
}

func layoutStacked(res *ChartResult, f chartFrame, sets []DataSet, horizontal bool) {
	totals := CategoryTotals(sets)
	var peak float64
	for _, t := range totals {
		peak = max(peak, t)
	}
	if peak <= 0 {
		Logger().Debug("pagedraw: stacked chart has no positive category total")
		return
	}
	span := 2 * f.radius
	lane := span / float64(f.categories)

	res.Fractions = make([][]float64, len(totals))
	for i := range totals {
		a0, a1 := float64(i)*lane, float64(i+1)*lane
		var cum float64
		fr := make([]float64, len(sets))
		for s, d := range sets {
			v := d.valueAt(i)
			start := cum / peak * span
			cum += v
			end := cum / peak * span
			fr[s] = cum / peak
			if i >= len(d.Values) {
				continue
			}
			if horizontal {
				res.add(f.rect(start, a0, end, a1), d.ColorAt(i))
			} else {
				res.add(f.rect(a0, start, a1, end), d.ColorAt(i))
			}
			if d.Labels != LabelNone {
				pos := start + labelOffset(d.Labels, end-start, span)
				at := f.at((a0+a1)/2, pos)
				if horizontal {
					at = f.at(pos, (a0+a1)/2)
				}
				res.Labels = append(res.Labels, ChartLabel{Text: formatValue(v), At: at})
			}
		}
		res.Fractions[i] = fr
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
