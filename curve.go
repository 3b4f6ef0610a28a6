package pagedraw

import (
	"math"
)

// DefaultTolerance is the maximum distance, in authoring units, between an
// analytic curve and its Bezier approximation.
const DefaultTolerance = 0.01

// CubicSpan is one cubic Bezier segment.
type CubicSpan [4]Point3

func (s CubicSpan) degenerate() bool {
	return s[0].near(s[1], epsilon) && s[0].near(s[2], epsilon) && s[0].near(s[3], epsilon)
}

// Curve is a chain of cubic Bezier spans where each span starts at the end
// of the previous one.
type Curve struct {
	Spans []CubicSpan
}

// NewBezierCurve creates a curve from a flat control point list of length
// 3n+1. Excess points that do not complete a span are ignored.
func NewBezierCurve(points ...Point3) Curve {
	var c Curve
	for i := 0; i+3 < len(points); i += 3 {
		c.Spans = append(c.Spans, CubicSpan{points[i], points[i+1], points[i+2], points[i+3]})
	}
	return c
}

// LineCurve represents a straight segment as a single span.
func LineCurve(a, b Point3) Curve {
	return Curve{Spans: []CubicSpan{{a, a.lerp(b, 1.0/3), a.lerp(b, 2.0/3), b}}}
}

// PolylineCurve represents each polyline segment as one span.
func PolylineCurve(pts []Point3) Curve {
	var c Curve
	for i := 0; i+1 < len(pts); i++ {
		c.Spans = append(c.Spans, LineCurve(pts[i], pts[i+1]).Spans[0])
	}
	return c
}

// arcSpanCount returns the number of spans needed so that the radial error
// of each span stays within tol.
func arcSpanCount(radius, sweep, tol float64) int {
	sweep = math.Abs(sweep)
	n := max(int(math.Ceil(sweep/(math.Pi/2))), 1)
	if tol <= 0 {
		return n
	}
	for n < 1024 {
		q := sweep / float64(n) / 4
		// error bound of the standard cubic arc approximation
		e := radius * 4 / 27 * math.Pow(math.Sin(q), 6) / math.Pow(math.Cos(q), 2)
		if e <= tol {
			break
		}
		n *= 2
	}
	return n
}

// ellipseArc approximates the elliptic arc from a0 to a1 in pl.
func ellipseArc(pl Plane, rx, ry, a0, a1, tol float64) Curve {
	sweep := a1 - a0
	if math.Abs(sweep) < epsilon || (rx < epsilon && ry < epsilon) {
		return Curve{}
	}
	n := arcSpanCount(max(rx, ry), sweep, tol)
	step := sweep / float64(n)
	k := 4.0 / 3 * math.Tan(step/4)
	pt := func(a float64) Point3 { return pl.PointAt(rx*math.Cos(a), ry*math.Sin(a)) }
	tan := func(a float64) Vector3 {
		return pl.XAxis.Mul(-rx * math.Sin(a)).Add(pl.YAxis.Mul(ry * math.Cos(a)))
	}
	full := math.Abs(math.Abs(sweep)-2*math.Pi) < epsilon
	c := Curve{Spans: make([]CubicSpan, 0, n)}
	start := pt(a0)
	p0 := start
	for i := range n {
		s := a0 + float64(i)*step
		e := a0 + float64(i+1)*step
		p3 := pt(e)
		if full && i == n-1 {
			p3 = start
		}
		c.Spans = append(c.Spans, CubicSpan{p0, p0.Add(tan(s).Mul(k)), p3.Add(tan(e).Mul(-k)), p3})
		p0 = p3
	}
	return c
}

// ToCurve approximates the circle, starting at the plane X axis.
func (c Circle) ToCurve(tol float64) Curve {
	return ellipseArc(c.Plane, c.Radius, c.Radius, 0, 2*math.Pi, tol)
}

// ToCurve approximates the ellipse.
func (e Ellipse) ToCurve(tol float64) Curve {
	return ellipseArc(e.Plane, e.Radius1, e.Radius2, 0, 2*math.Pi, tol)
}

// ToCurve approximates the arc.
func (a Arc) ToCurve(tol float64) Curve {
	return ellipseArc(a.Circle.Plane, a.Circle.Radius, a.Circle.Radius, a.Angle.T0, a.Angle.T1, tol)
}

// Clone returns a deep copy.
func (c Curve) Clone() Curve {
	return Curve{Spans: append([]CubicSpan(nil), c.Spans...)}
}

// Transform maps every control point with t. Bezier curves are affine
// invariant, so the result is exact.
func (c Curve) Transform(t Transform) Curve {
	out := Curve{Spans: make([]CubicSpan, len(c.Spans))}
	for i, s := range c.Spans {
		for j, p := range s {
			out.Spans[i][j] = t.Apply(p)
		}
	}
	return out
}

// Start returns the first point. The zero point is returned for an empty curve.
func (c Curve) Start() Point3 {
	if len(c.Spans) == 0 {
		return Point3{}
	}
	return c.Spans[0][0]
}

// End returns the last point.
func (c Curve) End() Point3 {
	if len(c.Spans) == 0 {
		return Point3{}
	}
	return c.Spans[len(c.Spans)-1][3]
}

// Reverse returns the curve traversed backwards.
func (c Curve) Reverse() Curve {
	out := Curve{Spans: make([]CubicSpan, len(c.Spans))}
	for i, s := range c.Spans {
		out.Spans[len(c.Spans)-1-i] = CubicSpan{s[3], s[2], s[1], s[0]}
	}
	return out
}

// IsClosed reports whether the curve ends where it starts.
func (c Curve) IsClosed() bool {
	return len(c.Spans) > 0 && c.Start().near(c.End(), 1e-6)
}

// IsDegenerate reports whether the curve has no extent.
func (c Curve) IsDegenerate() bool {
	for _, s := range c.Spans {
		if !s.degenerate() {
			return false
		}
	}
	return true
}

// BoundingBox returns the box of all control points, which contains the curve.
func (c Curve) BoundingBox() BoundingBox {
	var b BoundingBox
	for _, s := range c.Spans {
		for _, p := range s {
			b = b.Grow(p)
		}
	}
	return b
}

// Append joins d to the end of c.
func (c Curve) Append(d Curve) Curve {
	out := c.Clone()
	out.Spans = append(out.Spans, d.Spans...)
	return out
}
