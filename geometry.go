package pagedraw

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// epsilon is the absolute tolerance used for coordinate comparisons.
const epsilon = 1e-9

// Point3 is a location in authoring space.
type Point3 struct {
	X, Y, Z float64
}

// Vector3 is a displacement in authoring space.
type Vector3 struct {
	X, Y, Z float64
}

// Pt returns a point in the XY plane.
func Pt(x, y float64) Point3 { return Point3{X: x, Y: y} }

// Add returns p displaced by v.
func (p Point3) Add(v Vector3) Point3 { return Point3{p.X + v.X, p.Y + v.Y, p.Z + v.Z} }

// Sub returns the vector from q to p.
func (p Point3) Sub(q Point3) Vector3 { return Vector3{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

// DistanceTo returns the Euclidean distance between p and q.
func (p Point3) DistanceTo(q Point3) float64 { return p.Sub(q).Length() }

// XY projects p onto the document plane.
func (p Point3) XY() vec.Vec2 { return vec.Vec2{X: p.X, Y: p.Y} }

// lerp interpolates between p and q.
func (p Point3) lerp(q Point3, t float64) Point3 {
	return Point3{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t, p.Z + (q.Z-p.Z)*t}
}

func (p Point3) near(q Point3, tol float64) bool { return p.DistanceTo(q) <= tol }

// Add returns v+w.
func (v Vector3) Add(w Vector3) Vector3 { return Vector3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Mul returns v scaled by f.
func (v Vector3) Mul(f float64) Vector3 { return Vector3{v.X * f, v.Y * f, v.Z * f} }

// Dot returns the dot product.
func (v Vector3) Dot(w Vector3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns the cross product v×w.
func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{v.Y*w.Z - v.Z*w.Y, v.Z*w.X - v.X*w.Z, v.X*w.Y - v.Y*w.X}
}

// Length returns the Euclidean norm.
func (v Vector3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Unit returns v scaled to length 1. The zero vector is returned unchanged.
func (v Vector3) Unit() Vector3 {
	l := v.Length()
	if l < epsilon {
		return v
	}
	return v.Mul(1 / l)
}

// Unit axes of authoring space.
var (
	XAxis = Vector3{X: 1}
	YAxis = Vector3{Y: 1}
	ZAxis = Vector3{Z: 1}
)

// Plane is an oriented frame: an origin plus orthonormal X, Y and Z axes.
type Plane struct {
	Origin Point3
	XAxis  Vector3
	YAxis  Vector3
	ZAxis  Vector3
}

// WorldXY is the plane through the origin spanned by the world X and Y axes.
var WorldXY = Plane{XAxis: XAxis, YAxis: YAxis, ZAxis: ZAxis}

// NewPlane creates a plane through origin. The Y axis is made orthogonal to
// x while staying in the plane spanned by x and y.
func NewPlane(origin Point3, x, y Vector3) Plane {
	xu := x.Unit()
	z := xu.Cross(y).Unit()
	return Plane{Origin: origin, XAxis: xu, YAxis: z.Cross(xu), ZAxis: z}
}

// PointAt returns the point with plane coordinates (u, v).
func (pl Plane) PointAt(u, v float64) Point3 {
	return pl.Origin.Add(pl.XAxis.Mul(u)).Add(pl.YAxis.Mul(v))
}

// Coordinates returns the plane coordinates of p.
func (pl Plane) Coordinates(p Point3) (u, v, w float64) {
	d := p.Sub(pl.Origin)
	return d.Dot(pl.XAxis), d.Dot(pl.YAxis), d.Dot(pl.ZAxis)
}

// Transform maps the plane with t. Axes are renormalized.
func (pl Plane) Transform(t Transform) Plane {
	x := t.ApplyVector(pl.XAxis).Unit()
	y := t.ApplyVector(pl.YAxis).Unit()
	z := t.ApplyVector(pl.ZAxis).Unit()
	return Plane{Origin: t.Apply(pl.Origin), XAxis: x, YAxis: y, ZAxis: z}
}

// Interval is a closed parameter range.
type Interval struct {
	T0, T1 float64
}

// Length returns the absolute extent of the interval.
func (iv Interval) Length() float64 { return math.Abs(iv.T1 - iv.T0) }

// Mid returns the midpoint.
func (iv Interval) Mid() float64 { return (iv.T0 + iv.T1) / 2 }

func (iv Interval) Min() float64 { return min(iv.T0, iv.T1) }
func (iv Interval) Max() float64 { return max(iv.T0, iv.T1) }

// Rectangle is an axis-aligned rectangle in its own plane.
type Rectangle struct {
	Plane Plane
	X, Y  Interval
}

// NewRectangle returns a rectangle with its lower-left corner at the plane origin.
func NewRectangle(pl Plane, width, height float64) Rectangle {
	return Rectangle{Plane: pl, X: Interval{0, width}, Y: Interval{0, height}}
}

// RectangleXY returns a rectangle in the world XY plane spanning the two corners.
func RectangleXY(x0, y0, x1, y1 float64) Rectangle {
	return Rectangle{
		Plane: WorldXY,
		X:     Interval{min(x0, x1), max(x0, x1)},
		Y:     Interval{min(y0, y1), max(y0, y1)},
	}
}

// Width returns the extent along the plane X axis.
func (r Rectangle) Width() float64 { return r.X.Length() }

// Height returns the extent along the plane Y axis.
func (r Rectangle) Height() float64 { return r.Y.Length() }

// Center returns the rectangle center.
func (r Rectangle) Center() Point3 { return r.Plane.PointAt(r.X.Mid(), r.Y.Mid()) }

// Corner returns corner i (0..3) counter-clockwise from (X.T0, Y.T0).
func (r Rectangle) Corner(i int) Point3 {
	switch i & 3 {
	case 0:
		return r.Plane.PointAt(r.X.T0, r.Y.T0)
	case 1:
		return r.Plane.PointAt(r.X.T1, r.Y.T0)
	case 2:
		return r.Plane.PointAt(r.X.T1, r.Y.T1)
	default:
		return r.Plane.PointAt(r.X.T0, r.Y.T1)
	}
}

// IsValid reports whether the rectangle has a non-zero area.
func (r Rectangle) IsValid() bool { return r.Width() > epsilon && r.Height() > epsilon }

// BoundingBox returns the world-aligned box of the four corners.
func (r Rectangle) BoundingBox() BoundingBox {
	var b BoundingBox
	for i := range 4 {
		b = b.Grow(r.Corner(i))
	}
	return b
}

// Transform maps the rectangle with t. The plane axes follow t and the
// intervals are scaled by the lengths of the mapped axes.
func (r Rectangle) Transform(t Transform) Rectangle {
	sx := t.ApplyVector(r.Plane.XAxis).Length()
	sy := t.ApplyVector(r.Plane.YAxis).Length()
	return Rectangle{
		Plane: r.Plane.Transform(t),
		X:     Interval{r.X.T0 * sx, r.X.T1 * sx},
		Y:     Interval{r.Y.T0 * sy, r.Y.T1 * sy},
	}
}

// BoundingBox is an axis-aligned box in world coordinates. The zero value
// is empty.
type BoundingBox struct {
	Min, Max Point3
	valid    bool
}

// IsValid reports whether the box contains at least one point.
func (b BoundingBox) IsValid() bool { return b.valid }

// Grow returns the box extended to contain p.
func (b BoundingBox) Grow(p Point3) BoundingBox {
	if !b.valid {
		return BoundingBox{Min: p, Max: p, valid: true}
	}
	b.Min = Point3{min(b.Min.X, p.X), min(b.Min.Y, p.Y), min(b.Min.Z, p.Z)}
	b.Max = Point3{max(b.Max.X, p.X), max(b.Max.Y, p.Y), max(b.Max.Z, p.Z)}
	return b
}

// Union returns the smallest box containing both boxes.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if !o.valid {
		return b
	}
	return b.Grow(o.Min).Grow(o.Max)
}

// Width returns the X extent.
func (b BoundingBox) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the Y extent.
func (b BoundingBox) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the box center.
func (b BoundingBox) Center() Point3 { return b.Min.lerp(b.Max, 0.5) }

// Rect returns the XY projection of the box.
func (b BoundingBox) Rect() rect.Rect {
	return rect.Rect{LLx: b.Min.X, LLy: b.Min.Y, URx: b.Max.X, URy: b.Max.Y}
}

func boxOf(pts ...Point3) BoundingBox {
	var b BoundingBox
	for _, p := range pts {
		b = b.Grow(p)
	}
	return b
}

// Line is a straight segment.
type Line struct {
	From, To Point3
}

// Length returns the segment length.
func (l Line) Length() float64 { return l.From.DistanceTo(l.To) }

// Circle is a full circle in a plane centered on the plane origin.
type Circle struct {
	Plane  Plane
	Radius float64
}

// NewCircleXY returns a circle in a plane parallel to WorldXY.
func NewCircleXY(center Point3, radius float64) Circle {
	pl := WorldXY
	pl.Origin = center
	return Circle{Plane: pl, Radius: radius}
}

// PointAt returns the point at angle a (radians) from the plane X axis.
func (c Circle) PointAt(a float64) Point3 {
	return c.Plane.PointAt(c.Radius*math.Cos(a), c.Radius*math.Sin(a))
}

// Transform maps the circle with t. Non-uniform scaling is approximated by
// the X axis scale.
func (c Circle) Transform(t Transform) Circle {
	s := t.ApplyVector(c.Plane.XAxis).Length()
	return Circle{Plane: c.Plane.Transform(t), Radius: c.Radius * s}
}

// Ellipse is centered on its plane origin with radii along the plane axes.
type Ellipse struct {
	Plane            Plane
	Radius1, Radius2 float64
}

// Transform maps the ellipse with t.
func (e Ellipse) Transform(t Transform) Ellipse {
	return Ellipse{
		Plane:   e.Plane.Transform(t),
		Radius1: e.Radius1 * t.ApplyVector(e.Plane.XAxis).Length(),
		Radius2: e.Radius2 * t.ApplyVector(e.Plane.YAxis).Length(),
	}
}

// Arc is a circular arc from angle Angle.T0 to Angle.T1 (radians,
// counter-clockwise in the circle plane).
type Arc struct {
	Circle Circle
	Angle  Interval
}

// Sweep returns the signed angular extent.
func (a Arc) Sweep() float64 { return a.Angle.T1 - a.Angle.T0 }

// Mesh is a polygon mesh of triangles and quads.
type Mesh struct {
	Vertices []Point3
	Faces    [][]int // 3 or 4 vertex indices, counter-clockwise
}

// Clone returns a deep copy.
func (m Mesh) Clone() Mesh {
	out := Mesh{Vertices: append([]Point3(nil), m.Vertices...)}
	out.Faces = make([][]int, len(m.Faces))
	for i, f := range m.Faces {
		out.Faces[i] = append([]int(nil), f...)
	}
	return out
}

// Brep is a boundary representation: a set of edge curves and faces that
// reference them by index. An edge used by only one face is naked.
type Brep struct {
	Edges []Curve
	Faces [][]int
}

// Clone returns a deep copy.
func (b Brep) Clone() Brep {
	out := Brep{Edges: make([]Curve, len(b.Edges)), Faces: make([][]int, len(b.Faces))}
	for i, e := range b.Edges {
		out.Edges[i] = e.Clone()
	}
	for i, f := range b.Faces {
		out.Faces[i] = append([]int(nil), f...)
	}
	return out
}

// Transform maps every edge with t.
func (b Brep) Transform(t Transform) Brep {
	out := b.Clone()
	for i, e := range out.Edges {
		out.Edges[i] = e.Transform(t)
	}
	return out
}

// PlanarBrep builds a single-face solid boundary from closed outer and
// inner loops given as vertex lists. Every loop segment becomes one edge.
func PlanarBrep(outer []Point3, holes ...[]Point3) Brep {
	var b Brep
	var face []int
	for _, loop := range append([][]Point3{outer}, holes...) {
		for i := range loop {
			face = append(face, len(b.Edges))
			b.Edges = append(b.Edges, LineCurve(loop[i], loop[(i+1)%len(loop)]))
		}
	}
	b.Faces = [][]int{face}
	return b
}
