package pagedraw

import (
	"seehuhn.de/go/geom/vec"
)

// LineGeometry is the payload of KindLine.
type LineGeometry struct {
	Line Line
}

func (g LineGeometry) Kind() ShapeKind     { return KindLine }
func (g LineGeometry) clone() Geometry     { return g }
func (g LineGeometry) bounds() BoundingBox { return boxOf(g.Line.From, g.Line.To) }

func (g LineGeometry) transform(t Transform) Geometry {
	return LineGeometry{Line: Line{From: t.Apply(g.Line.From), To: t.Apply(g.Line.To)}}
}

func (g LineGeometry) render(rc *renderContext, s Shape) error {
	if g.Line.Length() < epsilon {
		return nil
	}
	p := ToPath([][]vec.Vec2{{g.Line.From.XY(), g.Line.To.XY()}}, false, false)
	rc.outline(p, s, false, false)
	return nil
}

// PolylineGeometry is the payload of KindPolyline.
type PolylineGeometry struct {
	Points []Point3
	Closed bool
}

func (g PolylineGeometry) Kind() ShapeKind { return KindPolyline }

func (g PolylineGeometry) clone() Geometry {
	return PolylineGeometry{Points: append([]Point3(nil), g.Points...), Closed: g.Closed}
}

func (g PolylineGeometry) bounds() BoundingBox { return boxOf(g.Points...) }

func (g PolylineGeometry) transform(t Transform) Geometry {
	return PolylineGeometry{Points: applyPoints(t, g.Points), Closed: g.Closed}
}

func (g PolylineGeometry) render(rc *renderContext, s Shape) error {
	if len(g.Points) < 2 {
		return nil
	}
	pts := make([]vec.Vec2, len(g.Points))
	for i, p := range g.Points {
		pts[i] = p.XY()
	}
	rc.outline(ToPath([][]vec.Vec2{pts}, false, g.Closed), s, g.Closed, false)
	return nil
}

// BezierGeometry is the payload of KindBezier.
type BezierGeometry struct {
	Curve Curve
}

func (g BezierGeometry) Kind() ShapeKind     { return KindBezier }
func (g BezierGeometry) clone() Geometry     { return BezierGeometry{Curve: g.Curve.Clone()} }
func (g BezierGeometry) bounds() BoundingBox { return g.Curve.BoundingBox() }

func (g BezierGeometry) transform(t Transform) Geometry {
	return BezierGeometry{Curve: g.Curve.Transform(t)}
}

func (g BezierGeometry) render(rc *renderContext, s Shape) error {
	return rc.curve(g.Curve, s)
}

// CircleGeometry is the payload of KindCircle.
type CircleGeometry struct {
	Circle Circle
}

func (g CircleGeometry) Kind() ShapeKind { return KindCircle }
func (g CircleGeometry) clone() Geometry { return g }

func (g CircleGeometry) bounds() BoundingBox {
	r := g.Circle.Radius
	return Rectangle{Plane: g.Circle.Plane, X: Interval{-r, r}, Y: Interval{-r, r}}.BoundingBox()
}

func (g CircleGeometry) transform(t Transform) Geometry {
	return CircleGeometry{Circle: g.Circle.Transform(t)}
}

func (g CircleGeometry) render(rc *renderContext, s Shape) error {
	return rc.curve(g.Circle.ToCurve(rc.tolerance()), s)
}

// EllipseGeometry is the payload of KindEllipse.
type EllipseGeometry struct {
	Ellipse Ellipse
}

func (g EllipseGeometry) Kind() ShapeKind { return KindEllipse }
func (g EllipseGeometry) clone() Geometry { return g }

func (g EllipseGeometry) bounds() BoundingBox {
	e := g.Ellipse
	return Rectangle{Plane: e.Plane, X: Interval{-e.Radius1, e.Radius1}, Y: Interval{-e.Radius2, e.Radius2}}.BoundingBox()
}

func (g EllipseGeometry) transform(t Transform) Geometry {
	return EllipseGeometry{Ellipse: g.Ellipse.Transform(t)}
}

func (g EllipseGeometry) render(rc *renderContext, s Shape) error {
	return rc.curve(g.Ellipse.ToCurve(rc.tolerance()), s)
}

// ArcGeometry is the payload of KindArc.
type ArcGeometry struct {
	Arc Arc
}

func (g ArcGeometry) Kind() ShapeKind     { return KindArc }
func (g ArcGeometry) clone() Geometry     { return g }
func (g ArcGeometry) bounds() BoundingBox { return g.Arc.ToCurve(DefaultTolerance).BoundingBox() }

func (g ArcGeometry) transform(t Transform) Geometry {
	return ArcGeometry{Arc: Arc{Circle: g.Arc.Circle.Transform(t), Angle: g.Arc.Angle}}
}

func (g ArcGeometry) render(rc *renderContext, s Shape) error {
	return rc.curve(g.Arc.ToCurve(rc.tolerance()), s)
}

// BrepGeometry is the payload of KindBrep.
type BrepGeometry struct {
	Brep Brep
}

func (g BrepGeometry) Kind() ShapeKind { return KindBrep }
func (g BrepGeometry) clone() Geometry { return BrepGeometry{Brep: g.Brep.Clone()} }

func (g BrepGeometry) bounds() BoundingBox {
	var b BoundingBox
	for _, e := range g.Brep.Edges {
		b = b.Union(e.BoundingBox())
	}
	return b
}

func (g BrepGeometry) transform(t Transform) Geometry {
	return BrepGeometry{Brep: g.Brep.Transform(t)}
}

func (g BrepGeometry) render(rc *renderContext, s Shape) error {
	loops := NormalizeBrep(g.Brep)
	if len(loops) == 0 {
		return nil
	}
	rc.outline(ToPath(loops, true, true), s, true, true)
	return nil
}

// MeshGeometry is the payload of KindMesh.
type MeshGeometry struct {
	Mesh Mesh
}

func (g MeshGeometry) Kind() ShapeKind     { return KindMesh }
func (g MeshGeometry) clone() Geometry     { return MeshGeometry{Mesh: g.Mesh.Clone()} }
func (g MeshGeometry) bounds() BoundingBox { return boxOf(g.Mesh.Vertices...) }

func (g MeshGeometry) transform(t Transform) Geometry {
	m := g.Mesh.Clone()
	m.Vertices = applyPoints(t, g.Mesh.Vertices)
	return MeshGeometry{Mesh: m}
}

func (g MeshGeometry) render(rc *renderContext, s Shape) error {
	loops := NormalizeMesh(g.Mesh)
	if len(loops) == 0 {
		Logger().Debug("pagedraw: mesh has no boundary", "shape", s.id)
		return nil
	}
	rc.outline(ToPath(loops, false, true), s, true, true)
	return nil
}
