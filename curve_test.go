package pagedraw

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func TestNewBezierCurveIgnoresIncompleteSpan(t *testing.T) {
	c := NewBezierCurve(Pt(0, 0), Pt(1, 1), Pt(2, 1), Pt(3, 0), Pt(4, 4), Pt(5, 5))
	if len(c.Spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(c.Spans))
	}
	assertPoint(t, c.End(), Pt(3, 0))
}

func TestCircleToCurve(t *testing.T) {
	c := NewCircleXY(Pt(5, 5), 1)
	cv := c.ToCurve(DefaultTolerance)
	if len(cv.Spans) != 4 {
		t.Errorf("spans = %d, want 4", len(cv.Spans))
	}
	if !cv.IsClosed() {
		t.Error("circle curve should be closed")
	}
	assertPoint(t, cv.Start(), Pt(6, 5))

	// a tighter tolerance on a large circle needs more spans
	big := NewCircleXY(Point3{}, 1000).ToCurve(1e-4)
	if len(big.Spans) <= 4 {
		t.Errorf("large circle spans = %d, want more than 4", len(big.Spans))
	}

	// span midpoints stay on the circle within tolerance
	for _, s := range cv.Spans {
		x := (s[0].X + 3*s[1].X + 3*s[2].X + s[3].X) / 8
		y := (s[0].Y + 3*s[1].Y + 3*s[2].Y + s[3].Y) / 8
		if d := math.Hypot(x-5, y-5) - 1; math.Abs(d) > DefaultTolerance {
			t.Errorf("midpoint off the circle by %g", d)
		}
	}
}

func TestArcToCurve(t *testing.T) {
	a := Arc{Circle: NewCircleXY(Point3{}, 2), Angle: Interval{0, math.Pi}}
	cv := a.ToCurve(DefaultTolerance)
	if cv.IsClosed() {
		t.Error("half arc should be open")
	}
	assertPoint(t, cv.Start(), Pt(2, 0))
	assertPoint(t, cv.End(), Pt(-2, 0))

	empty := Arc{Circle: NewCircleXY(Point3{}, 2), Angle: Interval{1, 1}}.ToCurve(DefaultTolerance)
	if len(empty.Spans) != 0 {
		t.Error("zero sweep should produce an empty curve")
	}
}

func TestCurveReverseAndAppend(t *testing.T) {
	a := LineCurve(Pt(0, 0), Pt(1, 0))
	b := LineCurve(Pt(1, 0), Pt(1, 1))
	c := a.Append(b)
	assertPoint(t, c.Start(), Pt(0, 0))
	assertPoint(t, c.End(), Pt(1, 1))

	r := c.Reverse()
	assertPoint(t, r.Start(), Pt(1, 1))
	assertPoint(t, r.End(), Pt(0, 0))
	if len(a.Spans) != 1 {
		t.Error("Append modified its receiver")
	}
}

func TestFullTurnClosesExactly(t *testing.T) {
	curves := map[string]Curve{
		"circle":     NewCircleXY(Point3{}, 1).ToCurve(DefaultTolerance),
		"big circle": NewCircleXY(Pt(3, -7), 250).ToCurve(1e-3),
		"ellipse":    Ellipse{Plane: WorldXY, Radius1: 3, Radius2: 1.5}.ToCurve(DefaultTolerance),
	}
	for name, cv := range curves {
		if cv.End() != cv.Start() {
			t.Errorf("%s: end %v != start %v", name, cv.End(), cv.Start())
		}
		for i := 1; i < len(cv.Spans); i++ {
			if cv.Spans[i][0] != cv.Spans[i-1][3] {
				t.Errorf("%s: span %d does not start where span %d ends", name, i, i-1)
			}
		}
	}
}

func TestBezierPolyline(t *testing.T) {
	cv := NewCircleXY(Point3{}, 1).ToCurve(DefaultTolerance)
	pts := BezierPolyline(cv)
	if len(pts) != 3*len(cv.Spans)+1 {
		t.Errorf("len = %d, want %d", len(pts), 3*len(cv.Spans)+1)
	}
	if pts[0] != pts[len(pts)-1] {
		t.Error("closed curve should start and end at the same point")
	}

	degenerate := LineCurve(Pt(2, 2), Pt(2, 2))
	if BezierPolyline(degenerate) != nil {
		t.Error("degenerate curve should flatten to nil")
	}
}

func TestJoinCurves(t *testing.T) {
	// square edges given out of order and with mixed directions
	edges := []Curve{
		LineCurve(Pt(0, 0), Pt(1, 0)),
		LineCurve(Pt(1, 1), Pt(0, 1)),
		LineCurve(Pt(1, 1), Pt(1, 0)),
		LineCurve(Pt(0, 0), Pt(0, 1)),
	}
	loops := JoinCurves(edges, joinTolerance)
	if len(loops) != 1 {
		t.Fatalf("loops = %d, want 1", len(loops))
	}
	if !loops[0].IsClosed() || len(loops[0].Spans) != 4 {
		t.Errorf("loop closed=%v spans=%d", loops[0].IsClosed(), len(loops[0].Spans))
	}
}

func TestNormalizeBrepWithHole(t *testing.T) {
	outer := []Point3{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	hole := []Point3{Pt(3, 3), Pt(6, 3), Pt(6, 6), Pt(3, 6)}
	b := PlanarBrep(outer, hole)
	if n := len(b.NakedEdges()); n != 8 {
		t.Fatalf("naked edges = %d, want 8", n)
	}
	loops := NormalizeBrep(b)
	if len(loops) != 2 {
		t.Fatalf("loops = %d, want 2", len(loops))
	}
	for _, l := range loops {
		if len(l) != 13 {
			t.Errorf("loop has %d control points, want 13", len(l))
		}
	}
}

func TestNormalizeBrepSharedEdges(t *testing.T) {
	// two faces sharing edge 1: only the outer boundary is naked
	b := Brep{
		Edges: []Curve{
			LineCurve(Pt(0, 0), Pt(1, 0)),
			LineCurve(Pt(1, 0), Pt(1, 1)),
			LineCurve(Pt(1, 1), Pt(0, 0)),
			LineCurve(Pt(1, 0), Pt(2, 1)),
			LineCurve(Pt(2, 1), Pt(1, 1)),
		},
		Faces: [][]int{{0, 1, 2}, {1, 3, 4}},
	}
	if n := len(b.NakedEdges()); n != 4 {
		t.Errorf("naked edges = %d, want 4", n)
	}
	if loops := NormalizeBrep(b); len(loops) != 1 {
		t.Errorf("loops = %d, want 1", len(loops))
	}

	closedSolid := Brep{Edges: b.Edges[:1], Faces: [][]int{{0}, {0}}}
	if NormalizeBrep(closedSolid) != nil {
		t.Error("solid without naked edges should produce nothing")
	}
}

func TestNormalizeMesh(t *testing.T) {
	m := Mesh{
		Vertices: []Point3{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1)},
		Faces:    [][]int{{0, 1, 2}, {0, 2, 3}},
	}
	if n := len(m.NakedEdges()); n != 4 {
		t.Fatalf("naked edges = %d, want 4", n)
	}
	loops := NormalizeMesh(m)
	if len(loops) != 1 {
		t.Fatalf("loops = %d, want 1", len(loops))
	}
	if len(loops[0]) != 5 || loops[0][0] != loops[0][4] {
		t.Errorf("loop = %v, want 4 vertices plus the closing one", loops[0])
	}

	bad := Mesh{Vertices: []Point3{Pt(0, 0)}, Faces: [][]int{{0, 5, 7}}}
	for _, l := range NormalizeMesh(bad) {
		if len(l) > 1 {
			t.Errorf("invalid indices produced loop %v", l)
		}
	}
}

func TestToPath(t *testing.T) {
	pts := BezierPolyline(LineCurve(Pt(0, 0), Pt(3, 0)))
	p := ToPath([][]vec.Vec2{pts}, true, true)
	want := []path.Command{path.CmdMoveTo, path.CmdCubeTo, path.CmdClose}
	if len(p.Cmds) != len(want) {
		t.Fatalf("cmds = %v, want %v", p.Cmds, want)
	}
	for i := range want {
		if p.Cmds[i] != want[i] {
			t.Errorf("cmd %d = %v, want %v", i, p.Cmds[i], want[i])
		}
	}

	poly := ToPath([][]vec.Vec2{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}}, false, false)
	if len(poly.Cmds) != 3 || len(poly.Coords) != 3 {
		t.Errorf("polyline path cmds=%d coords=%d, want 3 and 3", len(poly.Cmds), len(poly.Coords))
	}
	if short := ToPath([][]vec.Vec2{{{X: 1}}}, false, false); len(short.Cmds) != 0 {
		t.Error("single point should not produce a path")
	}
}
