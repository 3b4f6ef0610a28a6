package pagedraw

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func assertPoint(t *testing.T, got, want Point3) {
	t.Helper()
	if !approx(got.X, want.X) || !approx(got.Y, want.Y) || !approx(got.Z, want.Z) {
		t.Errorf("point = %v, want %v", got, want)
	}
}

func TestNewPlaneOrthonormal(t *testing.T) {
	pl := NewPlane(Pt(1, 2), Vector3{X: 2, Y: 1}, Vector3{X: 0.5, Y: 3})
	for _, a := range []Vector3{pl.XAxis, pl.YAxis, pl.ZAxis} {
		if !approx(a.Length(), 1) {
			t.Errorf("axis %v is not unit length", a)
		}
	}
	if !approx(pl.XAxis.Dot(pl.YAxis), 0) || !approx(pl.XAxis.Dot(pl.ZAxis), 0) {
		t.Error("axes are not orthogonal")
	}
	if pl.ZAxis.Z <= 0 {
		t.Errorf("Z axis %v should follow the right-hand rule", pl.ZAxis)
	}
}

func TestPlaneCoordinatesRoundTrip(t *testing.T) {
	pl := NewPlane(Point3{X: 3, Y: -1, Z: 2}, Vector3{X: 1, Y: 1}, Vector3{X: -1, Y: 1})
	u, v, w := pl.Coordinates(pl.PointAt(4, -2))
	if !approx(u, 4) || !approx(v, -2) || !approx(w, 0) {
		t.Errorf("Coordinates = (%g, %g, %g), want (4, -2, 0)", u, v, w)
	}
}

func TestRectangle(t *testing.T) {
	r := RectangleXY(10, 40, 0, 20)
	if r.Width() != 10 || r.Height() != 20 {
		t.Errorf("size = %gx%g, want 10x20", r.Width(), r.Height())
	}
	assertPoint(t, r.Center(), Pt(5, 30))
	assertPoint(t, r.Corner(2), Pt(10, 40))
	if !r.IsValid() {
		t.Error("rectangle should be valid")
	}
	if (Rectangle{Plane: WorldXY, X: Interval{1, 1}, Y: Interval{0, 5}}).IsValid() {
		t.Error("zero-width rectangle should be invalid")
	}

	iv := Interval{5, -3}
	if iv.Min() != -3 || iv.Max() != 5 || iv.Length() != 8 || iv.Mid() != 1 {
		t.Errorf("interval helpers wrong for %v", iv)
	}
}

func TestBoundingBox(t *testing.T) {
	var b BoundingBox
	if b.IsValid() {
		t.Fatal("zero box should be empty")
	}
	b = b.Grow(Pt(1, 5)).Grow(Pt(-2, 3))
	if !b.IsValid() || b.Width() != 3 || b.Height() != 2 {
		t.Errorf("box = %+v", b)
	}
	u := b.Union(BoundingBox{})
	if u != b {
		t.Error("union with an empty box should not change the box")
	}
	r := b.Rect()
	if r.LLx != -2 || r.LLy != 3 || r.URx != 1 || r.URy != 5 {
		t.Errorf("Rect() = %+v", r)
	}
}

func TestMirrorIsInvolution(t *testing.T) {
	pl := NewPlane(Point3{X: 1, Y: 2, Z: 3}, Vector3{X: 1, Y: 2}, ZAxis)
	m := Mirror(pl)
	id := m.Multiply(m)
	want := Identity()
	for i := range 4 {
		for j := range 4 {
			if !approx(id[i][j], want[i][j]) {
				t.Fatalf("mirror twice [%d][%d] = %g, want %g", i, j, id[i][j], want[i][j])
			}
		}
	}
	// points on the plane are fixed
	p := pl.PointAt(3, -4)
	assertPoint(t, m.Apply(p), p)
}

func TestScalingAndTranslation(t *testing.T) {
	s := Scaling(Pt(1, 1), 3)
	assertPoint(t, s.Apply(Pt(1, 1)), Pt(1, 1))
	assertPoint(t, s.Apply(Pt(2, 1)), Pt(4, 1))

	tr := Translation(Vector3{X: 5, Y: -1})
	assertPoint(t, tr.Apply(Pt(0, 0)), Pt(5, -1))
	v := tr.ApplyVector(Vector3{X: 1})
	if v != (Vector3{X: 1}) {
		t.Errorf("translation changed a direction: %v", v)
	}

	// Multiply applies the right operand first
	assertPoint(t, tr.Multiply(s).Apply(Pt(2, 1)), Pt(9, 0))
}

func TestPlaneToPlane(t *testing.T) {
	from := NewPlane(Pt(1, 1), XAxis, YAxis)
	to := NewPlane(Point3{X: 10, Z: 5}, YAxis, Vector3{X: -1})
	tr := PlaneToPlane(from, to)
	assertPoint(t, tr.Apply(from.PointAt(2, 3)), to.PointAt(2, 3))
	assertPoint(t, tr.Apply(from.Origin), to.Origin)
}

func TestTransformMatrix(t *testing.T) {
	tr := Translation(Vector3{X: 3, Y: 4}).Multiply(Scaling(Point3{}, 2))
	m := tr.Matrix()
	want := [6]float64{2, 0, 0, 2, 3, 4}
	for i := range want {
		if !approx(m[i], want[i]) {
			t.Fatalf("Matrix() = %v, want %v", m, want)
		}
	}
}
