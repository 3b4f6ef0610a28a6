package pagedraw

import (
	"seehuhn.de/go/geom/matrix"
)

// Transform is a 4x4 affine transformation acting on column vectors.
// Row 3 is always (0, 0, 0, 1) for the transforms built here.
type Transform [4][4]float64

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

// Translation returns a transform that moves points by v.
func Translation(v Vector3) Transform {
	t := Identity()
	t[0][3], t[1][3], t[2][3] = v.X, v.Y, v.Z
	return t
}

// Scaling returns a uniform scale by f about the fixed point about.
func Scaling(about Point3, f float64) Transform {
	t := Identity()
	t[0][0], t[1][1], t[2][2] = f, f, f
	t[0][3] = about.X * (1 - f)
	t[1][3] = about.Y * (1 - f)
	t[2][3] = about.Z * (1 - f)
	return t
}

// Mirror returns the reflection across pl. Applying it twice yields the
// identity.
func Mirror(pl Plane) Transform {
	n := pl.ZAxis.Unit()
	d := n.Dot(Vector3(pl.Origin))
	nv := [3]float64{n.X, n.Y, n.Z}
	t := Identity()
	for i := range 3 {
		for j := range 3 {
			t[i][j] -= 2 * nv[i] * nv[j]
		}
		t[i][3] = 2 * d * nv[i]
	}
	return t
}

// PlaneToPlane maps the frame from onto the frame to: the point with
// coordinates (u, v, w) in from lands on the point with the same
// coordinates in to.
func PlaneToPlane(from, to Plane) Transform {
	// inverse of an orthonormal frame is its transpose
	var inv Transform
	axes := [3]Vector3{from.XAxis, from.YAxis, from.ZAxis}
	o := Vector3(from.Origin)
	for i, a := range axes {
		inv[i][0], inv[i][1], inv[i][2] = a.X, a.Y, a.Z
		inv[i][3] = -a.Dot(o)
	}
	inv[3][3] = 1

	var fwd Transform
	taxes := [3]Vector3{to.XAxis, to.YAxis, to.ZAxis}
	for j, a := range taxes {
		fwd[0][j], fwd[1][j], fwd[2][j] = a.X, a.Y, a.Z
	}
	fwd[0][3], fwd[1][3], fwd[2][3] = to.Origin.X, to.Origin.Y, to.Origin.Z
	fwd[3][3] = 1
	return fwd.Multiply(inv)
}

// Multiply returns t·u, the transform that applies u first and then t.
func (t Transform) Multiply(u Transform) Transform {
	var r Transform
	for i := range 4 {
		for j := range 4 {
			var s float64
			for k := range 4 {
				s += t[i][k] * u[k][j]
			}
			r[i][j] = s
		}
	}
	return r
}

// Apply maps a point.
func (t Transform) Apply(p Point3) Point3 {
	return Point3{
		X: t[0][0]*p.X + t[0][1]*p.Y + t[0][2]*p.Z + t[0][3],
		Y: t[1][0]*p.X + t[1][1]*p.Y + t[1][2]*p.Z + t[1][3],
		Z: t[2][0]*p.X + t[2][1]*p.Y + t[2][2]*p.Z + t[2][3],
	}
}

// ApplyVector maps a direction, ignoring the translation part.
func (t Transform) ApplyVector(v Vector3) Vector3 {
	return Vector3{
		X: t[0][0]*v.X + t[0][1]*v.Y + t[0][2]*v.Z,
		Y: t[1][0]*v.X + t[1][1]*v.Y + t[1][2]*v.Z,
		Z: t[2][0]*v.X + t[2][1]*v.Y + t[2][2]*v.Z,
	}
}

// Matrix returns the XY part of t as a 2D affine matrix in the PDF
// convention x' = m[0]x + m[2]y + m[4], y' = m[1]x + m[3]y + m[5].
func (t Transform) Matrix() matrix.Matrix {
	return matrix.Matrix{t[0][0], t[1][0], t[0][1], t[1][1], t[0][3], t[1][3]}
}

func applyPoints(t Transform, pts []Point3) []Point3 {
	out := make([]Point3, len(pts))
	for i, p := range pts {
		out[i] = t.Apply(p)
	}
	return out
}
