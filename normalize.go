package pagedraw

import (
	"seehuhn.de/go/geom/vec"
)

// joinTolerance is the distance below which two curve ends are considered
// connected when joining naked edges into loops.
const joinTolerance = 1e-6

// BezierPolyline flattens c into a control point list: the first span
// contributes all four points, every following span its last three.
// A degenerate curve yields nil.
func BezierPolyline(c Curve) []vec.Vec2 {
	if c.IsDegenerate() {
		return nil
	}
	out := make([]vec.Vec2, 0, 3*len(c.Spans)+1)
	for i, s := range c.Spans {
		if i == 0 {
			out = append(out, s[0].XY())
		}
		out = append(out, s[1].XY(), s[2].XY(), s[3].XY())
	}
	return out
}

// JoinCurves chains curves whose ends meet within tol into as few curves as
// possible. Curves are reversed where needed.
func JoinCurves(curves []Curve, tol float64) []Curve {
	var pending []Curve
	for _, c := range curves {
		if len(c.Spans) > 0 {
			pending = append(pending, c)
		}
	}
	var out []Curve
	for len(pending) > 0 {
		cur := pending[0]
		pending = pending[1:]
		for !cur.IsClosed() {
			found := false
			for i, c := range pending {
				switch {
				case cur.End().near(c.Start(), tol):
					cur = cur.Append(c)
				case cur.End().near(c.End(), tol):
					cur = cur.Append(c.Reverse())
				case cur.Start().near(c.End(), tol):
					cur = c.Append(cur)
				case cur.Start().near(c.Start(), tol):
					cur = c.Reverse().Append(cur)
				default:
					continue
				}
				pending = append(pending[:i], pending[i+1:]...)
				found = true
				break
			}
			if !found {
				break
			}
		}
		out = append(out, cur)
	}
	return out
}

// NakedEdges returns the edges referenced by exactly one face.
func (b Brep) NakedEdges() []Curve {
	use := make([]int, len(b.Edges))
	for _, f := range b.Faces {
		for _, e := range f {
			if e >= 0 && e < len(use) {
				use[e]++
			}
		}
	}
	var out []Curve
	for i, n := range use {
		if n == 1 {
			out = append(out, b.Edges[i])
		}
	}
	return out
}

// NormalizeBrep joins the naked edges of b into loops and returns one
// Bezier polyline per loop.
func NormalizeBrep(b Brep) [][]vec.Vec2 {
	edges := b.NakedEdges()
	if len(edges) == 0 {
		Logger().Debug("pagedraw: solid has no naked edges")
		return nil
	}
	var out [][]vec.Vec2
	for _, loop := range JoinCurves(edges, joinTolerance) {
		if pts := BezierPolyline(loop); len(pts) > 0 {
			out = append(out, pts)
		}
	}
	return out
}

type meshEdge struct{ a, b int }

// NakedEdges returns the directed boundary edges of m as vertex index pairs.
func (m Mesh) NakedEdges() [][2]int {
	count := make(map[meshEdge]int)
	var order []meshEdge
	for _, f := range m.Faces {
		for i := range f {
			a, b := f[i], f[(i+1)%len(f)]
			if a == b {
				continue
			}
			k := meshEdge{min(a, b), max(a, b)}
			if count[k] == 0 {
				order = append(order, meshEdge{a, b})
			}
			count[k]++
		}
	}
	var out [][2]int
	for _, e := range order {
		if count[meshEdge{min(e.a, e.b), max(e.a, e.b)}] == 1 {
			out = append(out, [2]int{e.a, e.b})
		}
	}
	return out
}

// NormalizeMesh returns the boundary loops of m as straight polylines. A
// closed loop repeats its first vertex at the end.
func NormalizeMesh(m Mesh) [][]vec.Vec2 {
	edges := m.NakedEdges()
	next := make(map[int][]int)
	for _, e := range edges {
		next[e[0]] = append(next[e[0]], e[1])
	}
	used := make(map[[2]int]bool)
	var out [][]vec.Vec2
	for _, e := range edges {
		if used[e] || !validIndex(m, e[0]) || !validIndex(m, e[1]) {
			continue
		}
		used[e] = true
		start := e[0]
		loop := []vec.Vec2{m.Vertices[e[0]].XY(), m.Vertices[e[1]].XY()}
		cur := e[1]
		for cur != start {
			advanced := false
			for _, n := range next[cur] {
				k := [2]int{cur, n}
				if used[k] || !validIndex(m, n) {
					continue
				}
				used[k] = true
				loop = append(loop, m.Vertices[n].XY())
				cur = n
				advanced = true
				break
			}
			if !advanced {
				break
			}
		}
		out = append(out, loop)
	}
	return out
}

func validIndex(m Mesh, i int) bool { return i >= 0 && i < len(m.Vertices) }

// bezierPath appends each control point list as a sub-path of cubic segments.
func bezierPath(p *Outline, polys [][]vec.Vec2, closed bool) *Outline {
	for _, pts := range polys {
		if len(pts) < 4 {
			continue
		}
		p = p.MoveTo(pts[0])
		for i := 1; i+2 < len(pts); i += 3 {
			p = p.CubeTo(pts[i], pts[i+1], pts[i+2])
		}
		if closed {
			p = p.Close()
		}
	}
	return p
}

// polylinePath appends each point list as a sub-path of straight segments.
func polylinePath(p *Outline, polys [][]vec.Vec2, closed bool) *Outline {
	for _, pts := range polys {
		if len(pts) < 2 {
			continue
		}
		p = p.MoveTo(pts[0])
		for _, q := range pts[1:] {
			p = p.LineTo(q)
		}
		if closed {
			p = p.Close()
		}
	}
	return p
}

// ToPath converts normalized primitives into a path. Bezier lists are read
// as cubic control points, other lists as polyline vertices.
func ToPath(polys [][]vec.Vec2, bezier, closed bool) *Outline {
	if bezier {
		return bezierPath(&Outline{}, polys, closed)
	}
	return polylinePath(&Outline{}, polys, closed)
}
