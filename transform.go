package pagedraw

// DocumentFrame returns the frame that page coordinates are mapped onto:
// the origin sits half a page height down from the top edge and the Y
// axis points up the page, against the downward document Y axis.
func DocumentFrame(height float64) Plane {
	return Plane{
		Origin: Point3{Y: height / 2},
		XAxis:  XAxis,
		YAxis:  Vector3{Y: -1},
		ZAxis:  Vector3{Z: -1},
	}
}

// AlignTransform maps the authoring frame of a page with the given height
// into document space.
func AlignTransform(frame Plane, height float64) Transform {
	return PlaneToPlane(frame, DocumentFrame(height))
}

// AlignContent maps a shape authored in the page frame into document
// space, in points with y growing downwards from the top edge. Anchors,
// boundaries and geometry payloads all follow the same transform.
func AlignContent(s Shape, p *Page) Shape {
	return s.Transform(AlignTransform(p.frame, p.height))
}

// FitTransform returns the transform used by ResizeDrawing together with
// its scale factor. The source box is scaled uniformly about its center to
// fit target, optionally mirrored across the plane through its center with
// the world Y axis as normal, and moved onto the target center. A source
// box without positive width and height is not scaled.
func FitTransform(src BoundingBox, target Rectangle, mirror bool) (Transform, float64) {
	f := 1.0
	if sw, sh := src.Width(), src.Height(); sw > epsilon && sh > epsilon {
		f = min(target.Width()/sw, target.Height()/sh)
	}
	c := src.Center()
	t := Scaling(c, f)
	if mirror {
		pl := Plane{Origin: c, XAxis: XAxis, YAxis: Vector3{Z: -1}, ZAxis: YAxis}
		t = t.Multiply(Mirror(pl))
	}
	t = Translation(target.Center().Sub(c)).Multiply(t)
	return t, f
}
