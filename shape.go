package pagedraw

import (
	"fmt"
	"sync/atomic"
)

// ShapeKind identifies the geometry payload of a Shape.
type ShapeKind int

const (
	KindLine ShapeKind = iota
	KindPolyline
	KindBezier
	KindCircle
	KindEllipse
	KindArc
	KindBrep
	KindMesh
	KindTextPoint
	KindTextBox
	KindImageFrame
	KindImagePoint
	KindChart
	KindLink
	KindComment
	KindPreviewText
	KindPreviewBoundary
)

var kindNames = [...]string{
	KindLine:            "line",
	KindPolyline:        "polyline",
	KindBezier:          "bezier",
	KindCircle:          "circle",
	KindEllipse:         "ellipse",
	KindArc:             "arc",
	KindBrep:            "brep",
	KindMesh:            "mesh",
	KindTextPoint:       "text-point",
	KindTextBox:         "text-box",
	KindImageFrame:      "image-frame",
	KindImagePoint:      "image-point",
	KindChart:           "chart",
	KindLink:            "link",
	KindComment:         "comment",
	KindPreviewText:     "preview-text",
	KindPreviewBoundary: "preview-boundary",
}

func (k ShapeKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// Geometry is the kind-specific payload of a Shape. The set of
// implementations is closed; each one carries only the fields its kind
// needs and keeps its transform, bounds and render behavior together.
type Geometry interface {
	Kind() ShapeKind
	clone() Geometry
	transform(t Transform) Geometry
	bounds() BoundingBox
	render(rc *renderContext, s Shape) error
}

var lastShapeID atomic.Uint64

// Shape is one drawable element: a geometry payload plus style.
//
// Shapes are values. The setters and Transform return modified copies and
// the getters return deep copies, so a Shape can be shared freely.
type Shape struct {
	id        uint64
	boundary  Rectangle
	geometry  Geometry
	graphic   Graphic
	font      Font
	fragments []Fragment
	scale     float64
}

func newShape(boundary Rectangle, g Geometry, style Graphic) Shape {
	return Shape{
		id:       lastShapeID.Add(1),
		boundary: boundary,
		geometry: g,
		graphic:  style,
		font:     NewFont(),
		scale:    1,
	}
}

// GetID returns the identity of the shape. Copies keep the id.
func (s Shape) GetID() uint64 { return s.id }

// GetKind returns the kind of the geometry payload.
func (s Shape) GetKind() ShapeKind {
	if s.geometry == nil {
		return -1
	}
	return s.geometry.Kind()
}

// GetBoundary returns the boundary rectangle. Its plane is the local frame
// of the shape.
func (s Shape) GetBoundary() Rectangle { return s.boundary }

// GetGeometry returns a copy of the payload.
func (s Shape) GetGeometry() Geometry {
	if s.geometry == nil {
		return nil
	}
	return s.geometry.clone()
}

// GetGraphic returns a copy of the stroke and fill style.
func (s Shape) GetGraphic() Graphic { return s.graphic.Clone() }

// GetFont returns the font.
func (s Shape) GetFont() Font { return s.font }

// GetFragments returns a copy of the styled text runs.
func (s Shape) GetFragments() []Fragment { return cloneFragments(s.fragments) }

// GetScale returns the multiplier applied to font sizes and stroke weights.
func (s Shape) GetScale() float64 { return s.scale }

// SetBoundary returns a copy with the given boundary.
func (s Shape) SetBoundary(r Rectangle) Shape {
	s = s.clone()
	s.boundary = r
	return s
}

// SetGraphic returns a copy with the given style.
func (s Shape) SetGraphic(g Graphic) Shape {
	s = s.clone()
	s.graphic = g.Clone()
	return s
}

// SetFont returns a copy with the given font.
func (s Shape) SetFont(f Font) Shape {
	s = s.clone()
	s.font = f
	return s
}

// SetFragments returns a copy with the given styled runs. Text kinds draw
// fragments instead of their plain text when present.
func (s Shape) SetFragments(frs ...Fragment) Shape {
	s = s.clone()
	s.fragments = cloneFragments(frs)
	return s
}

// SetScale returns a copy with the given font and stroke multiplier.
func (s Shape) SetScale(f float64) Shape {
	s = s.clone()
	if f > 0 {
		s.scale = f
	}
	return s
}

func (s Shape) clone() Shape {
	out := s
	if s.geometry != nil {
		out.geometry = s.geometry.clone()
	}
	out.graphic = s.graphic.Clone()
	out.fragments = cloneFragments(s.fragments)
	return out
}

// BoundingBox returns the world-aligned box of the boundary and the payload.
func (s Shape) BoundingBox() BoundingBox {
	b := s.boundary.BoundingBox()
	if s.geometry != nil {
		b = b.Union(s.geometry.bounds())
	}
	return b
}

// Transform returns a copy of s with the boundary and the payload mapped
// by t. The receiver is left untouched.
func (s Shape) Transform(t Transform) Shape {
	out := s.clone()
	out.boundary = s.boundary.Transform(t)
	if s.geometry != nil {
		out.geometry = s.geometry.transform(t)
	}
	return out
}

// boundaryOf returns a world-aligned rectangle around b.
func boundaryOf(b BoundingBox) Rectangle {
	if !b.IsValid() {
		return Rectangle{Plane: WorldXY}
	}
	pl := WorldXY
	pl.Origin.Z = b.Min.Z
	return Rectangle{
		Plane: pl,
		X:     Interval{b.Min.X, b.Max.X},
		Y:     Interval{b.Min.Y, b.Max.Y},
	}
}

// pointBoundary returns an empty rectangle located at p.
func pointBoundary(p Point3) Rectangle {
	pl := WorldXY
	pl.Origin = p
	return Rectangle{Plane: pl}
}

// textGraphic is the default style of text, image and link kinds: nothing
// is stroked or filled unless asked for.
func textGraphic() Graphic {
	return Graphic{Fill: ColorTransparent, Stroke: ColorTransparent}
}

// NewLine creates a straight segment.
func NewLine(from, to Point3) Shape {
	g := LineGeometry{Line: Line{From: from, To: to}}
	return newShape(boundaryOf(g.bounds()), g, NewGraphic())
}

// NewPolyline creates a polyline through pts. A closed polyline is
// filled when the style has a fill color.
func NewPolyline(pts []Point3, closed bool) Shape {
	g := PolylineGeometry{Points: append([]Point3(nil), pts...), Closed: closed}
	return newShape(boundaryOf(g.bounds()), g, NewGraphic())
}

// NewCurve creates a general Bezier curve shape.
func NewCurve(c Curve) Shape {
	g := BezierGeometry{Curve: c.Clone()}
	return newShape(boundaryOf(g.bounds()), g, NewGraphic())
}

// NewCircle creates a circle. The boundary is the square around the circle
// in the circle plane.
func NewCircle(c Circle) Shape {
	r := c.Radius
	b := Rectangle{Plane: c.Plane, X: Interval{-r, r}, Y: Interval{-r, r}}
	return newShape(b, CircleGeometry{Circle: c}, NewGraphic())
}

// NewEllipse creates an ellipse.
func NewEllipse(e Ellipse) Shape {
	b := Rectangle{Plane: e.Plane, X: Interval{-e.Radius1, e.Radius1}, Y: Interval{-e.Radius2, e.Radius2}}
	return newShape(b, EllipseGeometry{Ellipse: e}, NewGraphic())
}

// NewArc creates a circular arc.
func NewArc(a Arc) Shape {
	g := ArcGeometry{Arc: a}
	return newShape(boundaryOf(g.bounds()), g, NewGraphic())
}

// NewBrep creates a solid drawn by its naked edges.
func NewBrep(b Brep) Shape {
	g := BrepGeometry{Brep: b.Clone()}
	return newShape(boundaryOf(g.bounds()), g, NewGraphic())
}

// NewMesh creates a mesh drawn by its boundary loops.
func NewMesh(m Mesh) Shape {
	g := MeshGeometry{Mesh: m.Clone()}
	return newShape(boundaryOf(g.bounds()), g, NewGraphic())
}

// NewTextPoint creates text whose first baseline starts at anchor.
func NewTextPoint(anchor Point3, text string) Shape {
	return newShape(pointBoundary(anchor), TextPointGeometry{Anchor: anchor, Text: text}, textGraphic())
}

// NewTextBox creates text wrapped inside boundary.
func NewTextBox(boundary Rectangle, text string) Shape {
	return newShape(boundary, TextBoxGeometry{Text: text}, textGraphic())
}

// NewImageFrame creates an image stretched over boundary.
func NewImageFrame(boundary Rectangle, src ImageSource) Shape {
	return newShape(boundary, ImageFrameGeometry{Image: src.clone()}, textGraphic())
}

// NewImagePoint creates an image at its natural size with its top-left
// corner at anchor.
func NewImagePoint(anchor Point3, src ImageSource) Shape {
	return newShape(pointBoundary(anchor), ImagePointGeometry{Anchor: anchor, Image: src.clone()}, textGraphic())
}

// NewChart creates a chart laid out inside boundary.
func NewChart(boundary Rectangle, kind ChartKind, sets ...DataSet) Shape {
	g := ChartGeometry{Chart: kind, DataSets: cloneDataSets(sets)}
	return newShape(boundary, g, NewGraphic().SetStroke(ColorTransparent))
}

// NewLink creates a clickable region.
func NewLink(boundary Rectangle, target string, kind LinkKind) Shape {
	return newShape(boundary, LinkGeometry{Target: target, TargetKind: kind}, textGraphic())
}

// NewComment creates an editor note. Comments are drawn only when
// RenderOptions.ShowComments is set.
func NewComment(anchor Point3, author, text string) Shape {
	return newShape(pointBoundary(anchor), CommentGeometry{Anchor: anchor, Author: author, Text: text}, textGraphic())
}

// NewPreviewText creates editor preview text. Preview kinds are drawn only
// when RenderOptions.Preview is set.
func NewPreviewText(boundary Rectangle, text string) Shape {
	return newShape(boundary, PreviewTextGeometry{Text: text}, textGraphic())
}

// NewPreviewBoundary creates an editor preview frame.
func NewPreviewBoundary(boundary Rectangle) Shape {
	g := NewGraphic().SetStroke(NewColor("808080")).SetDash(4, 2)
	return newShape(boundary, PreviewBoundaryGeometry{}, g)
}
