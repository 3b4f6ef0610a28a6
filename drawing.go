package pagedraw

// Drawing is a named group of shapes transformed as one rigid unit.
type Drawing struct {
	Name   string
	Shapes []Shape
}

// NewDrawing creates a drawing holding copies of shapes.
func NewDrawing(name string, shapes ...Shape) *Drawing {
	d := &Drawing{Name: name}
	d.Add(shapes...)
	return d
}

// Add appends copies of shapes.
func (d *Drawing) Add(shapes ...Shape) *Drawing {
	for _, s := range shapes {
		d.Shapes = append(d.Shapes, s.clone())
	}
	return d
}

// GetShapeCount returns the number of shapes in the drawing.
func (d *Drawing) GetShapeCount() int {
	return len(d.Shapes)
}

// RemoveShape removes a shape by index.
func (d *Drawing) RemoveShape(index int) error {
	if index < 0 || index >= len(d.Shapes) {
		return errOutOfRange
	}
	d.Shapes = append(d.Shapes[:index], d.Shapes[index+1:]...)
	return nil
}

// BoundingBox returns the union of the member bounding boxes.
func (d *Drawing) BoundingBox() BoundingBox {
	var b BoundingBox
	for _, s := range d.Shapes {
		b = b.Union(s.BoundingBox())
	}
	return b
}

// ResizeDrawing returns transformed copies of the shapes fitted into
// target (see FitTransform). The fit factor multiplies each shape scale so
// strokes and text follow the geometry. The drawing itself is unchanged.
// An empty drawing yields nil.
func (d *Drawing) ResizeDrawing(target Rectangle, mirror bool) []Shape {
	if len(d.Shapes) == 0 {
		Logger().Debug("pagedraw: empty drawing", "name", d.Name)
		return nil
	}
	src := d.BoundingBox()
	if src.Width() < epsilon || src.Height() < epsilon {
		Logger().Debug("pagedraw: drawing has a flat bounding box, not scaling", "name", d.Name)
	}
	t, f := FitTransform(src, target, mirror)
	out := make([]Shape, len(d.Shapes))
	for i, s := range d.Shapes {
		c := s.Transform(t)
		c.scale = s.scale * f
		out[i] = c
	}
	return out
}

// Render fits the drawing into target, given in document space, and draws
// it. The drawing is mirrored on the way, since drawings are authored with
// y pointing up.
func (d *Drawing) Render(surface Surface, target Rectangle, opts *RenderOptions) error {
	return d.render(newRenderContext(surface, opts), target)
}

func (d *Drawing) render(rc *renderContext, target Rectangle) error {
	return renderShapes(rc, d.ResizeDrawing(target, true))
}
