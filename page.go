package pagedraw

import "errors"

// Page is one document page. Shapes are authored in the page frame, a
// plane with the page's left edge at u = 0 and its vertical middle at
// v = 0, and are aligned into document space when added.
type Page struct {
	name       string
	frame      Plane
	width      float64
	height     float64
	background *Color
	shapes     []Shape
}

// NewPage creates an empty page of the given size in points, authored in
// the world XY plane.
func NewPage(width, height float64) *Page {
	return &Page{frame: WorldXY, width: width, height: height}
}

// newPageFromLayout creates an empty page sized by l.
func newPageFromLayout(l PageLayout) *Page {
	return NewPage(l.Width, l.Height)
}

// GetName returns the page name.
func (p *Page) GetName() string { return p.name }

// SetName sets the page name.
func (p *Page) SetName(name string) *Page {
	p.name = name
	return p
}

// GetFrame returns the authoring frame.
func (p *Page) GetFrame() Plane { return p.frame }

// SetFrame sets the authoring frame used by later AddShape calls. Shapes
// already on the page keep their placement.
func (p *Page) SetFrame(pl Plane) *Page {
	p.frame = pl
	return p
}

// GetWidth returns the page width in points.
func (p *Page) GetWidth() float64 { return p.width }

// GetHeight returns the page height in points.
func (p *Page) GetHeight() float64 { return p.height }

// GetBackground returns the page color, or nil when unset.
func (p *Page) GetBackground() *Color { return p.background }

// SetBackground sets the page color used by raster output.
func (p *Page) SetBackground(c Color) *Page {
	p.background = &c
	return p
}

// Boundary returns the page rectangle in the authoring frame.
func (p *Page) Boundary() Rectangle {
	return Rectangle{
		Plane: p.frame,
		X:     Interval{0, p.width},
		Y:     Interval{-p.height / 2, p.height / 2},
	}
}

// AddShape aligns s into document space and appends it. The aligned copy
// is returned.
func (p *Page) AddShape(s Shape) Shape {
	a := AlignContent(s, p)
	p.shapes = append(p.shapes, a)
	return a
}

// AddShapes adds every shape in order.
func (p *Page) AddShapes(shapes ...Shape) *Page {
	for _, s := range shapes {
		p.AddShape(s)
	}
	return p
}

// AddDrawing fits d into target, given in the authoring frame, and adds
// the resulting shapes. Both spaces share the y-up convention, so the
// drawing is not mirrored.
func (p *Page) AddDrawing(d *Drawing, target Rectangle) []Shape {
	shapes := d.ResizeDrawing(target, false)
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = p.AddShape(s)
	}
	return out
}

// GetShapes returns copies of the aligned shapes.
func (p *Page) GetShapes() []Shape {
	out := make([]Shape, len(p.shapes))
	for i, s := range p.shapes {
		out[i] = s.clone()
	}
	return out
}

// GetShapeCount returns the number of shapes on the page.
func (p *Page) GetShapeCount() int {
	return len(p.shapes)
}

// RemoveShape removes a shape by index.
func (p *Page) RemoveShape(index int) error {
	if index < 0 || index >= len(p.shapes) {
		return errOutOfRange
	}
	p.shapes = append(p.shapes[:index], p.shapes[index+1:]...)
	return nil
}

// Render draws all shapes in order onto surface.
func (p *Page) Render(surface Surface, opts *RenderOptions) error {
	return renderShapes(newRenderContext(surface, opts), p.shapes)
}

var errOutOfRange = errors.New("index out of range")
