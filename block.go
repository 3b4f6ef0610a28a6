package pagedraw

import (
	"errors"
	"fmt"
)

// ErrBlockOverflow is returned when a block does not fit below the blocks
// already placed on a page.
var ErrBlockOverflow = errors.New("pagedraw: block does not fit on the page")

// Block is a layout unit that expands into shapes. Blocks are stacked top
// down by Page.AddBlocks.
type Block interface {
	// Height returns the vertical extent of the block at the given width.
	Height(width float64, m Measurer) (float64, error)
	// Shapes expands the block into r, whose plane is the page frame.
	Shapes(r Rectangle, m Measurer) ([]Shape, error)
}

// wrappedHeight returns the height BreakLines output takes when drawn by
// a text box: one line height per line, plus the paragraph spacing for
// every forced break, plus the descent of the last line.
func wrappedHeight(text string, f Font, width float64, m Measurer) (float64, error) {
	lines, err := BreakLines(text, f, width, m)
	if err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, nil
	}
	h := TextHeight(len(lines), f)
	for _, l := range lines {
		if l == " " {
			h += f.ParagraphSpacing
		}
	}
	return h + 0.25*f.Size, nil
}

// subRect returns the part of r between u0 and u1 horizontally and
// between the distances top and bottom below its upper edge.
func subRect(r Rectangle, u0, u1, top, bottom float64) Rectangle {
	ymax := r.Y.Max()
	return Rectangle{Plane: r.Plane, X: Interval{u0, u1}, Y: Interval{ymax - bottom, ymax - top}}
}

// TextBlock is a wrapped paragraph.
type TextBlock struct {
	Text    string
	Font    Font
	Graphic Graphic // frame and background; zero value draws none
}

func (b TextBlock) Height(width float64, m Measurer) (float64, error) {
	return wrappedHeight(b.Text, b.Font, width, m)
}

func (b TextBlock) Shapes(r Rectangle, m Measurer) ([]Shape, error) {
	s := NewTextBox(r, b.Text).SetFont(b.Font)
	if b.Graphic.strokes() || !b.Graphic.Fill.IsTransparent() {
		s = s.SetGraphic(b.Graphic)
	}
	return []Shape{s}, nil
}

// TableBlock is a grid of wrapped text cells. Each row is as tall as its
// tallest cell.
type TableBlock struct {
	Rows [][]string
	Font Font
	// Columns holds relative column widths. Nil splits the width evenly.
	Columns []float64
	Padding float64
	Grid    Graphic
	// Header sets the first row bold on HeaderFill.
	Header     bool
	HeaderFill Color
}

// NewTableBlock creates a table with a black one-point grid.
func NewTableBlock(rows [][]string) TableBlock {
	return TableBlock{
		Rows:       rows,
		Font:       NewFont(),
		Padding:    3,
		Grid:       NewGraphic(),
		HeaderFill: NewColor("FFE0E0E0"),
	}
}

func (b TableBlock) columnCount() int {
	n := len(b.Columns)
	for _, row := range b.Rows {
		n = max(n, len(row))
	}
	return n
}

// columnEdges returns the n+1 horizontal cell edges across width.
func (b TableBlock) columnEdges(width float64) []float64 {
	n := b.columnCount()
	weights := make([]float64, n)
	var total float64
	for i := range weights {
		weights[i] = 1
		if i < len(b.Columns) && b.Columns[i] > 0 {
			weights[i] = b.Columns[i]
		}
		total += weights[i]
	}
	edges := make([]float64, n+1)
	for i, w := range weights {
		edges[i+1] = edges[i] + w/total*width
	}
	return edges
}

func (b TableBlock) cellFont(row int) Font {
	if b.Header && row == 0 {
		return b.Font.SetStyle(FontBold)
	}
	return b.Font
}

// RowHeights returns the height of every row at the given width.
func (b TableBlock) RowHeights(width float64, m Measurer) ([]float64, error) {
	edges := b.columnEdges(width)
	out := make([]float64, len(b.Rows))
	for i, row := range b.Rows {
		f := b.cellFont(i)
		h := f.lineHeight() + 0.25*f.Size
		for j, text := range row {
			ch, err := wrappedHeight(text, f, edges[j+1]-edges[j]-2*b.Padding, m)
			if err != nil {
				return nil, fmt.Errorf("cell %d,%d: %w", i, j, err)
			}
			h = max(h, ch)
		}
		out[i] = h + 2*b.Padding
	}
	return out, nil
}

func (b TableBlock) Height(width float64, m Measurer) (float64, error) {
	heights, err := b.RowHeights(width, m)
	if err != nil {
		return 0, err
	}
	var h float64
	for _, rh := range heights {
		h += rh
	}
	return h, nil
}

func (b TableBlock) Shapes(r Rectangle, m Measurer) ([]Shape, error) {
	heights, err := b.RowHeights(r.Width(), m)
	if err != nil {
		return nil, err
	}
	edges := b.columnEdges(r.Width())
	x0 := r.X.Min()

	var out []Shape
	var top float64
	for i, row := range b.Rows {
		bottom := top + heights[i]
		g := b.Grid
		if b.Header && i == 0 {
			g = g.SetFill(b.HeaderFill)
		}
		for j := range len(edges) - 1 {
			cell := subRect(r, x0+edges[j], x0+edges[j+1], top, bottom)
			pts := make([]Point3, 4)
			for k := range pts {
				pts[k] = cell.Corner(k)
			}
			out = append(out, NewPolyline(pts, true).SetGraphic(g))

			if j >= len(row) || row[j] == "" {
				continue
			}
			inner := subRect(r, x0+edges[j]+b.Padding, x0+edges[j+1]-b.Padding, top+b.Padding, bottom-b.Padding)
			out = append(out, NewTextBox(inner, row[j]).SetFont(b.cellFont(i)))
		}
		top = bottom
	}
	return out, nil
}

// ListBlock is a bulleted list. Item text wraps under the indent.
type ListBlock struct {
	Items  []string
	Font   Font
	Bullet string
	Indent float64
}

// NewListBlock creates a list with round bullets.
func NewListBlock(items ...string) ListBlock {
	return ListBlock{Items: items, Font: NewFont(), Bullet: "•", Indent: 14}
}

func (b ListBlock) itemHeights(width float64, m Measurer) ([]float64, error) {
	out := make([]float64, len(b.Items))
	for i, item := range b.Items {
		h, err := wrappedHeight(item, b.Font, width-b.Indent, m)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = h
	}
	return out, nil
}

func (b ListBlock) Height(width float64, m Measurer) (float64, error) {
	heights, err := b.itemHeights(width, m)
	if err != nil {
		return 0, err
	}
	var h float64
	for _, ih := range heights {
		h += ih
	}
	return h, nil
}

func (b ListBlock) Shapes(r Rectangle, m Measurer) ([]Shape, error) {
	heights, err := b.itemHeights(r.Width(), m)
	if err != nil {
		return nil, err
	}
	x0, x1 := r.X.Min(), r.X.Max()
	var out []Shape
	var top float64
	for i, item := range b.Items {
		bottom := top + heights[i]
		baseline := r.Plane.PointAt(x0, r.Y.Max()-top-b.Font.Size)
		out = append(out,
			NewTextPoint(baseline, b.Bullet).SetFont(b.Font),
			NewTextBox(subRect(r, x0+b.Indent, x1, top, bottom), item).SetFont(b.Font),
		)
		top = bottom
	}
	return out, nil
}

// ChartBlock is a chart of fixed height spanning the flow width.
type ChartBlock struct {
	Kind     ChartKind
	DataSets []DataSet
	Size     float64
}

func (b ChartBlock) Height(float64, Measurer) (float64, error) { return b.Size, nil }

func (b ChartBlock) Shapes(r Rectangle, _ Measurer) ([]Shape, error) {
	return []Shape{NewChart(r, b.Kind, b.DataSets...)}, nil
}

// ImageBlock is an image of fixed height. A zero Width spans the flow
// width; otherwise the image is centered.
type ImageBlock struct {
	Source ImageSource
	Width  float64
	Size   float64
}

func (b ImageBlock) Height(float64, Measurer) (float64, error) { return b.Size, nil }

func (b ImageBlock) Shapes(r Rectangle, _ Measurer) ([]Shape, error) {
	if b.Width > 0 && b.Width < r.Width() {
		mid := r.X.Mid()
		r.X = Interval{mid - b.Width/2, mid + b.Width/2}
	}
	return []Shape{NewImageFrame(r, b.Source)}, nil
}

// AddBlocks stacks blocks top down inside the page margin, separated by
// gap, and adds their shapes. A nil measurer selects a FaceMeasurer over
// the embedded fonts. The aligned shapes are returned.
func (p *Page) AddBlocks(m Measurer, margin, gap float64, blocks ...Block) ([]Shape, error) {
	if m == nil {
		m = NewFaceMeasurer(nil)
	}
	page := p.Boundary()
	x0, x1 := page.X.Min()+margin, page.X.Max()-margin
	width := x1 - x0
	top := page.Y.Max() - margin
	floor := page.Y.Min() + margin

	var out []Shape
	for i, b := range blocks {
		h, err := b.Height(width, m)
		if err != nil {
			return out, fmt.Errorf("block %d: %w", i, err)
		}
		if top-h < floor-epsilon {
			return out, fmt.Errorf("%w: block %d needs %gpt, %gpt left", ErrBlockOverflow, i, h, top-floor)
		}
		r := Rectangle{Plane: page.Plane, X: Interval{x0, x1}, Y: Interval{top - h, top}}
		shapes, err := b.Shapes(r, m)
		if err != nil {
			return out, fmt.Errorf("block %d: %w", i, err)
		}
		for _, s := range shapes {
			out = append(out, p.AddShape(s))
		}
		top -= h + gap
	}
	Logger().Debug("pagedraw: blocks placed", "blocks", len(blocks), "shapes", len(out))
	return out, nil
}
