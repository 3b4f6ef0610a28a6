package pagedraw

import (
	"image"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Surface receives drawing operations in document space: points, with
// the origin at the top-left page corner and y growing downwards.
//
// The scale argument multiplies stroke weights, dash lengths and font
// sizes. It is the fit factor of a resized Drawing, or 1.
type Surface interface {
	StrokePath(p *Outline, g Graphic, scale float64)
	FillPath(p *Outline, c Color, evenOdd bool)
	// DrawText draws a single line with its baseline starting at at.
	DrawText(text string, at vec.Vec2, f Font, scale float64)
	DrawImage(img image.Image, r rect.Rect)
	AddLink(r rect.Rect, target string)
}

// LinkRegion is a clickable area recorded by a surface.
type LinkRegion struct {
	Rect   rect.Rect
	Target string
}

// OpKind names a recorded surface operation.
type OpKind int

const (
	OpStroke OpKind = iota
	OpFill
	OpText
	OpImage
	OpLink
)

// Op is one call recorded by a RecordingSurface.
type Op struct {
	Kind    OpKind
	Path    *Outline
	Graphic Graphic
	Color   Color
	EvenOdd bool
	Text    string
	At      vec.Vec2
	Font    Font
	Scale   float64
	Image   image.Image
	Rect    rect.Rect
	Target  string
}

// RecordingSurface stores the operations it receives. It is useful for
// previews that only need geometry, and for tests.
type RecordingSurface struct {
	Ops []Op
}

func (s *RecordingSurface) StrokePath(p *Outline, g Graphic, scale float64) {
	s.Ops = append(s.Ops, Op{Kind: OpStroke, Path: p, Graphic: g.Clone(), Scale: scale})
}

func (s *RecordingSurface) FillPath(p *Outline, c Color, evenOdd bool) {
	s.Ops = append(s.Ops, Op{Kind: OpFill, Path: p, Color: c, EvenOdd: evenOdd})
}

func (s *RecordingSurface) DrawText(text string, at vec.Vec2, f Font, scale float64) {
	s.Ops = append(s.Ops, Op{Kind: OpText, Text: text, At: at, Font: f, Scale: scale})
}

func (s *RecordingSurface) DrawImage(img image.Image, r rect.Rect) {
	s.Ops = append(s.Ops, Op{Kind: OpImage, Image: img, Rect: r})
}

func (s *RecordingSurface) AddLink(r rect.Rect, target string) {
	s.Ops = append(s.Ops, Op{Kind: OpLink, Rect: r, Target: target})
}

// Count returns the number of recorded operations of kind k.
func (s *RecordingSurface) Count(k OpKind) int {
	n := 0
	for _, op := range s.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Texts returns the text of all recorded text operations in order.
func (s *RecordingSurface) Texts() []string {
	var out []string
	for _, op := range s.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Reset discards the recorded operations.
func (s *RecordingSurface) Reset() { s.Ops = s.Ops[:0] }
