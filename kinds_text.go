package pagedraw

import (
	"strings"

	"seehuhn.de/go/geom/vec"
)

// TextPointGeometry is the payload of KindTextPoint.
type TextPointGeometry struct {
	Anchor Point3
	Text   string
}

func (g TextPointGeometry) Kind() ShapeKind     { return KindTextPoint }
func (g TextPointGeometry) clone() Geometry     { return g }
func (g TextPointGeometry) bounds() BoundingBox { return boxOf(g.Anchor) }

func (g TextPointGeometry) transform(t Transform) Geometry {
	return TextPointGeometry{Anchor: t.Apply(g.Anchor), Text: g.Text}
}

func (g TextPointGeometry) render(rc *renderContext, s Shape) error {
	pl := s.boundary.Plane
	pl.Origin = g.Anchor
	if len(s.fragments) > 0 {
		return rc.fragmentLines(pl, s.fragments, s.font, s.scale)
	}
	lh := s.font.lineHeight() * s.scale
	for i, line := range strings.Split(g.Text, "\n") {
		if line == "" {
			continue
		}
		u, err := rc.anchorOffset(line, s.font, s.scale)
		if err != nil {
			return err
		}
		if err := rc.drawLine(pl, u, -float64(i)*lh, line, s.font, s.scale); err != nil {
			return err
		}
	}
	return nil
}

// anchorOffset returns where a line starts relative to its anchor.
func (rc *renderContext) anchorOffset(text string, f Font, scale float64) (float64, error) {
	switch f.Justification {
	case JustifyCenter, JustifyRight:
		w, err := rc.measure(text, scaledFont(f, scale))
		if err != nil {
			return 0, err
		}
		if f.Justification == JustifyCenter {
			return -w / 2, nil
		}
		return -w, nil
	}
	return 0, nil
}

// TextBoxGeometry is the payload of KindTextBox. The text is wrapped to
// the width of the shape boundary.
type TextBoxGeometry struct {
	Text string
}

func (g TextBoxGeometry) Kind() ShapeKind              { return KindTextBox }
func (g TextBoxGeometry) clone() Geometry              { return g }
func (g TextBoxGeometry) bounds() BoundingBox          { return BoundingBox{} }
func (g TextBoxGeometry) transform(Transform) Geometry { return g }

func (g TextBoxGeometry) render(rc *renderContext, s Shape) error {
	if s.boundary.IsValid() {
		rc.outline(rectPath(s.boundary), s, true, false)
	}
	if len(s.fragments) > 0 {
		return rc.fragmentBox(s.boundary, s.fragments, s.font, s.scale)
	}
	return rc.textBox(s.boundary, g.Text, s.font, s.scale)
}

// scaledFont returns f with its size multiplied by scale.
func scaledFont(f Font, scale float64) Font {
	f.Size *= scale
	return f
}

// drawLine draws text with its baseline starting at (u, v) in pl and adds
// the underline or strikeout stroke of the font style.
func (rc *renderContext) drawLine(pl Plane, u, v float64, text string, f Font, scale float64) error {
	rc.surface.DrawText(text, pl.PointAt(u, v).XY(), f, scale)
	if f.Style != FontUnderline && f.Style != FontStrikeout {
		return nil
	}
	w, err := rc.measure(text, scaledFont(f, scale))
	if err != nil {
		return err
	}
	dv := -0.12 * f.Size * scale
	if f.Style == FontStrikeout {
		dv = 0.3 * f.Size * scale
	}
	p := ToPath([][]vec.Vec2{{pl.PointAt(u, v+dv).XY(), pl.PointAt(u+w, v+dv).XY()}}, false, false)
	rc.surface.StrokePath(p, Graphic{Stroke: f.Color, Weight: max(f.Size/15, 0.5)}, scale)
	return nil
}

// textBox wraps text into b with BreakLines and draws the lines top down.
func (rc *renderContext) textBox(b Rectangle, text string, f Font, scale float64) error {
	sf := scaledFont(f, scale)
	lines, err := BreakLines(text, sf, b.Width(), rc.opts.Measurer)
	if err != nil {
		return err
	}
	lh := sf.lineHeight()
	v := b.Y.Max() - sf.Size
	for i, line := range lines {
		if line == " " {
			v -= lh + sf.ParagraphSpacing
			continue
		}
		last := i == len(lines)-1 || lines[i+1] == " "
		if err := rc.justifyLine(b, v, strings.TrimSuffix(line, " "), f, scale, last); err != nil {
			return err
		}
		v -= lh
	}
	return nil
}

// justifyLine draws one wrapped line of a box. The last line of a
// paragraph is never stretched.
func (rc *renderContext) justifyLine(b Rectangle, v float64, text string, f Font, scale float64, last bool) error {
	sf := scaledFont(f, scale)
	left, width := b.X.Min(), b.Width()
	if f.Justification == JustifyFull && !last {
		words := strings.Fields(text)
		if len(words) > 1 {
			widths := make([]float64, len(words))
			var total float64
			for i, w := range words {
				ww, err := rc.measure(w, sf)
				if err != nil {
					return err
				}
				widths[i] = ww
				total += ww
			}
			gap := (width - total) / float64(len(words)-1)
			u := left
			for i, w := range words {
				if err := rc.drawLine(b.Plane, u, v, w, f, scale); err != nil {
					return err
				}
				u += widths[i] + gap
			}
			return nil
		}
	}

	u := left
	if f.Justification == JustifyCenter || f.Justification == JustifyRight {
		w, err := rc.measure(text, sf)
		if err != nil {
			return err
		}
		if f.Justification == JustifyCenter {
			u += (width - w) / 2
		} else {
			u += width - w
		}
	}
	return rc.drawLine(b.Plane, u, v, text, f, scale)
}

// word is a measured piece of styled text.
type word struct {
	text  string
	font  Font
	width float64
	space float64
}

// fragmentWords splits fr into measured words. Segment fonts override base.
func (rc *renderContext) fragmentWords(fr Fragment, base Font, scale float64) ([]word, error) {
	var out []word
	for _, seg := range fr.Segments {
		f := seg.Font.Merge(base)
		sf := scaledFont(f, scale)
		space, err := rc.measure(" ", sf)
		if err != nil {
			return nil, err
		}
		for _, w := range strings.Fields(seg.Text) {
			ww, err := rc.measure(w, sf)
			if err != nil {
				return nil, err
			}
			out = append(out, word{text: w, font: f, width: ww, space: space})
		}
	}
	return out, nil
}

// fragmentBox lays out each fragment as a paragraph wrapped to b.
func (rc *renderContext) fragmentBox(b Rectangle, frs []Fragment, base Font, scale float64) error {
	width := b.Width()
	top := b.Y.Max()
	for _, fr := range frs {
		words, err := rc.fragmentWords(fr, base, scale)
		if err != nil {
			return err
		}
		for len(words) > 0 {
			n, lineW := 1, words[0].width
			for n < len(words) && lineW+words[n-1].space+words[n].width <= width {
				lineW += words[n-1].space + words[n].width
				n++
			}
			var size, lh float64
			for _, w := range words[:n] {
				size = max(size, w.font.Size*scale)
				lh = max(lh, w.font.lineHeight()*scale)
			}
			last := n == len(words)
			if err := rc.drawWords(b.Plane, b.X.Min(), top-size, width, lineW, words[:n], base.Justification, last, scale); err != nil {
				return err
			}
			top -= lh
			words = words[n:]
		}
		top -= base.ParagraphSpacing * scale
	}
	return nil
}

// drawWords draws one line of measured words starting at (left, v).
func (rc *renderContext) drawWords(pl Plane, left, v, width, lineW float64, words []word, j Justification, last bool, scale float64) error {
	u, extra := left, 0.0
	switch j {
	case JustifyCenter:
		u += (width - lineW) / 2
	case JustifyRight:
		u += width - lineW
	case JustifyFull:
		if !last && len(words) > 1 {
			extra = (width - lineW) / float64(len(words)-1)
		}
	}
	for _, w := range words {
		if err := rc.drawLine(pl, u, v, w.text, w.font, scale); err != nil {
			return err
		}
		u += w.width + w.space + extra
	}
	return nil
}

// fragmentLines draws each fragment on its own line from the plane origin
// downwards, segments side by side.
func (rc *renderContext) fragmentLines(pl Plane, frs []Fragment, base Font, scale float64) error {
	var v float64
	for _, fr := range frs {
		var u, lh float64
		for _, seg := range fr.Segments {
			f := seg.Font.Merge(base)
			lh = max(lh, f.lineHeight()*scale)
			if seg.Text == "" {
				continue
			}
			if err := rc.drawLine(pl, u, v, seg.Text, f, scale); err != nil {
				return err
			}
			w, err := rc.measure(seg.Text, scaledFont(f, scale))
			if err != nil {
				return err
			}
			u += w
		}
		v -= lh
	}
	return nil
}

// CommentGeometry is the payload of KindComment.
type CommentGeometry struct {
	Anchor Point3
	Author string
	Text   string
}

func (g CommentGeometry) Kind() ShapeKind     { return KindComment }
func (g CommentGeometry) clone() Geometry     { return g }
func (g CommentGeometry) bounds() BoundingBox { return boxOf(g.Anchor) }

func (g CommentGeometry) transform(t Transform) Geometry {
	return CommentGeometry{Anchor: t.Apply(g.Anchor), Author: g.Author, Text: g.Text}
}

// commentMarker is the side of the note square in points.
const commentMarker = 8

func (g CommentGeometry) render(rc *renderContext, s Shape) error {
	if !rc.opts.ShowComments {
		return nil
	}
	pl := s.boundary.Plane
	pl.Origin = g.Anchor
	m := commentMarker * s.scale
	marker := Rectangle{Plane: pl, X: Interval{0, m}, Y: Interval{0, m}}
	p := rectPath(marker)
	rc.surface.FillPath(p, ColorYellow, false)
	rc.surface.StrokePath(p, Graphic{Stroke: ColorBlack, Weight: 0.5}, s.scale)

	text := g.Text
	if g.Author != "" {
		text = g.Author + ": " + text
	}
	f := s.font.SetSize(commentMarker)
	return rc.drawLine(pl, 1.5*m, 0, text, f, s.scale)
}

// PreviewTextGeometry is the payload of KindPreviewText.
type PreviewTextGeometry struct {
	Text string
}

func (g PreviewTextGeometry) Kind() ShapeKind              { return KindPreviewText }
func (g PreviewTextGeometry) clone() Geometry              { return g }
func (g PreviewTextGeometry) bounds() BoundingBox          { return BoundingBox{} }
func (g PreviewTextGeometry) transform(Transform) Geometry { return g }

func (g PreviewTextGeometry) render(rc *renderContext, s Shape) error {
	if !rc.opts.Preview {
		return nil
	}
	return rc.textBox(s.boundary, g.Text, s.font, s.scale)
}

// PreviewBoundaryGeometry is the payload of KindPreviewBoundary. It has no
// data of its own; the boundary is drawn.
type PreviewBoundaryGeometry struct{}

func (g PreviewBoundaryGeometry) Kind() ShapeKind              { return KindPreviewBoundary }
func (g PreviewBoundaryGeometry) clone() Geometry              { return g }
func (g PreviewBoundaryGeometry) bounds() BoundingBox          { return BoundingBox{} }
func (g PreviewBoundaryGeometry) transform(Transform) Geometry { return g }

func (g PreviewBoundaryGeometry) render(rc *renderContext, s Shape) error {
	if !rc.opts.Preview || !s.boundary.IsValid() {
		return nil
	}
	rc.outline(rectPath(s.boundary), s, true, false)
	return nil
}
