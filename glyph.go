package pagedraw

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/vec"
)

// TextPath returns the glyph outlines of text set in f at size points,
// with the baseline starting at at. Coordinates follow document space, y
// pointing down. The second result is the advance width.
func (fc *FontCache) TextPath(text string, at vec.Vec2, f Font, size float64) (*Outline, float64, error) {
	sf := fc.SFNT(f)
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(size*64 + 0.5)
	p := &Outline{}
	x := at.X
	var prev sfnt.GlyphIndex
	for _, r := range text {
		gi, err := sf.GlyphIndex(&buf, r)
		if err != nil {
			return nil, 0, fmt.Errorf("glyph %q: %w", r, err)
		}
		if prev != 0 && gi != 0 {
			if k, err := sf.Kern(&buf, prev, gi, ppem, font.HintingNone); err == nil {
				x += float64(k) / 64
			}
		}
		segs, err := sf.LoadGlyph(&buf, gi, ppem, nil)
		if err != nil && !errors.Is(err, sfnt.ErrColoredGlyph) {
			return nil, 0, fmt.Errorf("glyph %q: %w", r, err)
		}
		pt := func(q fixed.Point26_6) vec.Vec2 {
			return vec.Vec2{X: x + float64(q.X)/64, Y: at.Y + float64(q.Y)/64}
		}
		open := false
		for _, s := range segs {
			switch s.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					p.Close()
				}
				p.MoveTo(pt(s.Args[0]))
				open = true
			case sfnt.SegmentOpLineTo:
				p.LineTo(pt(s.Args[0]))
			case sfnt.SegmentOpQuadTo:
				p.QuadTo(pt(s.Args[0]), pt(s.Args[1]))
			case sfnt.SegmentOpCubeTo:
				p.CubeTo(pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2]))
			}
		}
		if open {
			p.Close()
		}
		adv, err := sf.GlyphAdvance(&buf, gi, ppem, font.HintingNone)
		if err != nil {
			return nil, 0, fmt.Errorf("advance %q: %w", r, err)
		}
		x += float64(adv) / 64
		prev = gi
	}
	return p, x - at.X, nil
}
