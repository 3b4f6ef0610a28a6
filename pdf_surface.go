package pagedraw

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"
)

// maxPDFImageSide bounds the cell grid an image is resampled to when it
// is drawn as vector cells.
const maxPDFImageSide = 96

// PDFSurface draws onto a PDF page. Text is emitted as filled glyph
// outlines, so no fonts are embedded. Links are collected and can be read
// back with Links.
type PDFSurface struct {
	page  *document.Page
	fonts *FontCache
	links []LinkRegion
	err   error
}

// NewPDFSurface wraps page. The page content is flipped so that document
// coordinates, y pointing down from the top edge, can be used directly.
func NewPDFSurface(page *document.Page, height float64, fonts *FontCache) *PDFSurface {
	if fonts == nil {
		fonts = NewEmbeddedFontCache()
	}
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, height})
	return &PDFSurface{page: page, fonts: fonts}
}

// Links returns the link regions recorded so far.
func (s *PDFSurface) Links() []LinkRegion { return s.links }

// Err returns the first error met while drawing text.
func (s *PDFSurface) Err() error { return s.err }

func pdfColor(c Color) color.Color {
	return color.DeviceRGB{float64(c.GetRed()) / 255, float64(c.GetGreen()) / 255, float64(c.GetBlue()) / 255}
}

// addPath writes p to the content stream. PDF has no quadratic
// operator, so quadratic segments are raised to cubics.
func (s *PDFSurface) addPath(p *Outline) {
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			s.page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			s.page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			s.page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			s.page.ClosePath()
		}
	}
}

func (s *PDFSurface) StrokePath(p *Outline, g Graphic, scale float64) {
	if !g.strokes() {
		return
	}
	s.page.SetStrokeColor(pdfColor(g.Stroke))
	s.page.SetLineWidth(g.Weight * scale)
	dash := make([]float64, len(g.Dash))
	for i, d := range g.Dash {
		dash[i] = d * scale
	}
	s.page.SetLineDash(dash, 0)
	s.addPath(p)
	s.page.Stroke()
}

func (s *PDFSurface) FillPath(p *Outline, c Color, evenOdd bool) {
	if c.IsTransparent() {
		return
	}
	s.page.SetFillColor(pdfColor(c))
	s.addPath(p)
	if evenOdd {
		s.page.FillEvenOdd()
	} else {
		s.page.Fill()
	}
}

func (s *PDFSurface) DrawText(text string, at vec.Vec2, f Font, scale float64) {
	if text == "" || f.Color.IsTransparent() {
		return
	}
	p, _, err := s.fonts.TextPath(text, at, f, f.Size*scale)
	if err != nil {
		if s.err == nil {
			s.err = err
		}
		return
	}
	s.FillPath(p, f.Color, false)
}

// DrawImage resamples img to a coarse grid and fills one cell per pixel,
// merging horizontal runs of equal color.
func (s *PDFSurface) DrawImage(img image.Image, r rect.Rect) {
	b := img.Bounds()
	if b.Empty() || r.URx <= r.LLx || r.URy <= r.LLy {
		return
	}
	w, h := b.Dx(), b.Dy()
	if k := float64(maxPDFImageSide) / float64(max(w, h)); k < 1 {
		w, h = max(int(float64(w)*k), 1), max(int(float64(h)*k), 1)
	}
	small := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), img, b, draw.Src, nil)

	cw := (r.URx - r.LLx) / float64(w)
	ch := (r.URy - r.LLy) / float64(h)
	for y := range h {
		for x := 0; x < w; {
			c := small.NRGBAAt(x, y)
			run := 1
			for x+run < w && small.NRGBAAt(x+run, y) == c {
				run++
			}
			if c.A > 0 {
				cell := rect.Rect{
					LLx: r.LLx + float64(x)*cw, LLy: r.LLy + float64(y)*ch,
					URx: r.LLx + float64(x+run)*cw, URy: r.LLy + float64(y+1)*ch,
				}
				s.FillPath(rectPathXY(cell), ColorFromRGBA(c), false)
			}
			x += run
		}
	}
}

// AddLink records a link region.
func (s *PDFSurface) AddLink(r rect.Rect, target string) {
	s.links = append(s.links, LinkRegion{Rect: r, Target: target})
}

// SavePDF renders the page into a single-page PDF file.
func (p *Page) SavePDF(name string, opts *RenderOptions) error {
	opts = opts.resolve()
	if p.width <= 0 || p.height <= 0 {
		return fmt.Errorf("page size %gx%g is not positive", p.width, p.height)
	}
	if dir := filepath.Dir(name); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	page, err := document.CreateSinglePage(name, &pdf.Rectangle{URx: p.width, URy: p.height}, pdf.V1_7, nil)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	s := NewPDFSurface(page, p.height, opts.FontCache)
	if p.background != nil {
		s.FillPath(rectPathXY(rect.Rect{URx: p.width, URy: p.height}), *p.background, false)
	}
	if err := p.Render(s, opts); err != nil {
		page.Close()
		return err
	}
	if err := s.Err(); err != nil {
		page.Close()
		return err
	}
	if n := len(s.Links()); n > 0 {
		Logger().Debug("pagedraw: link regions recorded", "page", p.name, "count", n)
	}
	return page.Close()
}
