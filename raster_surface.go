package pagedraw

import (
	"fmt"
	"image"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// RasterSurface draws into an RGBA image. Document points are scaled by
// a fixed number of pixels per point.
type RasterSurface struct {
	img   *image.RGBA
	scale float64
	fonts *FontCache
}

// NewRasterSurface creates a surface drawing into img. A nil fonts selects
// an embedded-only cache.
func NewRasterSurface(img *image.RGBA, pixelsPerPoint float64, fonts *FontCache) *RasterSurface {
	if fonts == nil {
		fonts = NewEmbeddedFontCache()
	}
	if pixelsPerPoint <= 0 {
		pixelsPerPoint = 1
	}
	return &RasterSurface{img: img, scale: pixelsPerPoint, fonts: fonts}
}

// Image returns the target image.
func (r *RasterSurface) Image() *image.RGBA { return r.img }

func (r *RasterSurface) px(v vec.Vec2) fixed.Point26_6 {
	return rasterx.ToFixedP(v.X*r.scale, v.Y*r.scale)
}

// addPath feeds p to a rasterx path consumer.
func (r *RasterSurface) addPath(a rasterx.Adder, p *Outline) {
	i, open := 0, false
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				a.Stop(false)
			}
			a.Start(r.px(p.Coords[i]))
			open = true
			i++
		case path.CmdLineTo:
			a.Line(r.px(p.Coords[i]))
			i++
		case path.CmdQuadTo:
			a.QuadBezier(r.px(p.Coords[i]), r.px(p.Coords[i+1]))
			i += 2
		case path.CmdCubeTo:
			a.CubeBezier(r.px(p.Coords[i]), r.px(p.Coords[i+1]), r.px(p.Coords[i+2]))
			i += 3
		case path.CmdClose:
			if open {
				a.Stop(true)
				open = false
			}
		}
	}
	if open {
		a.Stop(false)
	}
}

func (r *RasterSurface) scanner() (*rasterx.ScannerGV, int, int) {
	b := r.img.Bounds()
	return rasterx.NewScannerGV(b.Dx(), b.Dy(), r.img, b), b.Dx(), b.Dy()
}

func (r *RasterSurface) StrokePath(p *Outline, g Graphic, scale float64) {
	if !g.strokes() {
		return
	}
	k := scale * r.scale
	var dashes []float64
	for _, d := range g.Dash {
		dashes = append(dashes, d*k)
	}
	sc, w, h := r.scanner()
	d := rasterx.NewDasher(w, h, sc)
	d.SetStroke(fixed.Int26_6(g.Weight*k*64), 4*64, rasterx.ButtCap, nil, rasterx.FlatGap, rasterx.MiterClip, dashes, 0)
	d.SetColor(g.Stroke.NRGBA())
	r.addPath(d, p)
	d.Draw()
}

// FillPath fills p. The scanner only knows the non-zero rule, so for
// even-odd fills the subpaths are reoriented first: the largest keeps its
// direction and all others run the opposite way.
func (r *RasterSurface) FillPath(p *Outline, c Color, evenOdd bool) {
	if c.IsTransparent() {
		return
	}
	if evenOdd {
		p = orientSubpaths(p)
	}
	sc, w, h := r.scanner()
	f := rasterx.NewFiller(w, h, sc)
	f.SetColor(c.NRGBA())
	r.addPath(f, p)
	f.Draw()
}

func (r *RasterSurface) DrawText(text string, at vec.Vec2, f Font, scale float64) {
	size := f.Size * scale * r.scale
	if text == "" || size < 0.5 || f.Color.IsTransparent() {
		return
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(f.Color.NRGBA()),
		Face: r.fonts.Face(f, size),
		Dot:  r.px(at),
	}
	d.DrawString(text)
}

func (r *RasterSurface) DrawImage(img image.Image, rc rect.Rect) {
	dst := image.Rect(
		int(math.Round(rc.LLx*r.scale)), int(math.Round(rc.LLy*r.scale)),
		int(math.Round(rc.URx*r.scale)), int(math.Round(rc.URy*r.scale)),
	)
	if dst.Empty() {
		return
	}
	draw.CatmullRom.Scale(r.img, dst, img, img.Bounds(), draw.Over, nil)
}

// AddLink is a no-op; raster images carry no link annotations.
func (r *RasterSurface) AddLink(rect.Rect, string) {}

// subpath is one MoveTo-started run of a path.
type subpath struct {
	start  vec.Vec2
	cmds   []path.Command
	coords [][]vec.Vec2
	closed bool
}

func splitSubpaths(p *Outline) []subpath {
	var out []subpath
	i := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			out = append(out, subpath{start: p.Coords[i]})
			i++
		case path.CmdLineTo, path.CmdQuadTo, path.CmdCubeTo:
			n := map[path.Command]int{path.CmdLineTo: 1, path.CmdQuadTo: 2, path.CmdCubeTo: 3}[cmd]
			if len(out) == 0 {
				out = append(out, subpath{})
			}
			sp := &out[len(out)-1]
			sp.cmds = append(sp.cmds, cmd)
			sp.coords = append(sp.coords, p.Coords[i:i+n])
			i += n
		case path.CmdClose:
			if len(out) > 0 {
				out[len(out)-1].closed = true
			}
		}
	}
	return out
}

// area returns the signed area of the control polygon.
func (sp subpath) area() float64 {
	var a float64
	prev := sp.start
	for _, pts := range sp.coords {
		for _, q := range pts {
			a += prev.X*q.Y - q.X*prev.Y
			prev = q
		}
	}
	a += prev.X*sp.start.Y - sp.start.X*prev.Y
	return a / 2
}

func (sp subpath) end() vec.Vec2 {
	if len(sp.coords) == 0 {
		return sp.start
	}
	last := sp.coords[len(sp.coords)-1]
	return last[len(last)-1]
}

func (sp subpath) reverse() subpath {
	out := subpath{start: sp.end(), closed: sp.closed}
	for k := len(sp.cmds) - 1; k >= 0; k-- {
		from := sp.start
		if k > 0 {
			prev := sp.coords[k-1]
			from = prev[len(prev)-1]
		}
		pts := sp.coords[k]
		rev := make([]vec.Vec2, 0, len(pts))
		for j := len(pts) - 2; j >= 0; j-- {
			rev = append(rev, pts[j])
		}
		rev = append(rev, from)
		out.cmds = append(out.cmds, sp.cmds[k])
		out.coords = append(out.coords, rev)
	}
	return out
}

func orientSubpaths(p *Outline) *Outline {
	sps := splitSubpaths(p)
	if len(sps) < 2 {
		return p
	}
	outer := 0
	for i, sp := range sps {
		if math.Abs(sp.area()) > math.Abs(sps[outer].area()) {
			outer = i
		}
	}
	sign := math.Signbit(sps[outer].area())
	out := &Outline{}
	for i, sp := range sps {
		if i != outer && math.Signbit(sp.area()) == sign {
			sp = sp.reverse()
		}
		out.MoveTo(sp.start)
		for k, cmd := range sp.cmds {
			c := sp.coords[k]
			switch cmd {
			case path.CmdLineTo:
				out.LineTo(c[0])
			case path.CmdQuadTo:
				out.QuadTo(c[0], c[1])
			case path.CmdCubeTo:
				out.CubeTo(c[0], c[1], c[2])
			}
		}
		if sp.closed {
			out.Close()
		}
	}
	return out
}

// RenderImage renders the page to an RGBA image whose width is
// opts.Width pixels.
func (p *Page) RenderImage(opts *RenderOptions) (*image.RGBA, error) {
	opts = opts.resolve()
	if p.width <= 0 || p.height <= 0 {
		return nil, fmt.Errorf("page size %gx%g is not positive", p.width, p.height)
	}
	k := float64(opts.Width) / p.width
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, int(math.Round(p.height*k))))

	bg := opts.background()
	if opts.Background == nil && p.background != nil {
		bg = *p.background
	}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg.NRGBA()}, image.Point{}, draw.Src)

	s := NewRasterSurface(img, k, opts.FontCache)
	if err := p.Render(s, opts); err != nil {
		return nil, err
	}
	return img, nil
}

// SaveImage renders the page and saves it to a file in opts.Format.
func (p *Page) SaveImage(name string, opts *RenderOptions) error {
	opts = opts.resolve()
	img, err := p.RenderImage(opts)
	if err != nil {
		return err
	}
	return saveImage(img, name, opts)
}
