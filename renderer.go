package pagedraw

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// ImageFormatFromPath picks the format from the file extension. Unknown
// extensions select PNG.
func ImageFormatFromPath(name string) ImageFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return ImageFormatJPEG
	default:
		return ImageFormatPNG
	}
}

// RenderOptions configures rendering.
type RenderOptions struct {
	// Width is the raster output width in pixels. Height follows the page
	// aspect ratio. Default: 960
	Width int
	// DPI is the resolution assumed for images placed at their natural
	// size. Default: 96
	DPI float64
	// Format is the raster output format (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// Background is the page color of raster output. Nil means white.
	Background *Color
	// Tolerance is the maximum deviation in points when arcs and ellipses
	// are approximated by cubic spans. Default: DefaultTolerance.
	Tolerance float64
	// AllowFileAccess permits images to be loaded from a file path. When
	// false only in-memory image data is used.
	AllowFileAccess bool
	// FontDirs specifies additional directories to search for TrueType/OpenType fonts.
	// System font directories are always searched automatically.
	FontDirs []string
	// FontCache allows sharing a pre-configured FontCache across multiple renders.
	// If nil, a new FontCache is created using FontDirs.
	FontCache *FontCache
	// Measurer measures text for line breaking and justification. If nil,
	// a FaceMeasurer over FontCache is used.
	Measurer Measurer
	// Preview enables the editor preview kinds.
	Preview bool
	// ShowComments enables drawing of comments.
	ShowComments bool
	// SkipFailedShapes logs shapes that fail to render and continues with
	// the next one instead of returning the error.
	SkipFailedShapes bool
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Width:       960,
		DPI:         96,
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
		Tolerance:   DefaultTolerance,
	}
}

// resolve returns a copy of o with every unset field defaulted. A nil
// receiver yields the defaults.
func (o *RenderOptions) resolve() *RenderOptions {
	out := *DefaultRenderOptions()
	if o != nil {
		out = *o
	}
	if out.Width <= 0 {
		out.Width = 960
	}
	if out.DPI <= 0 {
		out.DPI = 96
	}
	if out.JPEGQuality <= 0 || out.JPEGQuality > 100 {
		out.JPEGQuality = 90
	}
	if out.Tolerance <= 0 {
		out.Tolerance = DefaultTolerance
	}
	if out.FontCache == nil {
		out.FontCache = NewFontCache(out.FontDirs...)
	}
	if out.Measurer == nil {
		out.Measurer = NewFaceMeasurer(out.FontCache)
	}
	return &out
}

func (o *RenderOptions) background() Color {
	if o.Background != nil {
		return *o.Background
	}
	return ColorWhite
}

// renderContext carries the target surface and the resolved options
// through one render pass.
type renderContext struct {
	surface Surface
	opts    *RenderOptions
}

func newRenderContext(surface Surface, opts *RenderOptions) *renderContext {
	return &renderContext{surface: surface, opts: opts.resolve()}
}

func (rc *renderContext) tolerance() float64 { return rc.opts.Tolerance }

func (rc *renderContext) measure(text string, f Font) (float64, error) {
	return rc.opts.Measurer.MeasureString(text, f)
}

// outline fills a closed path with the shape's fill color and strokes it
// with the shape's stroke. Either step is skipped when it would be
// invisible.
func (rc *renderContext) outline(p *Outline, s Shape, closed, evenOdd bool) {
	g := s.graphic
	if closed && !g.Fill.IsTransparent() {
		rc.surface.FillPath(p, g.Fill, evenOdd)
	}
	if g.strokes() {
		rc.surface.StrokePath(p, g, s.scale)
	}
}

// curve draws c as a Bezier path. Closed curves are filled.
func (rc *renderContext) curve(c Curve, s Shape) error {
	pts := BezierPolyline(c)
	if len(pts) == 0 {
		return nil
	}
	closed := c.IsClosed()
	rc.outline(ToPath([][]vec.Vec2{pts}, true, closed), s, closed, false)
	return nil
}

// rectPath returns the closed outline of r.
func rectPath(r Rectangle) *Outline {
	pts := make([]vec.Vec2, 4)
	for i := range pts {
		pts[i] = r.Corner(i).XY()
	}
	return ToPath([][]vec.Vec2{pts}, false, true)
}

// Render draws the shape onto surface. The shape is expected to be in
// document space already (see AlignContent). A nil opts selects the
// defaults.
func (s Shape) Render(surface Surface, opts *RenderOptions) error {
	return s.render(newRenderContext(surface, opts))
}

func (s Shape) render(rc *renderContext) error {
	if s.geometry == nil {
		return nil
	}
	if err := s.geometry.render(rc, s); err != nil {
		return fmt.Errorf("render %s shape %d: %w", s.GetKind(), s.id, err)
	}
	return nil
}

// renderShapes renders shapes in order, stopping at the first error unless
// the options ask to skip failed shapes.
func renderShapes(rc *renderContext, shapes []Shape) error {
	for _, s := range shapes {
		if err := s.render(rc); err != nil {
			if !rc.opts.SkipFailedShapes {
				return err
			}
			Logger().Warn("pagedraw: shape skipped", "shape", s.id, "kind", s.GetKind().String(), "err", err)
		}
	}
	return nil
}

// EncodeImage writes img in the format selected by opts.
func EncodeImage(w io.Writer, img image.Image, opts *RenderOptions) error {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(w, img)
	}
}

func saveImage(img image.Image, name string, opts *RenderOptions) error {
	dir := filepath.Dir(name)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := EncodeImage(f, img, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
