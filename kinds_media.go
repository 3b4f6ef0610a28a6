package pagedraw

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Image loading errors.
var (
	ErrNoImageData      = errors.New("pagedraw: image has no data")
	ErrFileAccessDenied = errors.New("pagedraw: file access is disabled")
)

// maxImageFileSize limits image files read from disk.
const maxImageFileSize = 64 << 20

// ImageSource holds encoded image bytes or the path of an image file.
// Data takes precedence over Path.
type ImageSource struct {
	Data []byte
	Path string
}

// ImageData creates a source from encoded bytes.
func ImageData(data []byte) ImageSource { return ImageSource{Data: data} }

// ImageFile creates a source that reads name when rendered with
// RenderOptions.AllowFileAccess.
func ImageFile(name string) ImageSource { return ImageSource{Path: name} }

func (src ImageSource) clone() ImageSource {
	src.Data = bytes.Clone(src.Data)
	return src
}

// Decode decodes the image. Reading Path requires allowFile.
func (src ImageSource) Decode(allowFile bool) (image.Image, error) {
	data := src.Data
	if len(data) == 0 {
		if src.Path == "" {
			return nil, ErrNoImageData
		}
		if !allowFile {
			return nil, fmt.Errorf("%w: %s", ErrFileAccessDenied, src.Path)
		}
		info, err := os.Stat(src.Path)
		if err != nil {
			return nil, err
		}
		if info.Size() > maxImageFileSize {
			return nil, fmt.Errorf("image file too large: %d bytes (max %d)", info.Size(), maxImageFileSize)
		}
		if data, err = os.ReadFile(src.Path); err != nil {
			return nil, err
		}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// drawImage decodes src and draws it into r. Undecodable data is replaced
// by a gray frame; denied file access is an error.
func (rc *renderContext) drawImage(src ImageSource, r rect.Rect, s Shape) error {
	img, err := src.Decode(rc.opts.AllowFileAccess)
	if errors.Is(err, ErrFileAccessDenied) {
		return err
	}
	if err != nil {
		Logger().Warn("pagedraw: image replaced by placeholder", "shape", s.id, "err", err)
		rc.surface.StrokePath(rectPathXY(r), Graphic{Stroke: NewColor("C8C8C8"), Weight: 1}, 1)
		return nil
	}
	rc.surface.DrawImage(img, r)
	return nil
}

// rectPathXY returns the closed outline of a document rectangle.
func rectPathXY(r rect.Rect) *Outline {
	pts := []vec.Vec2{{X: r.LLx, Y: r.LLy}, {X: r.URx, Y: r.LLy}, {X: r.URx, Y: r.URy}, {X: r.LLx, Y: r.URy}}
	return ToPath([][]vec.Vec2{pts}, false, true)
}

// ImageFrameGeometry is the payload of KindImageFrame. The image is
// stretched over the shape boundary.
type ImageFrameGeometry struct {
	Image ImageSource
}

func (g ImageFrameGeometry) Kind() ShapeKind              { return KindImageFrame }
func (g ImageFrameGeometry) clone() Geometry              { return ImageFrameGeometry{Image: g.Image.clone()} }
func (g ImageFrameGeometry) bounds() BoundingBox          { return BoundingBox{} }
func (g ImageFrameGeometry) transform(Transform) Geometry { return g.clone() }

func (g ImageFrameGeometry) render(rc *renderContext, s Shape) error {
	if !s.boundary.IsValid() {
		return nil
	}
	if err := rc.drawImage(g.Image, s.boundary.BoundingBox().Rect(), s); err != nil {
		return err
	}
	if s.graphic.strokes() {
		rc.surface.StrokePath(rectPath(s.boundary), s.graphic, s.scale)
	}
	return nil
}

// ImagePointGeometry is the payload of KindImagePoint. The image keeps its
// natural size at RenderOptions.DPI, scaled by the shape scale.
type ImagePointGeometry struct {
	Anchor Point3
	Image  ImageSource
}

func (g ImagePointGeometry) Kind() ShapeKind     { return KindImagePoint }
func (g ImagePointGeometry) bounds() BoundingBox { return boxOf(g.Anchor) }

func (g ImagePointGeometry) clone() Geometry {
	return ImagePointGeometry{Anchor: g.Anchor, Image: g.Image.clone()}
}

func (g ImagePointGeometry) transform(t Transform) Geometry {
	return ImagePointGeometry{Anchor: t.Apply(g.Anchor), Image: g.Image.clone()}
}

func (g ImagePointGeometry) render(rc *renderContext, s Shape) error {
	img, err := g.Image.Decode(rc.opts.AllowFileAccess)
	if err != nil {
		if errors.Is(err, ErrFileAccessDenied) {
			return err
		}
		Logger().Warn("pagedraw: image point skipped", "shape", s.id, "err", err)
		return nil
	}
	k := 72 / rc.opts.DPI * s.scale
	w := float64(img.Bounds().Dx()) * k
	h := float64(img.Bounds().Dy()) * k
	pl := s.boundary.Plane
	pl.Origin = g.Anchor
	r := boxOf(pl.PointAt(0, 0), pl.PointAt(w, -h)).Rect()
	rc.surface.DrawImage(img, r)
	return nil
}

// LinkKind tells how a link target is interpreted.
type LinkKind int

const (
	LinkURL  LinkKind = iota // web address
	LinkPage                 // page name or number inside the document
	LinkFile                 // local file
)

func (k LinkKind) String() string {
	switch k {
	case LinkURL:
		return "url"
	case LinkPage:
		return "page"
	case LinkFile:
		return "file"
	}
	return fmt.Sprintf("LinkKind(%d)", int(k))
}

// LinkGeometry is the payload of KindLink. The clickable region is the
// shape boundary.
type LinkGeometry struct {
	Target     string
	TargetKind LinkKind
}

func (g LinkGeometry) Kind() ShapeKind              { return KindLink }
func (g LinkGeometry) clone() Geometry              { return g }
func (g LinkGeometry) bounds() BoundingBox          { return BoundingBox{} }
func (g LinkGeometry) transform(Transform) Geometry { return g }

// URI returns the target in the form recorded on the surface.
func (g LinkGeometry) URI() string {
	switch g.TargetKind {
	case LinkPage:
		return "#" + strings.TrimPrefix(g.Target, "#")
	case LinkFile:
		if strings.HasPrefix(g.Target, "file:") {
			return g.Target
		}
		return "file:" + g.Target
	}
	return g.Target
}

func (g LinkGeometry) render(rc *renderContext, s Shape) error {
	if g.Target == "" || !s.boundary.IsValid() {
		Logger().Debug("pagedraw: link without target or area", "shape", s.id)
		return nil
	}
	rc.surface.AddLink(s.boundary.BoundingBox().Rect(), g.URI())
	rc.outline(rectPath(s.boundary), s, true, false)
	return nil
}

// ChartGeometry is the payload of KindChart.
type ChartGeometry struct {
	Chart    ChartKind
	DataSets []DataSet
}

func (g ChartGeometry) Kind() ShapeKind              { return KindChart }
func (g ChartGeometry) bounds() BoundingBox          { return BoundingBox{} }
func (g ChartGeometry) transform(Transform) Geometry { return g.clone() }

func (g ChartGeometry) clone() Geometry {
	return ChartGeometry{Chart: g.Chart, DataSets: cloneDataSets(g.DataSets)}
}

// titleScale enlarges the chart title relative to the shape font.
const titleScale = 1.2

func (g ChartGeometry) render(rc *renderContext, s Shape) error {
	res, err := ChartLayout(g.DataSets, g.Chart, s.boundary)
	if err != nil {
		return err
	}
	for i, p := range res.Primitives {
		c := res.Colors[i]
		pp := p.Path()
		if p.Filled {
			rc.surface.FillPath(pp, c, false)
			if s.graphic.strokes() {
				rc.surface.StrokePath(pp, s.graphic, s.scale)
			}
			continue
		}
		line := s.graphic.SetStroke(c).SetWeight(max(s.graphic.Weight, 1))
		rc.surface.StrokePath(pp, line, s.scale)
	}

	for _, l := range res.Labels {
		f := s.font
		if l.Title {
			f = f.SetSize(f.Size * titleScale).SetStyle(FontBold)
		}
		w, err := rc.measure(l.Text, scaledFont(f, s.scale))
		if err != nil {
			return err
		}
		at := l.At
		at.X -= w / 2
		rc.surface.DrawText(l.Text, at, f, s.scale)
	}
	return nil
}
