package pagedraw

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/geom/vec"
)

// testOptions renders with the embedded fonts and a fixed-width measurer,
// so layouts do not depend on the host.
func testOptions() *RenderOptions {
	opts := DefaultRenderOptions()
	opts.FontCache = NewEmbeddedFontCache()
	opts.Measurer = FixedWidthMeasurer{Advance: 0.6}
	return opts
}

func renderPage(t *testing.T, p *Page, opts *RenderOptions) *RecordingSurface {
	t.Helper()
	var rs RecordingSurface
	if err := p.Render(&rs, opts); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return &rs
}

func mustPNG(t *testing.T) []byte {
	t.Helper()
	data, err := gradientPNG(8, 4)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestRenderDispatchesEveryKind(t *testing.T) {
	p := NewPage(400, 400)
	box := RectangleXY(10, 10, 200, 100)
	p.AddShapes(
		NewLine(Pt(0, 0), Pt(10, 10)),
		NewPolyline([]Point3{Pt(0, 0), Pt(5, 0), Pt(5, 5)}, true).SetGraphic(NewGraphic().SetFill(ColorRed)),
		NewCurve(NewBezierCurve(Pt(0, 0), Pt(1, 2), Pt(3, 2), Pt(4, 0))),
		NewCircle(NewCircleXY(Pt(50, 50), 10)),
		NewEllipse(Ellipse{Plane: WorldXY, Radius1: 20, Radius2: 10}),
		NewArc(Arc{Circle: NewCircleXY(Point3{}, 5), Angle: Interval{0, 1}}),
		NewBrep(PlanarBrep([]Point3{Pt(0, 0), Pt(10, 0), Pt(10, 10)})),
		NewMesh(Mesh{Vertices: []Point3{Pt(0, 0), Pt(1, 0), Pt(0, 1)}, Faces: [][]int{{0, 1, 2}}}),
		NewTextPoint(Pt(10, 150), "hello"),
		NewTextBox(box, "wrapped text"),
		NewImageFrame(box, ImageData(mustPNG(t))),
		NewImagePoint(Pt(0, 0), ImageData(mustPNG(t))),
		NewChart(RectangleXY(0, -150, 100, -50), ChartColumn, NewDataSet("Chart", 1, 2)),
		NewLink(box, "https://example.com", LinkURL),
		NewComment(Pt(0, 0), "me", "note"),
		NewPreviewText(box, "preview"),
		NewPreviewBoundary(box),
	)
	if p.GetShapeCount() != 17 {
		t.Fatalf("shape count = %d, want 17", p.GetShapeCount())
	}

	opts := testOptions()
	opts.Preview = true
	opts.ShowComments = true
	rs := renderPage(t, p, opts)

	if rs.Count(OpImage) != 2 {
		t.Errorf("images = %d, want 2", rs.Count(OpImage))
	}
	if rs.Count(OpLink) != 1 || rs.Ops[indexOf(rs, OpLink)].Target != "https://example.com" {
		t.Error("link not recorded")
	}
	texts := map[string]bool{}
	for _, s := range rs.Texts() {
		texts[s] = true
	}
	for _, want := range []string{"hello", "wrapped text", "Chart", "me: note", "preview"} {
		if !texts[want] {
			t.Errorf("text %q not drawn; got %v", want, rs.Texts())
		}
	}
	if rs.Count(OpStroke) < 8 || rs.Count(OpFill) < 3 {
		t.Errorf("strokes = %d, fills = %d", rs.Count(OpStroke), rs.Count(OpFill))
	}
}

func indexOf(rs *RecordingSurface, k OpKind) int {
	for i, op := range rs.Ops {
		if op.Kind == k {
			return i
		}
	}
	return -1
}

func TestRenderGatesPreviewAndComments(t *testing.T) {
	p := NewPage(200, 200)
	box := RectangleXY(0, 0, 100, 50)
	p.AddShapes(NewComment(Pt(0, 0), "a", "b"), NewPreviewText(box, "x"), NewPreviewBoundary(box))

	rs := renderPage(t, p, testOptions())
	if len(rs.Ops) != 0 {
		t.Errorf("hidden kinds drew %d operations", len(rs.Ops))
	}

	opts := testOptions()
	opts.Preview = true
	rs = renderPage(t, p, opts)
	if rs.Count(OpText) != 1 || rs.Count(OpStroke) != 1 {
		t.Errorf("preview drew %d texts and %d strokes", rs.Count(OpText), rs.Count(OpStroke))
	}
}

func TestRenderTextBoxLayout(t *testing.T) {
	p := NewPage(200, 200)
	// top edge of the box is the top edge of the page
	p.AddShape(NewTextBox(RectangleXY(0, 50, 40, 100), "a bb ccc").SetFont(NewFont().SetSize(10)))
	rs := renderPage(t, p, testOptions())

	var got []Op
	for _, op := range rs.Ops {
		if op.Kind == OpText {
			got = append(got, op)
		}
	}
	if len(got) != 2 || got[0].Text != "a bb" || got[1].Text != "ccc" {
		t.Fatalf("texts = %v", rs.Texts())
	}
	if !approx(got[0].At.X, 0) || !approx(got[0].At.Y, 10) {
		t.Errorf("first baseline at %v, want (0, 10)", got[0].At)
	}
	if !approx(got[1].At.Y, 22) {
		t.Errorf("second baseline y = %g, want 22", got[1].At.Y)
	}
}

func TestRenderTextBoxFullJustification(t *testing.T) {
	p := NewPage(200, 200)
	f := NewFont().SetSize(10).SetJustification(JustifyFull)
	p.AddShape(NewTextBox(RectangleXY(0, 50, 40, 100), "aa bb cc dd").SetFont(f))
	rs := renderPage(t, p, testOptions())

	var xs []float64
	for _, op := range rs.Ops {
		if op.Kind == OpText {
			xs = append(xs, op.At.X)
		}
	}
	texts := rs.Texts()
	if len(texts) != 3 || texts[0] != "aa" || texts[1] != "bb" || texts[2] != "cc dd" {
		t.Fatalf("texts = %q", texts)
	}
	// "bb" ends flush with the right edge
	if !approx(xs[1], 28) {
		t.Errorf("second word at x = %g, want 28", xs[1])
	}
}

func TestRenderTextPointJustification(t *testing.T) {
	p := NewPage(200, 200)
	f := NewFont().SetSize(10).SetJustification(JustifyCenter)
	p.AddShape(NewTextPoint(Pt(100, 0), "abcd\nab").SetFont(f))
	rs := renderPage(t, p, testOptions())

	if len(rs.Ops) != 2 {
		t.Fatalf("ops = %d, want 2", len(rs.Ops))
	}
	if !approx(rs.Ops[0].At.X, 88) || !approx(rs.Ops[1].At.X, 94) {
		t.Errorf("line starts at %g and %g, want 88 and 94", rs.Ops[0].At.X, rs.Ops[1].At.X)
	}
	if !approx(rs.Ops[1].At.Y-rs.Ops[0].At.Y, 12) {
		t.Errorf("line step = %g, want 12", rs.Ops[1].At.Y-rs.Ops[0].At.Y)
	}
}

func TestRenderUnderline(t *testing.T) {
	p := NewPage(200, 200)
	p.AddShape(NewTextPoint(Pt(0, 0), "link").SetFont(NewFont().SetStyle(FontUnderline)))
	rs := renderPage(t, p, testOptions())
	if rs.Count(OpText) != 1 || rs.Count(OpStroke) != 1 {
		t.Errorf("texts = %d, strokes = %d, want 1 and 1", rs.Count(OpText), rs.Count(OpStroke))
	}
}

func TestRenderFragments(t *testing.T) {
	p := NewPage(200, 200)
	fr := NewFragment(
		Segment{Text: "plain ", Font: NewFont()},
		Segment{Text: "bold", Font: NewFont().SetStyle(FontBold)},
	)
	p.AddShape(NewTextBox(RectangleXY(0, 0, 150, 50), "ignored").SetFragments(fr))
	rs := renderPage(t, p, testOptions())
	texts := rs.Texts()
	if len(texts) != 2 || texts[0] != "plain" || texts[1] != "bold" {
		t.Fatalf("texts = %q", texts)
	}
	if rs.Ops[1].Font.Style != FontBold {
		t.Error("segment font not applied")
	}
}

func TestRenderFileAccessDenied(t *testing.T) {
	p := NewPage(200, 200)
	p.AddShape(NewImageFrame(RectangleXY(0, 0, 50, 50), ImageFile("does-not-matter.png")))

	var rs RecordingSurface
	err := p.Render(&rs, testOptions())
	if !errors.Is(err, ErrFileAccessDenied) {
		t.Fatalf("err = %v, want ErrFileAccessDenied", err)
	}

	opts := testOptions()
	opts.SkipFailedShapes = true
	if err := p.Render(&rs, opts); err != nil {
		t.Errorf("SkipFailedShapes: %v", err)
	}
}

func TestRenderImageFromFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "img.png")
	if err := os.WriteFile(name, mustPNG(t), 0o644); err != nil {
		t.Fatal(err)
	}
	p := NewPage(200, 200)
	p.AddShape(NewImageFrame(RectangleXY(0, 0, 50, 50), ImageFile(name)))
	opts := testOptions()
	opts.AllowFileAccess = true
	rs := renderPage(t, p, opts)
	if rs.Count(OpImage) != 1 {
		t.Fatalf("images = %d, want 1", rs.Count(OpImage))
	}
	r := rs.Ops[0].Rect
	if !approx(r.URx-r.LLx, 50) || !approx(r.URy-r.LLy, 50) {
		t.Errorf("image rect = %+v", r)
	}
}

func TestRenderCorruptImagePlaceholder(t *testing.T) {
	p := NewPage(200, 200)
	p.AddShape(NewImageFrame(RectangleXY(0, 0, 50, 50), ImageData([]byte("not an image"))))
	rs := renderPage(t, p, testOptions())
	if rs.Count(OpImage) != 0 || rs.Count(OpStroke) != 1 {
		t.Errorf("images = %d, strokes = %d; want a placeholder frame", rs.Count(OpImage), rs.Count(OpStroke))
	}
}

func TestRenderImagePointNaturalSize(t *testing.T) {
	p := NewPage(200, 200)
	p.AddShape(NewImagePoint(Pt(10, 100), ImageData(mustPNG(t))))
	opts := testOptions()
	opts.DPI = 72
	rs := renderPage(t, p, opts)
	r := rs.Ops[0].Rect
	if !approx(r.LLx, 10) || !approx(r.LLy, 0) || !approx(r.URx, 18) || !approx(r.URy, 4) {
		t.Errorf("image rect = %+v, want 10,0 to 18,4", r)
	}
}

func TestRenderChartError(t *testing.T) {
	p := NewPage(200, 200)
	p.AddShape(NewChart(RectangleXY(0, 0, 100, 100), ChartLine))
	var rs RecordingSurface
	if err := p.Render(&rs, testOptions()); !errors.Is(err, ErrNoDataSets) {
		t.Errorf("err = %v, want ErrNoDataSets", err)
	}
}

func TestRenderImageSize(t *testing.T) {
	p := NewPage(200, 100)
	opts := testOptions()
	opts.Width = 400
	img, err := p.RenderImage(opts)
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 200 {
		t.Errorf("size = %v, want 400x200", img.Bounds().Size())
	}
	if c := img.RGBAAt(0, 0); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background = %v, want white", c)
	}
}

func TestRenderImageBackground(t *testing.T) {
	p := NewPage(100, 100).SetBackground(NewColor("FF203040"))
	opts := testOptions()
	opts.Width = 100
	img, err := p.RenderImage(opts)
	if err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(50, 50); c != (color.RGBA{0x20, 0x30, 0x40, 255}) {
		t.Errorf("page background = %v", c)
	}

	bg := ColorBlack
	opts.Background = &bg
	img, _ = p.RenderImage(opts)
	if c := img.RGBAAt(50, 50); c != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("option background should win, got %v", c)
	}
}

func TestRenderImageFill(t *testing.T) {
	p := NewPage(200, 100)
	// authoring y in [-50, 50]: this square covers document y 25..75
	sq := []Point3{Pt(50, -25), Pt(150, -25), Pt(150, 25), Pt(50, 25)}
	p.AddShape(NewPolyline(sq, true).SetGraphic(NewGraphic().SetFill(ColorRed).SetWeight(0)))
	opts := testOptions()
	opts.Width = 400
	img, err := p.RenderImage(opts)
	if err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(200, 100); c.R < 250 || c.G > 5 || c.B > 5 {
		t.Errorf("inside pixel = %v, want red", c)
	}
	if c := img.RGBAAt(20, 20); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("outside pixel = %v, want white", c)
	}
}

func TestRenderImageEvenOddHole(t *testing.T) {
	p := NewPage(200, 100)
	outer := []Point3{Pt(20, -40), Pt(180, -40), Pt(180, 40), Pt(20, 40)}
	hole := []Point3{Pt(80, -10), Pt(120, -10), Pt(120, 10), Pt(80, 10)}
	g := NewGraphic().SetFill(ColorGreen).SetWeight(0)
	p.AddShape(NewBrep(PlanarBrep(outer, hole)).SetGraphic(g))
	opts := testOptions()
	opts.Width = 200
	img, err := p.RenderImage(opts)
	if err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(100, 50); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("hole pixel = %v, want white", c)
	}
	if c := img.RGBAAt(40, 50); c.G < 250 || c.R > 5 {
		t.Errorf("ring pixel = %v, want green", c)
	}
}

func TestOrientSubpaths(t *testing.T) {
	// both squares run counter-clockwise
	p := ToPath([][]vec.Vec2{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		{{X: 3, Y: 3}, {X: 6, Y: 3}, {X: 6, Y: 6}, {X: 3, Y: 6}},
	}, false, true)
	out := orientSubpaths(p)
	sps := splitSubpaths(out)
	if len(sps) != 2 {
		t.Fatalf("subpaths = %d, want 2", len(sps))
	}
	if (sps[0].area() > 0) == (sps[1].area() > 0) {
		t.Error("inner subpath should run against the outer one")
	}
	if !sps[0].closed || !sps[1].closed {
		t.Error("closing lost")
	}
}

func TestEncodeImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := EncodeImage(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("default format should be PNG: %v", err)
	}

	buf.Reset()
	opts := &RenderOptions{Format: ImageFormatJPEG, JPEGQuality: 500}
	if err := EncodeImage(&buf, img, opts); err != nil {
		t.Fatal(err)
	}
	if b := buf.Bytes(); len(b) < 2 || b[0] != 0xFF || b[1] != 0xD8 {
		t.Error("JPEG output missing SOI marker")
	}

	if ImageFormatFromPath("a/b.JPG") != ImageFormatJPEG || ImageFormatFromPath("x.bmp") != ImageFormatPNG {
		t.Error("ImageFormatFromPath wrong")
	}
}

func TestSaveImages(t *testing.T) {
	d := New()
	d.CreatePage()
	dir := t.TempDir()
	opts := testOptions()
	opts.Width = 100
	if err := d.SaveImages(filepath.Join(dir, "out", "page%d.png"), opts); err != nil {
		t.Fatalf("SaveImages: %v", err)
	}
	for _, name := range []string{"page1.png", "page2.png"} {
		f, err := os.Open(filepath.Join(dir, "out", name))
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Width != 100 {
			t.Errorf("%s width = %d, want 100", name, cfg.Width)
		}
	}
}
