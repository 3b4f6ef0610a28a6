package pagedraw

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"
)

func assertPDF(t *testing.T, name string) {
	t.Helper()
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("%s does not start with a PDF header", name)
	}
}

func TestSavePDF(t *testing.T) {
	p := NewPage(300, 200).SetBackground(NewColor("FFF0F0F0"))
	p.AddShapes(
		NewLine(Pt(10, 0), Pt(290, 0)).SetGraphic(NewGraphic().SetDash(5, 2)),
		NewCircle(NewCircleXY(Pt(150, 0), 40)).SetGraphic(NewGraphic().SetFill(ColorBlue)),
		NewTextPoint(Pt(10, 80), "Hello PDF"),
		NewImageFrame(RectangleXY(200, 40, 280, 90), ImageData(mustPNG(t))),
		NewLink(RectangleXY(10, 60, 80, 90), "https://example.com", LinkURL),
	)
	name := filepath.Join(t.TempDir(), "sub", "page.pdf")
	if err := p.SavePDF(name, testOptions()); err != nil {
		t.Fatalf("SavePDF: %v", err)
	}
	assertPDF(t, name)
}

func TestSavePDFRejectsEmptyPage(t *testing.T) {
	p := NewPage(0, 100)
	if err := p.SavePDF(filepath.Join(t.TempDir(), "x.pdf"), testOptions()); err == nil {
		t.Error("expected error for a zero-width page")
	}
}

func TestPDFSurfaceRecordsLinks(t *testing.T) {
	name := filepath.Join(t.TempDir(), "links.pdf")
	page, err := document.CreateSinglePage(name, &pdf.Rectangle{URx: 100, URy: 100}, pdf.V1_7, nil)
	if err != nil {
		t.Fatal(err)
	}
	s := NewPDFSurface(page, 100, NewEmbeddedFontCache())
	s.AddLink(rect.Rect{LLx: 1, LLy: 2, URx: 3, URy: 4}, "#intro")
	if len(s.Links()) != 1 || s.Links()[0].Target != "#intro" {
		t.Errorf("links = %+v", s.Links())
	}
	s.DrawText("abc", vec.Vec2{X: 10, Y: 50}, NewFont(), 1)
	if err := s.Err(); err != nil {
		t.Errorf("DrawText: %v", err)
	}
	if err := page.Close(); err != nil {
		t.Fatal(err)
	}
	assertPDF(t, name)
}

func TestPDFColor(t *testing.T) {
	if got := pdfColor(ColorRed); got != (color.DeviceRGB{1, 0, 0}) {
		t.Errorf("red = %v", got)
	}
	if got := pdfColor(NewColor("FF336699")); got != (color.DeviceRGB{0.2, 0.4, 0.6}) {
		t.Errorf("336699 = %v", got)
	}
}

func TestPDFSurfaceQuadraticPath(t *testing.T) {
	name := filepath.Join(t.TempDir(), "quad.pdf")
	page, err := document.CreateSinglePage(name, &pdf.Rectangle{URx: 100, URy: 100}, pdf.V1_7, nil)
	if err != nil {
		t.Fatal(err)
	}
	s := NewPDFSurface(page, 100, NewEmbeddedFontCache())
	o := new(Outline).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		QuadTo(vec.Vec2{X: 50, Y: 90}, vec.Vec2{X: 90, Y: 10}).
		Close()
	s.FillPath(o, ColorBlue, false)
	s.StrokePath(o, NewGraphic(), 1)
	if err := s.Err(); err != nil {
		t.Errorf("surface: %v", err)
	}
	if err := page.Close(); err != nil {
		t.Fatal(err)
	}
	assertPDF(t, name)
}

func TestDocumentSavePDFs(t *testing.T) {
	d, err := Gallery()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	opts := testOptions()
	opts.Measurer = nil
	if err := d.SavePDFs(filepath.Join(dir, "page%02d.pdf"), opts); err != nil {
		t.Fatalf("SavePDFs: %v", err)
	}
	assertPDF(t, filepath.Join(dir, "page01.pdf"))
	assertPDF(t, filepath.Join(dir, "page02.pdf"))
}
