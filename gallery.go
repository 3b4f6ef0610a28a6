package pagedraw

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
)

// Gallery builds a two-page document that uses every shape kind: a
// geometry sheet and a report page laid out with blocks. It is used by the
// command line tools and as a smoke test for surfaces.
func Gallery() (*Document, error) {
	d := New()
	geometryPage(d.GetActivePage().SetName("geometry"))

	report := d.CreatePage().SetName("report")
	if err := reportPage(report); err != nil {
		return nil, err
	}
	return d, nil
}

func geometryPage(p *Page) {
	b := p.Boundary()
	x0, top := b.X.Min()+40, b.Y.Max()-60
	at := func(dx, dy float64) Point3 { return p.GetFrame().PointAt(x0+dx, top-dy) }

	title := NewFont().SetSize(20).SetStyle(FontBold)
	p.AddShape(NewTextPoint(at(0, 0), "pagedraw "+Version).SetFont(title))

	blue := NewGraphic().SetStroke(ColorBlue).SetWeight(2)
	p.AddShapes(
		NewLine(at(0, 30), at(150, 30)).SetGraphic(blue),
		NewLine(at(0, 40), at(150, 40)).SetGraphic(NewGraphic().SetDash(6, 3)),
		NewPolyline([]Point3{at(180, 30), at(240, 90), at(300, 30), at(360, 90)}, false),
		NewPolyline([]Point3{at(400, 30), at(500, 30), at(450, 100)}, true).
			SetGraphic(NewGraphic().SetFill(NewColor("FFFFC000"))),
		NewCurve(NewBezierCurve(at(0, 160), at(50, 80), at(100, 240), at(150, 160))).SetGraphic(blue),
	)

	c := NewCircleXY(at(230, 160), 40)
	e := Ellipse{Plane: NewPlane(at(360, 160), Vector3{X: 1, Y: 0.3}, YAxis), Radius1: 60, Radius2: 30}
	p.AddShapes(
		NewCircle(c).SetGraphic(NewGraphic().SetFill(NewColor("FF9DC3E6"))),
		NewEllipse(e),
		NewArc(Arc{Circle: NewCircleXY(at(480, 160), 35), Angle: Interval{0, 1.5 * math.Pi}}).SetGraphic(blue),
	)

	outer := []Point3{at(0, 220), at(140, 220), at(140, 320), at(0, 320)}
	hole := []Point3{at(40, 250), at(100, 250), at(100, 290), at(40, 290)}
	p.AddShape(NewBrep(PlanarBrep(outer, hole)).SetGraphic(NewGraphic().SetFill(NewColor("FFA9D18E"))))

	mesh := Mesh{
		Vertices: []Point3{at(180, 220), at(260, 220), at(340, 220), at(180, 320), at(260, 320), at(340, 320)},
		Faces:    [][]int{{0, 1, 4, 3}, {1, 2, 5}, {1, 5, 4}},
	}
	p.AddShape(NewMesh(mesh).SetGraphic(NewGraphic().SetStroke(ColorRed)))

	box := RectangleXY(0, 0, 220, 120)
	box.Plane = p.GetFrame()
	box.Plane.Origin = at(0, 480)
	p.AddShape(NewTextBox(box, "Shapes are authored with y pointing up and aligned into "+
		"document space when added to a page.\n\nText boxes wrap greedily and honor the "+
		"justification of their font.").
		SetFont(NewFont().SetSize(11).SetJustification(JustifyFull)).
		SetGraphic(NewGraphic().SetStroke(NewColor("FF7F7F7F")).SetWeight(0.5)))

	rich := RectangleXY(0, 0, 220, 60)
	rich.Plane = p.GetFrame()
	rich.Plane.Origin = at(260, 420)
	p.AddShape(NewTextBox(rich, "").SetFragments(NewFragment(
		Segment{Text: "Mixed ", Font: NewFont().SetSize(12)},
		Segment{Text: "bold", Font: NewFont().SetSize(12).SetStyle(FontBold)},
		Segment{Text: " and ", Font: NewFont().SetSize(12)},
		Segment{Text: "underlined", Font: NewFont().SetSize(12).SetStyle(FontUnderline).SetColor(ColorBlue)},
		Segment{Text: " runs.", Font: NewFont().SetSize(12)},
	)))

	linkBox := RectangleXY(0, 0, 160, 18)
	linkBox.Plane = p.GetFrame()
	linkBox.Plane.Origin = at(260, 520)
	p.AddShapes(
		NewTextPoint(at(262, 515), "go.dev").SetFont(NewFont().SetColor(ColorBlue).SetStyle(FontUnderline)),
		NewLink(linkBox, "https://go.dev", LinkURL),
		NewComment(at(420, 0), "review", "check title size"),
		NewPreviewText(rich, "preview only"),
		NewPreviewBoundary(box),
	)

	star := NewDrawing("star")
	for i := range 5 {
		a0 := math.Pi/2 + float64(i)*4*math.Pi/5
		a1 := a0 + 4*math.Pi/5
		star.Add(NewLine(Pt(math.Cos(a0), math.Sin(a0)), Pt(math.Cos(a1), math.Sin(a1))))
	}
	target := RectangleXY(0, 0, 100, 100)
	target.Plane = p.GetFrame()
	target.Plane.Origin = at(400, 640)
	p.AddDrawing(star, target)
}

func reportPage(p *Page) error {
	heading := TextBlock{Text: "Quarterly report", Font: NewFont().SetSize(18).SetStyle(FontBold)}
	intro := TextBlock{
		Text: "This page is laid out with blocks. Each block measures itself at the flow " +
			"width and expands into ordinary shapes.",
		Font: NewFont().SetSize(11),
	}

	table := NewTableBlock([][]string{
		{"Region", "Q1", "Q2", "Notes"},
		{"North", "12", "15", "Steady growth after the new depot opened."},
		{"South", "9", "7", "Supply issues in May."},
		{"East", "14", "18", ""},
	})
	table.Header = true
	table.Columns = []float64{2, 1, 1, 4}

	list := NewListBlock("Revenue grew in two of three regions.", "South needs a second supplier.")

	sales := []DataSet{
		NewDataSet("Sales", 12, 9, 14).SetFill(NewColor("FF4472C4")).SetLabels(LabelAbove),
		NewDataSet("", 15, 7, 18).SetFill(NewColor("FFED7D31")),
	}
	chart := ChartBlock{Kind: ChartColumn, DataSets: sales, Size: 220}

	logo, err := gradientPNG(64, 32)
	if err != nil {
		return err
	}
	img := ImageBlock{Source: ImageData(logo), Width: 128, Size: 64}

	if _, err := p.AddBlocks(nil, 40, 12, heading, intro, table, list, chart, img); err != nil {
		return err
	}
	b := p.Boundary()
	p.AddShape(NewImagePoint(p.GetFrame().PointAt(b.X.Max()-100, b.Y.Min()+60), ImageData(logo)))
	return nil
}

// gradientPNG encodes a small horizontal gradient.
func gradientPNG(w, h int) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			v := uint8(255 * x / max(w-1, 1))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: 80, B: 255 - v, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
