package pagedraw

// PageLayout holds page dimensions in points.
type PageLayout struct {
	Width  float64
	Height float64
	Name   string
}

// Standard layout names.
const (
	LayoutA4         = "A4"
	LayoutA3         = "A3"
	LayoutA5         = "A5"
	LayoutLetter     = "letter"
	LayoutLegal      = "legal"
	LayoutScreen4x3  = "screen4x3"
	LayoutScreen16x9 = "screen16x9"
	LayoutCustom     = "custom"
)

var layoutSizes = map[string][2]float64{
	LayoutA4:         {595.28, 841.89},
	LayoutA3:         {841.89, 1190.55},
	LayoutA5:         {419.53, 595.28},
	LayoutLetter:     {612, 792},
	LayoutLegal:      {612, 1008},
	LayoutScreen4x3:  {720, 540},
	LayoutScreen16x9: {960, 540},
}

// NewPageLayout creates a portrait A4 layout.
func NewPageLayout() PageLayout {
	return PageLayout{Width: 595.28, Height: 841.89, Name: LayoutA4}
}

// SetLayout selects a predefined layout. Unknown names leave the layout
// unchanged.
func (pl *PageLayout) SetLayout(name string) {
	if sz, ok := layoutSizes[name]; ok {
		pl.Width, pl.Height, pl.Name = sz[0], sz[1], name
	}
}

// SetCustomLayout sets custom dimensions in points. Non-positive values
// fall back to A4.
func (pl *PageLayout) SetCustomLayout(width, height float64) {
	if width <= 0 {
		width = 595.28
	}
	if height <= 0 {
		height = 841.89
	}
	pl.Width = width
	pl.Height = height
	pl.Name = LayoutCustom
}

// Landscape returns the layout with width and height swapped so that the
// page is wider than tall.
func (pl PageLayout) Landscape() PageLayout {
	if pl.Width < pl.Height {
		pl.Width, pl.Height = pl.Height, pl.Width
	}
	return pl
}
