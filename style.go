package pagedraw

import (
	"image/color"
	"slices"
	"strings"

	"golang.org/x/image/colornames"
)

// Color represents an ARGB color.
type Color struct {
	ARGB string // 8-character hex string, e.g., "FF000000" for black
}

// Predefined colors.
var (
	ColorBlack       = Color{ARGB: "FF000000"}
	ColorWhite       = Color{ARGB: "FFFFFFFF"}
	ColorRed         = Color{ARGB: "FFFF0000"}
	ColorGreen       = Color{ARGB: "FF00FF00"}
	ColorBlue        = Color{ARGB: "FF0000FF"}
	ColorYellow      = Color{ARGB: "FFFFFF00"}
	ColorTransparent = Color{ARGB: "00000000"}
)

// NewColor creates a new Color from an ARGB hex string.
// Accepts 6-char RGB (e.g. "FF0000") or 8-char ARGB (e.g. "FFFF0000").
// A leading "#" is stripped automatically.
func NewColor(argb string) Color {
	argb = strings.TrimPrefix(argb, "#")
	if len(argb) == 6 {
		argb = "FF" + argb
	}
	argb = strings.ToUpper(argb)
	if !isValidARGB(argb) {
		return ColorBlack
	}
	return Color{ARGB: argb}
}

// ColorFromRGBA converts an image/color value.
func ColorFromRGBA(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	const hex = "0123456789ABCDEF"
	b := []byte{n.A >> 4, n.A & 15, n.R >> 4, n.R & 15, n.G >> 4, n.G & 15, n.B >> 4, n.B & 15}
	for i := range b {
		b[i] = hex[b[i]]
	}
	return Color{ARGB: string(b)}
}

// ColorByName returns the SVG 1.1 color with the given name, such as
// "steelblue".
func ColorByName(name string) (Color, bool) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ColorBlack, false
	}
	return ColorFromRGBA(c), true
}

// isValidARGB checks that s is exactly 8 hex characters.
func isValidARGB(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// GetRed returns the red component (0-255).
func (c Color) GetRed() uint8 { return parseHexByte(c.ARGB, 2) }

// GetGreen returns the green component (0-255).
func (c Color) GetGreen() uint8 { return parseHexByte(c.ARGB, 4) }

// GetBlue returns the blue component (0-255).
func (c Color) GetBlue() uint8 { return parseHexByte(c.ARGB, 6) }

// GetAlpha returns the alpha component (0-255).
func (c Color) GetAlpha() uint8 { return parseHexByte(c.ARGB, 0) }

// IsTransparent reports whether the color is unset or fully transparent.
// The zero Color counts as transparent.
func (c Color) IsTransparent() bool {
	return c.ARGB == "" || c.GetAlpha() == 0
}

// NRGBA returns the color as a non-premultiplied image/color value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.GetRed(), G: c.GetGreen(), B: c.GetBlue(), A: c.GetAlpha()}
}

// parseHexByte parses two hex characters at offset into a uint8.
// Returns 0 on any error (out of range, invalid chars).
func parseHexByte(s string, offset int) uint8 {
	if offset+2 > len(s) {
		return 0
	}
	h := hexVal(s[offset])
	l := hexVal(s[offset+1])
	if h < 0 || l < 0 {
		return 0
	}
	return uint8(h<<4 | l)
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// Graphic bundles the stroke and fill style of a shape.
//
// Weight is the stroke width in points. A Dash pattern holds alternating
// on/off lengths; an empty pattern draws a solid line. A zero weight
// suppresses the stroke even when a pattern is present.
type Graphic struct {
	Fill   Color
	Stroke Color
	Weight float64
	Dash   []float64
}

// NewGraphic returns a black one-point solid stroke with no fill.
func NewGraphic() Graphic {
	return Graphic{Fill: ColorTransparent, Stroke: ColorBlack, Weight: 1}
}

// Clone returns a deep copy of g.
func (g Graphic) Clone() Graphic {
	g.Dash = slices.Clone(g.Dash)
	return g
}

// SetFill returns a copy of g with the given fill color.
func (g Graphic) SetFill(c Color) Graphic {
	g = g.Clone()
	g.Fill = c
	return g
}

// SetStroke returns a copy of g with the given stroke color.
func (g Graphic) SetStroke(c Color) Graphic {
	g = g.Clone()
	g.Stroke = c
	return g
}

// SetWeight returns a copy of g with the given stroke weight (clamped to >= 0).
func (g Graphic) SetWeight(w float64) Graphic {
	g = g.Clone()
	g.Weight = max(w, 0)
	return g
}

// SetDash returns a copy of g with the given dash pattern. Non-positive
// lengths are dropped.
func (g Graphic) SetDash(pattern ...float64) Graphic {
	g.Dash = nil
	for _, d := range pattern {
		if d > 0 {
			g.Dash = append(g.Dash, d)
		}
	}
	return g
}

// strokes reports whether the graphic produces a visible outline.
func (g Graphic) strokes() bool {
	return g.Weight > 0 && !g.Stroke.IsTransparent()
}

// FontStyle selects the face variant and decoration of a Font.
type FontStyle int

const (
	FontRegular FontStyle = iota
	FontBold
	FontItalic
	FontBoldItalic
	FontStrikeout
	FontUnderline
)

// IsBold reports whether the style uses a bold face.
func (s FontStyle) IsBold() bool { return s == FontBold || s == FontBoldItalic }

// IsItalic reports whether the style uses an italic face.
func (s FontStyle) IsItalic() bool { return s == FontItalic || s == FontBoldItalic }

// Justification is the horizontal alignment of text.
type Justification int

const (
	JustifyNone Justification = iota
	JustifyLeft
	JustifyCenter
	JustifyRight
	JustifyFull
)

// fontField identifies a Font field for the explicit-set mask.
type fontField uint8

const (
	fontFieldFamily fontField = 1 << iota
	fontFieldSize
	fontFieldColor
	fontFieldStyle
	fontFieldJustification
	fontFieldLineSpacing
	fontFieldParagraphSpacing
)

// Font describes text appearance.
//
// Each field remembers whether it was set explicitly, so a Font can act as
// a sparse override on top of a named base style (see Merge). The setters
// return modified copies.
type Font struct {
	Family           string
	Size             float64 // in points
	Color            Color
	Style            FontStyle
	Justification    Justification
	LineSpacing      float64 // multiple of Size
	ParagraphSpacing float64 // in points

	set fontField
}

// NewFont creates a new Font with defaults. No field is marked as set.
func NewFont() Font {
	return Font{
		Family:        "Go",
		Size:          10,
		Color:         ColorBlack,
		Style:         FontRegular,
		Justification: JustifyLeft,
		LineSpacing:   1.2,
	}
}

// SetFamily sets the font family.
func (f Font) SetFamily(name string) Font {
	f.Family = name
	f.set |= fontFieldFamily
	return f
}

// SetSize sets the font size in points (clamped to 1–4000).
func (f Font) SetSize(size float64) Font {
	f.Size = min(max(size, 1), 4000)
	f.set |= fontFieldSize
	return f
}

// SetColor sets the font color.
func (f Font) SetColor(c Color) Font {
	f.Color = c
	f.set |= fontFieldColor
	return f
}

// SetStyle sets the face style.
func (f Font) SetStyle(s FontStyle) Font {
	f.Style = s
	f.set |= fontFieldStyle
	return f
}

// SetJustification sets the horizontal alignment.
func (f Font) SetJustification(j Justification) Font {
	f.Justification = j
	f.set |= fontFieldJustification
	return f
}

// SetLineSpacing sets the line spacing as a multiple of the size.
func (f Font) SetLineSpacing(m float64) Font {
	f.LineSpacing = max(m, 0)
	f.set |= fontFieldLineSpacing
	return f
}

// SetParagraphSpacing sets the space after a paragraph in points.
func (f Font) SetParagraphSpacing(pt float64) Font {
	f.ParagraphSpacing = max(pt, 0)
	f.set |= fontFieldParagraphSpacing
	return f
}

// IsSet reports whether any field was set explicitly.
func (f Font) IsSet() bool { return f.set != 0 }

// Merge overlays the explicitly set fields of f onto base.
func (f Font) Merge(base Font) Font {
	out := base
	if f.set&fontFieldFamily != 0 {
		out.Family = f.Family
	}
	if f.set&fontFieldSize != 0 {
		out.Size = f.Size
	}
	if f.set&fontFieldColor != 0 {
		out.Color = f.Color
	}
	if f.set&fontFieldStyle != 0 {
		out.Style = f.Style
	}
	if f.set&fontFieldJustification != 0 {
		out.Justification = f.Justification
	}
	if f.set&fontFieldLineSpacing != 0 {
		out.LineSpacing = f.LineSpacing
	}
	if f.set&fontFieldParagraphSpacing != 0 {
		out.ParagraphSpacing = f.ParagraphSpacing
	}
	out.set = base.set | f.set
	return out
}

// lineHeight returns the baseline-to-baseline distance in points.
func (f Font) lineHeight() float64 {
	ls := f.LineSpacing
	if ls <= 0 {
		ls = 1.2
	}
	return f.Size * ls
}

// Segment is a run of text drawn with one Font.
type Segment struct {
	Text string
	Font Font
}

// Fragment is one logical run of differently styled inline text.
type Fragment struct {
	Segments []Segment
}

// NewFragment creates a Fragment from segments.
func NewFragment(segments ...Segment) Fragment {
	return Fragment{Segments: slices.Clone(segments)}
}

// Text returns the concatenated text of all segments.
func (fr Fragment) Text() string {
	var sb strings.Builder
	for _, s := range fr.Segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Clone returns a deep copy of fr.
func (fr Fragment) Clone() Fragment {
	return Fragment{Segments: slices.Clone(fr.Segments)}
}

func cloneFragments(frs []Fragment) []Fragment {
	if frs == nil {
		return nil
	}
	out := make([]Fragment, len(frs))
	for i, fr := range frs {
		out[i] = fr.Clone()
	}
	return out
}
