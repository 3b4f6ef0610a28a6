package pagedraw

import (
	"image/color"
	"testing"
)

func TestNewColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"FF0000", "FFFF0000"},
		{"#00ff00", "FF00FF00"},
		{"800000FF", "800000FF"},
		{"xyz", "FF000000"},
		{"", "FF000000"},
	}
	for _, tt := range tests {
		if got := NewColor(tt.in).ARGB; got != tt.want {
			t.Errorf("NewColor(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestColorComponents(t *testing.T) {
	c := NewColor("80112233")
	if c.GetAlpha() != 0x80 || c.GetRed() != 0x11 || c.GetGreen() != 0x22 || c.GetBlue() != 0x33 {
		t.Errorf("components of %s wrong", c.ARGB)
	}
	if got := c.NRGBA(); got != (color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}) {
		t.Errorf("NRGBA() = %v", got)
	}
	if !(Color{}).IsTransparent() || !ColorTransparent.IsTransparent() || ColorBlack.IsTransparent() {
		t.Error("IsTransparent wrong")
	}
	if ColorFromRGBA(color.NRGBA{R: 0xAB, G: 0xCD, B: 0xEF, A: 0xFF}).ARGB != "FFABCDEF" {
		t.Error("ColorFromRGBA wrong")
	}
}

func TestColorByName(t *testing.T) {
	c, ok := ColorByName(" SteelBlue ")
	if !ok {
		t.Fatal("steelblue should be known")
	}
	if c.ARGB != "FF4682B4" {
		t.Errorf("steelblue = %s, want FF4682B4", c.ARGB)
	}
	if _, ok := ColorByName("not-a-color"); ok {
		t.Error("unknown name should not resolve")
	}
}

func TestGraphicSetters(t *testing.T) {
	g := NewGraphic()
	if !g.strokes() {
		t.Error("default graphic should stroke")
	}
	d := g.SetDash(4, 0, -1, 2)
	if len(d.Dash) != 2 || d.Dash[0] != 4 || d.Dash[1] != 2 {
		t.Errorf("dash = %v, want [4 2]", d.Dash)
	}
	if len(g.Dash) != 0 {
		t.Error("SetDash modified the receiver")
	}
	if g.SetWeight(-3).Weight != 0 {
		t.Error("negative weight should clamp to 0")
	}
	if g.SetWeight(0).strokes() {
		t.Error("zero weight should not stroke")
	}

	c := d.Clone()
	c.Dash[0] = 99
	if d.Dash[0] != 4 {
		t.Error("Clone shares the dash slice")
	}
}

func TestFontMerge(t *testing.T) {
	base := NewFont().SetFamily("Arial").SetSize(12).SetColor(ColorRed)
	over := NewFont().SetSize(20).SetStyle(FontBold)
	m := over.Merge(base)
	if m.Family != "Arial" || m.Size != 20 || m.Color != ColorRed || m.Style != FontBold {
		t.Errorf("merged font = %+v", m)
	}
	if NewFont().IsSet() {
		t.Error("new font should have no fields set")
	}
	if !m.IsSet() {
		t.Error("merged font should report set fields")
	}
	if got := NewFont().Merge(base); got.Size != 12 {
		t.Errorf("empty override changed size to %g", got.Size)
	}
}

func TestFontSizeClamp(t *testing.T) {
	if s := NewFont().SetSize(0.2).Size; s != 1 {
		t.Errorf("size = %g, want 1", s)
	}
	if s := NewFont().SetSize(5000).Size; s != 4000 {
		t.Errorf("size = %g, want 4000", s)
	}
	if lh := NewFont().SetSize(10).SetLineSpacing(1.5).lineHeight(); !approx(lh, 15) {
		t.Errorf("line height = %g, want 15", lh)
	}
}

func TestFragmentText(t *testing.T) {
	fr := NewFragment(Segment{Text: "ab"}, Segment{Text: "cd"})
	if fr.Text() != "abcd" {
		t.Errorf("Text() = %q", fr.Text())
	}
	c := fr.Clone()
	c.Segments[0].Text = "x"
	if fr.Segments[0].Text != "ab" {
		t.Error("Clone shares segments")
	}
}
