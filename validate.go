package pagedraw

import (
	"fmt"
	"strings"
)

// Validate checks the document for structural issues and returns an error
// describing all problems found, or nil if the document is valid.
func (d *Document) Validate() error {
	var errs []string

	if d.layout.Width <= 0 {
		errs = append(errs, "layout width must be positive")
	}
	if d.layout.Height <= 0 {
		errs = append(errs, "layout height must be positive")
	}
	if len(d.pages) == 0 {
		errs = append(errs, "document must have at least one page")
	}

	for i, p := range d.pages {
		prefix := fmt.Sprintf("page %d", i+1)
		if p == nil {
			errs = append(errs, prefix+": page is nil")
			continue
		}
		for _, e := range validatePage(p) {
			errs = append(errs, prefix+": "+e)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validatePage(p *Page) []string {
	var errs []string
	if p.width <= 0 || p.height <= 0 {
		errs = append(errs, fmt.Sprintf("page size %gx%g is not positive", p.width, p.height))
	}
	for j, s := range p.shapes {
		prefix := fmt.Sprintf("shape %d (%s)", j+1, s.GetKind())
		for _, e := range validateShape(s) {
			errs = append(errs, prefix+": "+e)
		}
	}
	return errs
}

// validateShape reports problems that would make rendering fail or draw
// nothing at all.
func validateShape(s Shape) []string {
	var errs []string
	if s.geometry == nil {
		return []string{"shape has no geometry"}
	}
	if s.graphic.Weight < 0 {
		errs = append(errs, "stroke weight is negative")
	}
	for _, c := range []Color{s.graphic.Fill, s.graphic.Stroke, s.font.Color} {
		if c.ARGB != "" && !isValidARGB(c.ARGB) {
			errs = append(errs, "color is invalid ARGB: "+c.ARGB)
		}
	}

	switch g := s.geometry.(type) {
	case TextBoxGeometry:
		errs = append(errs, validateFont(s.font)...)
		if !s.boundary.IsValid() {
			errs = append(errs, "text box boundary is empty")
		} else if s.boundary.Width() < 2*s.font.Size*s.scale {
			errs = append(errs, "text box is narrower than twice the font size")
		}
	case TextPointGeometry:
		errs = append(errs, validateFont(s.font)...)
	case ImageFrameGeometry:
		if len(g.Image.Data) == 0 && g.Image.Path == "" {
			errs = append(errs, "image has no data or path")
		}
		if !s.boundary.IsValid() {
			errs = append(errs, "image frame boundary is empty")
		}
	case ImagePointGeometry:
		if len(g.Image.Data) == 0 && g.Image.Path == "" {
			errs = append(errs, "image has no data or path")
		}
	case ChartGeometry:
		if _, err := ChartLayout(g.DataSets, g.Chart, s.boundary); err != nil {
			errs = append(errs, err.Error())
		}
	case LinkGeometry:
		if g.Target == "" {
			errs = append(errs, "link target is empty")
		}
	case CommentGeometry:
		if g.Text == "" {
			errs = append(errs, "comment text is empty")
		}
	}
	return errs
}

func validateFont(f Font) []string {
	var errs []string
	if strings.TrimSpace(f.Family) == "" {
		errs = append(errs, ErrEmptyFontFamily.Error())
	}
	if f.Size < 1 {
		errs = append(errs, ErrFontTooSmall.Error())
	}
	return errs
}
