package pagedraw

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Measurer reports the advance width of a string in points.
type Measurer interface {
	MeasureString(text string, f Font) (float64, error)
}

// ErrNoFontData is returned by ShapingMeasurer for fonts loaded from a
// collection, whose bytes are not available for shaping.
var ErrNoFontData = errors.New("pagedraw: no font data for shaping")

// FaceMeasurer measures with unhinted x/image faces from a FontCache.
type FaceMeasurer struct {
	cache *FontCache
	mu    sync.Mutex
}

// NewFaceMeasurer creates a FaceMeasurer. A nil cache selects a fresh
// embedded-only cache.
func NewFaceMeasurer(fc *FontCache) *FaceMeasurer {
	if fc == nil {
		fc = NewEmbeddedFontCache()
	}
	return &FaceMeasurer{cache: fc}
}

// MeasureString implements Measurer.
func (m *FaceMeasurer) MeasureString(text string, f Font) (float64, error) {
	face := m.cache.MeasureFace(f)
	// faces keep scratch buffers and may not be used concurrently
	m.mu.Lock()
	adv := font.MeasureString(face, text)
	m.mu.Unlock()
	return float64(adv) / 64, nil
}

// ShapingMeasurer measures shaped text, so kerning and ligatures are
// taken into account.
type ShapingMeasurer struct {
	cache  *FontCache
	mu     sync.Mutex
	faces  map[*sfnt.Font]*gotext.Face
	shaper shaping.HarfbuzzShaper
}

// NewShapingMeasurer creates a ShapingMeasurer over the fonts of fc. A nil
// cache selects a fresh embedded-only cache.
func NewShapingMeasurer(fc *FontCache) *ShapingMeasurer {
	if fc == nil {
		fc = NewEmbeddedFontCache()
	}
	return &ShapingMeasurer{cache: fc, faces: make(map[*sfnt.Font]*gotext.Face)}
}

// MeasureString implements Measurer.
func (m *ShapingMeasurer) MeasureString(text string, f Font) (float64, error) {
	if text == "" {
		return 0, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(f)
	if err != nil {
		return 0, err
	}
	runes := []rune(text)
	out := m.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      fixed.Int26_6(f.Size*64 + 0.5),
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	})
	return float64(out.Advance) / 64, nil
}

// face must be called with m.mu held.
func (m *ShapingMeasurer) face(f Font) (*gotext.Face, error) {
	key := m.cache.SFNT(f)
	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	data := m.cache.FontData(f)
	if data == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoFontData, f.Family)
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("shape %q: %w", f.Family, err)
	}
	m.faces[key] = face
	return face, nil
}

// FixedWidthMeasurer gives every rune the same advance, expressed as a
// fraction of the font size.
type FixedWidthMeasurer struct {
	Advance float64
}

// MeasureString implements Measurer.
func (m FixedWidthMeasurer) MeasureString(text string, f Font) (float64, error) {
	return float64(utf8.RuneCountInString(text)) * m.Advance * f.Size, nil
}
