package pagedraw

import (
	"errors"
	"strings"
	"testing"
)

func TestBreakLines(t *testing.T) {
	m := FixedWidthMeasurer{Advance: 0.6}
	f := NewFont().SetSize(10)

	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"greedy", "a bb ccc", 40, []string{"a bb ", "ccc "}},
		{"fits", "a bb", 40, []string{"a bb "}},
		{"long word", "abcdefghij x", 40, []string{"abcdefghij ", "x "}},
		{"single newline joins", "a\nb", 40, []string{"a b "}},
		{"blank line forces a break", "a\n\nb", 40, []string{"a ", " ", "b "}},
		{"collapses spaces", "  a   b  ", 40, []string{"a b "}},
		{"crlf", "a\r\n\r\nb", 40, []string{"a ", " ", "b "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BreakLines(tt.text, f, tt.width, m)
			if err != nil {
				t.Fatalf("BreakLines: %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("lines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBreakLinesEveryLineHasOneTrailingSpace(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog and keeps running far away"
	lines, err := BreakLines(text, NewFont().SetSize(10), 60, FixedWidthMeasurer{Advance: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	var words []string
	for _, l := range lines {
		if !strings.HasSuffix(l, " ") || strings.HasSuffix(l, "  ") {
			t.Errorf("line %q should end in exactly one space", l)
		}
		words = append(words, strings.Fields(l)...)
	}
	if strings.Join(words, " ") != text {
		t.Errorf("words lost: %q", strings.Join(words, " "))
	}
	for _, l := range lines {
		w, _ := FixedWidthMeasurer{Advance: 0.5}.MeasureString(strings.TrimSuffix(l, " "), NewFont().SetSize(10))
		if w > 60 && strings.Contains(strings.TrimSpace(l), " ") {
			t.Errorf("line %q is %gpt wide, over 60", l, w)
		}
	}
}

func TestBreakLinesBlank(t *testing.T) {
	lines, err := BreakLines(" \n\t ", NewFont(), 100, FixedWidthMeasurer{Advance: 0.5})
	if err != nil || lines != nil {
		t.Errorf("BreakLines(blank) = %q, %v; want nil, nil", lines, err)
	}
}

func TestBreakLinesValidation(t *testing.T) {
	m := FixedWidthMeasurer{Advance: 0.5}
	tests := []struct {
		name  string
		font  Font
		width float64
		want  error
	}{
		{"empty family", NewFont().SetFamily(" "), 100, ErrEmptyFontFamily},
		{"tiny font", Font{Family: "Go", Size: 0.5}, 100, ErrFontTooSmall},
		{"narrow box", NewFont().SetSize(10), 19, ErrWidthTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BreakLines("text", tt.font, tt.width, m)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBreakLinesNormalizesToNFC(t *testing.T) {
	// "e" followed by a combining acute composes to one rune
	lines, err := BreakLines("e\u0301", NewFont(), 100, FixedWidthMeasurer{Advance: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0] != "\u00e9 " {
		t.Errorf("lines = %q, want [\"\u00e9 \"]", lines)
	}
}

func TestTextHeight(t *testing.T) {
	f := NewFont().SetSize(10).SetLineSpacing(1.5)
	if h := TextHeight(3, f); !approx(h, 45) {
		t.Errorf("TextHeight = %g, want 45", h)
	}
}
