package pagedraw

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Line breaking errors.
var (
	ErrEmptyFontFamily = errors.New("pagedraw: font family is empty")
	ErrFontTooSmall    = errors.New("pagedraw: font size is below 1pt")
	ErrWidthTooSmall   = errors.New("pagedraw: width is below twice the font size")
)

// forcedBreak stands for an empty line in the token stream.
const forcedBreak = "\n"

// BreakLines wraps text greedily into lines no wider than width.
//
// Words are separated by spaces. A single newline inside a word run is
// treated as a space; an empty line forces a break and produces a line of
// its own. A word wider than width gets a line of its own. Every returned
// line ends in exactly one space, which justified rendering uses as slack.
// Blank text yields no lines.
func BreakLines(text string, f Font, width float64, m Measurer) ([]string, error) {
	if strings.TrimSpace(f.Family) == "" {
		return nil, ErrEmptyFontFamily
	}
	if f.Size < 1 {
		return nil, fmt.Errorf("%w: %gpt", ErrFontTooSmall, f.Size)
	}
	if width < 2*f.Size {
		return nil, fmt.Errorf("%w: width %g, size %g", ErrWidthTooSmall, width, f.Size)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	tokens := tokenize(text)
	var lines []string
	for i := 0; i < len(tokens); {
		line := tokens[i]
		i++
		if line == forcedBreak {
			lines = append(lines, " ")
			continue
		}
		w, err := m.MeasureString(line, f)
		if err != nil {
			return nil, err
		}
		if w < width {
			for i < len(tokens) && tokens[i] != forcedBreak {
				next := line + " " + tokens[i]
				w, err := m.MeasureString(next, f)
				if err != nil {
					return nil, err
				}
				if w > width {
					break
				}
				line = next
				i++
			}
		}
		lines = append(lines, line+" ")
	}
	return lines, nil
}

// tokenize splits NFC-normalized text into words and forced breaks.
func tokenize(text string) []string {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	words := strings.FieldsFunc(text, func(r rune) bool {
		return r != '\n' && unicode.IsSpace(r)
	})
	var out []string
	for _, w := range words {
		if !strings.Contains(w, "\n") {
			out = append(out, w)
			continue
		}
		for _, part := range strings.Split(w, "\n") {
			if part == "" {
				out = append(out, forcedBreak)
			} else {
				out = append(out, part)
			}
		}
	}
	return out
}

// TextHeight returns the height of n lines set in f.
func TextHeight(n int, f Font) float64 {
	return float64(n) * f.lineHeight()
}
