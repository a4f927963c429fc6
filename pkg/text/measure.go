package text

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fogleman/gg"
)

// Measurer measures a single run of text set in one font size.
type Measurer interface {
	Measure(s string, fontSize float64) (width, height float64)
}

// EstimateMeasurer approximates glyph advances as 0.6em and line height
// as 1.2em. It needs no font files and is deterministic.
type EstimateMeasurer struct{}

func (EstimateMeasurer) Measure(s string, fontSize float64) (width, height float64) {
	return float64(utf8.RuneCountInString(s)) * fontSize * 0.6, fontSize * 1.2
}

// FontMeasurer measures text with a TrueType font loaded through gg.
type FontMeasurer struct {
	path string

	mu       sync.Mutex
	contexts map[float64]*gg.Context
	fallback EstimateMeasurer
}

// NewFontMeasurer loads the font at path to make sure it is usable.
func NewFontMeasurer(path string) (*FontMeasurer, error) {
	m := &FontMeasurer{path: path, contexts: make(map[float64]*gg.Context)}
	if _, err := m.context(16); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *FontMeasurer) context(fontSize float64) (*gg.Context, error) {
	if dc, ok := m.contexts[fontSize]; ok {
		return dc, nil
	}
	dc := gg.NewContext(1, 1)
	if err := dc.LoadFontFace(m.path, fontSize); err != nil {
		return nil, fmt.Errorf("loading font %s: %w", m.path, err)
	}
	m.contexts[fontSize] = dc
	return dc, nil
}

// Measure returns the advance width and font height of s. Sizes whose
// face cannot be loaded fall back to the estimate.
func (m *FontMeasurer) Measure(s string, fontSize float64) (width, height float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dc, err := m.context(fontSize)
	if err != nil {
		return m.fallback.Measure(s, fontSize)
	}
	w, _ := dc.MeasureString(s)
	return w, dc.FontHeight() * 1.2
}

// SplitWords splits text at whitespace.
func SplitWords(text string) []string {
	return strings.Fields(text)
}

// MinContentWidth is the width of the longest word.
func MinContentWidth(m Measurer, text string, fontSize float64) float64 {
	longest := 0.0
	for _, word := range SplitWords(text) {
		if w, _ := m.Measure(word, fontSize); w > longest {
			longest = w
		}
	}
	return longest
}

// MaxContentWidth is the width of the text set on a single line.
func MaxContentWidth(m Measurer, text string, fontSize float64) float64 {
	w, _ := m.Measure(strings.Join(SplitWords(text), " "), fontSize)
	return w
}

// BreakLines breaks text into lines that fit within maxWidth. A word wider
// than maxWidth occupies a line of its own.
func BreakLines(m Measurer, text string, fontSize, maxWidth float64) []string {
	words := SplitWords(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0)
	currentLine := ""
	for _, word := range words {
		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}
		if lineWidth, _ := m.Measure(testLine, fontSize); lineWidth <= maxWidth || currentLine == "" {
			currentLine = testLine
			continue
		}
		// Word doesn't fit, start new line
		lines = append(lines, currentLine)
		currentLine = word
	}
	return append(lines, currentLine)
}
