package text

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestEstimateMeasurer(t *testing.T) {
	w, h := EstimateMeasurer{}.Measure("abcd", 10)
	if w != 24 || h != 12 {
		t.Errorf("expected 24x12, got %vx%v", w, h)
	}
}

func TestMinMaxContentWidth(t *testing.T) {
	m := EstimateMeasurer{}
	if w := MinContentWidth(m, "a bbb cc", 10); w != 18 {
		t.Errorf("expected min-content 18, got %v", w)
	}
	if w := MaxContentWidth(m, "  a  bbb cc ", 10); w != 48 {
		t.Errorf("expected max-content 48, got %v", w)
	}
}

func TestBreakLines(t *testing.T) {
	m := EstimateMeasurer{}
	// Each glyph is 6px wide at 10px.
	got := BreakLines(m, "aa bb cc dddddddd", 10, 30)
	want := []string{"aa bb", "cc", "dddddddd"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
	if lines := BreakLines(m, "   ", 10, 30); len(lines) != 0 {
		t.Errorf("expected no lines for blank text, got %q", lines)
	}
}

func TestNewFontMeasurer_MissingFont(t *testing.T) {
	if _, err := NewFontMeasurer(filepath.Join(t.TempDir(), "nope.ttf")); err == nil {
		t.Error("expected an error for a missing font file")
	}
}
