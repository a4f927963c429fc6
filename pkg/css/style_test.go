package css

import "testing"

func TestParseInlineStyle_SingleProperty(t *testing.T) {
	style := ParseInlineStyle("color: red")
	value, ok := style.Get("color")
	if !ok || value != "red" {
		t.Error("expected color='red'")
	}
}

func TestParseInlineStyle_MultipleProperties(t *testing.T) {
	style := ParseInlineStyle("color: red; width: 100px")
	color, _ := style.Get("color")
	width, _ := style.Get("width")
	if color != "red" || width != "100px" {
		t.Errorf("expected both properties to parse, got color=%q width=%q", color, width)
	}
}

func TestParseInlineStyle_Important(t *testing.T) {
	style := ParseInlineStyle("width: 100px !important")
	width, _ := style.Get("width")
	if width != "100px" {
		t.Errorf("expected width='100px', got %q", width)
	}
}

func TestGetLength_PixelValue(t *testing.T) {
	style := ParseInlineStyle("width: 100px")
	width, ok := style.GetLength("width")
	if !ok || width != 100.0 {
		t.Errorf("expected width=100.0, got %f", width)
	}
}

func TestGetLength_EmValue(t *testing.T) {
	style := ParseInlineStyle("font-size: 20px; width: 2em")
	width, ok := style.GetLength("width")
	if !ok || width != 40 {
		t.Errorf("expected width=40, got %f", width)
	}
}

func TestParseColor_BasicColors(t *testing.T) {
	tests := map[string]Color{
		"red":     {255, 0, 0},
		"blue":    {0, 0, 255},
		"green":   {0, 128, 0},
		"#fff":    {255, 255, 255},
		"#102030": {16, 32, 48},
	}
	for name, expected := range tests {
		color, ok := ParseColor(name)
		if !ok || color != expected {
			t.Errorf("color %s: expected %+v, got %+v", name, expected, color)
		}
	}
}

func TestParseInlineStyle_MarginShorthand(t *testing.T) {
	style := ParseInlineStyle("margin: 10px")
	for _, side := range []string{"top", "right", "bottom", "left"} {
		if m := style.GetMarginSize(side); m != Length(10) {
			t.Errorf("expected margin-%s=10px, got %v", side, m)
		}
	}
}

func TestParseInlineStyle_MarginFourValues(t *testing.T) {
	style := ParseInlineStyle("margin: 10px 20px 30px auto")
	if m := style.GetMarginSize("top"); m != Length(10) {
		t.Errorf("expected margin-top 10px, got %v", m)
	}
	if m := style.GetMarginSize("right"); m != Length(20) {
		t.Errorf("expected margin-right 20px, got %v", m)
	}
	if m := style.GetMarginSize("bottom"); m != Length(30) {
		t.Errorf("expected margin-bottom 30px, got %v", m)
	}
	if m := style.GetMarginSize("left"); !m.IsAuto() {
		t.Errorf("expected margin-left auto, got %v", m)
	}
}

func TestParseInlineStyle_PaddingThreeValues(t *testing.T) {
	style := ParseInlineStyle("padding: 1px 2px 3px")
	if p := style.GetPaddingSize("left"); p != Length(2) {
		t.Errorf("expected padding-left 2px, got %v", p)
	}
	if p := style.GetPaddingSize("bottom"); p != Length(3) {
		t.Errorf("expected padding-bottom 3px, got %v", p)
	}
}

func TestParseInlineStyle_BorderShorthand(t *testing.T) {
	style := ParseInlineStyle("border: 2px solid black")
	border := style.GetBorderWidth()
	if border.Top != 2 || border.Right != 2 || border.Bottom != 2 || border.Left != 2 {
		t.Errorf("expected all borders to be 2, got %+v", border)
	}
	if c, _ := style.Get("border-color"); c != "black" {
		t.Errorf("expected border-color black, got %q", c)
	}
}

func TestGetBorderWidth_StyleNone(t *testing.T) {
	style := ParseInlineStyle("border-width: 4px; border-left-style: none")
	border := style.GetBorderWidth()
	if border.Left != 0 || border.Top != 4 {
		t.Errorf("expected left=0 top=4, got %+v", border)
	}
}

func TestParseDeclarations_ReportsMalformed(t *testing.T) {
	style, err := ParseDeclarations("width: 10px; margin: 1px 2px 3px 4px 5px; height: 5px")
	if err == nil {
		t.Fatal("expected an error for the five-value margin")
	}
	if w, _ := style.Get("width"); w != "10px" {
		t.Errorf("expected width to survive, got %q", w)
	}
	if h, _ := style.Get("height"); h != "5px" {
		t.Errorf("expected height to survive, got %q", h)
	}
}

func TestGetSize_Defaults(t *testing.T) {
	style := NewStyle()
	if w := style.GetSize("width"); !w.IsAuto() {
		t.Errorf("expected width auto, got %v", w)
	}
	if w := style.GetSize("max-width"); !w.IsNone() {
		t.Errorf("expected max-width none, got %v", w)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want Size
	}{
		{"auto", Auto()},
		{"none", None()},
		{"12px", Length(12)},
		{"12", Length(12)},
		{"-3.5px", Length(-3.5)},
		{"50%", Percentage(50)},
		{"2em", Length(32)},
		{"min-content", Size{Type: SizeMinContent}},
		{"max-content", Size{Type: SizeMaxContent}},
		{"fit-content", Size{Type: SizeFitContent}},
		{"fit-content(100px)", Size{Type: SizeFitContent}},
	}
	for _, tt := range tests {
		got, ok := ParseSize(tt.in, 16)
		if !ok || got != tt.want {
			t.Errorf("ParseSize(%q): expected %v, got %v (ok=%v)", tt.in, tt.want, got, ok)
		}
	}
	for _, bad := range []string{"", "red", "10px 20px", "3vw"} {
		if _, ok := ParseSize(bad, 16); ok {
			t.Errorf("ParseSize(%q): expected failure", bad)
		}
	}
}

func TestSizeResolve(t *testing.T) {
	if v := Percentage(25).Resolve(200); v != 50 {
		t.Errorf("expected 50, got %f", v)
	}
	if v := Length(7).Resolve(200); v != 7 {
		t.Errorf("expected 7, got %f", v)
	}
	if v := Auto().Resolve(200); v != 0 {
		t.Errorf("expected 0, got %f", v)
	}
}

func TestDisplayAndBoxSizing(t *testing.T) {
	style := ParseInlineStyle("display: inline-flex; box-sizing: border-box")
	if !style.GetDisplay().IsFlex() {
		t.Errorf("expected flex display, got %s", style.GetDisplay())
	}
	if style.GetBoxSizing() != BoxSizingBorderBox {
		t.Errorf("expected border-box, got %s", style.GetBoxSizing())
	}
}

func TestGetAspectRatio(t *testing.T) {
	style := ParseInlineStyle("aspect-ratio: 16 / 9")
	r, ok := style.GetAspectRatio()
	if !ok || r < 1.77 || r > 1.78 {
		t.Errorf("expected 16/9, got %f (ok=%v)", r, ok)
	}
}
