package css

import (
	"strconv"
	"strings"
)

// Style holds the computed values of a box as longhand property/value pairs.
// Shorthands are expanded when the style is parsed.
type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	val, ok := s.Properties[property]
	return val, ok
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

// Clone returns a copy that can be modified independently.
func (s *Style) Clone() *Style {
	c := NewStyle()
	for k, v := range s.Properties {
		c.Properties[k] = v
	}
	return c
}

// GetLength returns a property as an absolute length in pixels.
// Percentages and keywords do not resolve and report false.
func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	size, ok := ParseSize(val, s.emBase(property))
	if !ok || size.Type != SizeLength {
		return 0, false
	}
	return size.Value, true
}

// emBase is the font size em units resolve against. font-size itself
// resolves against the default size to avoid recursion.
func (s *Style) emBase(property string) float64 {
	if property == "font-size" {
		return DefaultFontSize
	}
	return s.GetFontSize()
}

// BoxEdge represents the four sides of a box (top, right, bottom, left)
type BoxEdge struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Horizontal returns left + right.
func (e BoxEdge) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns top + bottom.
func (e BoxEdge) Vertical() float64 { return e.Top + e.Bottom }

// GetBorderWidth returns the border width for all four sides. Borders with
// style none or hidden have zero width.
func (s *Style) GetBorderWidth() BoxEdge {
	return BoxEdge{
		Top:    s.borderSide("top"),
		Right:  s.borderSide("right"),
		Bottom: s.borderSide("bottom"),
		Left:   s.borderSide("left"),
	}
}

func (s *Style) borderSide(side string) float64 {
	if st, ok := s.Get("border-" + side + "-style"); ok && (st == "none" || st == "hidden") {
		return 0
	}
	w, ok := s.GetLength("border-" + side + "-width")
	if !ok || w < 0 {
		return 0
	}
	return w
}

// GetMarginSize returns the margin on one side ("top", "right", "bottom",
// "left"). Missing margins are zero lengths.
func (s *Style) GetMarginSize(side string) Size {
	return s.sizeOrZero("margin-" + side)
}

// GetPaddingSize returns the padding on one side. Missing padding is zero.
func (s *Style) GetPaddingSize(side string) Size {
	size := s.sizeOrZero("padding-" + side)
	if size.Type == SizeAuto {
		return Length(0)
	}
	return size
}

func (s *Style) sizeOrZero(property string) Size {
	val, ok := s.Get(property)
	if !ok {
		return Length(0)
	}
	size, ok := ParseSize(val, s.emBase(property))
	if !ok {
		return Length(0)
	}
	return size
}

// Position type constants
type PositionType string

const (
	PositionStatic   PositionType = "static"
	PositionRelative PositionType = "relative"
	PositionAbsolute PositionType = "absolute"
	PositionFixed    PositionType = "fixed"
)

// GetPosition returns the position type (default: static)
func (s *Style) GetPosition() PositionType {
	if pos, ok := s.Get("position"); ok {
		switch pos {
		case "relative":
			return PositionRelative
		case "absolute":
			return PositionAbsolute
		case "fixed":
			return PositionFixed
		}
	}
	return PositionStatic
}

// PositionOffset holds the inset properties of a positioned box.
// A missing or auto inset is reported as Auto.
type PositionOffset struct {
	Top    Size
	Right  Size
	Bottom Size
	Left   Size
}

// GetPositionOffset returns positioning offset values
func (s *Style) GetPositionOffset() PositionOffset {
	return PositionOffset{
		Top:    s.GetSize("top"),
		Right:  s.GetSize("right"),
		Bottom: s.GetSize("bottom"),
		Left:   s.GetSize("left"),
	}
}

type Color struct {
	R, G, B uint8
}

func ParseColor(colorStr string) (Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))
	if strings.HasPrefix(colorStr, "#") {
		return parseHexColor(colorStr[1:])
	}
	namedColors := map[string]Color{
		"red":     {255, 0, 0},
		"green":   {0, 128, 0},
		"blue":    {0, 0, 255},
		"yellow":  {255, 255, 0},
		"cyan":    {0, 255, 255},
		"magenta": {255, 0, 255},
		"white":   {255, 255, 255},
		"black":   {0, 0, 0},
		"gray":    {128, 128, 128},
		"orange":  {255, 165, 0},
		"purple":  {128, 0, 128},
		"pink":    {255, 192, 203},
		"brown":   {165, 42, 42},
		"lime":    {0, 255, 0},
		"navy":    {0, 0, 128},
		"teal":    {0, 128, 128},
		"silver":  {192, 192, 192},
	}
	color, ok := namedColors[colorStr]
	return color, ok
}

func parseHexColor(hex string) (Color, bool) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}

// DefaultFontSize is the initial font-size in pixels.
const DefaultFontSize = 16.0

// GetFontSize returns the font-size in pixels (default: 16px)
func (s *Style) GetFontSize() float64 {
	val, ok := s.Get("font-size")
	if !ok {
		return DefaultFontSize
	}
	size, ok := ParseSize(val, DefaultFontSize)
	if !ok || size.Type != SizeLength {
		return DefaultFontSize
	}
	return size.Value
}

// GetLineHeight returns the line-height in pixels (default: 1.2 * font-size)
func (s *Style) GetLineHeight() float64 {
	if val, ok := s.Get("line-height"); ok {
		if n, ok := parseNumber(val); ok {
			return n * s.GetFontSize()
		}
	}
	if lh, ok := s.GetLength("line-height"); ok {
		return lh
	}
	return s.GetFontSize() * 1.2
}

// DisplayType represents the display property value
type DisplayType string

const (
	DisplayBlock       DisplayType = "block"
	DisplayInline      DisplayType = "inline"
	DisplayInlineBlock DisplayType = "inline-block"
	DisplayFlex        DisplayType = "flex"
	DisplayInlineFlex  DisplayType = "inline-flex"
	DisplayNone        DisplayType = "none"
)

// GetDisplay returns the display value (default: block)
func (s *Style) GetDisplay() DisplayType {
	if display, ok := s.Get("display"); ok {
		switch display {
		case "inline":
			return DisplayInline
		case "inline-block":
			return DisplayInlineBlock
		case "flex":
			return DisplayFlex
		case "inline-flex":
			return DisplayInlineFlex
		case "none":
			return DisplayNone
		}
	}
	return DisplayBlock
}

// IsFlex reports whether the display establishes a flex formatting context.
func (d DisplayType) IsFlex() bool {
	return d == DisplayFlex || d == DisplayInlineFlex
}

type BoxSizing string

const (
	BoxSizingContentBox BoxSizing = "content-box"
	BoxSizingBorderBox  BoxSizing = "border-box"
)

// GetBoxSizing returns the box-sizing value (default: content-box)
func (s *Style) GetBoxSizing() BoxSizing {
	if v, ok := s.Get("box-sizing"); ok && v == "border-box" {
		return BoxSizingBorderBox
	}
	return BoxSizingContentBox
}

type Visibility string

const (
	VisibilityVisible  Visibility = "visible"
	VisibilityHidden   Visibility = "hidden"
	VisibilityCollapse Visibility = "collapse"
)

// GetVisibility returns the visibility value (default: visible)
func (s *Style) GetVisibility() Visibility {
	if v, ok := s.Get("visibility"); ok {
		switch v {
		case "hidden":
			return VisibilityHidden
		case "collapse":
			return VisibilityCollapse
		}
	}
	return VisibilityVisible
}

type WritingMode string

const (
	WritingModeHorizontalTB WritingMode = "horizontal-tb"
	WritingModeVerticalRL   WritingMode = "vertical-rl"
	WritingModeVerticalLR   WritingMode = "vertical-lr"
)

// GetWritingMode returns the writing-mode value (default: horizontal-tb)
func (s *Style) GetWritingMode() WritingMode {
	if v, ok := s.Get("writing-mode"); ok {
		switch v {
		case "vertical-rl":
			return WritingModeVerticalRL
		case "vertical-lr":
			return WritingModeVerticalLR
		}
	}
	return WritingModeHorizontalTB
}

// IsVertical reports whether the block axis is horizontal.
func (w WritingMode) IsVertical() bool {
	return w != WritingModeHorizontalTB
}

// GetAspectRatio returns the preferred aspect ratio (width / height).
// Accepts "2", "16 / 9" and "auto 16 / 9".
func (s *Style) GetAspectRatio() (float64, bool) {
	val, ok := s.Get("aspect-ratio")
	if !ok {
		return 0, false
	}
	val = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(val), "auto"))
	num, den := val, "1"
	if i := strings.Index(val, "/"); i >= 0 {
		num, den = val[:i], val[i+1:]
	}
	n, ok1 := parseNumber(num)
	d, ok2 := parseNumber(den)
	if !ok1 || !ok2 || n <= 0 || d <= 0 {
		return 0, false
	}
	return n / d, true
}
