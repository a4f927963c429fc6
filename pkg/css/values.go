package css

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// SizeType discriminates the values a sizing property can hold.
type SizeType int

const (
	SizeAuto SizeType = iota
	SizeLength
	SizePercentage
	SizeNone
	SizeMinContent
	SizeMaxContent
	SizeFitContent
)

// Size is a computed sizing value: width, height, their min/max
// counterparts, flex-basis, margins, padding and insets.
type Size struct {
	Type  SizeType
	Value float64
}

func Auto() Size                  { return Size{Type: SizeAuto} }
func None() Size                  { return Size{Type: SizeNone} }
func Length(px float64) Size      { return Size{Type: SizeLength, Value: px} }
func Percentage(pct float64) Size { return Size{Type: SizePercentage, Value: pct} }

func (s Size) IsAuto() bool       { return s.Type == SizeAuto }
func (s Size) IsNone() bool       { return s.Type == SizeNone }
func (s Size) IsLength() bool     { return s.Type == SizeLength }
func (s Size) IsPercentage() bool { return s.Type == SizePercentage }
func (s Size) IsMinContent() bool { return s.Type == SizeMinContent }
func (s Size) IsMaxContent() bool { return s.Type == SizeMaxContent }
func (s Size) IsFitContent() bool { return s.Type == SizeFitContent }

// IsLengthPercentage reports whether the value is a length or percentage.
func (s Size) IsLengthPercentage() bool {
	return s.Type == SizeLength || s.Type == SizePercentage
}

// ContainsPercentage reports whether resolving the value needs a reference size.
func (s Size) ContainsPercentage() bool {
	return s.Type == SizePercentage
}

// Resolve converts a length or percentage to pixels. Other types resolve to 0.
func (s Size) Resolve(reference float64) float64 {
	switch s.Type {
	case SizeLength:
		return s.Value
	case SizePercentage:
		return s.Value * reference / 100
	}
	return 0
}

func (s Size) String() string {
	switch s.Type {
	case SizeAuto:
		return "auto"
	case SizeLength:
		return strconv.FormatFloat(s.Value, 'f', -1, 64) + "px"
	case SizePercentage:
		return strconv.FormatFloat(s.Value, 'f', -1, 64) + "%"
	case SizeNone:
		return "none"
	case SizeMinContent:
		return "min-content"
	case SizeMaxContent:
		return "max-content"
	case SizeFitContent:
		return "fit-content"
	}
	return fmt.Sprintf("Size(%d)", int(s.Type))
}

// GetSize returns a sizing property. Missing or unparsable values use the
// initial value: none for max-width/max-height, auto for everything else.
func (s *Style) GetSize(property string) Size {
	initial := Auto()
	if strings.HasPrefix(property, "max-") {
		initial = None()
	}
	val, ok := s.Get(property)
	if !ok {
		return initial
	}
	size, ok := ParseSize(val, s.emBase(property))
	if !ok {
		return initial
	}
	return size
}

// ParseSize parses a single sizing value. Unitless numbers are pixels,
// em resolves against fontSize and rem against the default font size.
func ParseSize(val string, fontSize float64) (Size, bool) {
	l := css.NewLexer(parse.NewInputString(strings.TrimSpace(val)))
	var result Size
	found := false
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return result, found
		case css.WhitespaceToken:
			continue
		}
		if found {
			// Trailing tokens other than !important make the value invalid.
			if tt == css.DelimToken && string(data) == "!" {
				return result, true
			}
			return Size{}, false
		}
		switch tt {
		case css.IdentToken:
			switch strings.ToLower(string(data)) {
			case "auto":
				result = Auto()
			case "none":
				result = None()
			case "min-content":
				result = Size{Type: SizeMinContent}
			case "max-content":
				result = Size{Type: SizeMaxContent}
			case "fit-content":
				result = Size{Type: SizeFitContent}
			default:
				return Size{}, false
			}
		case css.FunctionToken:
			if strings.ToLower(string(data)) != "fit-content(" {
				return Size{}, false
			}
			// The argument is not tracked; the value sizes as fit-content.
			return Size{Type: SizeFitContent}, true
		case css.NumberToken:
			n, err := strconv.ParseFloat(string(data), 64)
			if err != nil {
				return Size{}, false
			}
			result = Length(n)
		case css.PercentageToken:
			n, err := strconv.ParseFloat(strings.TrimSuffix(string(data), "%"), 64)
			if err != nil {
				return Size{}, false
			}
			result = Percentage(n)
		case css.DimensionToken:
			px, ok := parseDimension(string(data), fontSize)
			if !ok {
				return Size{}, false
			}
			result = Length(px)
		default:
			return Size{}, false
		}
		found = true
	}
}

// parseDimension converts a dimension token such as "12px" or "1.5em" to pixels.
func parseDimension(s string, fontSize float64) (float64, bool) {
	numEnd := 0
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
			continue
		}
		if (r == 'e' || r == 'E') && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
			numEnd = i + 1
			continue
		}
		break
	}
	n, err := strconv.ParseFloat(s[:numEnd], 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(s[numEnd:]) {
	case "px":
		return n, true
	case "em":
		return n * fontSize, true
	case "rem":
		return n * DefaultFontSize, true
	case "pt":
		return n * 4 / 3, true
	}
	return 0, false
}
