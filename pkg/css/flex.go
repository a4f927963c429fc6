package css

import (
	"math"
	"strconv"
	"strings"
)

type FlexDirection string

const (
	FlexDirectionRow           FlexDirection = "row"
	FlexDirectionRowReverse    FlexDirection = "row-reverse"
	FlexDirectionColumn        FlexDirection = "column"
	FlexDirectionColumnReverse FlexDirection = "column-reverse"
)

// IsRow reports whether the main axis is horizontal.
func (d FlexDirection) IsRow() bool {
	return d == FlexDirectionRow || d == FlexDirectionRowReverse
}

// IsReverse reports whether main-start and main-end are swapped.
func (d FlexDirection) IsReverse() bool {
	return d == FlexDirectionRowReverse || d == FlexDirectionColumnReverse
}

// GetFlexDirection returns the flex-direction value (default: row)
func (s *Style) GetFlexDirection() FlexDirection {
	if v, ok := s.Get("flex-direction"); ok {
		switch v {
		case "row-reverse":
			return FlexDirectionRowReverse
		case "column":
			return FlexDirectionColumn
		case "column-reverse":
			return FlexDirectionColumnReverse
		}
	}
	return FlexDirectionRow
}

type FlexWrap string

const (
	FlexWrapNowrap      FlexWrap = "nowrap"
	FlexWrapWrap        FlexWrap = "wrap"
	FlexWrapWrapReverse FlexWrap = "wrap-reverse"
)

// GetFlexWrap returns the flex-wrap value (default: nowrap)
func (s *Style) GetFlexWrap() FlexWrap {
	if v, ok := s.Get("flex-wrap"); ok {
		switch v {
		case "wrap":
			return FlexWrapWrap
		case "wrap-reverse":
			return FlexWrapWrapReverse
		}
	}
	return FlexWrapNowrap
}

// GetFlexGrow returns flex-grow (default: 0). Negative values are invalid.
func (s *Style) GetFlexGrow() float64 {
	return s.nonNegativeNumber("flex-grow", 0)
}

// GetFlexShrink returns flex-shrink (default: 1). Negative values are invalid.
func (s *Style) GetFlexShrink() float64 {
	return s.nonNegativeNumber("flex-shrink", 1)
}

func (s *Style) nonNegativeNumber(property string, initial float64) float64 {
	if v, ok := s.Get(property); ok {
		if n, ok := parseNumber(v); ok && n >= 0 {
			return n
		}
	}
	return initial
}

// parseNumber parses a CSS <number>. strconv also accepts "inf" and "nan",
// which are not numbers in CSS.
func parseNumber(v string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// GetOrder returns the order value (default: 0)
func (s *Style) GetOrder() int {
	if v, ok := s.Get("order"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

type FlexBasisType int

const (
	FlexBasisAuto FlexBasisType = iota
	FlexBasisContent
	FlexBasisSize
)

// FlexBasis is the computed flex-basis: auto, content or a length-percentage.
type FlexBasis struct {
	Type FlexBasisType
	Size Size
}

func (b FlexBasis) String() string {
	switch b.Type {
	case FlexBasisAuto:
		return "auto"
	case FlexBasisContent:
		return "content"
	}
	return b.Size.String()
}

// GetFlexBasis returns the flex-basis value (default: auto). Intrinsic
// sizing keywords behave as content.
func (s *Style) GetFlexBasis() FlexBasis {
	v, ok := s.Get("flex-basis")
	if !ok {
		return FlexBasis{Type: FlexBasisAuto}
	}
	if strings.TrimSpace(v) == "content" {
		return FlexBasis{Type: FlexBasisContent}
	}
	size, ok := ParseSize(v, s.GetFontSize())
	if !ok {
		return FlexBasis{Type: FlexBasisAuto}
	}
	switch size.Type {
	case SizeLength, SizePercentage:
		return FlexBasis{Type: FlexBasisSize, Size: size}
	case SizeMinContent, SizeMaxContent, SizeFitContent:
		return FlexBasis{Type: FlexBasisContent}
	}
	return FlexBasis{Type: FlexBasisAuto}
}

type JustifyContent string

const (
	JustifyContentFlexStart    JustifyContent = "flex-start"
	JustifyContentFlexEnd      JustifyContent = "flex-end"
	JustifyContentStart        JustifyContent = "start"
	JustifyContentEnd          JustifyContent = "end"
	JustifyContentCenter       JustifyContent = "center"
	JustifyContentSpaceBetween JustifyContent = "space-between"
	JustifyContentSpaceAround  JustifyContent = "space-around"
	JustifyContentSpaceEvenly  JustifyContent = "space-evenly"
)

// GetJustifyContent returns justify-content (default: flex-start).
// normal behaves as flex-start in a flex container.
func (s *Style) GetJustifyContent() JustifyContent {
	if v, ok := s.Get("justify-content"); ok {
		switch jc := JustifyContent(v); jc {
		case JustifyContentFlexEnd, JustifyContentStart, JustifyContentEnd, JustifyContentCenter,
			JustifyContentSpaceBetween, JustifyContentSpaceAround, JustifyContentSpaceEvenly:
			return jc
		case "left":
			return JustifyContentStart
		case "right":
			return JustifyContentEnd
		}
	}
	return JustifyContentFlexStart
}

type AlignItems string

const (
	AlignItemsNormal    AlignItems = "normal"
	AlignItemsStretch   AlignItems = "stretch"
	AlignItemsFlexStart AlignItems = "flex-start"
	AlignItemsFlexEnd   AlignItems = "flex-end"
	AlignItemsStart     AlignItems = "start"
	AlignItemsEnd       AlignItems = "end"
	AlignItemsSelfStart AlignItems = "self-start"
	AlignItemsSelfEnd   AlignItems = "self-end"
	AlignItemsCenter    AlignItems = "center"
	AlignItemsBaseline  AlignItems = "baseline"
)

func parseAlignItems(v string) (AlignItems, bool) {
	switch ai := AlignItems(v); ai {
	case AlignItemsNormal, AlignItemsStretch, AlignItemsFlexStart, AlignItemsFlexEnd,
		AlignItemsStart, AlignItemsEnd, AlignItemsSelfStart, AlignItemsSelfEnd,
		AlignItemsCenter, AlignItemsBaseline:
		return ai, true
	case "first baseline", "last baseline":
		return AlignItemsBaseline, true
	}
	return "", false
}

// GetAlignItems returns align-items (default: stretch).
func (s *Style) GetAlignItems() AlignItems {
	if v, ok := s.Get("align-items"); ok {
		if ai, ok := parseAlignItems(v); ok {
			return ai
		}
	}
	return AlignItemsStretch
}

type AlignSelf string

const AlignSelfAuto AlignSelf = "auto"

// GetAlignSelf returns align-self (default: auto). Any align-items
// keyword is also valid for align-self.
func (s *Style) GetAlignSelf() AlignSelf {
	if v, ok := s.Get("align-self"); ok {
		if ai, ok := parseAlignItems(v); ok {
			return AlignSelf(ai)
		}
	}
	return AlignSelfAuto
}

type AlignContent string

const (
	AlignContentStretch      AlignContent = "stretch"
	AlignContentFlexStart    AlignContent = "flex-start"
	AlignContentFlexEnd      AlignContent = "flex-end"
	AlignContentStart        AlignContent = "start"
	AlignContentEnd          AlignContent = "end"
	AlignContentCenter       AlignContent = "center"
	AlignContentSpaceBetween AlignContent = "space-between"
	AlignContentSpaceAround  AlignContent = "space-around"
	AlignContentSpaceEvenly  AlignContent = "space-evenly"
)

// GetAlignContent returns align-content (default: stretch).
// normal behaves as stretch.
func (s *Style) GetAlignContent() AlignContent {
	if v, ok := s.Get("align-content"); ok {
		switch ac := AlignContent(v); ac {
		case AlignContentFlexStart, AlignContentFlexEnd, AlignContentStart, AlignContentEnd,
			AlignContentCenter, AlignContentSpaceBetween, AlignContentSpaceAround, AlignContentSpaceEvenly:
			return ac
		}
	}
	return AlignContentStretch
}
