package layout

import (
	"strconv"
)

type availableSizeKind int

const (
	availableDefinite availableSizeKind = iota
	availableIndefinite
	availableMinContent
	availableMaxContent
)

// AvailableSize is the space offered to a box along one axis: a definite
// length, an indefinite size, or a min-content / max-content constraint.
type AvailableSize struct {
	kind  availableSizeKind
	value float64
}

func Definite(px float64) AvailableSize { return AvailableSize{kind: availableDefinite, value: px} }
func Indefinite() AvailableSize         { return AvailableSize{kind: availableIndefinite} }
func MinContent() AvailableSize         { return AvailableSize{kind: availableMinContent} }
func MaxContent() AvailableSize         { return AvailableSize{kind: availableMaxContent} }

func (a AvailableSize) IsDefinite() bool   { return a.kind == availableDefinite }
func (a AvailableSize) IsIndefinite() bool { return a.kind == availableIndefinite }
func (a AvailableSize) IsMinContent() bool { return a.kind == availableMinContent }
func (a AvailableSize) IsMaxContent() bool { return a.kind == availableMaxContent }

// IsIntrinsicSizingConstraint reports whether the size is a min-content or
// max-content constraint rather than an amount of space.
func (a AvailableSize) IsIntrinsicSizingConstraint() bool {
	return a.kind == availableMinContent || a.kind == availableMaxContent
}

// ToPx returns the definite size. Asking an indefinite size for pixels is
// a contract violation.
func (a AvailableSize) ToPx() float64 {
	verify(a.IsDefinite(), "ToPx on %s available size", a)
	return a.value
}

// ToPxOrZero returns the definite size, or 0 for every other kind.
func (a AvailableSize) ToPxOrZero() float64 {
	if a.IsDefinite() {
		return a.value
	}
	return 0
}

func (a AvailableSize) String() string {
	switch a.kind {
	case availableDefinite:
		return "definite(" + strconv.FormatFloat(a.value, 'f', -1, 64) + ")"
	case availableIndefinite:
		return "indefinite"
	case availableMinContent:
		return "min-content"
	case availableMaxContent:
		return "max-content"
	}
	return "unknown"
}

// AvailableSpace pairs the available width and height.
type AvailableSpace struct {
	Width  AvailableSize
	Height AvailableSize
}

func (s AvailableSpace) String() string {
	return s.Width.String() + " x " + s.Height.String()
}

// axisAgnosticAvailableSpace is an AvailableSpace seen from a flex
// container: main and cross are Width/Height or Height/Width depending on
// the flex direction. space keeps the physical pair.
type axisAgnosticAvailableSpace struct {
	main  AvailableSize
	cross AvailableSize
	space AvailableSpace
}

func newAxisAgnosticAvailableSpace(isRow bool, space AvailableSpace) axisAgnosticAvailableSpace {
	if isRow {
		return axisAgnosticAvailableSpace{main: space.Width, cross: space.Height, space: space}
	}
	return axisAgnosticAvailableSpace{main: space.Height, cross: space.Width, space: space}
}

// verifyConsistent checks that main and cross still mirror the physical
// pair for the given direction.
func (s axisAgnosticAvailableSpace) verifyConsistent(isRow bool) {
	main, cross := s.space.Width, s.space.Height
	if !isRow {
		main, cross = cross, main
	}
	verify(s.main == main && s.cross == cross, "available space %s does not match main %s / cross %s", s.space, s.main, s.cross)
}
