package layout

import (
	"go.uber.org/zap"

	"flexlayout/pkg/css"
	"flexlayout/pkg/text"
)

// Position represents a 2D coordinate
type Position struct {
	X float64
	Y float64
}

// UsedValues is the layout state of one box: its content size, box edges
// and the offset of its content box from the content box of its
// containing block.
type UsedValues struct {
	box *Box

	contentWidth      float64
	contentHeight     float64
	hasDefiniteWidth  bool
	hasDefiniteHeight bool

	Margin  css.BoxEdge
	Border  css.BoxEdge
	Padding css.BoxEdge
	Offset  Position

	// Lines holds the line boxes of a laid out text run.
	Lines []string
}

func (u UsedValues) Box() *Box { return u.box }

func (u UsedValues) ContentWidth() float64  { return u.contentWidth }
func (u UsedValues) ContentHeight() float64 { return u.contentHeight }

func (u UsedValues) HasDefiniteWidth() bool  { return u.hasDefiniteWidth }
func (u UsedValues) HasDefiniteHeight() bool { return u.hasDefiniteHeight }

// SetContentWidth sets the used width and makes it definite.
func (u *UsedValues) SetContentWidth(w float64) {
	u.contentWidth = w
	u.hasDefiniteWidth = true
}

// SetContentHeight sets the used height and makes it definite.
func (u *UsedValues) SetContentHeight(h float64) {
	u.contentHeight = h
	u.hasDefiniteHeight = true
}

// SetTemporaryContentWidth changes the width without making it definite,
// so descendants can resolve percentages against it while the final size
// is still being worked out.
func (u *UsedValues) SetTemporaryContentWidth(w float64) { u.contentWidth = w }

func (u *UsedValues) SetTemporaryContentHeight(h float64) { u.contentHeight = h }

// SetIndefiniteContentWidth forgets the width, for measuring a box
// independently of the size it was given.
func (u *UsedValues) SetIndefiniteContentWidth() {
	u.contentWidth = 0
	u.hasDefiniteWidth = false
}

func (u *UsedValues) SetIndefiniteContentHeight() {
	u.contentHeight = 0
	u.hasDefiniteHeight = false
}

func (u UsedValues) BorderBoxLeft() float64   { return u.Margin.Left + u.Border.Left + u.Padding.Left }
func (u UsedValues) BorderBoxRight() float64  { return u.Margin.Right + u.Border.Right + u.Padding.Right }
func (u UsedValues) BorderBoxTop() float64    { return u.Margin.Top + u.Border.Top + u.Padding.Top }
func (u UsedValues) BorderBoxBottom() float64 { return u.Margin.Bottom + u.Border.Bottom + u.Padding.Bottom }

// MarginBoxWidth is the content width plus horizontal margins, borders and padding.
func (u UsedValues) MarginBoxWidth() float64 {
	return u.contentWidth + u.BorderBoxLeft() + u.BorderBoxRight()
}

// MarginBoxHeight is the content height plus vertical margins, borders and padding.
func (u UsedValues) MarginBoxHeight() float64 {
	return u.contentHeight + u.BorderBoxTop() + u.BorderBoxBottom()
}

// AvailableInnerSpaceOrConstraintsFrom returns the space the box offers its
// own content: its definite sizes, and the outer space where it has none.
func (u UsedValues) AvailableInnerSpaceOrConstraintsFrom(outer AvailableSpace) AvailableSpace {
	space := outer
	if u.hasDefiniteWidth {
		space.Width = Definite(u.contentWidth)
	}
	if u.hasDefiniteHeight {
		space.Height = Definite(u.contentHeight)
	}
	return space
}

// environment is shared by a layout state and all of its overlays.
type environment struct {
	viewport    Position
	logger      *zap.Logger
	measurer    text.Measurer
	unsupported []UnsupportedFeature
	reported    map[UnsupportedFeature]bool
}

// LayoutState maps boxes to their UsedValues. A state created with a parent
// is an overlay: reads fall back to the parent, writes stay in the overlay,
// and the overlay is dropped when the speculative pass using it is done.
type LayoutState struct {
	parent     *LayoutState
	usedValues map[*Box]*UsedValues
	env        *environment
}

// NewLayoutState creates the authoritative state for a viewport of the
// given size.
func NewLayoutState(viewportWidth, viewportHeight float64, logger *zap.Logger, measurer text.Measurer) *LayoutState {
	if logger == nil {
		logger = zap.NewNop()
	}
	if measurer == nil {
		measurer = text.EstimateMeasurer{}
	}
	return &LayoutState{
		usedValues: make(map[*Box]*UsedValues),
		env: &environment{
			viewport: Position{X: viewportWidth, Y: viewportHeight},
			logger:   logger,
			measurer: measurer,
			reported: make(map[UnsupportedFeature]bool),
		},
	}
}

// NewOverlay creates a throwaway layer on top of s.
func (s *LayoutState) NewOverlay() *LayoutState {
	return &LayoutState{parent: s, usedValues: make(map[*Box]*UsedValues), env: s.env}
}

// IsOverlay reports whether s is a throwaway layer.
func (s *LayoutState) IsOverlay() bool { return s.parent != nil }

func (s *LayoutState) logger() *zap.Logger { return s.env.logger }

func (s *LayoutState) lookup(box *Box) *UsedValues {
	for layer := s; layer != nil; layer = layer.parent {
		if u, ok := layer.usedValues[box]; ok {
			return u
		}
	}
	return nil
}

// Get returns a copy of the used values of box, searching the overlay
// chain. A box seen for the first time is initialized from its computed
// style in this layer.
func (s *LayoutState) Get(box *Box) UsedValues {
	if u := s.lookup(box); u != nil {
		return *u
	}
	return *s.GetMutable(box)
}

// GetMutable returns the used values of box in this layer, copying them
// from a parent layer on first write.
func (s *LayoutState) GetMutable(box *Box) *UsedValues {
	verify(box != nil, "layout state access for a nil box")
	if u, ok := s.usedValues[box]; ok {
		return u
	}
	if u := s.lookup(box); u != nil {
		c := *u
		c.Lines = append([]string(nil), u.Lines...)
		s.usedValues[box] = &c
		return &c
	}
	u := s.initialUsedValues(box)
	s.usedValues[box] = u
	return u
}

// initialUsedValues resolves box edges and definite sizes from computed
// style, the way the box enters layout.
func (s *LayoutState) initialUsedValues(box *Box) *UsedValues {
	u := &UsedValues{box: box}
	cbWidth := s.containingBlockWidthFor(box)
	style := box.Style

	u.Border = style.GetBorderWidth()
	u.Padding = css.BoxEdge{
		Top:    style.GetPaddingSize("top").Resolve(cbWidth),
		Right:  style.GetPaddingSize("right").Resolve(cbWidth),
		Bottom: style.GetPaddingSize("bottom").Resolve(cbWidth),
		Left:   style.GetPaddingSize("left").Resolve(cbWidth),
	}
	// Auto margins resolve to zero until a formatting context says otherwise.
	u.Margin = css.BoxEdge{
		Top:    style.GetMarginSize("top").Resolve(cbWidth),
		Right:  style.GetMarginSize("right").Resolve(cbWidth),
		Bottom: style.GetMarginSize("bottom").Resolve(cbWidth),
		Left:   style.GetMarginSize("left").Resolve(cbWidth),
	}

	if box.IsAnonymousTextRun() {
		return u
	}

	width := style.GetSize("width")
	switch {
	case width.IsLength():
		u.SetContentWidth(s.resolveWidth(box, width))
	case width.IsPercentage() && s.hasDefiniteContainingBlockWidth(box):
		u.SetContentWidth(s.resolveWidth(box, width))
	}
	height := style.GetSize("height")
	switch {
	case height.IsLength():
		u.SetContentHeight(s.resolveHeight(box, height))
	case height.IsPercentage() && s.hasDefiniteContainingBlockHeight(box):
		u.SetContentHeight(s.resolveHeight(box, height))
	}
	return u
}

// ResolvedDefiniteWidth returns the definite content width of box.
func (s *LayoutState) ResolvedDefiniteWidth(box *Box) float64 {
	u := s.Get(box)
	verify(u.HasDefiniteWidth(), "%s has no definite width", box.DebugDescription())
	return u.ContentWidth()
}

// ResolvedDefiniteHeight returns the definite content height of box.
func (s *LayoutState) ResolvedDefiniteHeight(box *Box) float64 {
	u := s.Get(box)
	verify(u.HasDefiniteHeight(), "%s has no definite height", box.DebugDescription())
	return u.ContentHeight()
}

// AbsoluteContentOrigin returns the position of the content box of box
// relative to the viewport.
func (s *LayoutState) AbsoluteContentOrigin(box *Box) Position {
	var p Position
	for current := box; current != nil; current = current.ContainingBlock() {
		off := s.Get(current).Offset
		p.X += off.X
		p.Y += off.Y
	}
	return p
}

// reportUnsupported records a stub with a fallback once per box and feature.
func (s *LayoutState) reportUnsupported(feature Feature, box *Box) {
	u := UnsupportedFeature{Feature: feature, Box: box}
	if s.env.reported[u] {
		return
	}
	s.env.reported[u] = true
	s.env.unsupported = append(s.env.unsupported, u)
	s.logger().Warn("unsupported layout feature, using fallback",
		zap.String("feature", string(feature)),
		zap.String("box", box.DebugDescription()))
}

// Unsupported returns the stubs hit so far by this state and its overlays.
func (s *LayoutState) Unsupported() []UnsupportedFeature {
	return append([]UnsupportedFeature(nil), s.env.unsupported...)
}

// Commit writes the used geometry of the authoritative state into the
// boxes. Committing an overlay is a contract violation: speculative passes
// are never promoted.
func (s *LayoutState) Commit() {
	verify(!s.IsOverlay(), "commit of a throwaway layout state")
	for box, u := range s.usedValues {
		origin := s.AbsoluteContentOrigin(box)
		box.X = origin.X
		box.Y = origin.Y
		box.Width = u.contentWidth
		box.Height = u.contentHeight
		box.Margin = u.Margin
		box.Border = u.Border
		box.Padding = u.Padding
		box.Lines = u.Lines
	}
}
