package layout

import (
	"fmt"
	"math"
)

// LayoutMode tells a formatting context whether it produces the real
// layout or only measures its box for an intrinsic size.
type LayoutMode int

const (
	LayoutNormal LayoutMode = iota
	LayoutIntrinsicSizing
)

func (m LayoutMode) String() string {
	if m == LayoutIntrinsicSizing {
		return "intrinsic-sizing"
	}
	return "normal"
}

// FormattingContextType identifies the concrete formatting context.
type FormattingContextType int

const (
	FormattingContextBlock FormattingContextType = iota
	FormattingContextFlex
	FormattingContextReplaced
)

func (t FormattingContextType) String() string {
	switch t {
	case FormattingContextBlock:
		return "block"
	case FormattingContextFlex:
		return "flex"
	case FormattingContextReplaced:
		return "replaced"
	}
	return fmt.Sprintf("FormattingContextType(%d)", int(t))
}

// FormattingContext lays out the inside of one box. A parent context runs
// the context of each child that establishes one and talks to it through
// the size negotiation methods below.
type FormattingContext interface {
	Type() FormattingContextType
	ContextBox() *Box
	Parent() FormattingContext

	// Run lays out the content of box into the given available space.
	Run(box *Box, mode LayoutMode, space AvailableSpace)

	// AutomaticContentWidth and AutomaticContentHeight report the natural
	// content size found by the last Run.
	AutomaticContentWidth() float64
	AutomaticContentHeight() float64

	// CanDetermineSizeOfChild reports whether a child context may ask this
	// context to size the child's root box.
	CanDetermineSizeOfChild() bool
	DetermineWidthOfChild(box *Box, space AvailableSpace)
	DetermineHeightOfChild(box *Box, space AvailableSpace)

	// ParentContextDidDimensionChildRootBox is called once the parent has
	// settled the size of the context box. Absolutely positioned children
	// are laid out here.
	ParentContextDidDimensionChildRootBox()
}

// formattingContext holds what every concrete context shares: the state it
// writes to, its box and its parent.
type formattingContext struct {
	state  *LayoutState
	box    *Box
	parent FormattingContext
}

func (c *formattingContext) ContextBox() *Box          { return c.box }
func (c *formattingContext) Parent() FormattingContext { return c.parent }

// createIndependentFormattingContextIfNeeded returns the context box
// establishes. Flex containers, replaced content, text runs and block
// containers used as flex items all establish one.
func createIndependentFormattingContextIfNeeded(state *LayoutState, box *Box, parent FormattingContext) FormattingContext {
	switch {
	case box.IsReplaced():
		return newReplacedFormattingContext(state, box, parent)
	case box.IsFlexContainer():
		return NewFlexFormattingContext(state, box, parent)
	case box.Kind == BoxBlock || box.Kind == BoxText:
		return newBlockFormattingContext(state, box, parent)
	}
	return nil
}

// layoutInside runs the independent formatting context of box and returns
// it, so the caller can finish the protocol once the box is dimensioned.
func layoutInside(state *LayoutState, box *Box, parent FormattingContext, mode LayoutMode, space AvailableSpace) FormattingContext {
	ctx := createIndependentFormattingContextIfNeeded(state, box, parent)
	verify(ctx != nil, "no formatting context for %s", box.DebugDescription())
	ctx.Run(box, mode, space)
	return ctx
}

// shouldTreatWidthAsAuto reports whether the computed width cannot be used
// as a size: auto, an intrinsic keyword, or a percentage that has nothing
// to resolve against.
func shouldTreatWidthAsAuto(state *LayoutState, box *Box, space AvailableSpace) bool {
	w := box.Style.GetSize("width")
	if w.IsAuto() || w.IsMinContent() || w.IsMaxContent() || w.IsFitContent() {
		return true
	}
	if w.ContainsPercentage() {
		return space.Width.IsIntrinsicSizingConstraint() || !state.hasDefiniteContainingBlockWidth(box)
	}
	return false
}

func shouldTreatHeightAsAuto(state *LayoutState, box *Box, space AvailableSpace) bool {
	h := box.Style.GetSize("height")
	if h.IsAuto() || h.IsMinContent() || h.IsMaxContent() || h.IsFitContent() {
		return true
	}
	if h.ContainsPercentage() {
		return space.Height.IsIntrinsicSizingConstraint() || !state.hasDefiniteContainingBlockHeight(box)
	}
	return false
}

// clampToMinMaxWidth applies min-width and max-width to a content width.
// Percentages that cannot resolve are ignored.
func clampToMinMaxWidth(state *LayoutState, box *Box, w float64) float64 {
	definiteCB := state.hasDefiniteContainingBlockWidth(box)
	if maxW := box.Style.GetSize("max-width"); maxW.IsLengthPercentage() && (definiteCB || !maxW.ContainsPercentage()) {
		w = math.Min(w, state.resolveWidth(box, maxW))
	}
	if minW := box.Style.GetSize("min-width"); minW.IsLengthPercentage() && (definiteCB || !minW.ContainsPercentage()) {
		w = math.Max(w, state.resolveWidth(box, minW))
	}
	return math.Max(0, w)
}

func clampToMinMaxHeight(state *LayoutState, box *Box, h float64) float64 {
	definiteCB := state.hasDefiniteContainingBlockHeight(box)
	if maxH := box.Style.GetSize("max-height"); maxH.IsLengthPercentage() && (definiteCB || !maxH.ContainsPercentage()) {
		h = math.Min(h, state.resolveHeight(box, maxH))
	}
	if minH := box.Style.GetSize("min-height"); minH.IsLengthPercentage() && (definiteCB || !minH.ContainsPercentage()) {
		h = math.Max(h, state.resolveHeight(box, minH))
	}
	return math.Max(0, h)
}
