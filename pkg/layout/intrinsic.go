package layout

import "math"

// Intrinsic sizing primitives shared by every formatting context. Each
// measurement lays the box out in a throwaway overlay under a min-content
// or max-content constraint and reads back the natural content size; the
// overlay is dropped afterwards, so measuring never disturbs the state it
// is called on.

// calculateMinContentWidth returns the narrowest content width box can
// take without overflowing.
func calculateMinContentWidth(state *LayoutState, box *Box) float64 {
	return measureWidth(state, box, MinContent())
}

// calculateMaxContentWidth returns the content width box takes given
// unlimited room.
func calculateMaxContentWidth(state *LayoutState, box *Box) float64 {
	return measureWidth(state, box, MaxContent())
}

func measureWidth(state *LayoutState, box *Box, constraint AvailableSize) float64 {
	if box.IsReplaced() {
		w, _ := replacedContentSize(state, box)
		return w
	}
	throwaway := state.NewOverlay()
	throwaway.GetMutable(box).SetIndefiniteContentWidth()
	ctx := layoutInside(throwaway, box, nil, LayoutIntrinsicSizing, AvailableSpace{Width: constraint, Height: Indefinite()})
	return ctx.AutomaticContentWidth()
}

// calculateMinContentHeight returns the content height of box laid out at
// availableWidth under a min-content block constraint.
func calculateMinContentHeight(state *LayoutState, box *Box, availableWidth AvailableSize) float64 {
	return measureHeight(state, box, availableWidth, MinContent())
}

func calculateMaxContentHeight(state *LayoutState, box *Box, availableWidth AvailableSize) float64 {
	return measureHeight(state, box, availableWidth, MaxContent())
}

func measureHeight(state *LayoutState, box *Box, availableWidth, constraint AvailableSize) float64 {
	if box.IsReplaced() {
		_, h := replacedContentSize(state, box)
		return h
	}
	throwaway := state.NewOverlay()
	u := throwaway.GetMutable(box)
	if availableWidth.IsDefinite() && !u.HasDefiniteWidth() {
		u.SetContentWidth(math.Max(0, availableWidth.ToPx()))
	}
	u.SetIndefiniteContentHeight()
	ctx := layoutInside(throwaway, box, nil, LayoutIntrinsicSizing, AvailableSpace{Width: availableWidth, Height: constraint})
	return ctx.AutomaticContentHeight()
}

// calculateFitContentSize clamps the stretch-fit size between the
// min-content and max-content sizes. Constraints pick the matching end.
func calculateFitContentSize(minContent, maxContent func() float64, stretchFit float64, available AvailableSize) float64 {
	switch {
	case available.IsDefinite():
		return math.Max(minContent(), math.Min(stretchFit, maxContent()))
	case available.IsMinContent():
		return minContent()
	}
	return maxContent()
}

func calculateFitContentWidth(state *LayoutState, box *Box, space AvailableSpace) float64 {
	stretch := 0.0
	if space.Width.IsDefinite() {
		stretch = calculateStretchFitWidth(state, box, space.Width)
	}
	return calculateFitContentSize(
		func() float64 { return calculateMinContentWidth(state, box) },
		func() float64 { return calculateMaxContentWidth(state, box) },
		stretch, space.Width)
}

func calculateFitContentHeight(state *LayoutState, box *Box, space AvailableSpace) float64 {
	stretch := 0.0
	if space.Height.IsDefinite() {
		stretch = calculateStretchFitHeight(state, box, space.Height)
	}
	return calculateFitContentSize(
		func() float64 { return calculateMinContentHeight(state, box, space.Width) },
		func() float64 { return calculateMaxContentHeight(state, box, space.Width) },
		stretch, space.Height)
}

// calculateStretchFitWidth is the available width minus the horizontal
// margins, borders and padding of box.
func calculateStretchFitWidth(state *LayoutState, box *Box, availableWidth AvailableSize) float64 {
	u := state.Get(box)
	return math.Max(0, availableWidth.ToPxOrZero()-u.BorderBoxLeft()-u.BorderBoxRight())
}

func calculateStretchFitHeight(state *LayoutState, box *Box, availableHeight AvailableSize) float64 {
	u := state.Get(box)
	return math.Max(0, availableHeight.ToPxOrZero()-u.BorderBoxTop()-u.BorderBoxBottom())
}
