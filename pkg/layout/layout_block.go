package layout

import (
	"math"

	"go.uber.org/zap"
)

// BlockFormattingContext lays out the children of a block container (and
// of a text run, see layout_text.go). Children are stacked vertically;
// margins do not collapse.
type BlockFormattingContext struct {
	formattingContext
	autoWidth  float64
	autoHeight float64

	// staticY is the static position of each absolutely positioned child,
	// recorded where the child would have been in flow.
	staticY map[*Box]float64
	inner   AvailableSpace
}

func newBlockFormattingContext(state *LayoutState, box *Box, parent FormattingContext) *BlockFormattingContext {
	return &BlockFormattingContext{
		formattingContext: formattingContext{state: state, box: box, parent: parent},
		staticY:           make(map[*Box]float64),
	}
}

func (c *BlockFormattingContext) Type() FormattingContextType { return FormattingContextBlock }

func (c *BlockFormattingContext) AutomaticContentWidth() float64  { return c.autoWidth }
func (c *BlockFormattingContext) AutomaticContentHeight() float64 { return c.autoHeight }

func (c *BlockFormattingContext) Run(box *Box, mode LayoutMode, space AvailableSpace) {
	verify(box == c.box, "block context run for %s, owns %s", box.DebugDescription(), c.box.DebugDescription())
	c.autoWidth, c.autoHeight = 0, 0

	if box.IsAnonymousTextRun() {
		c.layoutTextRun(space)
		return
	}

	// Children flow in the block axis, so the block size offered to them is
	// only known when this box has a definite height.
	flow := space
	if flow.Height.IsDefinite() && !c.state.Get(box).HasDefiniteHeight() {
		flow.Height = Indefinite()
	}

	c.inner = flow
	cursorY := 0.0
	for _, child := range box.Children {
		if !child.GeneratesBox() {
			continue
		}
		if child.IsAbsolutelyPositioned() {
			c.staticY[child] = cursorY
			continue
		}

		c.computeWidth(child, flow)
		cu := c.state.GetMutable(child)
		cu.Offset = Position{X: cu.BorderBoxLeft(), Y: cursorY + cu.BorderBoxTop()}

		childSpace := cu.AvailableInnerSpaceOrConstraintsFrom(flow)
		ctx := layoutInside(c.state, child, c, mode, childSpace)
		c.computeHeight(child, ctx, flow)
		ctx.ParentContextDidDimensionChildRootBox()

		placed := c.state.Get(child)
		cursorY += placed.MarginBoxHeight()
		c.autoWidth = math.Max(c.autoWidth, placed.MarginBoxWidth())
	}
	c.autoHeight = cursorY

	c.state.logger().Debug("block layout",
		zap.String("box", box.DebugDescription()),
		zap.Stringer("mode", mode),
		zap.Float64("auto_width", c.autoWidth),
		zap.Float64("auto_height", c.autoHeight))
}

// computeWidth sets the used width of a child from its computed width or,
// when that is auto, from the space the block offers it.
func (c *BlockFormattingContext) computeWidth(child *Box, space AvailableSpace) {
	var width float64
	switch {
	case child.IsAnonymousTextRun():
		width = calculateFitContentWidth(c.state, child, space)
	case !shouldTreatWidthAsAuto(c.state, child, space):
		width = c.state.resolveWidth(child, child.Style.GetSize("width"))
	case child.IsReplaced():
		width, _ = replacedContentSize(c.state, child)
	case space.Width.IsDefinite():
		width = calculateStretchFitWidth(c.state, child, space.Width)
	case space.Width.IsMinContent():
		width = calculateMinContentWidth(c.state, child)
	default:
		width = calculateMaxContentWidth(c.state, child)
	}
	width = clampToMinMaxWidth(c.state, child, width)

	u := c.state.GetMutable(child)
	u.SetContentWidth(width)

	// CSS 2.1 §10.3.3: auto margins on both sides center the box.
	if space.Width.IsDefinite() && child.Style.GetMarginSize("left").IsAuto() && child.Style.GetMarginSize("right").IsAuto() {
		free := space.Width.ToPx() - width - u.Border.Horizontal() - u.Padding.Horizontal()
		if free > 0 {
			u.Margin.Left = free / 2
			u.Margin.Right = free / 2
		}
	}
}

// computeHeight sets the used height of a child once its inside has been
// laid out by ctx.
func (c *BlockFormattingContext) computeHeight(child *Box, ctx FormattingContext, space AvailableSpace) {
	var height float64
	switch {
	case !child.IsAnonymousTextRun() && !shouldTreatHeightAsAuto(c.state, child, space):
		height = c.state.resolveHeight(child, child.Style.GetSize("height"))
	case child.IsReplaced():
		_, height = replacedContentSize(c.state, child)
	default:
		height = ctx.AutomaticContentHeight()
	}
	c.state.GetMutable(child).SetContentHeight(clampToMinMaxHeight(c.state, child, height))
}

// CanDetermineSizeOfChild is true: a flex container inside a block asks the
// block for its main size.
func (c *BlockFormattingContext) CanDetermineSizeOfChild() bool { return true }

func (c *BlockFormattingContext) DetermineWidthOfChild(child *Box, space AvailableSpace) {
	c.computeWidth(child, c.spaceForChild(space))
}

func (c *BlockFormattingContext) DetermineHeightOfChild(child *Box, space AvailableSpace) {
	inner := c.spaceForChild(space)
	var height float64
	if !shouldTreatHeightAsAuto(c.state, child, inner) {
		height = c.state.resolveHeight(child, child.Style.GetSize("height"))
	} else {
		width := Indefinite()
		if u := c.state.Get(child); u.HasDefiniteWidth() {
			width = Definite(u.ContentWidth())
		}
		height = calculateMaxContentHeight(c.state, child, width)
	}
	c.state.GetMutable(child).SetContentHeight(clampToMinMaxHeight(c.state, child, height))
}

// spaceForChild prefers the space this block offered its children during
// Run over what the child reports.
func (c *BlockFormattingContext) spaceForChild(space AvailableSpace) AvailableSpace {
	if c.inner.Width.IsDefinite() || c.inner.Width.IsIntrinsicSizingConstraint() {
		return c.inner
	}
	return space
}

// ParentContextDidDimensionChildRootBox lays out absolutely positioned
// children now that the block's own size is known.
func (c *BlockFormattingContext) ParentContextDidDimensionChildRootBox() {
	for _, child := range c.box.Children {
		if !child.GeneratesBox() || !child.IsAbsolutelyPositioned() {
			continue
		}
		y := c.staticY[child]
		layoutAbsolutelyPositionedBox(c.state, child, c, func(UsedValues) Position {
			return Position{X: 0, Y: y}
		})
	}
}
