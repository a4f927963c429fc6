package layout

import "math"

// layoutAbsolutelyPositionedBox sizes and places an absolutely positioned
// box against the padding box of its containing block, following CSS 2.1
// §10.3.7 (horizontal) and §10.6.4 (vertical). staticPosition gives the
// margin-box position the box would have had in flow, relative to the
// content box of its parent; it is used when both insets of an axis are
// auto.
func layoutAbsolutelyPositionedBox(state *LayoutState, box *Box, parent FormattingContext, staticPosition func(UsedValues) Position) {
	cb := box.ContainingBlock()
	cbWidth := state.containingBlockWidthFor(box)
	cbHeight := state.containingBlockHeightFor(box)
	var cbPadding Position
	var cbOrigin Position
	if cb != nil {
		cbu := state.Get(cb)
		cbPadding = Position{X: cbu.Padding.Left, Y: cbu.Padding.Top}
		cbOrigin = state.AbsoluteContentOrigin(cb)
	}

	offset := box.Style.GetPositionOffset()
	space := AvailableSpace{Width: Definite(cbWidth), Height: Definite(cbHeight)}
	u := state.GetMutable(box)

	// Width
	var width float64
	switch {
	case !shouldTreatWidthAsAuto(state, box, space):
		width = state.resolveWidth(box, box.Style.GetSize("width"))
	case box.IsReplaced():
		width, _ = replacedContentSize(state, box)
	case !offset.Left.IsAuto() && !offset.Right.IsAuto():
		width = cbWidth - offset.Left.Resolve(cbWidth) - offset.Right.Resolve(cbWidth) -
			u.BorderBoxLeft() - u.BorderBoxRight()
	default:
		width = calculateFitContentWidth(state, box, space)
	}
	u.SetContentWidth(clampToMinMaxWidth(state, box, math.Max(0, width)))

	// Height, when it does not depend on the content.
	switch {
	case !shouldTreatHeightAsAuto(state, box, space):
		u.SetContentHeight(clampToMinMaxHeight(state, box, state.resolveHeight(box, box.Style.GetSize("height"))))
	case box.IsReplaced():
		_, h := replacedContentSize(state, box)
		u.SetContentHeight(clampToMinMaxHeight(state, box, h))
	case !offset.Top.IsAuto() && !offset.Bottom.IsAuto():
		h := cbHeight - offset.Top.Resolve(cbHeight) - offset.Bottom.Resolve(cbHeight) -
			u.BorderBoxTop() - u.BorderBoxBottom()
		u.SetContentHeight(clampToMinMaxHeight(state, box, math.Max(0, h)))
	default:
		u.SetIndefiniteContentHeight()
	}

	ctx := layoutInside(state, box, parent, LayoutNormal, u.AvailableInnerSpaceOrConstraintsFrom(space))
	u = state.GetMutable(box)
	if !u.HasDefiniteHeight() {
		u.SetContentHeight(clampToMinMaxHeight(state, box, ctx.AutomaticContentHeight()))
	}

	// Position of the margin box relative to the padding box of the
	// containing block.
	static := staticPosition(*u)
	if box.Parent != nil {
		parentOrigin := state.AbsoluteContentOrigin(box.Parent)
		static.X += parentOrigin.X - cbOrigin.X + cbPadding.X
		static.Y += parentOrigin.Y - cbOrigin.Y + cbPadding.Y
	}

	// CSS 2.1 §10.3.7: with both insets set, auto margins share the free
	// space equally.
	marginLeftAuto := box.Style.GetMarginSize("left").IsAuto()
	marginRightAuto := box.Style.GetMarginSize("right").IsAuto()
	var x float64
	switch {
	case !offset.Left.IsAuto() && !offset.Right.IsAuto() && marginLeftAuto && marginRightAuto:
		left := offset.Left.Resolve(cbWidth)
		free := cbWidth - left - offset.Right.Resolve(cbWidth) - u.MarginBoxWidth()
		if free > 0 {
			u.Margin.Left = free / 2
			u.Margin.Right = free / 2
		}
		x = left
	case !offset.Left.IsAuto():
		x = offset.Left.Resolve(cbWidth)
	case !offset.Right.IsAuto():
		x = cbWidth - offset.Right.Resolve(cbWidth) - u.MarginBoxWidth()
	default:
		x = static.X
	}

	// CSS 2.1 §10.6.4
	marginTopAuto := box.Style.GetMarginSize("top").IsAuto()
	marginBottomAuto := box.Style.GetMarginSize("bottom").IsAuto()
	var y float64
	switch {
	case !offset.Top.IsAuto() && !offset.Bottom.IsAuto() && marginTopAuto && marginBottomAuto:
		top := offset.Top.Resolve(cbHeight)
		free := cbHeight - top - offset.Bottom.Resolve(cbHeight) - u.MarginBoxHeight()
		if free > 0 {
			u.Margin.Top = free / 2
			u.Margin.Bottom = free / 2
		}
		y = top
	case !offset.Top.IsAuto():
		y = offset.Top.Resolve(cbHeight)
	case !offset.Bottom.IsAuto():
		y = cbHeight - offset.Bottom.Resolve(cbHeight) - u.MarginBoxHeight()
	default:
		y = static.Y
	}

	// Offsets are kept relative to the content box of the containing block.
	u.Offset = Position{
		X: x - cbPadding.X + u.BorderBoxLeft(),
		Y: y - cbPadding.Y + u.BorderBoxTop(),
	}
	ctx.ParentContextDidDimensionChildRootBox()
}
