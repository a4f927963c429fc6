package layout

import "flexlayout/pkg/css"

// Containing block logic. The root box has no containing block box; the
// viewport stands in for it and is always definite.

// containingBlockWidthFor returns the width percentages on box resolve
// against: the content width of its containing block, or the padding box
// width for absolutely positioned boxes.
func (s *LayoutState) containingBlockWidthFor(box *Box) float64 {
	cb := box.ContainingBlock()
	if cb == nil {
		return s.env.viewport.X
	}
	u := s.Get(cb)
	if box.IsAbsolutelyPositioned() {
		return u.ContentWidth() + u.Padding.Horizontal()
	}
	return u.ContentWidth()
}

func (s *LayoutState) containingBlockHeightFor(box *Box) float64 {
	cb := box.ContainingBlock()
	if cb == nil {
		return s.env.viewport.Y
	}
	u := s.Get(cb)
	if box.IsAbsolutelyPositioned() {
		return u.ContentHeight() + u.Padding.Vertical()
	}
	return u.ContentHeight()
}

func (s *LayoutState) hasDefiniteContainingBlockWidth(box *Box) bool {
	cb := box.ContainingBlock()
	return cb == nil || s.Get(cb).HasDefiniteWidth()
}

func (s *LayoutState) hasDefiniteContainingBlockHeight(box *Box) bool {
	cb := box.ContainingBlock()
	return cb == nil || s.Get(cb).HasDefiniteHeight()
}

// resolveWidth converts a width-like value to a content width, removing
// borders and padding for box-sizing: border-box.
func (s *LayoutState) resolveWidth(box *Box, size css.Size) float64 {
	cbWidth := s.containingBlockWidthFor(box)
	w := size.Resolve(cbWidth)
	if box.Style.GetBoxSizing() == css.BoxSizingBorderBox {
		border := box.Style.GetBorderWidth()
		w -= border.Left + border.Right
		w -= box.Style.GetPaddingSize("left").Resolve(cbWidth) + box.Style.GetPaddingSize("right").Resolve(cbWidth)
	}
	return w
}

// resolveHeight converts a height-like value to a content height. Padding
// percentages still resolve against the containing block width.
func (s *LayoutState) resolveHeight(box *Box, size css.Size) float64 {
	h := size.Resolve(s.containingBlockHeightFor(box))
	if box.Style.GetBoxSizing() == css.BoxSizingBorderBox {
		cbWidth := s.containingBlockWidthFor(box)
		border := box.Style.GetBorderWidth()
		h -= border.Top + border.Bottom
		h -= box.Style.GetPaddingSize("top").Resolve(cbWidth) + box.Style.GetPaddingSize("bottom").Resolve(cbWidth)
	}
	return h
}
