package layout

// ReplacedFormattingContext sizes replaced content (images). It has no
// children to lay out; its automatic size is the natural size of the
// content, transferred through the aspect ratio when one side is known.
type ReplacedFormattingContext struct {
	formattingContext
	width  float64
	height float64
}

func newReplacedFormattingContext(state *LayoutState, box *Box, parent FormattingContext) *ReplacedFormattingContext {
	verify(box.IsReplaced(), "replaced formatting context for %s", box.DebugDescription())
	return &ReplacedFormattingContext{formattingContext: formattingContext{state: state, box: box, parent: parent}}
}

func (c *ReplacedFormattingContext) Type() FormattingContextType { return FormattingContextReplaced }

func (c *ReplacedFormattingContext) Run(box *Box, mode LayoutMode, space AvailableSpace) {
	verify(box == c.box, "replaced context run for %s, owns %s", box.DebugDescription(), c.box.DebugDescription())
	c.width, c.height = replacedContentSize(c.state, box)
}

func (c *ReplacedFormattingContext) AutomaticContentWidth() float64  { return c.width }
func (c *ReplacedFormattingContext) AutomaticContentHeight() float64 { return c.height }

func (c *ReplacedFormattingContext) CanDetermineSizeOfChild() bool               { return false }
func (c *ReplacedFormattingContext) DetermineWidthOfChild(*Box, AvailableSpace)  {}
func (c *ReplacedFormattingContext) DetermineHeightOfChild(*Box, AvailableSpace) {}
func (c *ReplacedFormattingContext) ParentContextDidDimensionChildRootBox()      {}

// replacedContentSize returns the content size of a replaced box: the
// definite sizes it already has, the other side derived through the
// aspect ratio, and the natural size otherwise.
func replacedContentSize(state *LayoutState, box *Box) (width, height float64) {
	u := state.Get(box)
	ratio, hasRatio := box.IntrinsicAspectRatio()
	switch {
	case u.HasDefiniteWidth() && u.HasDefiniteHeight():
		return u.ContentWidth(), u.ContentHeight()
	case u.HasDefiniteWidth():
		if hasRatio {
			return u.ContentWidth(), u.ContentWidth() / ratio
		}
		return u.ContentWidth(), box.IntrinsicHeight
	case u.HasDefiniteHeight():
		if hasRatio {
			return u.ContentHeight() * ratio, u.ContentHeight()
		}
		return box.IntrinsicWidth, u.ContentHeight()
	}
	width, height = box.IntrinsicWidth, box.IntrinsicHeight
	if hasRatio {
		switch {
		case width == 0 && height > 0:
			width = height * ratio
		case height == 0 && width > 0:
			height = width / ratio
		}
	}
	return width, height
}
