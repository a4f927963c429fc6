package layout

import (
	"math"

	"flexlayout/pkg/css"
)

// flexEdges is one kind of box edge (margin, border or padding) of a flex
// item, split along the main and cross axes. before is the physical
// left/top side, after the right/bottom side.
type flexEdges struct {
	mainBefore  float64
	mainAfter   float64
	crossBefore float64
	crossAfter  float64
}

func (e flexEdges) main() float64  { return e.mainBefore + e.mainAfter }
func (e flexEdges) cross() float64 { return e.crossBefore + e.crossAfter }

type flexMargins struct {
	flexEdges
	mainBeforeIsAuto  bool
	mainAfterIsAuto   bool
	crossBeforeIsAuto bool
	crossAfterIsAuto  bool
}

// FlexItem is the per-run record of one in-flow child of a flex container.
// Items are created once by generateAnonymousFlexItems and referenced by
// pointer from the lines for the rest of the run.
type FlexItem struct {
	box *Box

	margins flexMargins
	borders flexEdges
	padding flexEdges

	usedFlexBasis           css.FlexBasis
	usedFlexBasisIsDefinite bool
	flexBaseSize            float64
	hypotheticalMainSize    float64
	hypotheticalCrossSize   float64

	targetMainSize         float64
	flexFactor             float64
	scaledFlexShrinkFactor float64
	desiredFlexFraction    float64
	frozen                 bool
	isMinViolation         bool
	isMaxViolation         bool

	mainSize    float64
	hasMainSize bool
	crossSize   float64

	mainOffset  float64
	crossOffset float64
}

// Box returns the box the item wraps.
func (i *FlexItem) Box() *Box { return i.box }

// MainSize and CrossSize are the used inner sizes after the run.
func (i *FlexItem) MainSize() float64  { return i.mainSize }
func (i *FlexItem) CrossSize() float64 { return i.crossSize }

// Frozen reports whether flexible length resolution has fixed the item.
func (i *FlexItem) Frozen() bool { return i.frozen }

func (i *FlexItem) addMainMarginBoxSizes(content float64) float64 {
	return content + i.margins.main() + i.borders.main() + i.padding.main()
}

func (i *FlexItem) addCrossMarginBoxSizes(content float64) float64 {
	return content + i.margins.cross() + i.borders.cross() + i.padding.cross()
}

func (i *FlexItem) outerHypotheticalMainSize() float64 {
	return i.addMainMarginBoxSizes(i.hypotheticalMainSize)
}

func (i *FlexItem) outerTargetMainSize() float64 {
	return i.addMainMarginBoxSizes(i.targetMainSize)
}

func (i *FlexItem) outerFlexBaseSize() float64 {
	return i.addMainMarginBoxSizes(i.flexBaseSize)
}

func (i *FlexItem) outerHypotheticalCrossSize() float64 {
	return i.addCrossMarginBoxSizes(i.hypotheticalCrossSize)
}

// FlexLine is an order-preserving run of items laid out together.
type FlexLine struct {
	items              []*FlexItem
	crossSize          float64
	remainingFreeSpace float64
	chosenFlexFraction float64
}

// Items returns the items of the line in order.
func (l *FlexLine) Items() []*FlexItem { return l.items }

// CrossSize is the used cross size of the line.
func (l *FlexLine) CrossSize() float64 { return l.crossSize }

func (l *FlexLine) sumOfFlexFactorOfUnfrozenItems() float64 {
	sum := 0.0
	for _, item := range l.items {
		if !item.frozen {
			sum += item.flexFactor
		}
	}
	return sum
}

func (l *FlexLine) sumOfScaledFlexShrinkFactorOfUnfrozenItems() float64 {
	sum := 0.0
	for _, item := range l.items {
		if !item.frozen {
			sum += item.scaledFlexShrinkFactor
		}
	}
	return sum
}

// cssClamp clamps value into [min, max], letting min win when the two
// cross, as CSS requires.
func cssClamp(value, minimum, maximum float64) float64 {
	return math.Max(minimum, math.Min(value, maximum))
}

// Axis mapping. Everything below reads and writes sizes in main/cross
// terms; only these helpers know which of width and height that is.

func (c *FlexFormattingContext) isRowLayout() bool        { return c.flexDirection.IsRow() }
func (c *FlexFormattingContext) isDirectionReverse() bool { return c.flexDirection.IsReverse() }
func (c *FlexFormattingContext) isSingleLine() bool {
	return c.box.Style.GetFlexWrap() == css.FlexWrapNowrap
}

func (c *FlexFormattingContext) hasDefiniteMainSize(box *Box) bool {
	u := c.state.Get(box)
	if c.isRowLayout() {
		return u.HasDefiniteWidth()
	}
	return u.HasDefiniteHeight()
}

func (c *FlexFormattingContext) hasDefiniteCrossSize(box *Box) bool {
	u := c.state.Get(box)
	if c.isRowLayout() {
		return u.HasDefiniteHeight()
	}
	return u.HasDefiniteWidth()
}

func (c *FlexFormattingContext) innerMainSize(box *Box) float64 {
	u := c.state.Get(box)
	if c.isRowLayout() {
		return u.ContentWidth()
	}
	return u.ContentHeight()
}

func (c *FlexFormattingContext) innerCrossSize(box *Box) float64 {
	u := c.state.Get(box)
	if c.isRowLayout() {
		return u.ContentHeight()
	}
	return u.ContentWidth()
}

func (c *FlexFormattingContext) resolvedDefiniteMainSize(item *FlexItem) float64 {
	if c.isRowLayout() {
		return c.state.ResolvedDefiniteWidth(item.box)
	}
	return c.state.ResolvedDefiniteHeight(item.box)
}

func (c *FlexFormattingContext) resolvedDefiniteCrossSize(item *FlexItem) float64 {
	if c.isRowLayout() {
		return c.state.ResolvedDefiniteHeight(item.box)
	}
	return c.state.ResolvedDefiniteWidth(item.box)
}

func (c *FlexFormattingContext) mainProperty(prefix string) string {
	if c.isRowLayout() {
		return prefix + "width"
	}
	return prefix + "height"
}

func (c *FlexFormattingContext) crossProperty(prefix string) string {
	if c.isRowLayout() {
		return prefix + "height"
	}
	return prefix + "width"
}

func (c *FlexFormattingContext) computedMainSize(box *Box) css.Size {
	return box.Style.GetSize(c.mainProperty(""))
}

func (c *FlexFormattingContext) computedMainMinSize(box *Box) css.Size {
	return box.Style.GetSize(c.mainProperty("min-"))
}

func (c *FlexFormattingContext) computedMainMaxSize(box *Box) css.Size {
	return box.Style.GetSize(c.mainProperty("max-"))
}

func (c *FlexFormattingContext) computedCrossSize(box *Box) css.Size {
	return box.Style.GetSize(c.crossProperty(""))
}

func (c *FlexFormattingContext) computedCrossMinSize(box *Box) css.Size {
	return box.Style.GetSize(c.crossProperty("min-"))
}

func (c *FlexFormattingContext) computedCrossMaxSize(box *Box) css.Size {
	return box.Style.GetSize(c.crossProperty("max-"))
}

func (c *FlexFormattingContext) hasMainMinSize(box *Box) bool {
	return c.computedMainMinSize(box).IsLengthPercentage()
}

func (c *FlexFormattingContext) hasMainMaxSize(box *Box) bool {
	return c.computedMainMaxSize(box).IsLengthPercentage()
}

// pixelMainSize resolves a main-size value of box to a content size.
func (c *FlexFormattingContext) pixelMainSize(box *Box, size css.Size) float64 {
	if c.isRowLayout() {
		return c.state.resolveWidth(box, size)
	}
	return c.state.resolveHeight(box, size)
}

func (c *FlexFormattingContext) pixelCrossSize(box *Box, size css.Size) float64 {
	if c.isRowLayout() {
		return c.state.resolveHeight(box, size)
	}
	return c.state.resolveWidth(box, size)
}

func (c *FlexFormattingContext) specifiedMainMinSize(box *Box) float64 {
	return c.pixelMainSize(box, c.computedMainMinSize(box))
}

func (c *FlexFormattingContext) specifiedMainMaxSize(box *Box) float64 {
	return c.pixelMainSize(box, c.computedMainMaxSize(box))
}

func (c *FlexFormattingContext) specifiedCrossMinSize(box *Box) float64 {
	return c.pixelCrossSize(box, c.computedCrossMinSize(box))
}

func (c *FlexFormattingContext) specifiedCrossMaxSize(box *Box) float64 {
	return c.pixelCrossSize(box, c.computedCrossMaxSize(box))
}

func (c *FlexFormattingContext) isCrossAuto(box *Box) bool {
	return c.computedCrossSize(box).IsAuto()
}

// usedMainMinSize is the min main size, or the automatic minimum when
// min-width/min-height is auto.
func (c *FlexFormattingContext) usedMainMinSize(item *FlexItem) float64 {
	if c.hasMainMinSize(item.box) {
		return c.specifiedMainMinSize(item.box)
	}
	return c.automaticMinimumSize(item)
}

func (c *FlexFormattingContext) usedMainMaxSize(item *FlexItem) float64 {
	if c.hasMainMaxSize(item.box) {
		return c.specifiedMainMaxSize(item.box)
	}
	return math.Inf(1)
}

// crossMinMax returns the min and max cross size clamps. Percentages are
// only resolved when resolvePercentages is set.
func (c *FlexFormattingContext) crossMinMax(box *Box, resolvePercentages bool) (float64, float64) {
	minSize, maxSize := 0.0, math.Inf(1)
	if m := c.computedCrossMinSize(box); m.IsLengthPercentage() && (resolvePercentages || !m.ContainsPercentage()) {
		minSize = c.specifiedCrossMinSize(box)
	}
	if m := c.computedCrossMaxSize(box); m.IsLengthPercentage() && (resolvePercentages || !m.ContainsPercentage()) {
		maxSize = c.specifiedCrossMaxSize(box)
	}
	return minSize, maxSize
}

func (c *FlexFormattingContext) setMainSize(box *Box, size float64) {
	u := c.state.GetMutable(box)
	if c.isRowLayout() {
		u.SetContentWidth(size)
	} else {
		u.SetContentHeight(size)
	}
}

func (c *FlexFormattingContext) setCrossSize(box *Box, size float64) {
	u := c.state.GetMutable(box)
	if c.isRowLayout() {
		u.SetContentHeight(size)
	} else {
		u.SetContentWidth(size)
	}
}

func (c *FlexFormattingContext) setOffset(box *Box, mainOffset, crossOffset float64) {
	u := c.state.GetMutable(box)
	if c.isRowLayout() {
		u.Offset = Position{X: mainOffset, Y: crossOffset}
	} else {
		u.Offset = Position{X: crossOffset, Y: mainOffset}
	}
}

func (c *FlexFormattingContext) setMainAxisFirstMargin(item *FlexItem, margin float64) {
	item.margins.mainBefore = margin
	u := c.state.GetMutable(item.box)
	if c.isRowLayout() {
		u.Margin.Left = margin
	} else {
		u.Margin.Top = margin
	}
}

func (c *FlexFormattingContext) setMainAxisSecondMargin(item *FlexItem, margin float64) {
	item.margins.mainAfter = margin
	u := c.state.GetMutable(item.box)
	if c.isRowLayout() {
		u.Margin.Right = margin
	} else {
		u.Margin.Bottom = margin
	}
}

// populateSpecifiedMargins routes the box edges of the item's box onto the
// main and cross axes. Percentages resolve against the width of the
// containing block.
func (c *FlexFormattingContext) populateSpecifiedMargins(item *FlexItem) {
	box := item.box
	cbWidth := c.state.containingBlockWidthFor(box)
	style := box.Style
	border := style.GetBorderWidth()

	side := func(get func(string) css.Size, name string) (float64, bool) {
		v := get(name)
		return v.Resolve(cbWidth), v.IsAuto()
	}
	mainBefore, mainAfter, crossBefore, crossAfter := "left", "right", "top", "bottom"
	item.borders = flexEdges{border.Left, border.Right, border.Top, border.Bottom}
	if !c.isRowLayout() {
		mainBefore, mainAfter, crossBefore, crossAfter = "top", "bottom", "left", "right"
		item.borders = flexEdges{border.Top, border.Bottom, border.Left, border.Right}
	}

	item.padding.mainBefore, _ = side(style.GetPaddingSize, mainBefore)
	item.padding.mainAfter, _ = side(style.GetPaddingSize, mainAfter)
	item.padding.crossBefore, _ = side(style.GetPaddingSize, crossBefore)
	item.padding.crossAfter, _ = side(style.GetPaddingSize, crossAfter)

	item.margins.mainBefore, item.margins.mainBeforeIsAuto = side(style.GetMarginSize, mainBefore)
	item.margins.mainAfter, item.margins.mainAfterIsAuto = side(style.GetMarginSize, mainAfter)
	item.margins.crossBefore, item.margins.crossBeforeIsAuto = side(style.GetMarginSize, crossBefore)
	item.margins.crossAfter, item.margins.crossAfterIsAuto = side(style.GetMarginSize, crossAfter)
}
