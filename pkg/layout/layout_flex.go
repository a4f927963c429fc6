package layout

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"flexlayout/pkg/css"
)

// FlexFormattingContext lays out the children of a flex container following
// https://www.w3.org/TR/css-flexbox-1/#layout-algorithm
type FlexFormattingContext struct {
	formattingContext
	flexDirection css.FlexDirection

	// items is allocated once per run with its final length; lines point
	// into it, so it must never grow after generateAnonymousFlexItems.
	items []FlexItem
	lines []*FlexLine

	availableSpaceForFlexContainer axisAgnosticAvailableSpace
	availableSpaceForItems         axisAgnosticAvailableSpace

	log *zap.Logger
}

// NewFlexFormattingContext creates the context for a flex container.
func NewFlexFormattingContext(state *LayoutState, container *Box, parent FormattingContext) *FlexFormattingContext {
	verify(container.IsFlexContainer(), "flex formatting context for %s", container.DebugDescription())
	return &FlexFormattingContext{
		formattingContext: formattingContext{state: state, box: container, parent: parent},
		flexDirection:     container.Style.GetFlexDirection(),
		log:               state.logger().Named("flex"),
	}
}

func (c *FlexFormattingContext) Type() FormattingContextType { return FormattingContextFlex }

// Lines returns the flex lines of the last run.
func (c *FlexFormattingContext) Lines() []*FlexLine { return c.lines }

func (c *FlexFormattingContext) AutomaticContentWidth() float64 {
	return c.state.Get(c.box).ContentWidth()
}

func (c *FlexFormattingContext) AutomaticContentHeight() float64 {
	return c.state.Get(c.box).ContentHeight()
}

// CanDetermineSizeOfChild is true: the flex algorithm sizes every item
// before the item's own context runs, so requests from children are no-ops.
func (c *FlexFormattingContext) CanDetermineSizeOfChild() bool { return true }

func (c *FlexFormattingContext) DetermineWidthOfChild(*Box, AvailableSpace)  {}
func (c *FlexFormattingContext) DetermineHeightOfChild(*Box, AvailableSpace) {}

// Run lays out the flex items of box. space is the content-box space the
// parent offers the container.
func (c *FlexFormattingContext) Run(box *Box, mode LayoutMode, space AvailableSpace) {
	verify(box == c.box, "flex context run for %s, owns %s", box.DebugDescription(), c.box.DebugDescription())
	c.items = nil
	c.lines = nil

	// The algorithm below works on the container's margin box, so pad the
	// content-box space back out by the container's own edges.
	containerState := c.state.Get(c.box)
	availableWidth := space.Width
	if availableWidth.IsDefinite() {
		availableWidth = Definite(availableWidth.ToPx() + containerState.BorderBoxLeft() + containerState.BorderBoxRight())
	}
	availableHeight := space.Height
	if availableHeight.IsDefinite() {
		availableHeight = Definite(availableHeight.ToPx() + containerState.BorderBoxTop() + containerState.BorderBoxBottom())
	}
	c.availableSpaceForFlexContainer = newAxisAgnosticAvailableSpace(c.isRowLayout(), AvailableSpace{Width: availableWidth, Height: availableHeight})
	intrinsicSizing := availableWidth.IsIntrinsicSizingConstraint() || availableHeight.IsIntrinsicSizingConstraint()

	// 1. Generate anonymous flex items
	c.generateAnonymousFlexItems()

	// 2. Determine the available main and cross space for the flex items
	c.determineAvailableSpaceForItems(AvailableSpace{Width: availableWidth, Height: availableHeight})

	// https://drafts.csswg.org/css-flexbox-1/#definite-sizes
	// If a single-line flex container has a definite cross size, the outer
	// cross size of any stretched item is the container's inner cross size
	// (clamped to the item's min and max cross size) and is definite.
	if c.isSingleLine() && c.hasDefiniteCrossSize(c.box) {
		innerCross := c.innerCrossSize(c.box)
		for i := range c.items {
			item := &c.items[i]
			if !c.flexItemIsStretched(item) {
				continue
			}
			minCross, maxCross := c.crossMinMax(item.box, true)
			outer := cssClamp(innerCross, minCross, maxCross)
			c.setCrossSize(item.box, math.Max(0, outer-item.margins.cross()-item.padding.cross()-item.borders.cross()))
		}
	}

	// 3. Determine the flex base size and hypothetical main size of each item
	for i := range c.items {
		c.determineFlexBaseSizeAndHypotheticalMainSize(&c.items[i])
	}

	// 4. Determine the main size of the flex container. Under an intrinsic
	// sizing constraint the container size is computed at the end instead.
	if !intrinsicSizing {
		c.determineMainSizeOfFlexContainer()
	}

	// 5. Collect flex items into flex lines. No items are added or removed
	// past this point.
	c.collectFlexItemsIntoFlexLines()

	// 6. Resolve the flexible lengths
	c.resolveFlexibleLengths()

	// 7. Determine the hypothetical cross size of each item
	for i := range c.items {
		c.determineHypotheticalCrossSizeOfItem(&c.items[i], false)
	}

	// 8. Calculate the cross size of each flex line
	c.calculateCrossSizeOfEachFlexLine()

	// 9. Handle 'align-content: stretch'
	c.handleAlignContentStretch()

	// 10. Collapse visibility:collapse items
	c.collapseVisibilityCollapseItems()

	// 11. Determine the used cross size of each flex item
	c.determineUsedCrossSizeOfEachFlexItem()

	// 12. Distribute any remaining free space
	c.distributeAnyRemainingFreeSpace()

	// 13. Resolve cross-axis auto margins
	c.resolveCrossAxisAutoMargins()

	// 14. Align all flex items along the cross-axis
	c.alignAllFlexItemsAlongTheCrossAxis()

	// 15. Determine the flex container's used cross size
	c.determineFlexContainerUsedCrossSize()

	// https://drafts.csswg.org/css-flexbox-1/#definite-sizes
	// Once the cross size of a flex line has been determined, the cross
	// sizes of items in auto-sized flex containers are definite too.
	if c.computedCrossSize(c.box).IsAuto() {
		for i := range c.items {
			c.setCrossSize(c.items[i].box, c.items[i].crossSize)
		}
	}

	// Percentage min/max cross sizes can be resolved now, so run steps 7
	// and 11 again.
	for i := range c.items {
		c.determineHypotheticalCrossSizeOfItem(&c.items[i], true)
	}
	c.determineUsedCrossSizeOfEachFlexItem()

	// 16. Align all flex lines (per align-content)
	c.alignAllFlexLines()

	c.verifyItemsStable()
	c.dumpItems(mode)

	if intrinsicSizing {
		c.determineIntrinsicSizeOfFlexContainer()
		return
	}

	// Finally lay out the inside of every item at its flexed size.
	c.copyDimensionsFromFlexItemsToBoxes()
	for i := range c.items {
		item := &c.items[i]
		inner := c.state.Get(item.box).AvailableInnerSpaceOrConstraintsFrom(c.availableSpaceForFlexContainer.space)
		ctx := layoutInside(c.state, item.box, c, LayoutNormal, inner)
		ctx.ParentContextDidDimensionChildRootBox()
	}
}

// ParentContextDidDimensionChildRootBox lays out the absolutely positioned
// children of the container against their containing block.
func (c *FlexFormattingContext) ParentContextDidDimensionChildRootBox() {
	for _, child := range c.box.Children {
		if child.GeneratesBox() && child.IsAbsolutelyPositioned() {
			layoutAbsolutelyPositionedBox(c.state, child, c, c.calculateStaticPosition)
		}
	}
}

// https://www.w3.org/TR/css-flexbox-1/#flex-items
func (c *FlexFormattingContext) generateAnonymousFlexItems() {
	buckets := make(map[int][]FlexItem)
	count := 0
	for _, child := range c.box.Children {
		if !child.GeneratesBox() || child.IsEmptyTextRun() {
			continue
		}
		// Skip any "out-of-flow" children
		if child.IsOutOfFlow() {
			continue
		}
		item := FlexItem{box: child}
		c.populateSpecifiedMargins(&item)
		order := child.Style.GetOrder()
		buckets[order] = append(buckets[order], item)
		count++
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	reverse := c.isDirectionReverse()
	sort.Slice(keys, func(i, j int) bool {
		if reverse {
			return keys[i] > keys[j]
		}
		return keys[i] < keys[j]
	})

	c.items = make([]FlexItem, 0, count)
	for _, k := range keys {
		bucket := buckets[k]
		if reverse {
			for i := len(bucket) - 1; i >= 0; i-- {
				c.items = append(c.items, bucket[i])
			}
			continue
		}
		c.items = append(c.items, bucket...)
	}
}

// verifyItemsStable checks that the item list was not reallocated, which
// would leave the lines pointing at stale copies.
func (c *FlexFormattingContext) verifyItemsStable() {
	total := 0
	for _, line := range c.lines {
		total += len(line.items)
		for _, item := range line.items {
			idx := -1
			for i := range c.items {
				if &c.items[i] == item {
					idx = i
					break
				}
			}
			verify(idx >= 0, "flex line of %s references an item outside the item list", c.box.DebugDescription())
		}
	}
	verify(total == len(c.items), "flex lines of %s hold %d items, expected %d", c.box.DebugDescription(), total, len(c.items))
}

// https://drafts.csswg.org/css-flexbox-1/#algo-available
func (c *FlexFormattingContext) determineAvailableSpaceForItems(space AvailableSpace) {
	// For each dimension, if that dimension of the flex container's content
	// box is a definite size, use that; if the container is being sized
	// under a min or max-content constraint, use that constraint; otherwise
	// subtract the container's margin, border and padding from the space
	// available to it.
	u := c.state.Get(c.box)

	var width AvailableSize
	switch {
	case u.HasDefiniteWidth():
		width = Definite(c.state.ResolvedDefiniteWidth(c.box))
	case space.Width.IsIntrinsicSizingConstraint():
		width = space.Width
	case space.Width.IsDefinite():
		width = Definite(space.Width.ToPx() - u.BorderBoxLeft() - u.BorderBoxRight())
	default:
		width = Indefinite()
	}

	var height AvailableSize
	switch {
	case u.HasDefiniteHeight():
		height = Definite(c.state.ResolvedDefiniteHeight(c.box))
	case space.Height.IsIntrinsicSizingConstraint():
		height = space.Height
	case space.Height.IsDefinite():
		height = Definite(space.Height.ToPx() - u.BorderBoxTop() - u.BorderBoxBottom())
	default:
		height = Indefinite()
	}

	c.availableSpaceForItems = newAxisAgnosticAvailableSpace(c.isRowLayout(), AvailableSpace{Width: width, Height: height})
	c.availableSpaceForItems.verifyConsistent(c.isRowLayout())
}

// https://drafts.csswg.org/css-flexbox-1/#propdef-flex-basis
func (c *FlexFormattingContext) usedFlexBasisForItem(item *FlexItem) css.FlexBasis {
	basis := item.box.Style.GetFlexBasis()
	if basis.Type != css.FlexBasisAuto {
		return basis
	}
	// auto retrieves the main size property; if that is auto too, the
	// used value is content.
	mainSize := c.computedMainSize(item.box)
	if mainSize.IsLengthPercentage() {
		return css.FlexBasis{Type: css.FlexBasisSize, Size: mainSize}
	}
	return css.FlexBasis{Type: css.FlexBasisContent}
}

func (c *FlexFormattingContext) isUsedFlexBasisDefinite(basis css.FlexBasis) bool {
	if basis.Type != css.FlexBasisSize {
		return false
	}
	if basis.Size.IsLength() {
		return true
	}
	return c.hasDefiniteMainSize(c.box)
}

// https://www.w3.org/TR/css-flexbox-1/#algo-main-item
func (c *FlexFormattingContext) determineFlexBaseSizeAndHypotheticalMainSize(item *FlexItem) {
	item.usedFlexBasis = c.usedFlexBasisForItem(item)
	item.usedFlexBasisIsDefinite = c.isUsedFlexBasisDefinite(item.usedFlexBasis)
	item.flexBaseSize = c.flexBaseSize(item)

	// The hypothetical main size is the flex base size clamped by the used
	// min and max main sizes, with the content box floored at zero.
	item.hypotheticalMainSize = math.Max(0, cssClamp(item.flexBaseSize, c.usedMainMinSize(item), c.usedMainMaxSize(item)))

	// Store it as the temporary main size so descendants can resolve
	// percentages against it before flexible lengths are resolved.
	u := c.state.GetMutable(item.box)
	if c.isRowLayout() {
		u.SetTemporaryContentWidth(item.hypotheticalMainSize)
	} else {
		u.SetTemporaryContentHeight(item.hypotheticalMainSize)
	}
}

func (c *FlexFormattingContext) flexBaseSize(item *FlexItem) float64 {
	isContent := item.usedFlexBasis.Type == css.FlexBasisContent

	// A. If the item has a definite used flex basis, that's the flex base size.
	if item.usedFlexBasisIsDefinite {
		return c.pixelMainSize(item.box, item.usedFlexBasis.Size)
	}

	// B. An item with an intrinsic aspect ratio, a used flex basis of
	// content and a definite cross size: the base size is the cross size
	// transferred through the ratio.
	if ratio, ok := item.box.IntrinsicAspectRatio(); ok && isContent && c.hasDefiniteCrossSize(item.box) {
		return c.transferCrossSizeThroughRatio(c.resolvedDefiniteCrossSize(item), ratio)
	}

	// C. Content basis while the container is sized under a min-content or
	// max-content constraint: size the item under that constraint.
	if isContent && c.availableSpaceForItems.main.IsIntrinsicSizingConstraint() {
		if c.availableSpaceForItems.main.IsMinContent() {
			return c.calculateMinContentMainSize(item)
		}
		return c.calculateMaxContentMainSize(item)
	}

	// D. Content basis, infinite available main size and an item in an
	// orthogonal flow: lay the item out using the orthogonal flow rules.
	if isContent && !c.availableSpaceForItems.main.IsDefinite() && c.itemIsInOrthogonalFlow(item) {
		notImplemented(FeatureOrthogonalFlow, item.box)
	}

	// E. Otherwise size the item into the available space using its used
	// flex basis in place of its main size, treating content as max-content.
	if c.hasDefiniteMainSize(item.box) {
		return c.resolvedDefiniteMainSize(item)
	}
	return c.calculateIndefiniteMainSize(item)
}

// transferCrossSizeThroughRatio converts a cross size into a main size
// through an aspect ratio expressed as width / height.
func (c *FlexFormattingContext) transferCrossSizeThroughRatio(cross, ratio float64) float64 {
	if c.isRowLayout() {
		return cross * ratio
	}
	return cross / ratio
}

func (c *FlexFormattingContext) itemIsInOrthogonalFlow(item *FlexItem) bool {
	return item.box.Style.GetWritingMode().IsVertical() != c.box.Style.GetWritingMode().IsVertical()
}

func (c *FlexFormattingContext) calculateIndefiniteMainSize(item *FlexItem) float64 {
	verify(!c.hasDefiniteMainSize(item.box), "%s already has a definite main size", item.box.DebugDescription())

	if item.usedFlexBasis.Type == css.FlexBasisContent {
		return c.calculateMaxContentMainSize(item)
	}

	// When the main size is in the block axis a cross size is needed to
	// find it: use fit-content as the item's cross size and lay the item
	// out with that.
	if !c.isRowLayout() {
		fitContentCrossSize := c.calculateFitContentCrossSize(item)
		throwaway := c.state.NewOverlay()
		throwaway.GetMutable(item.box).SetContentWidth(fitContentCrossSize)
		ctx := layoutInside(throwaway, item.box, nil, LayoutNormal, c.availableSpaceForItems.space)
		return ctx.AutomaticContentHeight()
	}
	return c.calculateFitContentMainSize(item)
}

// https://drafts.csswg.org/css-flexbox-1/#min-size-auto
func (c *FlexFormattingContext) automaticMinimumSize(item *FlexItem) float64 {
	return c.contentBasedMinimumSize(item)
}

// https://drafts.csswg.org/css-flexbox-1/#specified-size-suggestion
func (c *FlexFormattingContext) specifiedSizeSuggestion(item *FlexItem) (float64, bool) {
	// The item's used main size is overwritten once lengths are resolved,
	// so read the computed value.
	size := c.computedMainSize(item.box)
	if size.IsLength() || (size.IsPercentage() && c.hasDefiniteMainSize(c.box)) {
		return c.pixelMainSize(item.box, size), true
	}
	return 0, false
}

// https://drafts.csswg.org/css-flexbox-1/#content-size-suggestion
func (c *FlexFormattingContext) contentSizeSuggestion(item *FlexItem) float64 {
	return c.calculateMinContentMainSize(item)
}

// https://drafts.csswg.org/css-flexbox-1/#transferred-size-suggestion
func (c *FlexFormattingContext) transferredSizeSuggestion(item *FlexItem) (float64, bool) {
	ratio, ok := item.box.IntrinsicAspectRatio()
	if !ok || !c.hasDefiniteCrossSize(item.box) {
		return 0, false
	}
	minCross, maxCross := c.crossMinMax(item.box, true)
	cross := cssClamp(c.resolvedDefiniteCrossSize(item), minCross, maxCross)
	return c.transferCrossSizeThroughRatio(cross, ratio), true
}

// https://drafts.csswg.org/css-flexbox-1/#content-based-minimum-size
func (c *FlexFormattingContext) contentBasedMinimumSize(item *FlexItem) float64 {
	var size float64
	if specified, ok := c.specifiedSizeSuggestion(item); ok {
		size = math.Min(specified, c.contentSizeSuggestion(item))
	} else if transferred, ok := c.transferredSizeSuggestion(item); ok && item.box.HasIntrinsicAspectRatio() {
		size = math.Min(transferred, c.contentSizeSuggestion(item))
	} else {
		size = c.contentSizeSuggestion(item)
	}
	// In all cases the size is clamped by the maximum main size if definite.
	if c.hasMainMaxSize(item.box) {
		size = math.Min(size, c.specifiedMainMaxSize(item.box))
	}
	return size
}

// https://drafts.csswg.org/css-flexbox-1/#algo-main-container
func (c *FlexFormattingContext) determineMainSizeOfFlexContainer() {
	// Absolutely positioned containers are sized by the abspos layout.
	if c.box.IsAbsolutelyPositioned() {
		return
	}
	space := c.availableSpaceForFlexContainer.space
	if c.parent != nil && c.parent.CanDetermineSizeOfChild() {
		if c.isRowLayout() {
			c.parent.DetermineWidthOfChild(c.box, space)
		} else {
			c.parent.DetermineHeightOfChild(c.box, space)
		}
		return
	}
	if c.hasDefiniteMainSize(c.box) {
		return
	}
	if c.isRowLayout() {
		if c.state.hasDefiniteContainingBlockWidth(c.box) {
			c.setMainSize(c.box, calculateStretchFitWidth(c.state, c.box, space.Width))
		} else {
			c.setMainSize(c.box, calculateMaxContentWidth(c.state, c.box))
		}
		return
	}
	// The automatic block size of a block-level flex container is its
	// max-content size.
	c.setMainSize(c.box, calculateMaxContentHeight(c.state, c.box, space.Width))
}

// https://www.w3.org/TR/css-flexbox-1/#algo-line-break
func (c *FlexFormattingContext) collectFlexItemsIntoFlexLines() {
	c.lines = nil
	if len(c.items) == 0 {
		return
	}
	// If the flex container is single-line, collect all the flex items into
	// a single flex line.
	if c.isSingleLine() {
		line := &FlexLine{items: make([]*FlexItem, 0, len(c.items))}
		for i := range c.items {
			line.items = append(line.items, &c.items[i])
		}
		c.lines = append(c.lines, line)
		return
	}
	if c.box.Style.GetFlexWrap() == css.FlexWrapWrapReverse {
		c.state.reportUnsupported(FeatureWrapReverse, c.box)
	}

	// Otherwise collect consecutive items until the next one would not fit
	// into the container's inner main size. An item that does not fit on
	// its own still gets a line. Under a max-content constraint everything
	// fits; under min-content every item gets its own line.
	var limit float64
	switch main := c.availableSpaceForItems.main; {
	case main.IsMaxContent():
		limit = math.Inf(1)
	case main.IsMinContent():
		limit = 0
	case c.hasDefiniteMainSize(c.box):
		limit = c.innerMainSize(c.box)
	default:
		limit = main.ToPxOrZero()
	}
	line := &FlexLine{}
	lineMainSize := 0.0
	for i := range c.items {
		item := &c.items[i]
		outer := item.outerHypotheticalMainSize()
		if len(line.items) > 0 && lineMainSize+outer > limit {
			c.lines = append(c.lines, line)
			line = &FlexLine{}
			lineMainSize = 0
		}
		line.items = append(line.items, item)
		lineMainSize += outer
	}
	c.lines = append(c.lines, line)
}

type flexFactorKind int

const (
	flexGrowFactor flexFactorKind = iota
	flexShrinkFactor
)

// https://drafts.csswg.org/css-flexbox-1/#resolve-flexible-lengths
func (c *FlexFormattingContext) resolveFlexibleLengths() {
	for _, line := range c.lines {
		c.resolveFlexibleLengthsForLine(line)
	}
}

func (c *FlexFormattingContext) resolveFlexibleLengthsForLine(line *FlexLine) {
	innerMainSize := c.innerMainSize(c.box)

	// 1. Determine the used flex factor: grow if the outer hypothetical
	// main sizes sum to less than the container's inner main size.
	sum := 0.0
	for _, item := range line.items {
		sum += item.outerHypotheticalMainSize()
	}
	usedFlexFactor := flexShrinkFactor
	if sum < innerMainSize {
		usedFlexFactor = flexGrowFactor
	}

	// 2. Every item starts unfrozen with its flex base size as target.
	// 3. Size inflexible items.
	for _, item := range line.items {
		item.targetMainSize = item.flexBaseSize
		item.frozen = false
		item.isMinViolation = false
		item.isMaxViolation = false
		if usedFlexFactor == flexGrowFactor {
			item.flexFactor = item.box.Style.GetFlexGrow()
		} else {
			item.flexFactor = item.box.Style.GetFlexShrink()
		}
		if item.flexFactor == 0 ||
			(usedFlexFactor == flexGrowFactor && item.flexBaseSize > item.hypotheticalMainSize) ||
			(usedFlexFactor == flexShrinkFactor && item.flexBaseSize < item.hypotheticalMainSize) {
			item.frozen = true
			item.targetMainSize = item.hypotheticalMainSize
		}
	}

	// 4. Calculate initial free space: outer target sizes for frozen items,
	// outer flex base sizes for the others.
	remainingFreeSpace := func() float64 {
		sum := 0.0
		for _, item := range line.items {
			if item.frozen {
				sum += item.outerTargetMainSize()
			} else {
				sum += item.outerFlexBaseSize()
			}
		}
		return innerMainSize - sum
	}
	initialFreeSpace := remainingFreeSpace()

	// 5. Loop until every item is frozen. Each pass freezes at least one
	// item, so there are at most len(line.items) passes.
	iterations := 0
	for {
		unfrozen := 0
		for _, item := range line.items {
			if !item.frozen {
				unfrozen++
			}
		}
		// a. If all the flex items on the line are frozen, free space has
		// been distributed.
		if unfrozen == 0 {
			break
		}
		iterations++
		verify(iterations <= len(line.items), "flexible length resolution of %s did not converge", c.box.DebugDescription())

		// b. Calculate the remaining free space. If the unfrozen flex
		// factors sum to less than one, a scaled initial free space of
		// smaller magnitude wins.
		line.remainingFreeSpace = remainingFreeSpace()
		if sumOfFactors := line.sumOfFlexFactorOfUnfrozenItems(); sumOfFactors < 1 {
			if value := initialFreeSpace * sumOfFactors; math.Abs(value) < math.Abs(line.remainingFreeSpace) {
				line.remainingFreeSpace = value
			}
		}

		// c. Distribute the free space proportional to the flex factors.
		if line.remainingFreeSpace != 0 {
			if usedFlexFactor == flexGrowFactor {
				sumOfFactors := line.sumOfFlexFactorOfUnfrozenItems()
				for _, item := range line.items {
					if item.frozen {
						continue
					}
					ratio := item.flexFactor / sumOfFactors
					item.targetMainSize = item.flexBaseSize + line.remainingFreeSpace*ratio
				}
			} else {
				for _, item := range line.items {
					if !item.frozen {
						item.scaledFlexShrinkFactor = item.flexFactor * item.flexBaseSize
					}
				}
				sumOfScaled := line.sumOfScaledFlexShrinkFactorOfUnfrozenItems()
				for _, item := range line.items {
					if item.frozen {
						continue
					}
					ratio := 1.0
					if sumOfScaled != 0 {
						ratio = item.scaledFlexShrinkFactor / sumOfScaled
					}
					// This may make the inner main size negative; the
					// clamp below corrects it.
					item.targetMainSize = item.flexBaseSize - math.Abs(line.remainingFreeSpace)*ratio
				}
			}
		}

		// d. Fix min/max violations.
		totalViolation := 0.0
		for _, item := range line.items {
			if item.frozen {
				continue
			}
			original := item.targetMainSize
			item.targetMainSize = math.Max(0, cssClamp(item.targetMainSize, c.usedMainMinSize(item), c.usedMainMaxSize(item)))
			item.isMaxViolation = item.targetMainSize < original
			item.isMinViolation = item.targetMainSize > original
			totalViolation += item.targetMainSize - original
		}

		// e. Freeze over-flexed items.
		newlyFrozen := 0
		for _, item := range line.items {
			if item.frozen {
				continue
			}
			if totalViolation == 0 ||
				(totalViolation > 0 && item.isMinViolation) ||
				(totalViolation < 0 && item.isMaxViolation) {
				item.frozen = true
				newlyFrozen++
			}
		}
		verify(newlyFrozen > 0, "flexible length resolution of %s froze no item", c.box.DebugDescription())
	}

	// Needed again when aligning items along the main axis.
	line.remainingFreeSpace = remainingFreeSpace()

	// 6. Set each item's used main size to its target main size.
	for _, item := range line.items {
		item.mainSize = item.targetMainSize
		item.hasMainSize = true
		c.setMainSize(item.box, item.targetMainSize)
	}
	c.log.Debug("resolved flexible lengths",
		zap.String("container", c.box.DebugDescription()),
		zap.Int("items", len(line.items)),
		zap.Int("iterations", iterations),
		zap.Bool("growing", usedFlexFactor == flexGrowFactor),
		zap.Float64("free_space", line.remainingFreeSpace))
}

// copyDimensionsFromFlexItemsToBoxes writes the result of the run into the
// layout state of every item.
func (c *FlexFormattingContext) copyDimensionsFromFlexItemsToBoxes() {
	for i := range c.items {
		item := &c.items[i]
		u := c.state.GetMutable(item.box)
		u.Border = item.box.Style.GetBorderWidth()
		if c.isRowLayout() {
			u.Margin = css.BoxEdge{Left: item.margins.mainBefore, Right: item.margins.mainAfter, Top: item.margins.crossBefore, Bottom: item.margins.crossAfter}
			u.Padding = css.BoxEdge{Left: item.padding.mainBefore, Right: item.padding.mainAfter, Top: item.padding.crossBefore, Bottom: item.padding.crossAfter}
		} else {
			u.Margin = css.BoxEdge{Top: item.margins.mainBefore, Bottom: item.margins.mainAfter, Left: item.margins.crossBefore, Right: item.margins.crossAfter}
			u.Padding = css.BoxEdge{Top: item.padding.mainBefore, Bottom: item.padding.mainAfter, Left: item.padding.crossBefore, Right: item.padding.crossAfter}
		}
		c.setMainSize(item.box, item.mainSize)
		c.setCrossSize(item.box, item.crossSize)
		c.setOffset(item.box, item.mainOffset, item.crossOffset)
	}
}

func (c *FlexFormattingContext) dumpItems(mode LayoutMode) {
	if ce := c.log.Check(zap.DebugLevel, "flex container"); ce != nil {
		u := c.state.Get(c.box)
		direction := "column"
		if c.isRowLayout() {
			direction = "row"
		}
		ce.Write(
			zap.String("container", c.box.DebugDescription()),
			zap.String("direction", direction),
			zap.Stringer("mode", mode),
			zap.Float64("width", u.ContentWidth()),
			zap.Float64("height", u.ContentHeight()),
			zap.Int("lines", len(c.lines)),
			zap.Bool("throwaway", c.state.IsOverlay()))
	}
	for li, line := range c.lines {
		for ii, item := range line.items {
			c.log.Debug("flex item",
				zap.String("container", c.box.DebugDescription()),
				zap.Int("line", li),
				zap.Int("item", ii),
				zap.String("box", item.box.DebugDescription()),
				zap.Float64("main", item.mainSize),
				zap.Float64("cross", item.crossSize))
		}
	}
}
