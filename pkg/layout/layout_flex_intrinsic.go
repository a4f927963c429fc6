package layout

import (
	"math"

	"go.uber.org/zap"
)

// Item measurements in main/cross terms.

func (c *FlexFormattingContext) calculateMinContentMainSize(item *FlexItem) float64 {
	if c.isRowLayout() {
		return calculateMinContentWidth(c.state, item.box)
	}
	return calculateMinContentHeight(c.state, item.box, Definite(c.widthForIntrinsicHeightOfItem(item)))
}

func (c *FlexFormattingContext) calculateMaxContentMainSize(item *FlexItem) float64 {
	if c.isRowLayout() {
		return calculateMaxContentWidth(c.state, item.box)
	}
	return calculateMaxContentHeight(c.state, item.box, Definite(c.widthForIntrinsicHeightOfItem(item)))
}

func (c *FlexFormattingContext) calculateFitContentMainSize(item *FlexItem) float64 {
	if c.isRowLayout() {
		return calculateFitContentWidth(c.state, item.box, c.availableSpaceForItems.space)
	}
	return calculateFitContentHeight(c.state, item.box, c.availableSpaceForItems.space)
}

func (c *FlexFormattingContext) calculateFitContentCrossSize(item *FlexItem) float64 {
	if !c.isRowLayout() {
		return calculateFitContentWidth(c.state, item.box, c.availableSpaceForItems.space)
	}
	return calculateFitContentHeight(c.state, item.box, c.availableSpaceForItems.space)
}

func (c *FlexFormattingContext) calculateMinContentCrossSize(item *FlexItem) float64 {
	if c.isRowLayout() {
		return calculateMinContentHeight(c.state, item.box, Definite(item.mainSize))
	}
	return calculateMinContentWidth(c.state, item.box)
}

func (c *FlexFormattingContext) calculateMaxContentCrossSize(item *FlexItem) float64 {
	if c.isRowLayout() {
		return calculateMaxContentHeight(c.state, item.box, Definite(item.mainSize))
	}
	return calculateMaxContentWidth(c.state, item.box)
}

// widthForIntrinsicHeightOfItem is the width a column item is laid out at
// when measuring its height: its definite width, or fit-content within the
// available cross space.
func (c *FlexFormattingContext) widthForIntrinsicHeightOfItem(item *FlexItem) float64 {
	if u := c.state.Get(item.box); u.HasDefiniteWidth() {
		return u.ContentWidth()
	}
	return calculateFitContentWidth(c.state, item.box, c.availableSpaceForItems.space)
}

// https://drafts.csswg.org/css-flexbox-1/#intrinsic-sizes
func (c *FlexFormattingContext) determineIntrinsicSizeOfFlexContainer() {
	if c.availableSpaceForItems.main.IsIntrinsicSizingConstraint() {
		c.setMainSize(c.box, c.calculateIntrinsicMainSizeOfFlexContainer())
	}
	if c.availableSpaceForItems.cross.IsIntrinsicSizingConstraint() {
		c.setCrossSize(c.box, c.calculateIntrinsicCrossSizeOfFlexContainer())
	}
}

// https://drafts.csswg.org/css-flexbox-1/#intrinsic-main-sizes
func (c *FlexFormattingContext) calculateIntrinsicMainSizeOfFlexContainer() float64 {
	minContent := c.availableSpaceForItems.main.IsMinContent()

	// The min-content main size of a multi-line container is the largest
	// min-content contribution of its items.
	if minContent && !c.isSingleLine() {
		largest := 0.0
		for i := range c.items {
			largest = math.Max(largest, c.calculateMainMinContentContribution(&c.items[i]))
		}
		return largest
	}

	// Otherwise find each item's desired flex fraction: the flex fraction
	// that makes its flexed size equal its contribution.
	for i := range c.items {
		item := &c.items[i]
		var contribution float64
		if minContent {
			contribution = c.calculateMainMinContentContribution(item)
		} else {
			contribution = c.calculateMainMaxContentContribution(item)
		}
		item.scaledFlexShrinkFactor = item.box.Style.GetFlexShrink() * item.flexBaseSize

		result := contribution - item.outerFlexBaseSize()
		switch {
		case result > 0:
			if grow := item.box.Style.GetFlexGrow(); grow >= 1 {
				result /= grow
			} else {
				result *= grow
			}
		case result < 0:
			if item.scaledFlexShrinkFactor == 0 {
				result = math.Inf(-1)
			} else {
				result /= item.scaledFlexShrinkFactor
			}
		}
		item.desiredFlexFraction = result
	}

	// Within each line the largest desired flex fraction is chosen.
	for _, line := range c.lines {
		chosen := math.Inf(-1)
		sumGrow, sumShrink := 0.0, 0.0
		for _, item := range line.items {
			if !math.IsNaN(item.desiredFlexFraction) {
				chosen = math.Max(chosen, item.desiredFlexFraction)
			}
			sumGrow += item.box.Style.GetFlexGrow()
			sumShrink += item.box.Style.GetFlexShrink()
		}
		if math.IsInf(chosen, -1) {
			// No item on the line can shrink: it keeps its base sizes.
			chosen = 0
		}
		if chosen > 0 && sumGrow < 1 && sumGrow > 0 {
			chosen /= sumGrow
		}
		if chosen < 0 && sumShrink < 1 {
			chosen *= sumShrink
		}
		line.chosenFlexFraction = chosen
	}

	// The container's size is the largest sum, over the lines, of the
	// items' flexed outer sizes.
	largestSum := 0.0
	for _, line := range c.lines {
		sum := 0.0
		for _, item := range line.items {
			product := 0.0
			switch {
			case line.chosenFlexFraction > 0:
				product = line.chosenFlexFraction * item.box.Style.GetFlexGrow()
			case line.chosenFlexFraction < 0:
				product = line.chosenFlexFraction * item.scaledFlexShrinkFactor
			}
			if math.IsNaN(product) {
				product = 0
			}
			result := math.Max(0, cssClamp(item.flexBaseSize+product, c.usedMainMinSize(item), c.usedMainMaxSize(item)))
			sum += item.addMainMarginBoxSizes(result)
		}
		largestSum = math.Max(largestSum, sum)
	}
	c.log.Debug("intrinsic main size",
		zap.String("container", c.box.DebugDescription()),
		zap.Bool("min_content", minContent),
		zap.Float64("size", largestSum))
	return largestSum
}

// https://drafts.csswg.org/css-flexbox-1/#intrinsic-cross-sizes
func (c *FlexFormattingContext) calculateIntrinsicCrossSizeOfFlexContainer() float64 {
	// The min-content and max-content cross size of a single-line container
	// is the largest min-content or max-content contribution of its items.
	// Percentage min/max cross sizes are resolved in a second pass against
	// the result of the first.
	if c.isSingleLine() {
		largestContribution := func(resolvePercentages bool) float64 {
			largest := 0.0
			for i := range c.items {
				item := &c.items[i]
				var contribution float64
				if c.availableSpaceForItems.cross.IsMinContent() {
					contribution = c.calculateCrossMinContentContribution(item, resolvePercentages)
				} else {
					contribution = c.calculateCrossMaxContentContribution(item, resolvePercentages)
				}
				largest = math.Max(largest, contribution)
			}
			return largest
		}
		c.setCrossSize(c.box, largestContribution(false))
		return largestContribution(true)
	}

	// For a multi-line container this sums the line cross sizes found by
	// the run, which is close to but not exactly what the intrinsic sizing
	// rules ask for.
	sum := 0.0
	for _, line := range c.lines {
		sum += line.crossSize
	}
	return sum
}

// https://drafts.csswg.org/css-flexbox-1/#intrinsic-item-contributions
func (c *FlexFormattingContext) calculateMainMinContentContribution(item *FlexItem) float64 {
	return c.mainContentContribution(item, c.calculateMinContentMainSize(item))
}

func (c *FlexFormattingContext) calculateMainMaxContentContribution(item *FlexItem) float64 {
	return c.mainContentContribution(item, c.calculateMaxContentMainSize(item))
}

// mainContentContribution is the larger of the content size and the
// preferred main size, clamped by the min and max main sizes, as an outer
// size.
func (c *FlexFormattingContext) mainContentContribution(item *FlexItem, contentSize float64) float64 {
	larger := contentSize
	if preferred := c.computedMainSize(item.box); preferred.IsLength() || (preferred.IsPercentage() && c.hasDefiniteMainSize(c.box)) {
		larger = math.Max(larger, c.pixelMainSize(item.box, preferred))
	}
	clamped := math.Max(0, cssClamp(larger, c.usedMainMinSize(item), c.usedMainMaxSize(item)))
	return item.addMainMarginBoxSizes(clamped)
}

func (c *FlexFormattingContext) calculateCrossMinContentContribution(item *FlexItem, resolvePercentages bool) float64 {
	return c.crossContentContribution(item, resolvePercentages, c.calculateMinContentCrossSize)
}

func (c *FlexFormattingContext) calculateCrossMaxContentContribution(item *FlexItem, resolvePercentages bool) float64 {
	return c.crossContentContribution(item, resolvePercentages, c.calculateMaxContentCrossSize)
}

func (c *FlexFormattingContext) crossContentContribution(item *FlexItem, resolvePercentages bool, measure func(*FlexItem) float64) float64 {
	var size float64
	if c.shouldTreatCrossSizeAsAuto(item.box) {
		size = measure(item)
	} else {
		size = c.pixelCrossSize(item.box, c.computedCrossSize(item.box))
	}
	minCross, maxCross := c.crossMinMax(item.box, resolvePercentages)
	return item.addCrossMarginBoxSizes(math.Max(0, cssClamp(size, minCross, maxCross)))
}

func (c *FlexFormattingContext) shouldTreatCrossSizeAsAuto(box *Box) bool {
	space := c.availableSpaceForItems.space
	if c.isRowLayout() {
		return shouldTreatHeightAsAuto(c.state, box, space)
	}
	return shouldTreatWidthAsAuto(c.state, box, space)
}
