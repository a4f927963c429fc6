package layout

import (
	"math"

	"flexlayout/pkg/css"
)

// alignmentForItem is the effective cross-axis alignment of an item:
// align-self, falling back to the container's align-items. normal behaves
// as stretch for flex items.
func (c *FlexFormattingContext) alignmentForItem(box *Box) css.AlignItems {
	alignment := css.AlignItems(box.Style.GetAlignSelf())
	if box.Style.GetAlignSelf() == css.AlignSelfAuto {
		alignment = c.box.Style.GetAlignItems()
	}
	if alignment == css.AlignItemsNormal {
		return css.AlignItemsStretch
	}
	return alignment
}

func (c *FlexFormattingContext) flexItemIsStretched(item *FlexItem) bool {
	return c.alignmentForItem(item.box) == css.AlignItemsStretch &&
		c.isCrossAuto(item.box) &&
		!item.margins.crossBeforeIsAuto && !item.margins.crossAfterIsAuto
}

// https://drafts.csswg.org/css-flexbox-1/#algo-cross-item
func (c *FlexFormattingContext) determineHypotheticalCrossSizeOfItem(item *FlexItem, resolvePercentages bool) {
	minCross, maxCross := c.crossMinMax(item.box, resolvePercentages)

	// A definite cross size needs no layout.
	if c.hasDefiniteCrossSize(item.box) {
		item.hypotheticalCrossSize = math.Max(0, cssClamp(c.innerCrossSize(item.box), minCross, maxCross))
		return
	}

	// Otherwise the item has an automatic cross size: lay it out with
	// fit-content at its used main size.
	var fitContentCrossSize float64
	if c.isRowLayout() {
		availableWidth := Indefinite()
		if item.hasMainSize {
			availableWidth = Definite(item.mainSize)
		}
		fitContentCrossSize = calculateFitContentHeight(c.state, item.box, AvailableSpace{Width: availableWidth, Height: Indefinite()})
	} else {
		fitContentCrossSize = calculateFitContentWidth(c.state, item.box, c.availableSpaceForItems.space)
	}
	item.hypotheticalCrossSize = math.Max(0, cssClamp(fitContentCrossSize, minCross, maxCross))
}

// https://drafts.csswg.org/css-flexbox-1/#algo-cross-line
func (c *FlexFormattingContext) calculateCrossSizeOfEachFlexLine() {
	// If the flex container is single-line and has a definite cross size,
	// the cross size of the line is the container's inner cross size.
	if c.isSingleLine() && c.hasDefiniteCrossSize(c.box) {
		for _, line := range c.lines {
			line.crossSize = c.innerCrossSize(c.box)
		}
		return
	}

	// Otherwise the line is as large as its largest outer hypothetical
	// cross size. Baseline-aligned items are measured the same way.
	for _, line := range c.lines {
		largest := 0.0
		for _, item := range line.items {
			largest = math.Max(largest, item.outerHypotheticalCrossSize())
		}
		line.crossSize = math.Max(0, largest)
	}

	// A single-line container's line is clamped to the container's min
	// and max cross sizes.
	if c.isSingleLine() {
		minCross, maxCross := c.crossMinMax(c.box, c.hasDefiniteContainingBlockCross())
		for _, line := range c.lines {
			line.crossSize = cssClamp(line.crossSize, minCross, maxCross)
		}
	}
}

func (c *FlexFormattingContext) hasDefiniteContainingBlockCross() bool {
	if c.isRowLayout() {
		return c.state.hasDefiniteContainingBlockHeight(c.box)
	}
	return c.state.hasDefiniteContainingBlockWidth(c.box)
}

// https://drafts.csswg.org/css-flexbox-1/#algo-line-stretch
func (c *FlexFormattingContext) handleAlignContentStretch() {
	// If the flex container has a definite cross size, align-content is
	// stretch, and the lines do not fill the container, grow every line
	// by the same amount.
	if !c.hasDefiniteCrossSize(c.box) || len(c.lines) == 0 {
		return
	}
	if c.box.Style.GetAlignContent() != css.AlignContentStretch {
		return
	}
	sum := 0.0
	for _, line := range c.lines {
		sum += line.crossSize
	}
	inner := c.innerCrossSize(c.box)
	if sum >= inner {
		return
	}
	extra := (inner - sum) / float64(len(c.lines))
	for _, line := range c.lines {
		line.crossSize += extra
	}
}

// https://drafts.csswg.org/css-flexbox-1/#algo-visibility
func (c *FlexFormattingContext) collapseVisibilityCollapseItems() {
	// Collapsed items are laid out as if visible.
	for i := range c.items {
		if c.items[i].box.Style.GetVisibility() == css.VisibilityCollapse {
			c.state.reportUnsupported(FeatureVisibilityCollapse, c.items[i].box)
		}
	}
}

// https://drafts.csswg.org/css-flexbox-1/#algo-stretch
func (c *FlexFormattingContext) determineUsedCrossSizeOfEachFlexItem() {
	resolvePercentages := c.hasDefiniteCrossSize(c.box)
	for _, line := range c.lines {
		for _, item := range line.items {
			if !c.flexItemIsStretched(item) {
				item.crossSize = item.hypotheticalCrossSize
				continue
			}
			// Stretch: the used outer cross size is the line's cross size,
			// clamped by the item's min and max cross sizes.
			unclamped := line.crossSize - item.margins.cross() - item.borders.cross() - item.padding.cross()
			minCross, maxCross := c.crossMinMax(item.box, resolvePercentages)
			item.crossSize = math.Max(0, cssClamp(unclamped, minCross, maxCross))
		}
	}
}

// https://drafts.csswg.org/css-flexbox-1/#algo-main-align
func (c *FlexFormattingContext) distributeAnyRemainingFreeSpace() {
	innerMainSize := c.innerMainSize(c.box)
	if c.availableSpaceForItems.main.IsIntrinsicSizingConstraint() && !c.hasDefiniteMainSize(c.box) {
		// The container's main size is not known yet; lay the items out
		// from the start edge.
		innerMainSize = 0
	}
	justify := c.box.Style.GetJustifyContent()

	for _, line := range c.lines {
		used := 0.0
		autoMargins := 0
		for _, item := range line.items {
			used += item.addMainMarginBoxSizes(item.mainSize)
			if item.margins.mainBeforeIsAuto {
				autoMargins++
			}
			if item.margins.mainAfterIsAuto {
				autoMargins++
			}
		}
		freeSpace := innerMainSize - used

		// 1. Positive free space goes to auto margins first; otherwise they
		// are zero.
		if freeSpace > 0 && autoMargins > 0 {
			share := freeSpace / float64(autoMargins)
			for _, item := range line.items {
				if item.margins.mainBeforeIsAuto {
					c.setMainAxisFirstMargin(item, share)
				}
				if item.margins.mainAfterIsAuto {
					c.setMainAxisSecondMargin(item, share)
				}
			}
			freeSpace = 0
		}

		// 2. Align the items along the main axis per justify-content.
		// leading is measured from main-start.
		leading, gap := c.justifyLeadingAndGap(justify, freeSpace, len(line.items))

		if !c.isDirectionReverse() {
			cursor := leading
			for _, item := range line.items {
				item.mainOffset = cursor + item.margins.mainBefore + item.borders.mainBefore + item.padding.mainBefore
				cursor += item.addMainMarginBoxSizes(item.mainSize) + gap
			}
			continue
		}

		// Main-start is the physical end. The item list is already reversed,
		// so walk it backwards from the physical end.
		cursor := innerMainSize - leading
		for i := len(line.items) - 1; i >= 0; i-- {
			item := line.items[i]
			cursor -= item.addMainMarginBoxSizes(item.mainSize)
			item.mainOffset = cursor + item.margins.mainBefore + item.borders.mainBefore + item.padding.mainBefore
			cursor -= gap
		}
	}
}

// justifyLeadingAndGap returns the space before the first item (measured
// from main-start) and between adjacent items.
func (c *FlexFormattingContext) justifyLeadingAndGap(justify css.JustifyContent, freeSpace float64, count int) (leading, gap float64) {
	// start and end are physical; flex-start and flex-end follow the
	// flex direction.
	switch justify {
	case css.JustifyContentStart:
		justify = css.JustifyContentFlexStart
		if c.isDirectionReverse() {
			justify = css.JustifyContentFlexEnd
		}
	case css.JustifyContentEnd:
		justify = css.JustifyContentFlexEnd
		if c.isDirectionReverse() {
			justify = css.JustifyContentFlexStart
		}
	}

	switch justify {
	case css.JustifyContentFlexEnd:
		return freeSpace, 0
	case css.JustifyContentCenter:
		return freeSpace / 2, 0
	case css.JustifyContentSpaceBetween:
		if count < 2 || freeSpace < 0 {
			return 0, 0
		}
		return 0, freeSpace / float64(count-1)
	case css.JustifyContentSpaceAround:
		if freeSpace < 0 {
			return freeSpace / 2, 0
		}
		gap = freeSpace / float64(count)
		return gap / 2, gap
	case css.JustifyContentSpaceEvenly:
		if freeSpace < 0 {
			return freeSpace / 2, 0
		}
		gap = freeSpace / float64(count+1)
		return gap, gap
	}
	return 0, 0
}

// https://drafts.csswg.org/css-flexbox-1/#algo-cross-margins
func (c *FlexFormattingContext) resolveCrossAxisAutoMargins() {
	for _, line := range c.lines {
		for _, item := range line.items {
			if !item.margins.crossBeforeIsAuto && !item.margins.crossAfterIsAuto {
				continue
			}
			outer := item.crossSize + item.borders.cross() + item.padding.cross()
			if !item.margins.crossBeforeIsAuto {
				outer += item.margins.crossBefore
			}
			if !item.margins.crossAfterIsAuto {
				outer += item.margins.crossAfter
			}
			remaining := line.crossSize - outer

			if remaining > 0 {
				switch {
				case item.margins.crossBeforeIsAuto && item.margins.crossAfterIsAuto:
					item.margins.crossBefore = remaining / 2
					item.margins.crossAfter = remaining / 2
				case item.margins.crossBeforeIsAuto:
					item.margins.crossBefore = remaining
				default:
					item.margins.crossAfter = remaining
				}
				continue
			}

			// Otherwise an auto start margin becomes zero and the opposite
			// margin makes the outer cross size match the line.
			inner := item.crossSize + item.borders.cross() + item.padding.cross()
			if item.margins.crossBeforeIsAuto {
				item.margins.crossBefore = 0
				item.margins.crossAfter = line.crossSize - inner
				continue
			}
			item.margins.crossAfter = line.crossSize - inner - item.margins.crossBefore
		}
	}
}

// https://drafts.csswg.org/css-flexbox-1/#algo-cross-align
// Offsets computed here are relative to the cross-start edge of the line;
// alignAllFlexLines adds the line position.
func (c *FlexFormattingContext) alignAllFlexItemsAlongTheCrossAxis() {
	for _, line := range c.lines {
		for _, item := range line.items {
			before := item.margins.crossBefore + item.borders.crossBefore + item.padding.crossBefore
			after := item.margins.crossAfter + item.borders.crossAfter + item.padding.crossAfter

			// Items with an auto cross margin are already positioned by
			// their margins.
			if item.margins.crossBeforeIsAuto || item.margins.crossAfterIsAuto {
				item.crossOffset = before
				continue
			}

			switch c.alignmentForItem(item.box) {
			case css.AlignItemsBaseline:
				c.state.reportUnsupported(FeatureBaselineAlignment, item.box)
				item.crossOffset = before
			case css.AlignItemsFlexEnd, css.AlignItemsEnd, css.AlignItemsSelfEnd:
				item.crossOffset = line.crossSize - after - item.crossSize
			case css.AlignItemsCenter:
				outer := before + item.crossSize + after
				item.crossOffset = (line.crossSize-outer)/2 + before
			default:
				item.crossOffset = before
			}
		}
	}
}

// https://drafts.csswg.org/css-flexbox-1/#algo-cross-container
func (c *FlexFormattingContext) determineFlexContainerUsedCrossSize() {
	if c.hasDefiniteCrossSize(c.box) {
		return
	}
	// An indefinite cross size becomes the sum of the lines' cross sizes,
	// clamped by the container's min and max cross sizes.
	sum := 0.0
	for _, line := range c.lines {
		sum += line.crossSize
	}
	minCross, maxCross := c.crossMinMax(c.box, c.hasDefiniteContainingBlockCross())
	c.setCrossSize(c.box, math.Max(0, cssClamp(sum, minCross, maxCross)))
}

// https://drafts.csswg.org/css-flexbox-1/#algo-line-align
func (c *FlexFormattingContext) alignAllFlexLines() {
	if len(c.lines) == 0 {
		return
	}
	innerCross := c.innerCrossSize(c.box)

	// align-content has no effect on a single-line container; its line is
	// centered in whatever room is left.
	if c.isSingleLine() {
		line := c.lines[0]
		start := (innerCross - line.crossSize) / 2
		for _, item := range line.items {
			item.crossOffset += start
		}
		return
	}

	sum := 0.0
	for _, line := range c.lines {
		sum += line.crossSize
	}
	freeSpace := innerCross - sum
	count := float64(len(c.lines))

	var leading, gap float64
	switch c.box.Style.GetAlignContent() {
	case css.AlignContentFlexEnd, css.AlignContentEnd:
		leading = freeSpace
	case css.AlignContentCenter:
		leading = freeSpace / 2
	case css.AlignContentSpaceBetween:
		if len(c.lines) > 1 && freeSpace > 0 {
			gap = freeSpace / (count - 1)
		}
	case css.AlignContentSpaceAround:
		if freeSpace < 0 {
			leading = freeSpace / 2
		} else {
			gap = freeSpace / count
			leading = gap / 2
		}
	case css.AlignContentSpaceEvenly:
		if freeSpace < 0 {
			leading = freeSpace / 2
		} else {
			gap = freeSpace / (count + 1)
			leading = gap
		}
	}

	cursor := leading
	for _, line := range c.lines {
		for _, item := range line.items {
			item.crossOffset += cursor
		}
		cursor += line.crossSize + gap
	}
}

// calculateStaticPosition places an absolutely positioned child as if it
// were the sole flex item of the container. The result is the offset of
// the child's margin box from the container's content box.
func (c *FlexFormattingContext) calculateStaticPosition(child UsedValues) Position {
	var outerMain, outerCross float64
	if c.isRowLayout() {
		outerMain, outerCross = child.MarginBoxWidth(), child.MarginBoxHeight()
	} else {
		outerMain, outerCross = child.MarginBoxHeight(), child.MarginBoxWidth()
	}
	mainFree := c.innerMainSize(c.box) - outerMain
	crossFree := c.innerCrossSize(c.box) - outerCross

	var mainOffset float64
	switch justify := c.box.Style.GetJustifyContent(); justify {
	case css.JustifyContentCenter, css.JustifyContentSpaceAround, css.JustifyContentSpaceEvenly:
		mainOffset = mainFree / 2
	default:
		leading, _ := c.justifyLeadingAndGap(justify, mainFree, 1)
		mainOffset = leading
		if c.isDirectionReverse() {
			mainOffset = mainFree - leading
		}
	}

	var crossOffset float64
	switch c.alignmentForItem(child.Box()) {
	case css.AlignItemsFlexEnd, css.AlignItemsEnd, css.AlignItemsSelfEnd:
		crossOffset = crossFree
	case css.AlignItemsCenter:
		crossOffset = crossFree / 2
	}

	if c.isRowLayout() {
		return Position{X: mainOffset, Y: crossOffset}
	}
	return Position{X: crossOffset, Y: mainOffset}
}
