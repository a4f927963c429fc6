package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flexlayout/pkg/css"
)

func styleOf(t *testing.T, decl string) *css.Style {
	t.Helper()
	style, err := css.ParseDeclarations(decl)
	require.NoError(t, err)
	return style
}

func named(name string, box *Box) *Box {
	box.Name = name
	return box
}

func block(t *testing.T, name, decl string, children ...*Box) *Box {
	t.Helper()
	return named(name, NewBlock(styleOf(t, decl), children...))
}

func layoutTree(t *testing.T, root *Box) *Result {
	t.Helper()
	result, err := NewLayoutEngine(800, 600).Layout(root)
	require.NoError(t, err)
	return result
}

// runFlexContainer lays out container as the root and returns its flex
// context so tests can look at lines and items.
func runFlexContainer(t *testing.T, container *Box) *FlexFormattingContext {
	t.Helper()
	le := NewLayoutEngine(800, 600)
	state := NewLayoutState(800, 600, nil, nil)
	ctx := le.layoutRoot(state, container)
	ffc, ok := ctx.(*FlexFormattingContext)
	require.True(t, ok, "expected a flex formatting context, got %s", ctx.Type())
	return ffc
}

func TestFlex_JustifyContentCenter(t *testing.T) {
	a := block(t, "a", "width: 50px; height: 20px")
	b := block(t, "b", "width: 50px; height: 20px")
	root := block(t, "root", "display: flex; width: 300px; height: 100px; justify-content: center", a, b)
	layoutTree(t, root)

	if a.X != 100 || b.X != 150 {
		t.Errorf("expected items at 100 and 150, got %v and %v", a.X, b.X)
	}
	if a.Y != 0 || a.Width != 50 || a.Height != 20 {
		t.Errorf("expected a at y=0 sized 50x20, got y=%v %vx%v", a.Y, a.Width, a.Height)
	}
}

func TestFlex_JustifyContentSpaceBetween(t *testing.T) {
	items := []*Box{
		block(t, "a", "width: 50px; height: 10px"),
		block(t, "b", "width: 50px; height: 10px"),
		block(t, "c", "width: 50px; height: 10px"),
	}
	root := block(t, "root", "display: flex; width: 400px; justify-content: space-between", items...)
	layoutTree(t, root)

	expected := []float64{0, 175, 350}
	for i, item := range items {
		if item.X != expected[i] {
			t.Errorf("item %d: expected x=%v, got %v", i, expected[i], item.X)
		}
	}
}

func TestFlex_JustifyContentSpaceBetweenSingleItem(t *testing.T) {
	a := block(t, "a", "width: 50px; height: 10px")
	root := block(t, "root", "display: flex; width: 400px; justify-content: space-between", a)
	layoutTree(t, root)

	if a.X != 0 {
		t.Errorf("expected a lone item at the start, got x=%v", a.X)
	}
}

func TestFlex_JustifyContentSpaceAroundAndEvenly(t *testing.T) {
	tests := []struct {
		justify  string
		expected []float64
	}{
		{"space-around", []float64{125.0 / 3, 50 + 250.0/3*1.5, 100 + 250.0/3*2.5}},
		{"space-evenly", []float64{62.5, 175, 287.5}},
	}
	for _, tt := range tests {
		t.Run(tt.justify, func(t *testing.T) {
			items := []*Box{
				block(t, "a", "width: 50px; height: 10px"),
				block(t, "b", "width: 50px; height: 10px"),
				block(t, "c", "width: 50px; height: 10px"),
			}
			root := block(t, "root", "display: flex; width: 400px; justify-content: "+tt.justify, items...)
			layoutTree(t, root)
			for i, item := range items {
				assert.InDelta(t, tt.expected[i], item.X, 0.001, "item %d", i)
			}
		})
	}
}

func TestFlex_ShrinkProportionalToBaseSize(t *testing.T) {
	a := block(t, "a", "flex-basis: 100px; height: 10px")
	b := block(t, "b", "flex-basis: 200px; height: 10px")
	root := block(t, "root", "display: flex; width: 250px", a, b)
	layoutTree(t, root)

	assert.InDelta(t, 83.333, a.Width, 0.01)
	assert.InDelta(t, 166.667, b.Width, 0.01)
	assert.InDelta(t, 83.333, b.X, 0.01)
}

func TestFlex_GrowDistributesFreeSpace(t *testing.T) {
	a := block(t, "a", "flex: 1; height: 10px")
	b := block(t, "b", "flex: 3; height: 10px")
	root := block(t, "root", "display: flex; width: 400px", a, b)
	layoutTree(t, root)

	if a.Width != 100 || b.Width != 300 {
		t.Errorf("expected 100 and 300, got %v and %v", a.Width, b.Width)
	}
}

func TestFlex_InflexibleItemKeepsHypotheticalSize(t *testing.T) {
	a := block(t, "a", "flex: 0 0 120px; height: 10px")
	root := block(t, "root", "display: flex; width: 100px", a)
	layoutTree(t, root)

	if a.Width != 120 {
		t.Errorf("expected an inflexible item to keep 120px, got %v", a.Width)
	}
}

func TestFlex_PercentageFlexBasis(t *testing.T) {
	a := block(t, "a", "flex-basis: 50%; height: 10px")
	root := block(t, "root", "display: flex; width: 300px", a)
	layoutTree(t, root)

	if a.Width != 150 {
		t.Errorf("expected 150, got %v", a.Width)
	}
}

func TestFlex_FreezeLoopRespectsMinAndMax(t *testing.T) {
	a := block(t, "a", "flex-grow: 1; max-width: 50px; height: 10px")
	b := block(t, "b", "flex-grow: 1; min-width: 120px; height: 10px")
	c := block(t, "c", "flex-grow: 2; height: 10px")
	root := block(t, "root", "display: flex; width: 300px", a, b, c)
	ffc := runFlexContainer(t, root)

	require.Len(t, ffc.Lines(), 1)
	sizes := map[string]float64{"a": 50, "b": 120, "c": 130}
	for _, item := range ffc.Lines()[0].Items() {
		if !item.Frozen() {
			t.Errorf("%s: expected item to be frozen", item.Box().Name)
		}
		if item.MainSize() != sizes[item.Box().Name] {
			t.Errorf("%s: expected main size %v, got %v", item.Box().Name, sizes[item.Box().Name], item.MainSize())
		}
		if item.MainSize() < 0 {
			t.Errorf("%s: negative main size %v", item.Box().Name, item.MainSize())
		}
	}
}

func TestFlex_ItemsWithinMinMaxAfterShrinking(t *testing.T) {
	a := block(t, "a", "flex-basis: 200px; min-width: 150px")
	b := block(t, "b", "flex-basis: 200px")
	root := block(t, "root", "display: flex; width: 250px", a, b)
	ffc := runFlexContainer(t, root)

	for _, line := range ffc.Lines() {
		for _, item := range line.Items() {
			if !item.Frozen() {
				t.Errorf("%s: expected item to be frozen", item.Box().Name)
			}
		}
	}
	items := ffc.Lines()[0].Items()
	require.Equal(t, a, items[0].Box())
	assert.InDelta(t, 150, items[0].MainSize(), 0.001)
	assert.InDelta(t, 100, items[1].MainSize(), 0.001)
}

func TestFlex_WrapPartitionsItemsIntoLines(t *testing.T) {
	a := block(t, "a", "width: 40px; height: 10px")
	b := block(t, "b", "width: 40px; height: 10px")
	c := block(t, "c", "width: 40px; height: 10px")
	root := block(t, "root", "display: flex; flex-wrap: wrap; width: 100px", a, b, c)
	ffc := runFlexContainer(t, root)

	lines := ffc.Lines()
	require.Len(t, lines, 2)
	total := 0
	for _, line := range lines {
		total += len(line.Items())
	}
	if total != 3 {
		t.Errorf("expected lines to hold 3 items, got %d", total)
	}
	if lines[0].Items()[0].Box() != a || lines[0].Items()[1].Box() != b || lines[1].Items()[0].Box() != c {
		t.Error("expected lines [a b] [c] in order")
	}
}

func TestFlex_WrapPositionsLines(t *testing.T) {
	a := block(t, "a", "width: 40px; height: 10px")
	b := block(t, "b", "width: 40px; height: 10px")
	c := block(t, "c", "width: 40px; height: 10px")
	root := block(t, "root", "display: flex; flex-wrap: wrap; width: 100px", a, b, c)
	layoutTree(t, root)

	if b.X != 40 || b.Y != 0 {
		t.Errorf("expected b at (40, 0), got (%v, %v)", b.X, b.Y)
	}
	if c.X != 0 || c.Y != 10 {
		t.Errorf("expected c at (0, 10), got (%v, %v)", c.X, c.Y)
	}
	if root.Height != 20 {
		t.Errorf("expected container height 20, got %v", root.Height)
	}
}

func TestFlex_OversizedItemGetsItsOwnLine(t *testing.T) {
	a := block(t, "a", "width: 150px; height: 10px; flex-shrink: 0")
	b := block(t, "b", "width: 40px; height: 10px")
	root := block(t, "root", "display: flex; flex-wrap: wrap; width: 100px", a, b)
	ffc := runFlexContainer(t, root)

	require.Len(t, ffc.Lines(), 2)
	if len(ffc.Lines()[0].Items()) != 1 {
		t.Errorf("expected the oversized item alone on the first line, got %d items", len(ffc.Lines()[0].Items()))
	}
}

func TestFlex_AlignContentStretch(t *testing.T) {
	a := block(t, "a", "width: 60px; min-height: 60px")
	b := block(t, "b", "width: 60px; min-height: 60px")
	root := block(t, "root", "display: flex; flex-wrap: wrap; width: 100px; height: 200px", a, b)
	ffc := runFlexContainer(t, root)

	require.Len(t, ffc.Lines(), 2)
	for i, line := range ffc.Lines() {
		if line.CrossSize() != 100 {
			t.Errorf("line %d: expected cross size 100, got %v", i, line.CrossSize())
		}
	}

	layoutTree(t, root)
	if a.Height != 100 || b.Height != 100 {
		t.Errorf("expected stretched items of height 100, got %v and %v", a.Height, b.Height)
	}
	if b.Y != 100 {
		t.Errorf("expected second line at y=100, got %v", b.Y)
	}
}

func TestFlex_AlignContentCenter(t *testing.T) {
	a := block(t, "a", "width: 60px; height: 20px")
	b := block(t, "b", "width: 60px; height: 20px")
	root := block(t, "root", "display: flex; flex-wrap: wrap; align-content: center; width: 100px; height: 100px", a, b)
	layoutTree(t, root)

	if a.Y != 30 || b.Y != 50 {
		t.Errorf("expected lines at 30 and 50, got %v and %v", a.Y, b.Y)
	}
}

func TestFlex_AlignContentNegativeFreeSpace(t *testing.T) {
	tests := []struct {
		align  string
		aY, bY float64
	}{
		{"center", -5, 15},
		{"space-around", -5, 15},
		{"space-evenly", -5, 15},
		{"space-between", 0, 20},
		{"flex-end", -10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.align, func(t *testing.T) {
			a := block(t, "a", "width: 60px; height: 20px")
			b := block(t, "b", "width: 60px; height: 20px")
			root := block(t, "root", "display: flex; flex-wrap: wrap; width: 100px; height: 30px; align-content: "+tt.align, a, b)
			layoutTree(t, root)
			if a.Y != tt.aY || b.Y != tt.bY {
				t.Errorf("expected lines at %v and %v, got %v and %v", tt.aY, tt.bY, a.Y, b.Y)
			}
		})
	}
}

func TestFlex_NonFiniteFactorsUseInitialValues(t *testing.T) {
	tests := []struct {
		name   string
		decl   string
		aWidth float64
	}{
		// flex-grow falls back to 0: items keep their basis.
		{"grow", "flex-grow: inf; width: 100px; height: 10px", 100},
		// flex is dropped as a whole: items shrink evenly.
		{"shrink", "flex: 0 inf 200px; width: 200px; height: 10px", 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := named("a", NewBlock(css.ParseInlineStyle(tt.decl)))
			b := named("b", NewBlock(css.ParseInlineStyle(tt.decl)))
			root := block(t, "root", "display: flex; width: 300px", a, b)
			layoutTree(t, root)
			if a.Width != tt.aWidth || b.Width != tt.aWidth {
				t.Errorf("expected both items %v wide, got %v and %v", tt.aWidth, a.Width, b.Width)
			}
		})
	}
}

func TestFlex_AlignItems(t *testing.T) {
	tests := []struct {
		align    string
		expected float64
	}{
		{"flex-start", 0},
		{"center", 40},
		{"flex-end", 80},
	}
	for _, tt := range tests {
		t.Run(tt.align, func(t *testing.T) {
			a := block(t, "a", "width: 50px; height: 20px")
			root := block(t, "root", "display: flex; width: 300px; height: 100px; align-items: "+tt.align, a)
			layoutTree(t, root)
			if a.Y != tt.expected {
				t.Errorf("expected y=%v, got %v", tt.expected, a.Y)
			}
		})
	}
}

func TestFlex_StretchFillsLine(t *testing.T) {
	a := block(t, "a", "width: 50px")
	b := block(t, "b", "width: 50px; align-self: flex-start; height: 30px")
	root := block(t, "root", "display: flex; width: 300px; height: 100px", a, b)
	layoutTree(t, root)

	if a.Height != 100 {
		t.Errorf("expected a stretched to 100, got %v", a.Height)
	}
	if b.Height != 30 {
		t.Errorf("expected b to keep 30, got %v", b.Height)
	}
}

func TestFlex_MainAxisAutoMargin(t *testing.T) {
	a := block(t, "a", "width: 50px; height: 20px; margin-left: auto")
	root := block(t, "root", "display: flex; width: 300px; height: 100px", a)
	layoutTree(t, root)

	if a.X != 250 || a.Margin.Left != 250 {
		t.Errorf("expected a pushed to x=250 with margin 250, got x=%v margin=%v", a.X, a.Margin.Left)
	}
}

func TestFlex_CrossAxisAutoMargins(t *testing.T) {
	a := block(t, "a", "width: 50px; height: 20px; margin-top: auto; margin-bottom: auto")
	root := block(t, "root", "display: flex; width: 300px; height: 100px", a)
	layoutTree(t, root)

	if a.Y != 40 {
		t.Errorf("expected a centered at y=40, got %v", a.Y)
	}
	if a.Margin.Top != 40 || a.Margin.Bottom != 40 {
		t.Errorf("expected margins of 40, got %v and %v", a.Margin.Top, a.Margin.Bottom)
	}
}

func TestFlex_RowReverse(t *testing.T) {
	a := block(t, "a", "width: 50px; height: 10px")
	b := block(t, "b", "width: 50px; height: 10px")
	root := block(t, "root", "display: flex; flex-direction: row-reverse; width: 300px", a, b)
	layoutTree(t, root)

	if a.X != 250 || b.X != 200 {
		t.Errorf("expected a at 250 and b at 200, got %v and %v", a.X, b.X)
	}
}

func TestFlex_RowReverseJustifyStart(t *testing.T) {
	a := block(t, "a", "width: 50px; height: 10px")
	b := block(t, "b", "width: 50px; height: 10px")
	root := block(t, "root", "display: flex; flex-direction: row-reverse; justify-content: start; width: 300px", a, b)
	layoutTree(t, root)

	if b.X != 0 || a.X != 50 {
		t.Errorf("expected b at 0 and a at 50, got %v and %v", b.X, a.X)
	}
}

func TestFlex_OrderProperty(t *testing.T) {
	a := block(t, "a", "width: 50px; height: 10px; order: 2")
	b := block(t, "b", "width: 50px; height: 10px; order: 1")
	c := block(t, "c", "width: 50px; height: 10px; order: 1")
	root := block(t, "root", "display: flex; width: 300px", a, b, c)
	layoutTree(t, root)

	if b.X != 0 || c.X != 50 || a.X != 100 {
		t.Errorf("expected b, c, a at 0, 50, 100, got %v, %v, %v", b.X, c.X, a.X)
	}
}

func TestFlex_ItemGenerationSkipsOutOfFlowAndEmptyText(t *testing.T) {
	a := block(t, "a", "width: 50px; height: 10px")
	abs := block(t, "abs", "position: absolute; width: 10px; height: 10px")
	empty := NewText("   ", nil)
	hidden := block(t, "hidden", "display: none")
	root := block(t, "root", "display: flex; width: 300px", a, abs, empty, hidden)
	ffc := runFlexContainer(t, root)

	require.Len(t, ffc.Lines(), 1)
	items := ffc.Lines()[0].Items()
	if len(items) != 1 || items[0].Box() != a {
		t.Errorf("expected only a to become a flex item, got %d items", len(items))
	}
}

func TestFlex_ColumnJustifyFlexEnd(t *testing.T) {
	a := block(t, "a", "height: 50px")
	b := block(t, "b", "height: 50px")
	root := block(t, "root", "display: flex; flex-direction: column; width: 200px; height: 300px; justify-content: flex-end", a, b)
	layoutTree(t, root)

	if a.Y != 200 || b.Y != 250 {
		t.Errorf("expected a at 200 and b at 250, got %v and %v", a.Y, b.Y)
	}
	if a.Width != 200 {
		t.Errorf("expected a stretched to the container width, got %v", a.Width)
	}
}

func TestFlex_ColumnAutoHeight(t *testing.T) {
	a := block(t, "a", "height: 30px")
	b := block(t, "b", "height: 40px")
	root := block(t, "root", "display: flex; flex-direction: column; width: 200px", a, b)
	layoutTree(t, root)

	if root.Height != 70 {
		t.Errorf("expected container height 70, got %v", root.Height)
	}
	if b.Y != 30 {
		t.Errorf("expected b at y=30, got %v", b.Y)
	}
}

func TestFlex_TextItemsWrapWhenShrunk(t *testing.T) {
	txt := NewText("hello world", nil)
	root := block(t, "root", "display: flex; width: 60px", txt)
	layoutTree(t, root)

	assert.InDelta(t, 60, txt.Width, 0.001)
	require.Len(t, txt.Lines, 2)
	if txt.Lines[0] != "hello" || txt.Lines[1] != "world" {
		t.Errorf("expected lines [hello world], got %v", txt.Lines)
	}
	assert.InDelta(t, 38.4, txt.Height, 0.001)
	assert.InDelta(t, 38.4, root.Height, 0.001)
}

func TestFlex_TextItemMaxContent(t *testing.T) {
	txt := NewText("hello world", nil)
	root := block(t, "root", "display: flex; width: 300px", txt)
	layoutTree(t, root)

	assert.InDelta(t, 105.6, txt.Width, 0.001)
	require.Len(t, txt.Lines, 1)
	assert.InDelta(t, 19.2, txt.Height, 0.001)
}

func TestFlex_ReplacedItemAspectRatio(t *testing.T) {
	img := named("img", NewReplaced(200, 100, styleOf(t, "height: 50px")))
	root := block(t, "root", "display: flex; width: 300px; align-items: flex-start", img)
	layoutTree(t, root)

	if img.Width != 100 || img.Height != 50 {
		t.Errorf("expected 100x50, got %vx%v", img.Width, img.Height)
	}
}

func TestFlex_NestedContainers(t *testing.T) {
	inner1 := block(t, "inner1", "flex: 1; height: 10px")
	inner2 := block(t, "inner2", "flex: 1; height: 10px")
	nested := block(t, "nested", "display: flex; flex: 1", inner1, inner2)
	side := block(t, "side", "width: 100px; height: 40px")
	root := block(t, "root", "display: flex; width: 300px", side, nested)
	layoutTree(t, root)

	if nested.Width != 200 || nested.X != 100 {
		t.Errorf("expected nested container 200 wide at x=100, got %v at %v", nested.Width, nested.X)
	}
	if inner1.Width != 100 || inner2.X != 200 {
		t.Errorf("expected inner items 100 wide, second at x=200, got %v and %v", inner1.Width, inner2.X)
	}
	if nested.Height != 40 {
		t.Errorf("expected nested container stretched to 40, got %v", nested.Height)
	}
}

func TestFlex_FlexContainerInsideBlock(t *testing.T) {
	a := block(t, "a", "flex: 1; height: 25px")
	flex := block(t, "flex", "display: flex; padding: 10px", a)
	after := block(t, "after", "height: 5px")
	root := block(t, "root", "width: 400px", flex, after)
	layoutTree(t, root)

	if flex.Width != 380 {
		t.Errorf("expected flex container content width 380, got %v", flex.Width)
	}
	if a.Width != 380 || a.X != 10 || a.Y != 10 {
		t.Errorf("expected a 380 wide at (10, 10), got %v at (%v, %v)", a.Width, a.X, a.Y)
	}
	if after.Y != 45 {
		t.Errorf("expected following block at y=45, got %v", after.Y)
	}
}

func TestFlex_AbsolutelyPositionedChildStaticPosition(t *testing.T) {
	abs := block(t, "abs", "position: absolute; width: 20px; height: 20px")
	root := block(t, "root", "display: flex; position: relative; width: 300px; height: 100px; justify-content: center; align-items: center", abs)
	layoutTree(t, root)

	if abs.X != 140 || abs.Y != 40 {
		t.Errorf("expected static position (140, 40), got (%v, %v)", abs.X, abs.Y)
	}
}

func TestFlex_AbsolutelyPositionedChildInsets(t *testing.T) {
	abs := block(t, "abs", "position: absolute; left: 10px; right: 30px; top: 5px; height: 20px")
	root := block(t, "root", "display: flex; position: relative; width: 300px; height: 100px; padding: 5px", abs)
	layoutTree(t, root)

	// The insets are against the padding box: x = 10 from its left edge.
	if abs.X != 10 || abs.Y != 5 {
		t.Errorf("expected (10, 5), got (%v, %v)", abs.X, abs.Y)
	}
	if abs.Width != 270 {
		t.Errorf("expected width 310 - 10 - 30 = 270, got %v", abs.Width)
	}
}
