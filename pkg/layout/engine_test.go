package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLayout_Idempotent(t *testing.T) {
	build := func() (*Box, []*Box) {
		items := []*Box{
			block(t, "a", "flex: 1 1 100px; min-height: 30px"),
			block(t, "b", "flex: 2 1 50px"),
			named("txt", NewText("some text that wraps", nil)),
		}
		return block(t, "root", "display: flex; flex-wrap: wrap; width: 260px", items...), items
	}
	root, items := build()
	le := NewLayoutEngine(800, 600)
	_, err := le.Layout(root)
	require.NoError(t, err)

	type geometry struct{ x, y, w, h float64 }
	first := make([]geometry, len(items))
	for i, item := range items {
		first[i] = geometry{item.X, item.Y, item.Width, item.Height}
	}

	_, err = le.Layout(root)
	require.NoError(t, err)
	for i, item := range items {
		assert.Equal(t, first[i], geometry{item.X, item.Y, item.Width, item.Height}, "item %s", item.Name)
	}
}

func TestLayout_OrthogonalFlowNotImplemented(t *testing.T) {
	item := block(t, "item", "writing-mode: vertical-rl")
	flex := block(t, "flex", "display: flex; flex-direction: column", item)
	root := block(t, "root", "width: 400px", flex)

	_, err := NewLayoutEngine(800, 600).Layout(root)
	require.Error(t, err)
	var ni *NotImplementedError
	require.True(t, errors.As(err, &ni), "expected a NotImplementedError, got %v", err)
	assert.Equal(t, FeatureOrthogonalFlow, ni.Feature)
	assert.Zero(t, item.Width, "expected the boxes to be left untouched")
}

func TestLayout_ContractViolationIsNotRecovered(t *testing.T) {
	child := block(t, "child", "")
	block(t, "parent", "", child)
	assert.Panics(t, func() {
		_, _ = NewLayoutEngine(800, 600).Layout(child)
	})
}

func TestLayout_UnsupportedFeaturesFallBack(t *testing.T) {
	tests := []struct {
		name      string
		container string
		item      string
		feature   Feature
	}{
		{"baseline", "display: flex; width: 300px; height: 100px; align-items: baseline", "width: 50px; height: 20px", FeatureBaselineAlignment},
		{"wrap-reverse", "display: flex; width: 300px; flex-wrap: wrap-reverse", "width: 50px; height: 20px", FeatureWrapReverse},
		{"visibility-collapse", "display: flex; width: 300px", "width: 50px; height: 20px; visibility: collapse", FeatureVisibilityCollapse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := block(t, "item", tt.item)
			root := block(t, "root", tt.container, item)
			result := layoutTree(t, root)

			features := make([]Feature, 0, len(result.Unsupported))
			for _, u := range result.Unsupported {
				features = append(features, u.Feature)
			}
			assert.Contains(t, features, tt.feature)
			if item.X != 0 || item.Y != 0 || item.Width != 50 {
				t.Errorf("expected fallback layout at (0, 0) 50 wide, got (%v, %v) %v", item.X, item.Y, item.Width)
			}
		})
	}
}

func TestLayout_LogsUnsupportedFeatures(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	item := block(t, "item", "width: 50px; height: 20px")
	root := block(t, "root", "display: flex; width: 300px; align-items: baseline", item)

	_, err := NewLayoutEngine(800, 600, WithLogger(zap.New(core))).Layout(root)
	require.NoError(t, err)
	warnings := logs.FilterMessage("unsupported layout feature, using fallback").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "baseline-alignment", warnings[0].ContextMap()["feature"])
}

func TestLayout_RootSizing(t *testing.T) {
	child := block(t, "child", "height: 30px")
	root := block(t, "root", "margin: 10px; padding: 5px", child)
	layoutTree(t, root)

	if root.Width != 800-20-10 {
		t.Errorf("expected the root to stretch to 770, got %v", root.Width)
	}
	if root.X != 15 || root.Y != 15 {
		t.Errorf("expected the root content box at (15, 15), got (%v, %v)", root.X, root.Y)
	}
	if root.Height != 30 || child.Width != 770 {
		t.Errorf("expected root height 30 and child width 770, got %v and %v", root.Height, child.Width)
	}
}

func TestLayout_BlockAutoMarginsCenter(t *testing.T) {
	child := block(t, "child", "width: 100px; height: 10px; margin: 0 auto")
	root := block(t, "root", "width: 300px", child)
	layoutTree(t, root)

	if child.X != 100 {
		t.Errorf("expected the child centered at 100, got %v", child.X)
	}
}

func TestMeasure_FlexContainer(t *testing.T) {
	txt := NewText("aa bb", nil)
	box := block(t, "box", "width: 50px; height: 10px")
	root := block(t, "root", "display: flex", txt, box)

	m, err := NewLayoutEngine(800, 600).Measure(root, Definite(300))
	require.NoError(t, err)
	assert.InDelta(t, 69.2, m.MinContentWidth, 0.001)
	assert.InDelta(t, 98, m.MaxContentWidth, 0.001)
	assert.InDelta(t, 19.2, m.MaxContentHeight, 0.001)
	assert.Zero(t, txt.Width, "expected Measure not to commit")
}

func TestMeasure_ColumnContainer(t *testing.T) {
	a := block(t, "a", "width: 40px; height: 30px")
	b := block(t, "b", "width: 70px; height: 20px")
	root := block(t, "root", "display: flex; flex-direction: column", a, b)

	m, err := NewLayoutEngine(800, 600).Measure(root, Indefinite())
	require.NoError(t, err)
	assert.InDelta(t, 70, m.MaxContentWidth, 0.001)
	assert.InDelta(t, 70, m.MinContentWidth, 0.001)
	assert.InDelta(t, 50, m.MaxContentHeight, 0.001)
}

func TestMeasure_MinContentWidthByWrap(t *testing.T) {
	tests := []struct {
		wrap     string
		expected float64
	}{
		// A single line needs room for every item side by side.
		{"nowrap", 110},
		// Lines can break between items, so the widest item is enough.
		{"wrap", 70},
	}
	for _, tt := range tests {
		t.Run(tt.wrap, func(t *testing.T) {
			a := block(t, "a", "width: 40px; height: 10px; flex-shrink: 0")
			b := block(t, "b", "width: 70px; height: 10px; flex-shrink: 0")
			root := block(t, "root", "display: flex; flex-wrap: "+tt.wrap, a, b)

			m, err := NewLayoutEngine(800, 600).Measure(root, Indefinite())
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, m.MinContentWidth, 0.001)
		})
	}
}
