package render

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"flexlayout/pkg/css"
	"flexlayout/pkg/layout"
)

func laidOut(t *testing.T) *layout.Box {
	t.Helper()
	style := func(decl string) *css.Style {
		s, err := css.ParseDeclarations(decl)
		require.NoError(t, err)
		return s
	}
	item := layout.NewBlock(style("width: 20px; height: 20px; background-color: red; margin-left: 10px"))
	img := layout.NewReplaced(10, 10, style("width: 10px; height: 10px"))
	txt := layout.NewText("hi there", nil)
	root := layout.NewBlock(style("display: flex; width: 100px; height: 50px; padding: 5px; border: 2px solid black"), item, img, txt)
	_, err := layout.NewLayoutEngine(200, 100).Layout(root)
	require.NoError(t, err)
	return root
}

func rgb(c color.Color) (uint8, uint8, uint8) {
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestRender_Background(t *testing.T) {
	root := laidOut(t)
	item := root.Children[0]

	r := NewRenderer(200, 100)
	r.Render(root)
	img := r.Image().Image()

	x, y := int(item.X+item.Width/2), int(item.Y+item.Height/2)
	if red, g, b := rgb(img.At(x, y)); red != 255 || g != 0 || b != 0 {
		t.Errorf("expected red inside the item at (%d, %d), got %d,%d,%d", x, y, red, g, b)
	}
	if red, g, b := rgb(img.At(199, 99)); red != 255 || g != 255 || b != 255 {
		t.Errorf("expected white outside the tree, got %d,%d,%d", red, g, b)
	}
}

func TestRender_Border(t *testing.T) {
	root := laidOut(t)
	r := NewRenderer(200, 100)
	r.Render(root)
	img := r.Image().Image()

	// The root's border box starts at the origin and its border is 2px wide.
	if red, g, b := rgb(img.At(1, 20)); red != 0 || g != 0 || b != 0 {
		t.Errorf("expected a black left border, got %d,%d,%d", red, g, b)
	}
}

func TestRender_SavePNG(t *testing.T) {
	root := laidOut(t)
	r := NewRenderer(200, 100)
	r.Render(root)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, r.SavePNG(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	if cfg.Width != 200 || cfg.Height != 100 {
		t.Errorf("expected 200x100, got %dx%d", cfg.Width, cfg.Height)
	}
}
