// Package render draws a laid-out box tree as outlines, for checking
// layout results by eye.
package render

import (
	"github.com/fogleman/gg"

	"flexlayout/pkg/css"
	"flexlayout/pkg/layout"
)

var (
	marginColor    = css.Color{R: 246, G: 178, B: 107}
	borderColor    = css.Color{R: 40, G: 40, B: 40}
	contentColor   = css.Color{R: 120, G: 120, B: 120}
	containerColor = css.Color{R: 30, G: 110, B: 220}
	textColor      = css.Color{R: 0, G: 0, B: 0}
)

type Renderer struct {
	context  *gg.Context
	fontPath string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFont draws text runs with the TrueType font at path. Without a font
// text runs are drawn as one bar per line.
func WithFont(path string) Option {
	return func(r *Renderer) { r.fontPath = path }
}

func NewRenderer(width, height int, opts ...Option) *Renderer {
	r := &Renderer{context: gg.NewContext(width, height)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render clears the canvas and draws root and its descendants in tree
// order.
func (r *Renderer) Render(root *layout.Box) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()
	r.drawTree(root)
}

func (r *Renderer) drawTree(box *layout.Box) {
	if !box.GeneratesBox() {
		return
	}
	r.drawBox(box)
	for _, child := range box.Children {
		r.drawTree(child)
	}
}

func (r *Renderer) setColor(c css.Color) {
	r.context.SetRGB(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0)
}

func (r *Renderer) drawBox(box *layout.Box) {
	// Background covers content + padding (but not margin or border)
	if bg, ok := box.Style.Get("background-color"); ok {
		if color, ok := css.ParseColor(bg); ok {
			x, y, w, h := paddingBox(box)
			if w > 0 && h > 0 {
				r.setColor(color)
				r.context.DrawRectangle(x, y, w, h)
				r.context.Fill()
			}
		}
	}

	r.drawMargin(box)
	r.drawBorder(box)

	switch {
	case box.IsReplaced():
		r.drawImage(box)
	case box.IsAnonymousTextRun():
		r.drawText(box)
	}

	// Content box outline; flex containers stand out.
	r.context.SetLineWidth(1)
	r.context.SetDash()
	if box.IsFlexContainer() {
		r.setColor(containerColor)
		r.context.SetLineWidth(2)
	} else {
		r.setColor(contentColor)
	}
	r.context.DrawRectangle(box.X, box.Y, box.Width, box.Height)
	r.context.Stroke()
}

// paddingBox returns the padding box of box.
func paddingBox(box *layout.Box) (x, y, w, h float64) {
	return box.X - box.Padding.Left,
		box.Y - box.Padding.Top,
		box.Width + box.Padding.Horizontal(),
		box.Height + box.Padding.Vertical()
}

// drawMargin outlines the margin box with a dashed line when the box has
// any margin.
func (r *Renderer) drawMargin(box *layout.Box) {
	m := box.Margin
	if m.Top == 0 && m.Right == 0 && m.Bottom == 0 && m.Left == 0 {
		return
	}
	x, y, w, h := paddingBox(box)
	x -= box.Border.Left + m.Left
	y -= box.Border.Top + m.Top
	w += box.Border.Horizontal() + m.Horizontal()
	h += box.Border.Vertical() + m.Vertical()

	r.setColor(marginColor)
	r.context.SetLineWidth(1)
	r.context.SetDash(4, 3)
	r.context.DrawRectangle(x, y, w, h)
	r.context.Stroke()
	r.context.SetDash()
}

// drawBorder draws each border side as a trapezoid (CSS mitered border
// rendering).
func (r *Renderer) drawBorder(box *layout.Box) {
	if box.Border.Top <= 0 && box.Border.Right <= 0 && box.Border.Bottom <= 0 && box.Border.Left <= 0 {
		return
	}
	color := borderColor
	if v, ok := box.Style.Get("border-color"); ok {
		if c, ok := css.ParseColor(v); ok {
			color = c
		}
	}
	r.setColor(color)

	innerLeft, innerTop, w, h := paddingBox(box)
	innerRight := innerLeft + w
	innerBottom := innerTop + h
	outerLeft := innerLeft - box.Border.Left
	outerTop := innerTop - box.Border.Top
	outerRight := innerRight + box.Border.Right
	outerBottom := innerBottom + box.Border.Bottom

	quad := func(x1, y1, x2, y2, x3, y3, x4, y4 float64) {
		r.context.MoveTo(x1, y1)
		r.context.LineTo(x2, y2)
		r.context.LineTo(x3, y3)
		r.context.LineTo(x4, y4)
		r.context.ClosePath()
		r.context.Fill()
	}
	if box.Border.Top > 0 {
		quad(outerLeft, outerTop, outerRight, outerTop, innerRight, innerTop, innerLeft, innerTop)
	}
	if box.Border.Right > 0 {
		quad(outerRight, outerTop, outerRight, outerBottom, innerRight, innerBottom, innerRight, innerTop)
	}
	if box.Border.Bottom > 0 {
		quad(outerLeft, outerBottom, outerRight, outerBottom, innerRight, innerBottom, innerLeft, innerBottom)
	}
	if box.Border.Left > 0 {
		quad(outerLeft, outerTop, outerLeft, outerBottom, innerLeft, innerBottom, innerLeft, innerTop)
	}
}

// drawText draws the line boxes of a text run. Without a usable font each
// line is a thin bar as long as the line box is wide.
func (r *Renderer) drawText(box *layout.Box) {
	if len(box.Lines) == 0 {
		return
	}
	fontSize := box.Style.GetFontSize()
	lineHeight := box.Style.GetLineHeight()
	r.setColor(textColor)

	if r.fontPath != "" {
		if err := r.context.LoadFontFace(r.fontPath, fontSize); err == nil {
			for i, line := range box.Lines {
				// Add fontSize to Y for baseline alignment
				r.context.DrawString(line, box.X, box.Y+float64(i)*lineHeight+fontSize)
			}
			return
		}
	}

	for i, line := range box.Lines {
		w := float64(len([]rune(line))) * fontSize * 0.6
		if w > box.Width {
			w = box.Width
		}
		y := box.Y + float64(i)*lineHeight + lineHeight/2
		r.context.DrawRectangle(box.X, y-fontSize/8, w, fontSize/4)
		r.context.Fill()
	}
}

// drawImage draws replaced content scaled to its content box. A missing
// image is drawn as a crossed placeholder.
func (r *Renderer) drawImage(box *layout.Box) {
	if box.Width <= 0 || box.Height <= 0 {
		return
	}
	if box.ImagePath != "" {
		if loaded, err := gg.LoadImage(box.ImagePath); err == nil {
			bounds := loaded.Bounds()
			r.context.Push()
			r.context.Translate(box.X, box.Y)
			r.context.Scale(box.Width/float64(bounds.Dx()), box.Height/float64(bounds.Dy()))
			r.context.DrawImage(loaded, 0, 0)
			r.context.Pop()
			return
		}
	}

	r.context.SetRGB(0.9, 0.9, 0.9) // Light gray background
	r.context.DrawRectangle(box.X, box.Y, box.Width, box.Height)
	r.context.Fill()

	// Draw X to indicate there is no image to show
	r.context.SetRGB(0.5, 0.5, 0.5)
	r.context.SetLineWidth(2)
	r.context.DrawLine(box.X, box.Y, box.X+box.Width, box.Y+box.Height)
	r.context.DrawLine(box.X+box.Width, box.Y, box.X, box.Y+box.Height)
	r.context.Stroke()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

// Image returns the canvas.
func (r *Renderer) Image() *gg.Context {
	return r.context
}
