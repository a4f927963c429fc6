package layout

import (
	"fmt"
	"strings"

	"flexlayout/pkg/css"
)

// BoxKind tags the closed set of box variants the layout code dispatches on.
type BoxKind int

const (
	BoxBlock    BoxKind = iota // Block container, or a flex container when display is flex
	BoxText                    // Anonymous run of text
	BoxReplaced                // Replaced content with natural dimensions (images)
)

func (k BoxKind) String() string {
	switch k {
	case BoxBlock:
		return "block"
	case BoxText:
		return "text"
	case BoxReplaced:
		return "replaced"
	}
	return fmt.Sprintf("BoxKind(%d)", int(k))
}

// Box is a node of the box tree. Layout never adds or removes boxes; it
// only writes the used geometry in the fields below Children.
type Box struct {
	Name     string
	Kind     BoxKind
	Style    *css.Style
	Text     string // Content of a text run
	Parent   *Box
	Children []*Box

	// Natural size of replaced content; zero when unknown.
	IntrinsicWidth  float64
	IntrinsicHeight float64
	ImagePath       string

	// Used geometry, written by LayoutState.Commit. X and Y are the absolute
	// position of the content box; Width and Height its size.
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Margin  css.BoxEdge
	Padding css.BoxEdge
	Border  css.BoxEdge

	// Lines of a text run after layout, one string per line box.
	Lines []string
}

// NewBlock creates a block container (or a flex container, depending on
// its display) with the given children.
func NewBlock(style *css.Style, children ...*Box) *Box {
	b := &Box{Kind: BoxBlock, Style: orEmpty(style)}
	for _, c := range children {
		b.AppendChild(c)
	}
	return b
}

// NewText creates an anonymous text run.
func NewText(content string, style *css.Style) *Box {
	return &Box{Kind: BoxText, Text: content, Style: orEmpty(style)}
}

// NewReplaced creates a replaced box with the given natural size.
func NewReplaced(width, height float64, style *css.Style) *Box {
	return &Box{Kind: BoxReplaced, IntrinsicWidth: width, IntrinsicHeight: height, Style: orEmpty(style)}
}

func orEmpty(style *css.Style) *css.Style {
	if style == nil {
		return css.NewStyle()
	}
	return style
}

// AppendChild adds c as the last child of b.
func (b *Box) AppendChild(c *Box) {
	c.Parent = b
	b.Children = append(b.Children, c)
}

func (b *Box) IsReplaced() bool { return b.Kind == BoxReplaced }

func (b *Box) IsAnonymousTextRun() bool { return b.Kind == BoxText }

// IsEmptyTextRun reports whether b is a text run with no visible content.
func (b *Box) IsEmptyTextRun() bool {
	return b.Kind == BoxText && strings.TrimSpace(b.Text) == ""
}

// IsFlexContainer reports whether b establishes a flex formatting context.
func (b *Box) IsFlexContainer() bool {
	return b.Kind == BoxBlock && b.Style.GetDisplay().IsFlex()
}

// GeneratesBox reports whether b takes part in layout at all.
func (b *Box) GeneratesBox() bool {
	return b.Style.GetDisplay() != css.DisplayNone
}

func (b *Box) IsAbsolutelyPositioned() bool {
	p := b.Style.GetPosition()
	return p == css.PositionAbsolute || p == css.PositionFixed
}

// IsOutOfFlow reports whether b is taken out of normal flow.
func (b *Box) IsOutOfFlow() bool {
	return b.IsAbsolutelyPositioned()
}

// IsPositioned returns true if the box has position != static
func (b *Box) IsPositioned() bool {
	return b.Style.GetPosition() != css.PositionStatic
}

// HasIntrinsicAspectRatio reports whether b is replaced content with a
// natural or preferred aspect ratio.
func (b *Box) HasIntrinsicAspectRatio() bool {
	_, ok := b.IntrinsicAspectRatio()
	return ok
}

// IntrinsicAspectRatio returns width / height of replaced content. The
// aspect-ratio property takes precedence over the natural dimensions.
func (b *Box) IntrinsicAspectRatio() (float64, bool) {
	if !b.IsReplaced() {
		return 0, false
	}
	if r, ok := b.Style.GetAspectRatio(); ok {
		return r, true
	}
	if b.IntrinsicWidth > 0 && b.IntrinsicHeight > 0 {
		return b.IntrinsicWidth / b.IntrinsicHeight, true
	}
	return 0, false
}

// ContainingBlock returns the box whose content box (padding box for
// absolutely positioned boxes) sizes and positions b. The root has none.
func (b *Box) ContainingBlock() *Box {
	switch b.Style.GetPosition() {
	case css.PositionAbsolute:
		for current := b.Parent; current != nil; current = current.Parent {
			if current.IsPositioned() {
				return current
			}
			if current.Parent == nil {
				return current
			}
		}
		return nil
	case css.PositionFixed:
		if b.Parent == nil {
			return nil
		}
		return b.Root()
	}
	return b.Parent
}

// Root returns the root of the tree containing b.
func (b *Box) Root() *Box {
	r := b
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// DebugDescription names b for logs and diagnostics.
func (b *Box) DebugDescription() string {
	kind := b.Kind.String()
	if b.IsFlexContainer() {
		kind = "flex"
	}
	if b.Name != "" {
		return kind + "#" + b.Name
	}
	if b.Kind == BoxText {
		t := strings.Join(strings.Fields(b.Text), " ")
		if len(t) > 16 {
			t = t[:16] + "..."
		}
		return fmt.Sprintf("text(%q)", t)
	}
	return kind
}
