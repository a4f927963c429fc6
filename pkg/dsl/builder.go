package dsl

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
	"go.uber.org/multierr"

	"flexlayout/pkg/css"
	"flexlayout/pkg/images"
	"flexlayout/pkg/layout"
)

// inheritedProperties are copied into text runs that do not set them from
// the nearest ancestor box that does.
var inheritedProperties = []string{"font-size", "line-height"}

// inherited holds the values of inheritedProperties in effect at a node.
type inherited map[string]string

func (in inherited) with(style *css.Style) inherited {
	out := make(inherited, len(inheritedProperties))
	for k, v := range in {
		out[k] = v
	}
	for _, property := range inheritedProperties {
		if v, ok := style.Get(property); ok {
			out[property] = v
		}
	}
	return out
}

// BuildOptions controls how a parsed description becomes a box tree.
type BuildOptions struct {
	// BaseDir resolves relative image paths. Empty means the working
	// directory.
	BaseDir string

	// Images caches image headers; a fresh cache is used when nil.
	Images *images.DimensionCache

	// FontSize is the font size in pixels of text runs with no font-size
	// of their own or of an ancestor. Zero keeps the style default.
	FontSize float64
}

// Build turns a parsed description into a box tree. The description must
// have exactly one top-level statement, which becomes the root. Errors in
// individual statements (bad style, unreadable image) are collected and
// returned together; the tree is still returned so callers may inspect
// it.
func Build(file *File, opts BuildOptions) (*layout.Box, error) {
	if file == nil || len(file.Nodes) == 0 {
		return nil, errors.New("description has no root box")
	}
	if len(file.Nodes) > 1 {
		return nil, fmt.Errorf("description has %d top-level statements, expected one root", len(file.Nodes))
	}
	if opts.Images == nil {
		opts.Images = images.NewDimensionCache()
	}
	b := &builder{opts: opts}
	initial := inherited{}
	if opts.FontSize > 0 {
		initial["font-size"] = strconv.FormatFloat(opts.FontSize, 'f', -1, 64) + "px"
	}
	root := b.node(file.Nodes[0], initial)
	return root, b.err
}

type builder struct {
	opts BuildOptions
	err  error
}

func (b *builder) fail(pos lexer.Position, err error) {
	b.err = multierr.Append(b.err, fmt.Errorf("%s: %w", pos, err))
}

func (b *builder) node(n *Node, in inherited) *layout.Box {
	switch {
	case n.Box != nil:
		return b.box(n.Box, in)
	case n.Text != nil:
		return b.text(n.Text, in)
	case n.Image != nil:
		return b.image(n.Image)
	}
	panic(fmt.Sprintf("dsl: unhandled statement %s", n.Kind()))
}

func (b *builder) style(pos lexer.Position, decl StringLiteral) *css.Style {
	style, err := css.ParseDeclarations(string(decl))
	if err != nil {
		b.fail(pos, err)
	}
	return style
}

func (b *builder) box(n *BoxNode, in inherited) *layout.Box {
	style := b.style(n.Pos, n.Style)
	box := layout.NewBlock(style)
	box.Name = string(n.Name)
	in = in.with(style)
	for _, child := range n.Children {
		box.AppendChild(b.node(child, in))
	}
	return box
}

func (b *builder) text(n *TextNode, in inherited) *layout.Box {
	style := b.style(n.Pos, n.Style)
	for property, v := range in {
		if _, ok := style.Get(property); !ok {
			style.Set(property, v)
		}
	}
	box := layout.NewText(string(n.Content), style)
	box.Name = string(n.Name)
	return box
}

func (b *builder) image(n *ImageNode) *layout.Box {
	path, decl := n.Source()
	box := layout.NewReplaced(0, 0, b.style(n.Pos, StringLiteral(decl)))
	box.Name = string(n.Name)

	switch {
	case len(n.Size) == 2:
		box.IntrinsicWidth, box.IntrinsicHeight = n.Size[0], n.Size[1]
	case path != "":
		if !images.IsDataURI(path) && !filepath.IsAbs(path) && b.opts.BaseDir != "" {
			path = filepath.Join(b.opts.BaseDir, path)
		}
		box.ImagePath = path
		d, err := b.opts.Images.Lookup(path)
		if err != nil {
			b.fail(n.Pos, fmt.Errorf("image %q: %w", path, err))
			break
		}
		box.IntrinsicWidth, box.IntrinsicHeight = float64(d.Width), float64(d.Height)
	default:
		b.fail(n.Pos, errors.New("image needs a size or a path"))
	}
	return box
}
