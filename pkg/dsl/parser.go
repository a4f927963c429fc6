// Package dsl reads box trees from a small description language:
//
//	box "display: flex; width: 300px" {
//	  box #a "width: 50px; height: 20px"
//	  text "some words"
//	  image #logo 120 60 "flex-shrink: 0"
//	  image "assets/logo.png"
//	}
package dsl

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Name", Pattern: `#[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{}]`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// File is the root of a parsed description.
type File struct {
	Pos   lexer.Position `parser:""`
	Nodes []*Node        `parser:"@@*"`
}

// Node is one statement: a box, a text run or an image.
type Node struct {
	Box   *BoxNode   `parser:"  @@"`
	Text  *TextNode  `parser:"| @@"`
	Image *ImageNode `parser:"| @@"`
}

// Kind returns the keyword of the statement.
func (n *Node) Kind() string {
	switch {
	case n == nil:
		return "unknown"
	case n.Box != nil:
		return "box"
	case n.Text != nil:
		return "text"
	case n.Image != nil:
		return "image"
	}
	return "unknown"
}

// BoxNode is `box [#name] [style] [{ ... }]`.
type BoxNode struct {
	Pos      lexer.Position `parser:""`
	Name     NameLiteral    `parser:"'box' @Name?"`
	Style    StringLiteral  `parser:"@String?"`
	Children []*Node        `parser:"( '{' @@* '}' )?"`
}

// TextNode is `text [#name] "content" [style]`.
type TextNode struct {
	Pos     lexer.Position `parser:""`
	Name    NameLiteral    `parser:"'text' @Name?"`
	Content StringLiteral  `parser:"@String"`
	Style   StringLiteral  `parser:"@String?"`
}

// ImageNode is `image [#name] [width height | "path"] [style]`. With no
// size the first string is the path; with a size it is the style.
type ImageNode struct {
	Pos    lexer.Position `parser:""`
	Name   NameLiteral    `parser:"'image' @Name?"`
	Size   []float64      `parser:"( @Number @Number )?"`
	First  StringLiteral  `parser:"@String?"`
	Second StringLiteral  `parser:"@String?"`
}

// Source splits the strings of the statement into path and style.
func (n *ImageNode) Source() (path, style string) {
	if len(n.Size) > 0 {
		return "", string(n.First)
	}
	return string(n.First), string(n.Second)
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// NameLiteral is a `#name` label with the hash removed.
type NameLiteral string

// Capture implements participle.Capture.
func (n *NameLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("name capture requires value")
	}
	*n = NameLiteral(strings.TrimPrefix(values[0], "#"))
	return nil
}

// Parse parses a description from r.
func Parse(r io.Reader) (*File, error) {
	return fileParser.Parse("", r)
}

// ParseString parses a description held in a string.
func ParseString(input string) (*File, error) {
	return fileParser.ParseString("", input)
}

// ParseFile parses the description stored at path. Positions in errors
// carry the file name.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading description: %w", err)
	}
	return fileParser.ParseBytes(path, data)
}
