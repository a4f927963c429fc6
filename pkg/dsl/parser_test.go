package dsl_test

import (
	"strings"
	"testing"

	"flexlayout/pkg/dsl"
)

const sampleDSL = `
// a row with a label and an image
box #root "display: flex; width: 300px; font-size: 20px" {
  box #a "width: 50px; height: 20px"
  text #label "some words"
  image #logo 120 60 "flex-shrink: 0"
  image "assets/logo.png" "height: 10px"
  box {
    text "nested" "font-size: 8px"
  }
}
`

func TestParseFile(t *testing.T) {
	file, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(file.Nodes) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(file.Nodes))
	}

	root := file.Nodes[0].Box
	if root == nil {
		t.Fatalf("expected a box, got %s", file.Nodes[0].Kind())
	}
	if root.Name != "root" {
		t.Errorf("expected name root, got %q", root.Name)
	}
	if !strings.Contains(string(root.Style), "display: flex") {
		t.Errorf("unexpected style %q", root.Style)
	}
	if len(root.Children) != 5 {
		t.Fatalf("expected 5 children, got %d", len(root.Children))
	}

	kinds := []string{"box", "text", "image", "image", "box"}
	for i, child := range root.Children {
		if child.Kind() != kinds[i] {
			t.Errorf("child %d: expected %s, got %s", i, kinds[i], child.Kind())
		}
	}

	label := root.Children[1].Text
	if label.Name != "label" || label.Content != "some words" || label.Style != "" {
		t.Errorf("unexpected text node %+v", label)
	}

	logo := root.Children[2].Image
	if len(logo.Size) != 2 || logo.Size[0] != 120 || logo.Size[1] != 60 {
		t.Errorf("expected size 120x60, got %v", logo.Size)
	}
	if path, style := logo.Source(); path != "" || style != "flex-shrink: 0" {
		t.Errorf("expected no path and a style, got %q and %q", path, style)
	}

	file2 := root.Children[3].Image
	if path, style := file2.Source(); path != "assets/logo.png" || style != "height: 10px" {
		t.Errorf("expected path and style, got %q and %q", path, style)
	}

	nested := root.Children[4].Box
	if len(nested.Children) != 1 || nested.Children[0].Text == nil {
		t.Fatalf("expected one nested text node")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		`box {`,
		`text`,
		`image 10`,
		`frame "x"`,
	}
	for _, input := range tests {
		if _, err := dsl.ParseString(input); err == nil {
			t.Errorf("expected an error for %q", input)
		}
	}
}
