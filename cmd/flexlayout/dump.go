package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"flexlayout/pkg/layout"
)

// boxDump is the used geometry of a box as written by the layout command.
type boxDump struct {
	Name     string     `yaml:"name,omitempty"`
	Kind     string     `yaml:"kind"`
	X        float64    `yaml:"x"`
	Y        float64    `yaml:"y"`
	Width    float64    `yaml:"width"`
	Height   float64    `yaml:"height"`
	Lines    []string   `yaml:"lines,omitempty"`
	Children []*boxDump `yaml:"children,omitempty"`
}

type layoutDump struct {
	Root        *boxDump `yaml:"root"`
	Unsupported []string `yaml:"unsupported,omitempty"`
}

type measurementDump struct {
	MinContentWidth  float64 `yaml:"min_content_width"`
	MaxContentWidth  float64 `yaml:"max_content_width"`
	MinContentHeight float64 `yaml:"min_content_height"`
	MaxContentHeight float64 `yaml:"max_content_height"`
}

func kindOf(box *layout.Box) string {
	if box.IsFlexContainer() {
		return "flex"
	}
	return box.Kind.String()
}

func dumpBox(box *layout.Box) *boxDump {
	d := &boxDump{
		Name:   box.Name,
		Kind:   kindOf(box),
		X:      box.X,
		Y:      box.Y,
		Width:  box.Width,
		Height: box.Height,
		Lines:  box.Lines,
	}
	for _, child := range box.Children {
		if child.GeneratesBox() {
			d.Children = append(d.Children, dumpBox(child))
		}
	}
	return d
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeTextTree(w *strings.Builder, d *boxDump, depth int) {
	indent := strings.Repeat("  ", depth)
	label := d.Kind
	if d.Name != "" {
		label += "#" + d.Name
	}
	fmt.Fprintf(w, "%s%s (%s, %s) %sx%s", indent, label, px(d.X), px(d.Y), px(d.Width), px(d.Height))
	if len(d.Lines) > 0 {
		fmt.Fprintf(w, " %q", d.Lines)
	}
	w.WriteString("\n")
	for _, child := range d.Children {
		writeTextTree(w, child, depth+1)
	}
}

func writeLayout(out io.Writer, format string, root *layout.Box, unsupported []layout.UnsupportedFeature) error {
	d := layoutDump{Root: dumpBox(root)}
	for _, u := range unsupported {
		d.Unsupported = append(d.Unsupported, u.String())
	}

	var data []byte
	switch format {
	case "yaml":
		var err error
		if data, err = yaml.Marshal(d); err != nil {
			return fmt.Errorf("unable to marshal layout: %w", err)
		}
	default:
		var b strings.Builder
		writeTextTree(&b, d.Root, 0)
		for _, u := range d.Unsupported {
			fmt.Fprintf(&b, "unsupported: %s\n", u)
		}
		data = []byte(b.String())
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write layout: %w", err)
	}
	return nil
}

func writeMeasurement(out io.Writer, format string, m *layout.Measurement) error {
	d := measurementDump{
		MinContentWidth:  m.MinContentWidth,
		MaxContentWidth:  m.MaxContentWidth,
		MinContentHeight: m.MinContentHeight,
		MaxContentHeight: m.MaxContentHeight,
	}
	var data []byte
	switch format {
	case "yaml":
		var err error
		if data, err = yaml.Marshal(d); err != nil {
			return fmt.Errorf("unable to marshal measurement: %w", err)
		}
	default:
		data = fmt.Appendf(nil, "min-content width: %s\nmax-content width: %s\nmin-content height: %s\nmax-content height: %s\n",
			px(d.MinContentWidth), px(d.MaxContentWidth), px(d.MinContentHeight), px(d.MaxContentHeight))
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write measurement: %w", err)
	}
	return nil
}
