package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

const rowSource = `
box #root "display: flex; width: 300px" {
  box #a "width: 50px; height: 20px"
  box #b "width: 50px; height: 20px"
}
`

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.flex")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	ctx := contextWithEnv(context.Background(), &out, &errOut)
	err := newApp(&out, &errOut).Run(ctx, append([]string{appName}, args...))
	return out.String(), errOut.String(), err
}

func TestLayoutCommand_Text(t *testing.T) {
	out, _, err := run(t, "layout", writeSource(t, rowSource))
	require.NoError(t, err)

	assert.Contains(t, out, "flex#root (0, 0) 300x20\n")
	assert.Contains(t, out, "  block#b (50, 0) 50x20\n")
	assert.NotContains(t, out, "unsupported")
}

func TestLayoutCommand_YAML(t *testing.T) {
	out, _, err := run(t, "layout", "--format", "yaml", writeSource(t, rowSource))
	require.NoError(t, err)

	var d layoutDump
	require.NoError(t, yaml.Unmarshal([]byte(out), &d))
	require.Len(t, d.Root.Children, 2)
	assert.Equal(t, "flex", d.Root.Kind)
	assert.Equal(t, "b", d.Root.Children[1].Name)
	assert.Equal(t, 50.0, d.Root.Children[1].X)
}

func TestLayoutCommand_OutputFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "layout.txt")
	out, _, err := run(t, "layout", "-o", dest, writeSource(t, rowSource))
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "flex#root")
}

func TestLayoutCommand_ReportsUnsupported(t *testing.T) {
	src := writeSource(t, `box #root "display: flex; flex-wrap: wrap-reverse; width: 100px" { box "width: 10px" }`)
	out, logs, err := run(t, "layout", src)
	require.NoError(t, err)

	assert.Contains(t, out, "unsupported: wrap-reverse on flex#root")
	assert.Contains(t, logs, "Fallback used")
}

func TestLayoutCommand_NotImplemented(t *testing.T) {
	src := writeSource(t, `box "width: 400px" { box "display: flex; flex-direction: column" { box "writing-mode: vertical-rl" } }`)
	_, _, err := run(t, "layout", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orthogonal-flow")
}

func TestLayoutCommand_Errors(t *testing.T) {
	_, _, err := run(t, "layout")
	assert.Error(t, err, "missing source")

	_, _, err = run(t, "layout", writeSource(t, `box {`))
	assert.Error(t, err, "parse error")

	_, _, err = run(t, "layout", writeSource(t, `box "width: 10px" { image "absent.png" }`))
	assert.Error(t, err, "build error")

	_, _, err = run(t, "layout", "--format", "xml", writeSource(t, rowSource))
	assert.Error(t, err, "unknown format")
}

func TestGlobalFlags(t *testing.T) {
	src := writeSource(t, `box #root { box "height: 10px" }`)
	out, _, err := run(t, "--width", "500", "layout", src)
	require.NoError(t, err)
	assert.Contains(t, out, "block#root (0, 0) 500x10\n")

	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("viewport:\n  width: 250\noutput:\n  format: yaml\n"), 0644))
	out, _, err = run(t, "--config", cfg, "layout", src)
	require.NoError(t, err)
	assert.Contains(t, out, "width: 250")

	_, logs, err := run(t, "--debug", "layout", src)
	require.NoError(t, err)
	assert.Contains(t, logs, "DEBUG")

	_, _, err = run(t, "--width", "0", "layout", src)
	assert.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.png")
	_, _, err := run(t, "--width", "320", "--height", "80", "render", writeSource(t, rowSource), dest)
	require.NoError(t, err)

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 80, cfg.Height)

	_, _, err = run(t, "render", writeSource(t, rowSource))
	assert.Error(t, err, "missing destination")
}

func TestMeasureCommand(t *testing.T) {
	src := writeSource(t, `box "display: flex" { text "aa bb" box "width: 50px; height: 10px" }`)
	out, _, err := run(t, "measure", "--format", "yaml", src)
	require.NoError(t, err)

	var m measurementDump
	require.NoError(t, yaml.Unmarshal([]byte(out), &m))
	assert.InDelta(t, 69.2, m.MinContentWidth, 0.001)
	assert.InDelta(t, 98, m.MaxContentWidth, 0.001)
	assert.InDelta(t, 19.2, m.MaxContentHeight, 0.001)

	out, _, err = run(t, "measure", src)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "min-content width: "), out)
}

func TestDumpConfigCommand(t *testing.T) {
	out, _, err := run(t, "dumpconfig", "--default")
	require.NoError(t, err)
	assert.Contains(t, out, "version: 1")

	out, _, err = run(t, "--height", "123", "dumpconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "height: 123")
}
