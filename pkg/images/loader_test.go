package images

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestPNG encodes a small red PNG of the given size.
func createTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	red := color.RGBA{255, 0, 0, 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, red)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func TestIsDataURI(t *testing.T) {
	if !IsDataURI("data:image/png;base64,abc") {
		t.Error("expected true for data URI")
	}
	if IsDataURI("/path/to/file.png") {
		t.Error("expected false for file path")
	}
	if IsDataURI("") {
		t.Error("expected false for empty string")
	}
}

func TestDimensionCache_DataURI(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(createTestPNG(t, 3, 2))
	d, err := NewDimensionCache().Lookup(uri)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Width != 3 || d.Height != 2 {
		t.Errorf("expected 3x2, got %dx%d", d.Width, d.Height)
	}
}

func TestDimensionCache_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	if err := os.WriteFile(path, createTestPNG(t, 4, 5), 0o644); err != nil {
		t.Fatal(err)
	}
	cache := NewDimensionCache()
	d, err := cache.Lookup(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Width != 4 || d.Height != 5 {
		t.Errorf("expected 4x5, got %dx%d", d.Width, d.Height)
	}

	// Served from the cache once the file is gone.
	os.Remove(path)
	if _, err := cache.Lookup(path); err != nil {
		t.Errorf("expected cached lookup, got %v", err)
	}
}

func TestDimensionCache_Invalid(t *testing.T) {
	cache := NewDimensionCache()
	tests := []string{
		"data:image/png;base64", // no comma
		"data:image/png;base64,!!!invalid-base64!!!",
		"data:image/png;base64,aGVsbG8=", // valid base64 but not an image
		filepath.Join(t.TempDir(), "missing.png"),
	}
	for _, src := range tests {
		if _, err := cache.Lookup(src); err == nil {
			t.Errorf("expected error for %q", src)
		}
	}
}
