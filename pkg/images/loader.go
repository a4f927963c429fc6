// Package images reads the natural dimensions of image sources so replaced
// boxes can be sized without decoding pixel data.
package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"
)

// Dimensions is the natural size of an image in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// DimensionCache caches decoded image headers keyed by source.
type DimensionCache struct {
	mu    sync.RWMutex
	cache map[string]Dimensions
}

func NewDimensionCache() *DimensionCache {
	return &DimensionCache{cache: make(map[string]Dimensions)}
}

// IsDataURI reports whether src is an inline data: URI.
func IsDataURI(src string) bool {
	return strings.HasPrefix(src, "data:")
}

// Lookup returns the dimensions of src, which is a file path or a data URI.
func (c *DimensionCache) Lookup(src string) (Dimensions, error) {
	c.mu.RLock()
	if d, ok := c.cache[src]; ok {
		c.mu.RUnlock()
		return d, nil
	}
	c.mu.RUnlock()

	r, err := open(src)
	if err != nil {
		return Dimensions{}, err
	}
	if closer, ok := r.(io.Closer); ok {
		defer closer.Close()
	}
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return Dimensions{}, fmt.Errorf("decoding image header: %w", err)
	}
	d := Dimensions{Width: cfg.Width, Height: cfg.Height}

	c.mu.Lock()
	c.cache[src] = d
	c.mu.Unlock()
	return d, nil
}

func open(src string) (io.Reader, error) {
	if IsDataURI(src) {
		data, err := decodeDataURI(src)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	return f, nil
}

// decodeDataURI returns the payload of a data URI, base64 or percent encoded.
func decodeDataURI(uri string) ([]byte, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, errors.New("data URI without payload")
	}
	meta, payload := uri[len("data:"):comma], uri[comma+1:]
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 payload: %w", err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding data URI payload: %w", err)
	}
	return []byte(s), nil
}
