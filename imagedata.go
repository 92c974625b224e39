package stickfall

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	_ "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"
)

// ErrNotDataURL is returned for strings that are not base64 data URLs.
var ErrNotDataURL = errors.New("stickfall: not a base64 data URL")

// ParseDataURL splits "data:<mime>;base64,<payload>" into its media type and
// decoded bytes.
func ParseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("stickfall: decode data URL: %w", err)
	}
	return strings.ToLower(mime), data, nil
}

// DecodeDataURL decodes an attachment image. PNG, JPEG, GIF, WebP and TGA
// are supported.
func DecodeDataURL(s string) (image.Image, error) {
	mime, data, err := ParseDataURL(s)
	if err != nil {
		return nil, err
	}
	if mime == "image/webp" {
		return decodeWebP(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("stickfall: decode %s attachment: %w", mime, err)
	}
	return img, nil
}

// decodeWebP handles lossy and lossless files, falling back to the native
// lossless decoder for files the first decoder rejects.
func decodeWebP(data []byte) (image.Image, error) {
	img, err := webp.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}
	img, nerr := nativewebp.Decode(bytes.NewReader(data))
	if nerr != nil {
		return nil, fmt.Errorf("stickfall: decode image/webp attachment: %w", errors.Join(err, nerr))
	}
	return img, nil
}

// EncodeDataURL wraps raw file bytes of the given media type.
func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// PNGDataURL encodes img as a PNG data URL.
func PNGDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("stickfall: encode png: %w", err)
	}
	return EncodeDataURL("image/png", buf.Bytes()), nil
}

// ImageCache decodes each distinct data URL once. Failures are remembered
// so a broken attachment is not decoded every frame.
type ImageCache struct {
	images map[string]image.Image
	errs   map[string]error
}

// NewImageCache returns an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{images: make(map[string]image.Image), errs: make(map[string]error)}
}

// Get returns the decoded image for a data URL.
func (c *ImageCache) Get(dataURL string) (image.Image, error) {
	if img, ok := c.images[dataURL]; ok {
		return img, nil
	}
	if err, ok := c.errs[dataURL]; ok {
		return nil, err
	}
	img, err := DecodeDataURL(dataURL)
	if err != nil {
		c.errs[dataURL] = err
		return nil, err
	}
	c.images[dataURL] = img
	return img, nil
}

// Len returns the number of cached entries, including failures.
func (c *ImageCache) Len() int { return len(c.images) + len(c.errs) }
