package stickfall

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/HugoSmits86/nativewebp"
)

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := range 2 {
		for x := range 4 {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.NRGBA{R: 255, A: 255})
			}
		}
	}
	return img
}

func TestPNGDataURLRoundTrip(t *testing.T) {
	url, err := PNGDataURL(checker())
	if err != nil {
		t.Fatal(err)
	}
	img, err := DecodeDataURL(url)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if _, _, _, a := img.At(1, 0).RGBA(); a != 0 {
		t.Error("transparent pixel decoded opaque")
	}
}

func TestWebPDataURL(t *testing.T) {
	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, checker(), nil); err != nil {
		t.Fatal(err)
	}
	img, err := DecodeDataURL(EncodeDataURL("image/webp", buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestParseDataURLErrors(t *testing.T) {
	for _, s := range []string{"", "hello", "data:image/png,AAAA", "data:image/png;base64"} {
		if _, _, err := ParseDataURL(s); !errors.Is(err, ErrNotDataURL) {
			t.Errorf("ParseDataURL(%q) = %v, want ErrNotDataURL", s, err)
		}
	}
	if _, _, err := ParseDataURL("data:image/png;base64,!!!"); err == nil {
		t.Error("bad base64 should fail")
	}
	if _, err := DecodeDataURL(EncodeDataURL("image/png", []byte("not a png"))); err == nil {
		t.Error("garbage payload should fail")
	}
}

func TestImageCacheRemembersFailures(t *testing.T) {
	c := NewImageCache()
	url, _ := PNGDataURL(checker())
	a, err := c.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := c.Get(url)
	if a != b {
		t.Error("cache decoded the same URL twice")
	}
	if _, err := c.Get("broken"); err == nil {
		t.Error("expected error")
	}
	c.Get("broken")
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}
