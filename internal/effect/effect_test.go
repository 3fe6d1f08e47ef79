package effect

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

type fixed struct{ img *image.RGBA }

func (f fixed) Snapshot() *image.RGBA { return f.img }

func stripes(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{A: 255}
			if (x/2)%2 == 0 {
				c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestRenderFilteredSizeAndNoMutation(t *testing.T) {
	img := stripes(100, 60)
	orig := bytes.Clone(img.Pix)
	out := RenderFiltered(fixed{img}, DefaultBlur, image.Rect(30, 10, 70, 40))
	if out.Bounds() != image.Rect(0, 0, 40, 30) {
		t.Fatalf("bounds %v", out.Bounds())
	}
	if !bytes.Equal(orig, img.Pix) {
		t.Fatalf("scene was modified")
	}
	c := out.RGBAAt(20, 15)
	if c.R < 64 || c.R > 192 {
		t.Fatalf("stripes not blurred: %+v", c)
	}
}

func TestRenderFilteredNormalisesAndClips(t *testing.T) {
	img := stripes(50, 50)
	out := RenderFiltered(fixed{img}, DefaultBlur, image.Rectangle{Min: image.Pt(60, 40), Max: image.Pt(30, 10)})
	if out.Bounds() != image.Rect(0, 0, 20, 30) {
		t.Fatalf("bounds %v", out.Bounds())
	}
}

type counting struct {
	fixed
	calls int
}

func (c *counting) Snapshot() *image.RGBA {
	c.calls++
	return c.fixed.Snapshot()
}

func TestRenderFilteredEmptyRegion(t *testing.T) {
	src := &counting{fixed: fixed{stripes(10, 10)}}
	for _, r := range []image.Rectangle{
		image.Rect(3, 3, 3, 9),
		image.Rect(3, 3, 9, 3),
	} {
		out := RenderFiltered(src, DefaultBlur, r)
		if !out.Bounds().Empty() {
			t.Fatalf("expected empty patch for %v", r)
		}
	}
	if src.calls != 0 {
		t.Fatalf("scene rendered %d times for empty regions", src.calls)
	}
}
