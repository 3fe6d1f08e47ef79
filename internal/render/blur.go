package render

import (
	"image"
	"image/draw"
)

// BlurPasses is the number of box blur passes Blur runs. Three passes give a
// close approximation of a gaussian.
const BlurPasses = 3

// DefaultBlurRadius is the radius used for blur patches.
const DefaultBlurRadius = 12

// Blur returns a blurred copy of src with a zero origin. The radius is split
// across BlurPasses box passes.
func Blur(src *image.RGBA, radius int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	if radius <= 0 || b.Empty() {
		return dst
	}
	per := radius / BlurPasses
	if per < 1 {
		per = 1
	}
	pix := dst.Pix
	for i := 0; i < BlurPasses; i++ {
		pix = boxBlur(pix, b.Dx(), b.Dy(), dst.Stride, 4, per)
	}
	dst.Pix = pix
	return dst
}

func blurGray(src *image.Gray, radius int) *image.Gray {
	bounds := src.Bounds()
	out := image.NewGray(bounds)
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	out.Pix = boxBlur(src.Pix, bounds.Dx(), bounds.Dy(), src.Stride, 1, radius)
	return out
}

// boxBlur runs one separable box blur over interleaved 8-bit channels using
// prefix sums. Samples outside the image are ignored rather than clamped.
func boxBlur(pix []uint8, w, h, stride, channels, radius int) []uint8 {
	tmp := make([]uint8, len(pix))
	dst := make([]uint8, len(pix))

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := y * stride
		for c := 0; c < channels; c++ {
			for x := 0; x < w; x++ {
				prefix[x+1] = prefix[x] + int(pix[row+x*channels+c])
			}
			for x := 0; x < w; x++ {
				x0 := max(x-radius, 0)
				x1 := min(x+radius, w-1)
				sum := prefix[x1+1] - prefix[x0]
				tmp[row+x*channels+c] = uint8(sum / (x1 - x0 + 1))
			}
		}
	}

	for x := 0; x < w; x++ {
		for c := 0; c < channels; c++ {
			col := x*channels + c
			for y := 0; y < h; y++ {
				prefix[y+1] = prefix[y] + int(tmp[y*stride+col])
			}
			for y := 0; y < h; y++ {
				y0 := max(y-radius, 0)
				y1 := min(y+radius, h-1)
				sum := prefix[y1+1] - prefix[y0]
				dst[y*stride+col] = uint8(sum / (y1 - y0 + 1))
			}
		}
	}
	return dst
}
