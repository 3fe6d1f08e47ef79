package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow added to exported images.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns the shadow used by the -shadow export flag.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  DefaultBlurRadius * 2,
		Offset:  image.Pt(16, 16),
		Opacity: 0.55,
	}
}

// ApplyShadow places img on a larger transparent canvas above a blurred copy
// of its alpha channel. The result has a zero origin. The returned point is
// where the top left corner of img ended up.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) (*image.RGBA, image.Point) {
	if img == nil || img.Bounds().Empty() || opts.Opacity <= 0 {
		return img, image.Point{}
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	src := img.Bounds()
	padded := src.Inset(-radius)
	shadow := padded.Add(opts.Offset)
	canvas := src.Union(shadow)

	mask := image.NewGray(padded.Sub(padded.Min))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-padded.Min.X, y-padded.Min.Y, color.Gray{Y: a})
			}
		}
	}
	mask = blurGray(mask, radius)

	dst := image.NewRGBA(canvas.Sub(canvas.Min))
	tint := image.NewUniform(color.RGBA{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, mask.Bounds().Add(shadow.Min.Sub(canvas.Min)), tint, image.Point{}, mask, image.Point{}, draw.Over)
	at := src.Min.Sub(canvas.Min)
	draw.Draw(dst, src.Sub(canvas.Min), img, src.Min, draw.Over)
	return dst, at
}
