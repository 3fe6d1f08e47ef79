package render

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Warp maps src through the source to destination matrix s2d into a new
// image of the given size. Pixels not covered by src stay transparent.
func Warp(src image.Image, s2d f64.Aff3, size image.Point, interp xdraw.Interpolator) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	if interp == nil {
		interp = xdraw.NearestNeighbor
	}
	interp.Transform(dst, s2d, src, src.Bounds(), draw.Src, nil)
	return dst
}

// IsAxisAligned reports whether s2d only scales, flips or turns by quarter
// turns, so nearest neighbour sampling loses nothing.
func IsAxisAligned(s2d f64.Aff3) bool {
	return (s2d[1] == 0 && s2d[3] == 0) || (s2d[0] == 0 && s2d[4] == 0)
}
