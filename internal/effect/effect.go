// Package effect renders filtered copies of part of a scene.
package effect

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/example/snapmark/internal/render"
)

// Kind selects a post process filter.
type Kind int

const (
	KindBlur Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindBlur:
		return "blur"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Filter is a post process filter and its strength.
type Filter struct {
	Kind   Kind
	Radius int
}

// DefaultBlur is the filter used for blur patches.
var DefaultBlur = Filter{Kind: KindBlur, Radius: render.DefaultBlurRadius}

// Snapshotter supplies the committed scene. The returned image must not be
// modified.
type Snapshotter interface {
	Snapshot() *image.RGBA
}

// RenderFiltered renders region of the committed scene through f. Pixels
// around region are sampled so the edges blend with the neighbourhood. The
// result has a zero origin and the size of region clipped to the scene. An
// empty region yields an empty image and nothing is rendered.
func RenderFiltered(src Snapshotter, f Filter, region image.Rectangle) *image.RGBA {
	region = region.Canon()
	if region.Empty() {
		return image.NewRGBA(image.Rectangle{})
	}
	snap := src.Snapshot()
	region = region.Intersect(snap.Bounds())
	if region.Empty() {
		return image.NewRGBA(image.Rectangle{})
	}

	switch f.Kind {
	case KindBlur:
		sample := region.Inset(-f.Radius).Intersect(snap.Bounds())
		blurred := render.Blur(snap.SubImage(sample).(*image.RGBA), f.Radius)
		out := image.NewRGBA(image.Rectangle{Max: region.Size()})
		draw.Draw(out, out.Bounds(), blurred, region.Min.Sub(sample.Min), draw.Src)
		return out
	}
	out := image.NewRGBA(image.Rectangle{Max: region.Size()})
	draw.Draw(out, out.Bounds(), snap, region.Min, draw.Src)
	return out
}
