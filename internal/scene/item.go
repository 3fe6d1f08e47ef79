// Package scene holds the committed annotations drawn over a captured image.
package scene

import (
	"image"
	"image/color"

	"github.com/example/snapmark/internal/geom"
	"github.com/example/snapmark/internal/render"
	"github.com/google/uuid"
)

// HighlighterAlpha is the alpha applied to stroke and fill colours while the
// highlighter is on.
const HighlighterAlpha = 128

// Style is the pen and brush an item is drawn with.
type Style struct {
	Stroke color.NRGBA
	Width  int
	Fill   color.NRGBA
}

// Highlight returns s with translucent stroke and fill colours.
func (s Style) Highlight() Style {
	s.Stroke.A = HighlighterAlpha
	s.Fill.A = HighlighterAlpha
	return s
}

// Shape is the geometry of an item. It is implemented only by the types in
// this package.
type Shape interface {
	shape()
}

// Freehand is an ink trail through Points in order.
type Freehand struct {
	Points []geom.Point
}

// Line is a straight segment. Snapped records whether P2 was aligned to an
// axis.
type Line struct {
	P1, P2  geom.Point
	Snapped bool
}

// HeadStyle selects how an arrow tip is drawn.
type HeadStyle int

const (
	HeadChevron HeadStyle = iota
	HeadFilled
)

// Arrow points from P1 to P2.
type Arrow struct {
	P1, P2 geom.Point
	Head   HeadStyle
}

// Rect is an outlined rectangle, optionally filled with the style's fill.
type Rect struct {
	geom.Rect
	Filled bool
}

// BlurPatch is a blurred copy of the scene placed over Bounds. Patch has a
// zero origin and may be empty.
type BlurPatch struct {
	Bounds image.Rectangle
	Patch  *image.RGBA
}

// Text is a block of text whose top left corner is at Anchor. It is filled
// with the style's fill colour.
type Text struct {
	Anchor  geom.Point
	Text    string
	Font    render.Font
	Outline *color.NRGBA
}

func (*Freehand) shape()  {}
func (*Line) shape()      {}
func (*Arrow) shape()     {}
func (*Rect) shape()      {}
func (*BlurPatch) shape() {}
func (*Text) shape()      {}

// Item is one annotation.
type Item struct {
	ID    uuid.UUID
	Style Style
	Shape Shape
}

// NewItem returns an item with a fresh ID.
func NewItem(shape Shape, style Style) *Item {
	return &Item{ID: uuid.New(), Style: style, Shape: shape}
}

// Discard releases the raster held by a blur patch. The item must not be
// drawn afterwards.
func (it *Item) Discard() {
	if b, ok := it.Shape.(*BlurPatch); ok {
		b.Patch = nil
	}
}

// Bounds returns the pixel area the item may paint.
func (it *Item) Bounds() image.Rectangle {
	pad := float64(it.Style.Width)/2 + 1
	var r geom.Rect
	switch s := it.Shape.(type) {
	case *Freehand:
		r = boundsOf(s.Points)
	case *Line:
		r = boundsOf([]geom.Point{s.P1, s.P2})
	case *Arrow:
		// barbs and filled heads reach further than the shaft
		pad += float64(2*it.Style.Width + 4)
		r = boundsOf([]geom.Point{s.P1, s.P2})
	case *Rect:
		r = s.Rect
	case *BlurPatch:
		return s.Bounds
	case *Text:
		size, err := render.MeasureText(s.Text, s.Font)
		if err != nil {
			return image.Rectangle{}
		}
		at := s.Anchor.Image()
		return image.Rectangle{Min: at, Max: at.Add(size)}.Inset(-1)
	}
	return geom.Rect{X: r.X - pad, Y: r.Y - pad, W: r.W + 2*pad, H: r.H + 2*pad}.Image()
}

// Contains reports whether p hits the item. Only text items are hit tested.
func (it *Item) Contains(p geom.Point) bool {
	if _, ok := it.Shape.(*Text); !ok {
		return false
	}
	return p.Image().In(it.Bounds())
}

func boundsOf(pts []geom.Point) geom.Rect {
	if len(pts) == 0 {
		return geom.Rect{}
	}
	minP, maxP := pts[0], pts[0]
	for _, p := range pts[1:] {
		minP = geom.Pt(min(minP.X, p.X), min(minP.Y, p.Y))
		maxP = geom.Pt(max(maxP.X, p.X), max(maxP.Y, p.Y))
	}
	return geom.RectFromCorners(minP, maxP)
}
