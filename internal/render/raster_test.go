package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/snapmark/internal/geom"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

var red = color.NRGBA{R: 255, A: 255}

func TestFillPolygonsOrientationIndependent(t *testing.T) {
	square := geom.Polygon{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 8}, {X: 2, Y: 8}}
	reversed := geom.Polygon{{X: 2, Y: 8}, {X: 8, Y: 8}, {X: 8, Y: 2}, {X: 2, Y: 2}}
	for name, polys := range map[string][]geom.Polygon{
		"clockwise":     {square},
		"anticlockwise": {reversed},
		"overlapping":   {square, reversed},
	} {
		t.Run(name, func(t *testing.T) {
			dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
			FillPolygons(dst, polys, red)
			if c := dst.RGBAAt(5, 5); c.R != 255 || c.A != 255 {
				t.Fatalf("centre %+v", c)
			}
			if c := dst.RGBAAt(0, 0); c.A != 0 {
				t.Fatalf("outside painted %+v", c)
			}
		})
	}
}

func TestFillPolygonsOffsetDestination(t *testing.T) {
	dst := image.NewRGBA(image.Rect(100, 100, 110, 110))
	FillPolygons(dst, []geom.Polygon{{{X: 100, Y: 100}, {X: 105, Y: 100}, {X: 105, Y: 105}, {X: 100, Y: 105}}}, red)
	if dst.RGBAAt(102, 102).A != 255 {
		t.Fatalf("polygon not drawn in destination coordinates")
	}
	if dst.RGBAAt(108, 108).A != 0 {
		t.Fatalf("unexpected paint outside polygon")
	}
}

func TestStrokePathTranslucentNotDoubled(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	half := color.NRGBA{B: 255, A: 128}
	StrokePath(dst, geom.Path{{{X: 2, Y: 10}, {X: 10, Y: 10}, {X: 18, Y: 10}}}, 6, half)
	joint := dst.RGBAAt(10, 10)
	mid := dst.RGBAAt(6, 10)
	if joint.A != mid.A {
		t.Fatalf("joint alpha %d differs from segment alpha %d", joint.A, mid.A)
	}
	if mid.A < 120 || mid.A > 136 {
		t.Fatalf("unexpected alpha %d", mid.A)
	}
}

func TestStrokePolygonLeavesInterior(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 30, 30))
	StrokePolygon(dst, geom.Rect{X: 5, Y: 5, W: 20, H: 20}.Corners(), 2, red)
	if dst.RGBAAt(15, 15).A != 0 {
		t.Fatalf("interior painted")
	}
	if dst.RGBAAt(5, 15).A == 0 {
		t.Fatalf("edge not painted")
	}
}

func TestStrokePathRoundCapsAndJoins(t *testing.T) {
	tests := []struct {
		name    string
		path    geom.Path
		width   float64
		painted []image.Point
		clear   []image.Point
	}{
		{
			name:    "cap past the end",
			path:    geom.Path{{{X: 5, Y: 10}, {X: 15, Y: 10}}},
			width:   6,
			painted: []image.Point{{3, 10}, {16, 10}},
			clear:   []image.Point{{10, 5}, {0, 10}},
		},
		{
			name:    "rounded outer corner",
			path:    geom.Path{{{X: 5, Y: 20}, {X: 20, Y: 20}, {X: 20, Y: 5}}},
			width:   8,
			painted: []image.Point{{22, 20}, {20, 22}},
			clear:   []image.Point{{23, 23}},
		},
		{
			name:    "single point dot",
			path:    geom.Path{{{X: 10, Y: 10}}},
			width:   6,
			painted: []image.Point{{10, 10}},
			clear:   []image.Point{{10, 15}},
		},
		{
			name:    "repeated points",
			path:    geom.Path{{{X: 4, Y: 4}, {X: 4, Y: 4}, {X: 12, Y: 4}, {X: 12, Y: 4}}},
			width:   4,
			painted: []image.Point{{8, 4}, {2, 4}},
			clear:   []image.Point{{8, 9}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dst := image.NewRGBA(image.Rect(0, 0, 30, 30))
			StrokePath(dst, tc.path, tc.width, red)
			for _, p := range tc.painted {
				if dst.RGBAAt(p.X, p.Y).A == 0 {
					t.Fatalf("pixel %v not painted", p)
				}
			}
			for _, p := range tc.clear {
				if c := dst.RGBAAt(p.X, p.Y); c.A != 0 {
					t.Fatalf("pixel %v painted %+v", p, c)
				}
			}
		})
	}
}

func TestStrokePathCrossingLinesCompositedOnce(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	half := color.NRGBA{G: 255, A: 128}
	StrokePath(dst, geom.Path{{{X: 2, Y: 10}, {X: 18, Y: 10}}, {{X: 10, Y: 2}, {X: 10, Y: 18}}}, 4, half)
	cross := dst.RGBAAt(10, 10)
	arm := dst.RGBAAt(4, 10)
	if cross.A != arm.A {
		t.Fatalf("crossing alpha %d differs from arm alpha %d", cross.A, arm.A)
	}
}

func TestStrokeOffsetDestination(t *testing.T) {
	dst := image.NewRGBA(image.Rect(100, 100, 130, 130))
	StrokePolygon(dst, geom.Rect{X: 105, Y: 105, W: 20, H: 20}.Corners(), 2, red)
	if dst.RGBAAt(105, 115).A == 0 {
		t.Fatalf("edge not painted in destination coordinates")
	}
	if dst.RGBAAt(115, 115).A != 0 {
		t.Fatalf("interior painted")
	}
}

func TestDrawTextOutline(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 80, 40))
	size, err := MeasureText("Hi", DefaultFont)
	if err != nil {
		t.Fatalf("MeasureText: %v", err)
	}
	if size.X <= 0 || size.Y <= 0 {
		t.Fatalf("size %v", size)
	}
	if err := DrawText(dst, image.Pt(4, 4), "Hi", DefaultFont, red, color.Black); err != nil {
		t.Fatalf("DrawText: %v", err)
	}
	var sawRed, sawBlack bool
	for y := 0; y < 40; y++ {
		for x := 0; x < 80; x++ {
			c := dst.RGBAAt(x, y)
			if c.R > 150 && c.A > 200 {
				sawRed = true
			}
			if c.R < 100 && c.A > 200 {
				sawBlack = true
			}
		}
	}
	if !sawRed || !sawBlack {
		t.Fatalf("fill=%v outline=%v", sawRed, sawBlack)
	}
}

func TestFaceUnknownFamily(t *testing.T) {
	if _, err := Face(Font{Family: "comic", Size: 12}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWarpQuarterTurn(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	src.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	// rotate clockwise then move back into view
	s2d := f64.Aff3{0, -1, 2, 1, 0, 0}
	out := Warp(src, s2d, image.Pt(2, 4), xdraw.NearestNeighbor)
	if c := out.RGBAAt(1, 0); c.R != 255 {
		t.Fatalf("rotated pixel missing, got %+v", c)
	}
	if !IsAxisAligned(s2d) {
		t.Fatalf("quarter turn should be axis aligned")
	}
}
