package render

import (
	"image"
	"image/color"
	"testing"
)

func TestApplyShadowExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	subject := image.Pt(5, 5)
	img.Set(subject.X, subject.Y, color.RGBA{R: 255, A: 255})

	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out, at := ApplyShadow(img, opts)
	if want := image.Rect(0, 0, 22, 20); !out.Bounds().Eq(want) {
		t.Fatalf("unexpected bounds %v, want %v", out.Bounds(), want)
	}
	if at != (image.Point{}) {
		t.Fatalf("content moved to %v", at)
	}
	shadowPt := subject.Add(opts.Offset)
	if out.RGBAAt(shadowPt.X, shadowPt.Y).A == 0 {
		t.Fatalf("expected shadow alpha at %v", shadowPt)
	}
}

func TestApplyShadowNoShadowWhenOpacityZero(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	out, _ := ApplyShadow(img, ShadowOptions{Radius: 12, Offset: image.Pt(20, 10)})
	if out != img {
		t.Fatalf("expected the input image back")
	}
}

func TestApplyShadowNegativeOffsetShiftsContent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{A: 255})
	out, at := ApplyShadow(img, ShadowOptions{Radius: 2, Offset: image.Pt(-5, 0), Opacity: 1})
	if at != image.Pt(7, 2) {
		t.Fatalf("content offset %v", at)
	}
	if out.RGBAAt(at.X, at.Y).A != 255 {
		t.Fatalf("content pixel missing")
	}
}

func TestBlurSpreadsAndKeepsSize(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 40, 40))
	for y := 10; y < 40; y++ {
		for x := 10; x < 25; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	out := Blur(src, DefaultBlurRadius)
	if out.Bounds() != image.Rect(0, 0, 30, 30) {
		t.Fatalf("bounds %v", out.Bounds())
	}
	edge := out.RGBAAt(15, 15)
	if edge.R == 0 || edge.R == 255 {
		t.Fatalf("expected a soft edge, got %+v", edge)
	}
	if src.RGBAAt(25, 25).R != 0 {
		t.Fatalf("source modified")
	}
	if c := out.RGBAAt(0, 0); c.R != 255 || c.A != 255 {
		t.Fatalf("interior should stay solid, got %+v", c)
	}
}

func TestBlurZeroRadiusCopies(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 3))
	src.SetRGBA(1, 1, color.RGBA{G: 9, A: 255})
	out := Blur(src, 0)
	if out.RGBAAt(1, 1) != src.RGBAAt(1, 1) {
		t.Fatalf("pixel changed")
	}
	out.SetRGBA(1, 1, color.RGBA{})
	if src.RGBAAt(1, 1).A == 0 {
		t.Fatalf("Blur must copy its input")
	}
}
