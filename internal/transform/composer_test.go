package transform

import (
	"image"
	"testing"

	"github.com/example/snapmark/internal/geom"
)

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, step := range []float64{90, -90} {
		c := NewComposer(image.Pt(200, 100))
		for i := 0; i < 4; i++ {
			ch := c.RotateBy(step)
			c.Set(ch.Slot, ch.New)
		}
		if !c.Get(SlotRotation).IsIdentity() {
			t.Fatalf("step %v: rotation not identity: %v", step, c.Get(SlotRotation))
		}
	}
}

func TestMirrorTwiceIsIdentity(t *testing.T) {
	c := NewComposer(image.Pt(10, 10))
	for i := 0; i < 2; i++ {
		ch := c.Mirror(true, false)
		c.Set(ch.Slot, ch.New)
	}
	if !c.Get(SlotMirror).IsIdentity() {
		t.Fatalf("mirror not identity: %v", c.Get(SlotMirror))
	}
}

func TestChangeIsNotApplied(t *testing.T) {
	c := NewComposer(image.Pt(10, 10))
	ch := c.RotateBy(90)
	if !c.Get(SlotRotation).IsIdentity() {
		t.Fatalf("RotateBy must not mutate the composer")
	}
	if !ch.Old.IsIdentity() || ch.New.IsIdentity() {
		t.Fatalf("unexpected change %+v", ch)
	}
}

func TestViewScaleIsOutermost(t *testing.T) {
	c := NewComposer(image.Pt(200, 100))
	c.SetZoom(2)
	ch := c.RotateBy(90)
	c.Set(ch.Slot, ch.New)
	ch = c.Mirror(true, false)
	c.Set(ch.Slot, ch.New)

	want := Scale(2, 2).Multiply(Scale(-1, 1)).Multiply(RotateDegrees(90))
	if !c.View().Near(want) {
		t.Fatalf("view %v, want %v", c.View(), want)
	}
	// rotate (1,0) to (0,1), mirror leaves it, scale doubles it
	if got := c.View().TransformPoint(geom.Pt(1, 0)); got != geom.Pt(0, 2) {
		t.Fatalf("TransformPoint = %v", got)
	}
}

func TestViewportObserver(t *testing.T) {
	c := NewComposer(image.Pt(200, 100))
	var got []Viewport
	c.OnChange(func(v Viewport) { got = append(got, v) })

	ch := c.RotateBy(90)
	c.Set(ch.Slot, ch.New)
	c.SetZoom(1.5)
	c.SetBorderless(true)

	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	if got[0].Size != image.Pt(100, 200) {
		t.Fatalf("rotated size %v", got[0].Size)
	}
	if got[1].Size != image.Pt(150, 300) || got[1].Zoom != 1.5 {
		t.Fatalf("zoomed viewport %+v", got[1])
	}
	if got[2].Size != image.Pt(152, 302) {
		t.Fatalf("borderless size %v", got[2].Size)
	}
}

func TestSetZoomClamps(t *testing.T) {
	c := NewComposer(image.Pt(10, 10))
	c.SetZoom(0)
	if c.Zoom() != MinZoom {
		t.Fatalf("zoom %v, want %v", c.Zoom(), MinZoom)
	}
}

func TestDisplayStartsAtOrigin(t *testing.T) {
	c := NewComposer(image.Pt(200, 100))
	ch := c.RotateBy(90)
	c.Set(ch.Slot, ch.New)
	ch = c.Mirror(false, true)
	c.Set(ch.Slot, ch.New)

	b := c.Display().TransformRect(geom.Rect{W: 200, H: 100})
	if b != (geom.Rect{W: 100, H: 200}) {
		t.Fatalf("display bounds %+v", b)
	}
	back := c.Display().Invert().TransformPoint(c.Display().TransformPoint(geom.Pt(30, 40)))
	if back.Dist(geom.Pt(30, 40)) > 1e-9 {
		t.Fatalf("round trip %v", back)
	}
}

func TestResetRestoresIdentity(t *testing.T) {
	c := NewComposer(image.Pt(10, 10))
	c.SetZoom(3)
	ch := c.RotateBy(-90)
	c.Set(ch.Slot, ch.New)
	c.Reset(image.Pt(40, 20))
	for _, s := range []Slot{SlotScale, SlotMirror, SlotRotation} {
		if !c.Get(s).IsIdentity() {
			t.Fatalf("%s not identity after reset", s)
		}
	}
	if c.Viewport().Size != image.Pt(40, 20) {
		t.Fatalf("viewport %v", c.Viewport().Size)
	}
}
