package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/snapmark/internal/geom"
	"github.com/example/snapmark/internal/render"
	"github.com/google/uuid"
)

var redStyle = Style{Stroke: color.NRGBA{R: 255, A: 255}, Width: 4, Fill: color.NRGBA{R: 255, A: 255}}

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func TestStoreAddRemoveOrder(t *testing.T) {
	s := NewStore(whiteImage(20, 20))
	a := NewItem(&Line{P1: geom.Pt(0, 0), P2: geom.Pt(5, 5)}, redStyle)
	b := NewItem(&Line{P1: geom.Pt(1, 0), P2: geom.Pt(5, 9)}, redStyle)
	s.Add(a)
	s.Add(b)
	if got := s.Items(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("unexpected order %v", got)
	}
	if got := s.Remove(a.ID); got != a {
		t.Fatalf("remove returned %v, want a", got)
	}
	if s.Remove(a.ID) != nil {
		t.Fatalf("remove should succeed once")
	}
	if s.Len() != 1 || !s.Contains(b.ID) || s.Contains(a.ID) {
		t.Fatalf("store state wrong after remove")
	}
	if a.ID == b.ID {
		t.Fatalf("items share an ID")
	}
}

func TestStoreKeyedByID(t *testing.T) {
	s := NewStore(whiteImage(20, 20))
	a := NewItem(&Line{P1: geom.Pt(0, 0), P2: geom.Pt(5, 5)}, redStyle)
	if !s.Add(a) {
		t.Fatalf("first add refused")
	}
	if s.Add(a) || s.Len() != 1 {
		t.Fatalf("same item added twice, len %d", s.Len())
	}
	copied := *a
	copied.Shape = &Line{P1: geom.Pt(9, 9), P2: geom.Pt(1, 1)}
	if s.Add(&copied) {
		t.Fatalf("item with a duplicate ID added")
	}
	if got, ok := s.Find(a.ID); !ok || got != a {
		t.Fatalf("find returned %v %v", got, ok)
	}
	if _, ok := s.Find(uuid.New()); ok {
		t.Fatalf("found an unknown ID")
	}
	if s.Remove(uuid.New()) != nil || s.Len() != 1 {
		t.Fatalf("removing an unknown ID changed the store")
	}
	if s.Add(nil) {
		t.Fatalf("nil item added")
	}
}

func TestStoreResetUsesZeroOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(50, 60, 250, 160))
	src.SetRGBA(50, 60, color.RGBA{G: 200, A: 255})
	s := NewStore(src)
	s.Add(NewItem(&Freehand{Points: []geom.Point{{X: 1, Y: 1}}}, redStyle))
	s.Reset(src)
	if s.Bounds() != image.Rect(0, 0, 200, 100) {
		t.Fatalf("bounds %v", s.Bounds())
	}
	if s.Len() != 0 {
		t.Fatalf("reset kept items")
	}
	if s.Base().RGBAAt(0, 0).G != 200 {
		t.Fatalf("base not copied from source origin")
	}
}

func TestRenderDraftNotCommitted(t *testing.T) {
	s := NewStore(whiteImage(40, 40))
	draft := NewItem(&Rect{Rect: geom.Rect{X: 5, Y: 5, W: 30, H: 30}, Filled: true}, redStyle)
	withDraft := s.Render(draft)
	if c := withDraft.RGBAAt(20, 20); c.G != 0 {
		t.Fatalf("draft not painted: %+v", c)
	}
	if c := s.Snapshot().RGBAAt(20, 20); c.G != 255 {
		t.Fatalf("draft leaked into snapshot: %+v", c)
	}
}

func TestSnapshotInvalidatedOnChange(t *testing.T) {
	s := NewStore(whiteImage(40, 40))
	before := s.Snapshot()
	it := NewItem(&Rect{Rect: geom.Rect{X: 5, Y: 5, W: 30, H: 30}, Filled: true}, redStyle)
	s.Add(it)
	after := s.Snapshot()
	if before == after || after.RGBAAt(20, 20).G != 0 {
		t.Fatalf("snapshot not refreshed after add")
	}
	s.Remove(it.ID)
	if s.Snapshot().RGBAAt(20, 20).G != 255 {
		t.Fatalf("snapshot not refreshed after remove")
	}
}

func TestDrawEachShape(t *testing.T) {
	outline := color.NRGBA{A: 255}
	cases := []struct {
		name  string
		shape Shape
		sample image.Point
	}{
		{"freehand", &Freehand{Points: []geom.Point{{X: 5, Y: 5}, {X: 20, Y: 20}, {X: 35, Y: 5}}}, image.Pt(20, 20)},
		{"line", &Line{P1: geom.Pt(10, 10), P2: geom.Pt(10, 30)}, image.Pt(10, 20)},
		{"chevron", &Arrow{P1: geom.Pt(5, 20), P2: geom.Pt(35, 20)}, image.Pt(20, 20)},
		{"filled arrow", &Arrow{P1: geom.Pt(5, 20), P2: geom.Pt(35, 20), Head: HeadFilled}, image.Pt(30, 20)},
		{"rect", &Rect{Rect: geom.Rect{X: 10, Y: 10, W: 20, H: 20}}, image.Pt(10, 20)},
		{"text", &Text{Anchor: geom.Pt(2, 2), Text: "WW", Font: render.DefaultFont, Outline: &outline}, image.Pt(-1, -1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dst := whiteImage(40, 40)
			it := NewItem(tc.shape, redStyle)
			Draw(dst, it)
			if tc.sample.X >= 0 {
				if c := dst.RGBAAt(tc.sample.X, tc.sample.Y); c.G != 0 {
					t.Fatalf("sample %v not painted: %+v", tc.sample, c)
				}
			}
			changed := false
			for i, p := range dst.Pix {
				if p != 255 && i%4 != 3 {
					changed = true
					break
				}
			}
			if !changed {
				t.Fatalf("nothing drawn")
			}
			if b := it.Bounds(); b.Empty() {
				t.Fatalf("empty bounds")
			}
		})
	}
}

func TestBlurPatchDrawAndDiscard(t *testing.T) {
	dst := whiteImage(20, 20)
	patch := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range patch.Pix {
		patch.Pix[i] = 0
		if i%4 == 3 {
			patch.Pix[i] = 255
		}
	}
	it := NewItem(&BlurPatch{Bounds: image.Rect(8, 8, 12, 12), Patch: patch}, Style{})
	Draw(dst, it)
	if dst.RGBAAt(9, 9).R != 0 || dst.RGBAAt(7, 7).R != 255 {
		t.Fatalf("patch drawn in the wrong place")
	}
	it.Discard()
	if it.Shape.(*BlurPatch).Patch != nil {
		t.Fatalf("discard kept raster")
	}
	Draw(dst, it)
}

func TestTextHitTest(t *testing.T) {
	it := NewItem(&Text{Anchor: geom.Pt(10, 10), Text: "hello", Font: render.DefaultFont}, redStyle)
	if !it.Contains(geom.Pt(14, 16)) {
		t.Fatalf("expected hit inside text")
	}
	if it.Contains(geom.Pt(0, 0)) {
		t.Fatalf("unexpected hit outside text")
	}
	line := NewItem(&Line{P1: geom.Pt(0, 0), P2: geom.Pt(10, 10)}, redStyle)
	if line.Contains(geom.Pt(5, 5)) {
		t.Fatalf("only text is hit tested")
	}
}

func TestHighlight(t *testing.T) {
	st := redStyle.Highlight()
	if st.Stroke.A != HighlighterAlpha || st.Fill.A != HighlighterAlpha {
		t.Fatalf("unexpected style %+v", st)
	}
	if redStyle.Stroke.A != 255 {
		t.Fatalf("Highlight mutated receiver")
	}
}
