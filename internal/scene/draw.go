package scene

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"github.com/example/snapmark/internal/geom"
	"github.com/example/snapmark/internal/render"
)

// ArrowOutlineWidth is the pen width used around filled arrow heads.
const ArrowOutlineWidth = 1

// Draw paints it onto dst.
func Draw(dst *image.RGBA, it *Item) {
	st := it.Style
	w := float64(st.Width)
	switch s := it.Shape.(type) {
	case *Freehand:
		render.StrokePath(dst, geom.Path{s.Points}, w, st.Stroke)
	case *Line:
		render.StrokePath(dst, geom.Path{{s.P1, s.P2}}, w, st.Stroke)
	case *Arrow:
		if s.Head == HeadFilled {
			poly := geom.FilledArrow(s.P1, s.P2, st.Width)
			render.FillPolygons(dst, []geom.Polygon{poly}, st.Fill)
			render.StrokePolygon(dst, poly, ArrowOutlineWidth, st.Stroke)
			return
		}
		render.StrokePath(dst, geom.ChevronArrow(s.P1, s.P2, st.Width), w, st.Stroke)
	case *Rect:
		if s.Empty() {
			return
		}
		corners := s.Corners()
		if s.Filled {
			render.FillPolygons(dst, []geom.Polygon{corners}, st.Fill)
		}
		render.StrokePolygon(dst, corners, w, st.Stroke)
	case *BlurPatch:
		if s.Patch == nil || s.Patch.Bounds().Empty() {
			return
		}
		draw.Draw(dst, s.Bounds, s.Patch, image.Point{}, draw.Over)
	case *Text:
		var outline color.Color
		if s.Outline != nil {
			outline = *s.Outline
		}
		if err := render.DrawText(dst, s.Anchor.Image(), s.Text, s.Font, st.Fill, outline); err != nil {
			log.Printf("text %s: %v", it.ID, err)
		}
	}
}
