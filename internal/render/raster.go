// Package render rasterizes annotation outlines, text and filters onto RGBA
// images.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/snapmark/internal/geom"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// FillPolygons fills polys with col using anti-aliased coverage. Overlapping
// polygons are composited once.
func FillPolygons(dst *image.RGBA, polys []geom.Polygon, col color.Color) {
	b := dst.Bounds()
	if b.Empty() || len(polys) == 0 {
		return
	}
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	origin := geom.FromImage(b.Min)
	for _, p := range polys {
		if len(p) < 3 {
			continue
		}
		reverse := signedArea(p) < 0
		at := func(i int) geom.Point {
			if reverse {
				i = len(p) - 1 - i
			}
			return p[i].Sub(origin)
		}
		start := at(0)
		z.MoveTo(float32(start.X), float32(start.Y))
		for i := 1; i < len(p); i++ {
			q := at(i)
			z.LineTo(float32(q.X), float32(q.Y))
		}
		z.ClosePath()
	}
	z.Draw(dst, b, image.NewUniform(col), image.Point{})
}

// StrokePath draws every polyline in path with round caps and joins. All
// polylines are filled in one pass, so overlaps are composited once.
func StrokePath(dst *image.RGBA, path geom.Path, width float64, col color.Color) {
	stroke(dst, path, width, col, false)
}

// StrokePolygon draws the closed outline of poly.
func StrokePolygon(dst *image.RGBA, poly geom.Polygon, width float64, col color.Color) {
	if len(poly) == 0 {
		return
	}
	stroke(dst, geom.Path{poly}, width, col, true)
}

func stroke(dst *image.RGBA, path geom.Path, width float64, col color.Color, closed bool) {
	b := dst.Bounds()
	if b.Empty() || len(path) == 0 {
		return
	}
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	dasher.SetStroke(fixed.Int26_6(math.Max(width, 1)*64), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	dasher.SetColor(col)
	origin := geom.FromImage(b.Min)
	for _, line := range path {
		pts := dedupe(line, closed)
		if len(pts) == 0 {
			continue
		}
		loop := closed && len(pts) > 2
		if len(pts) == 1 {
			// a dot still gets its round caps
			pts = append(pts, pts[0].Add(geom.Pt(dotNudge, 0)))
		}
		start := pts[0].Sub(origin)
		dasher.Start(rasterx.ToFixedP(start.X, start.Y))
		for _, p := range pts[1:] {
			q := p.Sub(origin)
			dasher.Line(rasterx.ToFixedP(q.X, q.Y))
		}
		dasher.Stop(loop)
	}
	dasher.Draw()
}

// dotNudge is the length of the segment drawn for a single point.
const dotNudge = 1.0 / 8

// dedupe drops consecutive repeated points. For a closed outline it also
// drops a last point equal to the first.
func dedupe(line []geom.Point, closed bool) []geom.Point {
	out := make([]geom.Point, 0, len(line))
	for _, p := range line {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	if closed && len(out) > 2 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

func signedArea(p geom.Polygon) float64 {
	var sum float64
	for i := range p {
		j := (i + 1) % len(p)
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return sum / 2
}
