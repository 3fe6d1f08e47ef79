// Package geom builds annotation outlines from control points.
//
// Angles are in degrees using the on-screen convention of the editor: 0° points
// east and angles grow counter-clockwise as seen on screen. Because the y axis
// points down, a point at 90° from p lies directly above p.
package geom

import (
	"image"
	"math"
)

// Point is a position in scene coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// Image rounds p to the nearest integer pixel position.
func (p Point) Image() image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// FromImage converts an integer pixel position.
func FromImage(p image.Point) Point { return Point{float64(p.X), float64(p.Y)} }

// Polygon is a closed outline. The last vertex connects back to the first.
type Polygon []Point

// Path is a set of open polylines drawn with the same pen.
type Path [][]Point

// Rect is an axis aligned rectangle with a non-negative size.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Max returns the bottom right corner of r.
func (r Rect) Max() Point { return Point{r.X + r.W, r.Y + r.H} }

// Image converts r to integer pixel bounds.
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)), int(math.Round(r.Y+r.H)))
}

// Corners returns the outline of r clockwise from the top left.
func (r Rect) Corners() Polygon {
	return Polygon{{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X + r.W, r.Y + r.H}, {r.X, r.Y + r.H}}
}

// LineAngle returns the direction from p1 to p2 in [0, 360).
func LineAngle(p1, p2 Point) float64 {
	a := math.Atan2(-(p2.Y-p1.Y), p2.X-p1.X) * 180 / math.Pi
	if a < 0 {
		a += 360
	}
	return a
}

// Polar returns the point at distance length from p in direction angle.
func Polar(p Point, angle, length float64) Point {
	rad := angle * math.Pi / 180
	return Point{p.X + length*math.Cos(rad), p.Y - length*math.Sin(rad)}
}

// perp returns the two points straddling p at distance length, perpendicular
// to a shaft pointing along angle.
func perp(p Point, angle, length float64) (side1, side2 Point) {
	return Polar(p, angle+90, length), Polar(p, angle-90, length)
}

// ChevronArrow returns the shaft p1→p2 followed by the two barbs of an open
// arrowhead at p2.
func ChevronArrow(p1, p2 Point, width int) Path {
	angle := LineAngle(p1, p2)
	barb := float64(2 * (width + 1))
	return Path{
		{p1, p2},
		{p2, Polar(p2, angle+140, barb)},
		{p2, Polar(p2, angle-140, barb)},
	}
}

// FilledArrow returns the seven vertex outline of an arrow whose shaft is
// width pixels wide and whose head base is wider than the shaft. The fifth
// vertex is the tip and equals p2.
func FilledArrow(p1, p2 Point, width int) Polygon {
	h := width / 2
	half := float64(h)
	head := float64(2*h + 2)
	depth := float64(2*h + 2 + h)

	angle := LineAngle(p1, p2)
	tail := Polar(p2, angle-180, depth)

	s1, s2 := perp(p1, angle, half)
	e1, e2 := perp(tail, angle, half)
	b1, b2 := perp(tail, angle, head)
	return Polygon{s1, s2, e2, b2, p2, b1, e1}
}

// SnapAxis aligns p2 with p1 when the line between them is within 2° of
// vertical or horizontal. Applying it to its own result changes nothing.
func SnapAxis(p1, p2 Point) Point {
	a := LineAngle(p1, p2)
	switch {
	case (a > 88 && a < 92) || (a > 268 && a < 272):
		p2.X = p1.X
	case a > 358 || a < 2 || (a > 178 && a < 182):
		p2.Y = p1.Y
	}
	return p2
}

// RectFromCorners normalises two opposite corners to a top left origin and
// a non-negative size.
func RectFromCorners(p1, p2 Point) Rect {
	return Rect{
		X: math.Min(p1.X, p2.X),
		Y: math.Min(p1.Y, p2.Y),
		W: math.Abs(p2.X - p1.X),
		H: math.Abs(p2.Y - p1.Y),
	}
}
