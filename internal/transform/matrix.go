package transform

import (
	"math"

	"github.com/example/snapmark/internal/geom"
	"golang.org/x/image/math/f64"
)

// Matrix represents a 2D affine transformation.
// Layout: [a, b, c, d, e, f] representing:
// | a  c  e |
// | b  d  f |
// | 0  0  1 |
type Matrix [6]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale returns a scale matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// RotateDegrees returns a rotation matrix. Positive angles turn clockwise on
// screen. Quarter turns produce exact integer entries so repeated rotation
// never drifts.
func RotateDegrees(degrees float64) Matrix {
	if q := degrees / 90; q == math.Trunc(q) {
		switch ((int(q) % 4) + 4) % 4 {
		case 0:
			return Identity()
		case 1:
			return Matrix{0, 1, -1, 0, 0, 0}
		case 2:
			return Matrix{-1, 0, 0, -1, 0, 0}
		case 3:
			return Matrix{0, -1, 1, 0, 0, 0}
		}
	}
	rad := degrees * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Multiply returns m * other, which applies other first and then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

// TransformPoint applies the matrix to p.
func (m Matrix) TransformPoint(p geom.Point) geom.Point {
	return geom.Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// TransformRect transforms r and returns its axis aligned bounding box.
func (m Matrix) TransformRect(r geom.Rect) geom.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range r.Corners() {
		p := m.TransformPoint(c)
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return geom.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse of m, or Identity if m is singular.
func (m Matrix) Invert() Matrix {
	det := m.Determinant()
	if det == 0 {
		return Identity()
	}
	inv := 1 / det
	return Matrix{
		m[3] * inv,
		-m[1] * inv,
		-m[2] * inv,
		m[0] * inv,
		(m[2]*m[5] - m[3]*m[4]) * inv,
		(m[1]*m[4] - m[0]*m[5]) * inv,
	}
}

// IsIdentity reports whether m is the identity within a small epsilon.
func (m Matrix) IsIdentity() bool {
	return m.Near(Identity())
}

// Near reports whether every entry of m is within 1e-9 of o.
func (m Matrix) Near(o Matrix) bool {
	const eps = 1e-9
	for i := range m {
		if math.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// Aff3 converts m to the row major layout used by golang.org/x/image/draw.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}
