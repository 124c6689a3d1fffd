package model

import (
	"fmt"
	"image"
	"math"
)

// Point represents a 2D point in pixel space.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the point halfway between p and other.
func (p Point) Midpoint(other Point) Point {
	return Point{X: (p.X + other.X) / 2, Y: (p.Y + other.Y) / 2}
}

// Rect represents an integer pixel rectangle with its origin at the
// top-left corner (image coordinate system, Y grows downward).
type Rect struct {
	X      int // Left
	Y      int // Top
	Width  int
	Height int
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate.
func (r Rect) Left() int {
	return r.X
}

// Right returns the exclusive right edge X coordinate.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Top returns the top edge Y coordinate.
func (r Rect) Top() int {
	return r.Y
}

// Bottom returns the exclusive bottom edge Y coordinate.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{
		X: float64(r.X) + float64(r.Width)/2,
		Y: float64(r.Y) + float64(r.Height)/2,
	}
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= float64(r.Left()) && p.X < float64(r.Right()) &&
		p.Y >= float64(r.Top()) && p.Y < float64(r.Bottom())
}

// Intersects checks if two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.Left() < other.Right() && other.Left() < r.Right() &&
		r.Top() < other.Bottom() && other.Top() < r.Bottom()
}

// In reports whether r lies entirely within a canvas of the given size.
func (r Rect) In(width, height int) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= width && r.Bottom() <= height
}

// IsEmpty returns true if the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ImageRect converts to the standard library's image.Rectangle.
func (r Rect) ImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// String returns a compact human-readable form, used in error messages.
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Matrix represents a 2D affine transformation:
//
//	X' = m[0]*X + m[2]*Y + m[4]
//	Y' = m[1]*X + m[3]*Y + m[5]
type Matrix [6]float64

// Identity returns an identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point.
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Translate creates a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate creates a rotation matrix (angle in radians, clockwise in
// image coordinates).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Multiply returns the matrix that applies m first, then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		other[0]*m[0] + other[2]*m[1],
		other[1]*m[0] + other[3]*m[1],
		other[0]*m[2] + other[2]*m[3],
		other[1]*m[2] + other[3]*m[3],
		other[0]*m[4] + other[2]*m[5] + other[4],
		other[1]*m[4] + other[3]*m[5] + other[5],
	}
}

// Invert returns the inverse transformation. It fails when the linear
// part is singular.
func (m Matrix) Invert() (Matrix, error) {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-12 {
		return Matrix{}, fmt.Errorf("matrix is singular (det=%g)", det)
	}
	inv := Matrix{
		m[3] / det,
		-m[1] / det,
		-m[2] / det,
		m[0] / det,
	}
	inv[4] = -(inv[0]*m[4] + inv[2]*m[5])
	inv[5] = -(inv[1]*m[4] + inv[3]*m[5])
	return inv, nil
}

// IsIdentity returns true if the matrix is an identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}
