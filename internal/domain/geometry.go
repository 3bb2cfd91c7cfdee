package domain

import (
	"fmt"
	"math"
)

// Point is a drawing coordinate.
type Point struct {
	X float64
	Y float64
	Z float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// Rect is an axis-aligned rectangle given by its lower-left and upper-right corners.
type Rect struct {
	Min Point
	Max Point
}

// Valid reports whether Min is strictly below Max on both axes.
func (r Rect) Valid() bool {
	return r.Min.X < r.Max.X && r.Min.Y < r.Max.Y
}

// Contains reports whether p lies strictly inside r. Points on an edge are
// outside, so two sheets sharing an edge never both claim a point.
func (r Rect) Contains(p Point) bool {
	return r.Min.X < p.X && p.X < r.Max.X &&
		r.Min.Y < p.Y && p.Y < r.Max.Y
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// MidX returns the x coordinate of the vertical centre line.
func (r Rect) MidX() float64 {
	return (r.Min.X + r.Max.X) / 2
}

// Round2 rounds v to two decimals, the precision used in reports.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
