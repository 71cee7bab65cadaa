package calibration

import "math"

// Point is a 2D coordinate in image pixel space.
// It is a value object with no independent lifecycle.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the euclidean pixel distance to another point
func (p Point) DistanceTo(other Point) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}
