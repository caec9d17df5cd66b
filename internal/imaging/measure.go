package imaging

import (
	"image"
	"math"
)

// Offset describes where a pixel lies relative to a reference point, usually
// the radial-profile center.
type Offset struct {
	DeltaX       float64 `json:"delta_x"`
	DeltaY       float64 `json:"delta_y"`
	Distance     float64 `json:"distance_pixels"`
	AngleDegrees float64 `json:"angle_degrees"` // 0 = right, 90 = down
	// NearestRadius is the integer radius whose sampling circle passes
	// closest to the pixel.
	NearestRadius int `json:"nearest_radius"`
}

// MeasureFrom returns the offset of p from the center (cx, cy).
func MeasureFrom(cx, cy float64, p image.Point) Offset {
	dx := float64(p.X) - cx
	dy := float64(p.Y) - cy
	distance := math.Hypot(dx, dy)
	angle := math.Atan2(dy, dx) * 180 / math.Pi

	return Offset{
		DeltaX:        dx,
		DeltaY:        dy,
		Distance:      math.Round(distance*100) / 100,
		AngleDegrees:  math.Round(angle*10) / 10,
		NearestRadius: int(math.Round(distance)),
	}
}

// Center returns the geometric center of r, (width/2, height/2) for an image
// anchored at the origin.
func Center(r image.Rectangle) (float64, float64) {
	return float64(r.Min.X) + float64(r.Dx())/2, float64(r.Min.Y) + float64(r.Dy())/2
}
