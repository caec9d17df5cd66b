package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/radial-viewer/internal/imaging"
)

// ErrInvalidRadius is returned for radii the profiler cannot sample.
var ErrInvalidRadius = errors.New("invalid radius")

// Point is a sampling centre in image coordinates. Fractional values are
// allowed; the default centre of an odd-sized image falls between pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DefaultCenter returns the geometric centre (w/2, h/2) of bounds.
func DefaultCenter(bounds image.Rectangle) Point {
	x, y := imaging.Center(bounds)
	return Point{X: x, Y: y}
}

// RadialSample is the circular average at one radius. Average is NaN and
// Samples is 0 when no pixel of the circle lies inside the image.
type RadialSample struct {
	Radius  int
	Average float64
	Samples int
}

// Valid reports whether the sample carries a result.
func (s RadialSample) Valid() bool {
	return s.Samples > 0 && !math.IsNaN(s.Average) && !math.IsInf(s.Average, 0)
}

func (s RadialSample) String() string {
	if !s.Valid() {
		return fmt.Sprintf("R=%d: no data", s.Radius)
	}
	return fmt.Sprintf("R=%d: avg=%.4f over %d samples", s.Radius, s.Average, s.Samples)
}

type radialSampleJSON struct {
	Radius  int      `json:"radius"`
	Average *float64 `json:"average"`
	Samples int      `json:"samples"`
}

// MarshalJSON encodes a missing average as null, since JSON has no NaN.
func (s RadialSample) MarshalJSON() ([]byte, error) {
	out := radialSampleJSON{Radius: s.Radius, Samples: s.Samples}
	if s.Valid() {
		avg := s.Average
		out.Average = &avg
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a null average back to NaN.
func (s *RadialSample) UnmarshalJSON(data []byte) error {
	var in radialSampleJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.Radius = in.Radius
	s.Samples = in.Samples
	s.Average = math.NaN()
	if in.Average != nil {
		s.Average = *in.Average
	}
	return nil
}

// noResult is the sentinel for a circle with nothing to sample.
func noResult(r int) RadialSample {
	return RadialSample{Radius: r, Average: math.NaN()}
}

// SampleCount returns the number of angular steps taken at radius r,
// max(8, round(2*pi*r)).
func SampleCount(r int) int {
	n := int(math.Round(2 * math.Pi * float64(r)))
	if n < 8 {
		return 8
	}
	return n
}

// CircularAverage is the single-radius profile operation. The radius must
// be positive.
func CircularAverage(img *image.NRGBA, c Point, r int) (RadialSample, error) {
	if r <= 0 {
		return RadialSample{}, fmt.Errorf("%w: radius must be > 0, got %d", ErrInvalidRadius, r)
	}
	return Sample(img, c, r)
}

// Sample averages the luminance of the pixels on the circle of radius r
// around c. Radius 0 samples the pixel under the centre.
//
// The circle is walked in SampleCount(r) equal angular steps. Each position
// is rounded to the nearest pixel; a pixel reached more than once counts
// once, and positions outside the image are skipped. When the circle's
// bounding box misses the image entirely nothing is sampled.
func Sample(img *image.NRGBA, c Point, r int) (RadialSample, error) {
	if r < 0 {
		return RadialSample{}, fmt.Errorf("%w: radius must be >= 0, got %d", ErrInvalidRadius, r)
	}

	bounds := img.Bounds()
	radius := float64(r)

	// The box [c-r, c+r] is tested against [min, max) as is, before rounding.
	if c.X+radius < float64(bounds.Min.X) || c.X-radius >= float64(bounds.Max.X) ||
		c.Y+radius < float64(bounds.Min.Y) || c.Y-radius >= float64(bounds.Max.Y) {
		return noResult(r), nil
	}
	// Rounding moves a position by at most sqrt(2)/2, so a circle enclosing
	// every pixel centre with a one pixel margin reaches none of them.
	if radius > farthestPixel(bounds, c)+1 {
		return noResult(r), nil
	}

	pts := samplePoints(bounds, c, r)
	if len(pts) == 0 {
		return noResult(r), nil
	}

	var sum float64
	for _, p := range pts {
		sum += float64(imaging.LuminanceAt(img, p.X, p.Y))
	}
	return RadialSample{Radius: r, Average: sum / float64(len(pts)), Samples: len(pts)}, nil
}

// farthestPixel is the distance from c to the farthest pixel centre in bounds.
func farthestPixel(bounds image.Rectangle, c Point) float64 {
	dx := math.Max(math.Abs(c.X-float64(bounds.Min.X)), math.Abs(c.X-float64(bounds.Max.X-1)))
	dy := math.Max(math.Abs(c.Y-float64(bounds.Min.Y)), math.Abs(c.Y-float64(bounds.Max.Y-1)))
	return math.Hypot(dx, dy)
}

// samplePoints returns the distinct in-bounds pixels Sample would visit, in
// visiting order.
func samplePoints(bounds image.Rectangle, c Point, r int) []image.Point {
	n := SampleCount(r)
	seen := make(map[image.Point]struct{}, n)
	var pts []image.Point
	for k := 0; k < n; k++ {
		theta := 2 * math.Pi * float64(k) / float64(n)
		p := image.Pt(
			int(math.Round(c.X+float64(r)*math.Cos(theta))),
			int(math.Round(c.Y+float64(r)*math.Sin(theta))),
		)
		if _, ok := seen[p]; ok || !p.In(bounds) {
			continue
		}
		seen[p] = struct{}{}
		pts = append(pts, p)
	}
	return pts
}
