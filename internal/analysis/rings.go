package analysis

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/ironsheep/radial-viewer/internal/imaging"
)

// ErrInvalidRingSearch is returned for an unusable radius range or level.
var ErrInvalidRingSearch = errors.New("invalid ring search")

// ringVoteSteps is the number of angular votes each bright pixel casts per
// radius.
const ringVoteSteps = 36

// minRingSupport is the fraction of votes a centre needs to count as a ring.
const minRingSupport = 0.6

// Ring is a bright circle located by FindRings.
type Ring struct {
	Center Point `json:"center"`
	Radius int   `json:"radius"`
	// Confidence is the fraction of angular votes that landed on Center,
	// capped at 1.
	Confidence float64 `json:"confidence"`
}

func (r Ring) String() string {
	return fmt.Sprintf("ring R=%d at (%.1f,%.1f) confidence %.2f", r.Radius, r.Center.X, r.Center.Y, r.Confidence)
}

// RingSearch bounds a FindRings run.
type RingSearch struct {
	MinRadius int
	MaxRadius int
	// Level is the luminance at or above which a pixel belongs to a ring.
	Level uint8
}

// Validate checks the radius range.
func (s RingSearch) Validate() error {
	switch {
	case s.MinRadius <= 0:
		return fmt.Errorf("%w: min radius must be > 0, got %d", ErrInvalidRingSearch, s.MinRadius)
	case s.MaxRadius < s.MinRadius:
		return fmt.Errorf("%w: max radius %d < min radius %d", ErrInvalidRingSearch, s.MaxRadius, s.MinRadius)
	case s.Level == 0:
		return fmt.Errorf("%w: level must be > 0", ErrInvalidRingSearch)
	}
	return nil
}

// FindRings locates bright circles with a radius in the search range using
// a Hough transform: every pixel at or above the level votes for the
// centres it could lie on, and local vote maxima with enough support become
// rings. Rings are ordered by confidence, best first, and a ring whose
// centre lies within the mean radius of a better ring is dropped.
func FindRings(img *image.NRGBA, s RingSearch) ([]Ring, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, nil
	}

	var bright []image.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if imaging.LuminanceAt(img, x+b.Min.X, y+b.Min.Y) >= s.Level {
				bright = append(bright, image.Pt(x, y))
			}
		}
	}
	if len(bright) == 0 {
		return nil, nil
	}

	acc := make([]int, w*h)
	threshold := int(math.Ceil(ringVoteSteps * minRingSupport))
	var rings []Ring

	for r := s.MinRadius; r <= s.MaxRadius; r++ {
		clear(acc)
		offsets := ringOffsets(r)
		for _, p := range bright {
			for _, o := range offsets {
				cx, cy := p.X-o.X, p.Y-o.Y
				if cx >= 0 && cx < w && cy >= 0 && cy < h {
					acc[cy*w+cx]++
				}
			}
		}

		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				votes := acc[y*w+x]
				if votes < threshold || !isLocalMax(acc, w, h, x, y, 5) {
					continue
				}
				rings = append(rings, Ring{
					Center:     Point{X: float64(x + b.Min.X), Y: float64(y + b.Min.Y)},
					Radius:     r,
					Confidence: float64(votes) / ringVoteSteps,
				})
			}
		}
	}

	sort.SliceStable(rings, func(i, j int) bool {
		return rings[i].Confidence > rings[j].Confidence
	})
	rings = dedupeRings(rings)
	for i := range rings {
		rings[i].Confidence = math.Min(rings[i].Confidence, 1)
	}
	return rings, nil
}

// ringOffsets returns the rounded positions of ringVoteSteps equally spaced
// points on a circle of radius r around the origin.
func ringOffsets(r int) []image.Point {
	out := make([]image.Point, ringVoteSteps)
	for k := range out {
		theta := 2 * math.Pi * float64(k) / ringVoteSteps
		out[k] = image.Pt(
			int(math.Round(float64(r)*math.Cos(theta))),
			int(math.Round(float64(r)*math.Sin(theta))),
		)
	}
	return out
}

// isLocalMax reports whether no cell within d of (x, y) has more votes.
func isLocalMax(acc []int, w, h, x, y, d int) bool {
	v := acc[y*w+x]
	for ny := max(0, y-d); ny <= min(h-1, y+d); ny++ {
		for nx := max(0, x-d); nx <= min(w-1, x+d); nx++ {
			if acc[ny*w+nx] > v {
				return false
			}
		}
	}
	return true
}

// dedupeRings keeps the first of any rings whose centres are closer than
// their mean radius. The input must already be ordered best first.
func dedupeRings(rings []Ring) []Ring {
	var kept []Ring
	for _, c := range rings {
		dup := false
		for _, k := range kept {
			d := math.Hypot(c.Center.X-k.Center.X, c.Center.Y-k.Center.Y)
			if d < float64(c.Radius+k.Radius)/2 {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, c)
		}
	}
	return kept
}
