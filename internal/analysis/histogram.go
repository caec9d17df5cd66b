package analysis

import (
	"image"

	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/radial-viewer/internal/imaging"
)

// Histogram counts pixels per luminance level 0..255.
type Histogram [256]int

// ComputeHistogram buckets every pixel of img by its luminance.
func ComputeHistogram(img *image.NRGBA) Histogram {
	var h Histogram
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			h[imaging.LuminanceAt(img, x, y)]++
		}
	}
	return h
}

// Total returns the number of counted pixels.
func (h Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Peak returns the most populated level and its count. Ties go to the
// darker level.
func (h Histogram) Peak() (level, count int) {
	for l, c := range h {
		if c > count {
			level, count = l, c
		}
	}
	return level, count
}

// Normalized scales the counts so the largest bucket is 1. An empty
// histogram yields all zeros.
func (h Histogram) Normalized() []float64 {
	out := make([]float64, len(h))
	for i, c := range h {
		out[i] = float64(c)
	}
	peak := floats.Max(out)
	if peak == 0 {
		return out
	}
	floats.Scale(1/peak, out)
	return out
}
