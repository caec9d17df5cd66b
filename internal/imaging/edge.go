package imaging

import (
	"image"
	"math"
)

// plane is a width x height grid of float samples stored row-major.
type plane struct {
	w, h int
	v    []float64
}

func newPlane(w, h int) *plane {
	return &plane{w: w, h: h, v: make([]float64, w*h)}
}

// at reads with clamped (replicated) borders.
func (p *plane) at(x, y int) float64 {
	return p.v[clamp(y, 0, p.h-1)*p.w+clamp(x, 0, p.w-1)]
}

// EdgeDetect performs Canny-style edge detection and returns a grey image of
// the same size where edges are white (255) and everything else is black.
// Alpha is copied from img.
//
// Thresholds are on the 0-255 scale; thresholdLow discards weak gradients,
// thresholdHigh marks strong edges. Pixels in between survive only when
// touching a strong edge.
//
// # Algorithm
//
//  1. Luminance (BT.601) normalized to 0-1
//  2. 5x5 Gaussian blur (sigma ≈ 1.4, kernel sum 273)
//  3. Sobel gradients, magnitude and direction
//  4. Non-maximum suppression along the gradient direction
//  5. Double threshold with single-step hysteresis
func EdgeDetect(img *image.NRGBA, thresholdLow, thresholdHigh int) *image.NRGBA {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return out
	}

	gray := newPlane(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray.v[y*width+x] = float64(LuminanceAt(img, bounds.Min.X+x, bounds.Min.Y+y)) / 255.0
		}
	}

	blurred := gaussianBlur(gray)
	magnitude, direction := sobel(blurred)
	suppressed := suppressNonMaxima(magnitude, direction)

	low := float64(thresholdLow) / 255.0
	high := float64(thresholdHigh) / 255.0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var v uint8
			m := suppressed.v[y*width+x]
			if m >= high || (m >= low && hasStrongNeighbor(suppressed, x, y, high)) {
				v = 255
			}
			i := out.PixOffset(x, y)
			out.Pix[i], out.Pix[i+1], out.Pix[i+2] = v, v, v
			out.Pix[i+3] = img.Pix[img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)+3]
		}
	}
	return out
}

var gaussKernel = [5][5]float64{
	{1, 4, 7, 4, 1},
	{4, 16, 26, 16, 4},
	{7, 26, 41, 26, 7},
	{4, 16, 26, 16, 4},
	{1, 4, 7, 4, 1},
}

func gaussianBlur(src *plane) *plane {
	const kernelSum = 273.0
	dst := newPlane(src.w, src.h)
	for y := 0; y < src.h; y++ {
		for x := 0; x < src.w; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					sum += src.at(x+kx, y+ky) * gaussKernel[ky+2][kx+2]
				}
			}
			dst.v[y*src.w+x] = sum / kernelSum
		}
	}
	return dst
}

var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

func sobel(src *plane) (magnitude, direction *plane) {
	magnitude = newPlane(src.w, src.h)
	direction = newPlane(src.w, src.h)
	for y := 0; y < src.h; y++ {
		for x := 0; x < src.w; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := src.at(x+kx, y+ky)
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude.v[y*src.w+x] = math.Hypot(gx, gy)
			direction.v[y*src.w+x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

// suppressNonMaxima keeps only pixels that are local maxima along their
// gradient direction. The one-pixel border is always suppressed.
func suppressNonMaxima(mag, dir *plane) *plane {
	out := newPlane(mag.w, mag.h)
	for y := 1; y < mag.h-1; y++ {
		for x := 1; x < mag.w-1; x++ {
			angle := dir.v[y*mag.w+x]
			m := mag.v[y*mag.w+x]

			// Fold the direction into [0, pi) and pick the neighbor pair.
			if angle < 0 {
				angle += math.Pi
			}
			var n1, n2 float64
			switch {
			case angle < math.Pi/8 || angle >= 7*math.Pi/8:
				n1, n2 = mag.at(x-1, y), mag.at(x+1, y)
			case angle < 3*math.Pi/8:
				n1, n2 = mag.at(x+1, y-1), mag.at(x-1, y+1)
			case angle < 5*math.Pi/8:
				n1, n2 = mag.at(x, y-1), mag.at(x, y+1)
			default:
				n1, n2 = mag.at(x-1, y-1), mag.at(x+1, y+1)
			}

			if m >= n1 && m >= n2 {
				out.v[y*mag.w+x] = m
			}
		}
	}
	return out
}

func hasStrongNeighbor(p *plane, x, y int, high float64) bool {
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			if p.at(x+kx, y+ky) >= high {
				return true
			}
		}
	}
	return false
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
