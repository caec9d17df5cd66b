package imaging

import (
	"fmt"
	"image"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Luminance returns the BT.601 grey level of an 8-bit RGB triple, rounded to
// the nearest integer and clamped to [0,255].
func Luminance(r, g, b uint8) uint8 {
	l := math.Round(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
	switch {
	case l < 0:
		return 0
	case l > 255:
		return 255
	}
	return uint8(l)
}

// LuminanceAt returns the luminance of the pixel at (x, y). The caller
// guarantees that the point lies inside img.
func LuminanceAt(img *image.NRGBA, x, y int) uint8 {
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+3 : i+3]
	return Luminance(p[0], p[1], p[2])
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// PixelSample is the result of inspecting a single pixel.
type PixelSample struct {
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Hex       string    `json:"hex"` // "#RRGGBB", alpha excluded
	RGBA      RGBAColor `json:"rgba"`
	HSL       HSLColor  `json:"hsl"`
	Luminance uint8     `json:"luminance"`
}

// String renders the sample as a results-feed line.
func (p PixelSample) String() string {
	return fmt.Sprintf("pixel (%d,%d) = %s rgba(%d,%d,%d,%d) L=%d",
		p.X, p.Y, p.Hex, p.RGBA.R, p.RGBA.G, p.RGBA.B, p.RGBA.A, p.Luminance)
}

// SamplePixel reads the pixel at (x, y) in image space.
//
// # Errors
//
// Returns an error if the point lies outside the image bounds.
func SamplePixel(img *image.NRGBA, x, y int) (*PixelSample, error) {
	if !image.Pt(x, y).In(img.Bounds()) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := img.NRGBAAt(x, y)
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, l := cf.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return &PixelSample{
		X:         x,
		Y:         y,
		Hex:       strings.ToUpper(cf.Hex()),
		RGBA:      RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL:       HSLColor{H: int(h), S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
		Luminance: Luminance(c.R, c.G, c.B),
	}, nil
}
