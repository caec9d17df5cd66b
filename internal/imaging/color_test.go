package imaging

import (
	"image/color"
	"strings"
	"testing"
)

func TestLuminance(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{"black", 0, 0, 0, 0},
		{"white", 255, 255, 255, 255},
		{"red", 255, 0, 0, 76},
		{"green", 0, 255, 0, 150},
		{"blue", 0, 0, 255, 29},
		{"orange", 255, 128, 64, 159},
		{"grey", 128, 128, 128, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Luminance(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("Luminance(%d,%d,%d): got %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestLuminanceAt(t *testing.T) {
	img := createPatternImage(10, 10)
	if got := LuminanceAt(img, 0, 0); got != 76 {
		t.Errorf("red quadrant: got %d, want 76", got)
	}
	if got := LuminanceAt(img, 9, 9); got != 255 {
		t.Errorf("white quadrant: got %d, want 255", got)
	}
}

func TestSamplePixel(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{255, 128, 64, 200})

	s, err := SamplePixel(img, 50, 50)
	if err != nil {
		t.Fatalf("SamplePixel failed: %v", err)
	}

	if s.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", s.Hex)
	}
	if s.RGBA != (RGBAColor{R: 255, G: 128, B: 64, A: 200}) {
		t.Errorf("RGBA: got %+v", s.RGBA)
	}
	if s.Luminance != 159 {
		t.Errorf("Luminance: got %d, want 159", s.Luminance)
	}
	if s.HSL.H < 19 || s.HSL.H > 21 {
		t.Errorf("HSL.H: got %d, want ~20", s.HSL.H)
	}
	if !strings.Contains(s.String(), "pixel (50,50) = #FF8040") {
		t.Errorf("String: got %q", s.String())
	}
}

func TestSamplePixel_Grey(t *testing.T) {
	img := createInMemoryImage(2, 2, color.NRGBA{128, 128, 128, 255})

	s, err := SamplePixel(img, 1, 1)
	if err != nil {
		t.Fatalf("SamplePixel failed: %v", err)
	}
	if s.HSL.S != 0 {
		t.Errorf("grey saturation: got %d, want 0", s.HSL.S)
	}
	if s.HSL.L != 50 {
		t.Errorf("grey lightness: got %d, want 50", s.HSL.L)
	}
}

func TestSamplePixel_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x at width", 100, 50},
		{"y at height", 50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SamplePixel(img, tt.x, tt.y); err == nil {
				t.Error("SamplePixel should fail for out-of-bounds coordinates")
			}
		})
	}
}
