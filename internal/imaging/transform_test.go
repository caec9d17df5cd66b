package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

var (
	red  = color.NRGBA{255, 0, 0, 255}
	blue = color.NRGBA{0, 0, 255, 255}
)

// twoPixel returns a 2x1 image: red on the left, blue on the right
func twoPixel() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, blue)
	return img
}

func TestRotate90_Clockwise(t *testing.T) {
	got := Rotate90(twoPixel())

	if got.Bounds() != image.Rect(0, 0, 1, 2) {
		t.Fatalf("bounds: got %v, want 1x2", got.Bounds())
	}
	if got.NRGBAAt(0, 0) != red || got.NRGBAAt(0, 1) != blue {
		t.Errorf("clockwise rotation should put the left pixel on top")
	}
}

func TestRotate90_FourTimesIsIdentity(t *testing.T) {
	img := createPatternImage(6, 4)
	got := Rotate90(Rotate90(Rotate90(Rotate90(img))))
	if !sameImage(img, got) {
		t.Error("four rotations should reproduce the image")
	}
}

func TestFlipHorizontal(t *testing.T) {
	got := FlipHorizontal(twoPixel())
	if got.NRGBAAt(0, 0) != blue || got.NRGBAAt(1, 0) != red {
		t.Error("FlipHorizontal should swap left and right")
	}
}

func TestFlipVertical(t *testing.T) {
	img := Rotate90(twoPixel()) // red on top, blue below
	got := FlipVertical(img)
	if got.NRGBAAt(0, 0) != blue || got.NRGBAAt(0, 1) != red {
		t.Error("FlipVertical should swap top and bottom")
	}
}

func TestFlips_DoNotModifySource(t *testing.T) {
	img := twoPixel()
	FlipHorizontal(img)
	FlipVertical(img)
	Rotate90(img)
	if img.NRGBAAt(0, 0) != red || img.NRGBAAt(1, 0) != blue {
		t.Error("transform modified its input")
	}
}

func TestResize(t *testing.T) {
	img := createInMemoryImage(10, 10, color.NRGBA{0, 200, 0, 255})

	got, err := Resize(img, 20, 5)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if got.Bounds().Dx() != 20 || got.Bounds().Dy() != 5 {
		t.Errorf("dimensions: got %v, want 20x5", got.Bounds())
	}
	// Uniform input stays uniform under smooth scaling
	if c := got.NRGBAAt(10, 2); c.G < 195 || c.R > 5 {
		t.Errorf("pixel: got %v", c)
	}

	for _, size := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		if _, err := Resize(img, size[0], size[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Resize(%d,%d) should fail with ErrInvalidSize, got %v", size[0], size[1], err)
		}
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"640,480", 640, 480, false},
		{" 12 , 7 ", 12, 7, false},
		{"1,1", 1, 1, false},
		{"640x480", 0, 0, true},
		{"640,", 0, 0, true},
		{",480", 0, 0, true},
		{"a,b", 0, 0, true},
		{"0,10", 0, 0, true},
		{"10,-3", 0, 0, true},
		{"1,2,3", 0, 0, true},
		{"", 0, 0, true},
		{"1.5,2", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := ParseSize(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSize) {
					t.Errorf("ParseSize(%q) should fail with ErrInvalidSize, got %v", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSize(%q) failed: %v", tt.in, err)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("ParseSize(%q): got %d,%d want %d,%d", tt.in, w, h, tt.w, tt.h)
			}
		})
	}
}
