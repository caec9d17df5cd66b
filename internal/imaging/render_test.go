package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func decodeRendered(t *testing.T, r *RenderResult) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		w, h   int
		z      float64
		ww, wh int
	}{
		{100, 80, 1, 100, 80},
		{100, 80, 0.5, 50, 40},
		{10, 7, 1.5, 15, 10},
		{3, 3, 0.3, 0, 0},
		{2082, 2217, 0.27, 562, 598},
	}
	for _, tt := range tests {
		w, h := ScaledSize(image.Rect(0, 0, tt.w, tt.h), tt.z)
		if w != tt.ww || h != tt.wh {
			t.Errorf("ScaledSize(%dx%d, %g): got %dx%d, want %dx%d", tt.w, tt.h, tt.z, w, h, tt.ww, tt.wh)
		}
	}
}

func TestRenderView(t *testing.T) {
	img := createPatternImage(40, 20)

	res, err := RenderView(img, ViewOptions{Zoom: 0.5})
	if err != nil {
		t.Fatalf("RenderView failed: %v", err)
	}
	if res.Width != 20 || res.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", res.Width, res.Height)
	}
	if res.MimeType != "image/png" {
		t.Errorf("MimeType: got %s", res.MimeType)
	}

	out := decodeRendered(t, res)
	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 10 {
		t.Errorf("decoded bounds: got %v", out.Bounds())
	}
}

func TestRenderView_Overlays(t *testing.T) {
	img := createInMemoryImage(10, 10, color.NRGBA{0, 0, 0, 255})

	res, err := RenderView(img, ViewOptions{
		Zoom:           2,
		Selection:      image.Rect(1, 1, 4, 4),
		SelectionColor: "#00FF00",
		ROIs:           []image.Rectangle{image.Rect(5, 5, 9, 9)},
		ROIColor:       "#0000FF",
		GridSpacing:    5,
		GridColor:      "#FF0000",
	})
	if err != nil {
		t.Fatalf("RenderView failed: %v", err)
	}
	out := decodeRendered(t, res)

	check := func(x, y int, want color.RGBA) {
		t.Helper()
		r, g, b, _ := out.At(x, y).RGBA()
		got := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255}
		if got != want {
			t.Errorf("pixel (%d,%d): got %v, want %v", x, y, got, want)
		}
	}

	// Selection (1,1)-(4,4) maps to (2,2)-(8,8) on screen
	check(2, 2, color.RGBA{0, 255, 0, 255})
	check(7, 4, color.RGBA{0, 255, 0, 255})
	// ROI (5,5)-(9,9) maps to (10,10)-(18,18); its corner sits on the grid line
	// but ROIs are drawn last
	check(17, 17, color.RGBA{0, 0, 255, 255})
	// Grid at image x=5 -> screen x=10
	check(10, 0, color.RGBA{255, 0, 0, 255})
	// Untouched interior
	check(4, 4, color.RGBA{0, 0, 0, 255})
}

func TestRenderView_InvalidZoom(t *testing.T) {
	img := createInMemoryImage(4, 4, color.NRGBA{0, 0, 0, 255})
	for _, z := range []float64{0, -1} {
		if _, err := RenderView(img, ViewOptions{Zoom: z}); err == nil {
			t.Errorf("RenderView should reject zoom %g", z)
		}
	}
}

func TestRenderView_TinyZoomStillRenders(t *testing.T) {
	img := createInMemoryImage(3, 3, color.NRGBA{0, 0, 0, 255})
	res, err := RenderView(img, ViewOptions{Zoom: 0.01})
	if err != nil {
		t.Fatalf("RenderView failed: %v", err)
	}
	if res.Width != 1 || res.Height != 1 {
		t.Errorf("dimensions: got %dx%d, want 1x1", res.Width, res.Height)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#FF0000", color.RGBA{255, 0, 0, 255}, false},
		{"00FF0080", color.RGBA{0, 255, 0, 128}, false},
		{"#FFF", color.RGBA{}, true},
		{"", color.RGBA{}, true},
		{"#GG0000", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := parseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseHexColor(%q): err=%v, wantErr=%v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseHexColor(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
