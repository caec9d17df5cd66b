package analysis

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// createRingImage draws thin bright rings on black, using the same rounded
// positions the detector votes with.
func createRingImage(width, height int, cx, cy int, radii ...int) *image.NRGBA {
	img := createUniformImage(width, height, 0)
	for _, r := range radii {
		for _, o := range ringOffsets(r) {
			img.SetNRGBA(cx+o.X, cy+o.Y, color.NRGBA{255, 255, 255, 255})
		}
	}
	return img
}

func TestFindRings_SingleRing(t *testing.T) {
	img := createRingImage(80, 60, 37, 28, 15)

	rings, err := FindRings(img, RingSearch{MinRadius: 10, MaxRadius: 20, Level: 128})
	if err != nil {
		t.Fatalf("FindRings: %v", err)
	}
	if len(rings) == 0 {
		t.Fatal("no ring found")
	}

	best := rings[0]
	if best.Center != (Point{X: 37, Y: 28}) || best.Radius != 15 {
		t.Errorf("best ring: got %v, want R=15 at (37,28)", best)
	}
	if best.Confidence != 1 {
		t.Errorf("confidence: got %v, want 1", best.Confidence)
	}
}

func TestFindRings_ConcentricRingsShareACentre(t *testing.T) {
	img := createRingImage(100, 100, 50, 50, 12, 30)

	rings, err := FindRings(img, RingSearch{MinRadius: 8, MaxRadius: 35, Level: 128})
	if err != nil {
		t.Fatalf("FindRings: %v", err)
	}
	if len(rings) == 0 {
		t.Fatal("no ring found")
	}
	if rings[0].Center != (Point{X: 50, Y: 50}) {
		t.Errorf("centre: got %v, want (50,50)", rings[0].Center)
	}
	for _, r := range rings[1:] {
		if r.Center == rings[0].Center {
			t.Errorf("concentric duplicate kept: %v", r)
		}
	}
}

func TestFindRings_Dark(t *testing.T) {
	img := createUniformImage(30, 30, 20)

	rings, err := FindRings(img, RingSearch{MinRadius: 5, MaxRadius: 10, Level: 128})
	if err != nil {
		t.Fatalf("FindRings: %v", err)
	}
	if len(rings) != 0 {
		t.Errorf("found %d rings in a dark image", len(rings))
	}
}

func TestFindRings_Validation(t *testing.T) {
	img := createUniformImage(10, 10, 0)

	tests := []struct {
		name string
		s    RingSearch
	}{
		{"zero min", RingSearch{MinRadius: 0, MaxRadius: 5, Level: 1}},
		{"max below min", RingSearch{MinRadius: 6, MaxRadius: 5, Level: 1}},
		{"zero level", RingSearch{MinRadius: 1, MaxRadius: 5, Level: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindRings(img, tt.s)
			if !errors.Is(err, ErrInvalidRingSearch) {
				t.Errorf("got %v, want ErrInvalidRingSearch", err)
			}
		})
	}
}

func TestDedupeRings(t *testing.T) {
	rings := []Ring{
		{Center: Point{X: 10, Y: 10}, Radius: 10, Confidence: 1},
		{Center: Point{X: 12, Y: 10}, Radius: 10, Confidence: 0.8},
		{Center: Point{X: 40, Y: 10}, Radius: 10, Confidence: 0.7},
	}
	kept := dedupeRings(rings)
	if len(kept) != 2 {
		t.Fatalf("got %d rings, want 2", len(kept))
	}
	if kept[1].Center.X != 40 {
		t.Errorf("wrong ring dropped: %v", kept)
	}
	if len(dedupeRings(nil)) != 0 {
		t.Error("empty input should give no rings")
	}
}
