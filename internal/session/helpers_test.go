package session

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/radial-viewer/internal/config"
	"github.com/ironsheep/radial-viewer/internal/results"
)

// newTestSession creates a session with a recording feed and the given
// display size.
func newTestSession(t *testing.T, displayW, displayH int) (*Session, *results.Feed) {
	t.Helper()
	cfg := config.Default()
	cfg.Display = config.Display{Width: displayW, Height: displayH}
	feed := results.NewFeed(nil)
	return New(cfg, feed), feed
}

// createGradientImage creates an image whose pixels are all distinct enough
// to detect any geometric change.
func createGradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 7), uint8(y * 11), uint8(x + y), 255})
		}
	}
	return img
}

func createUniformImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func sameImage(a, b *image.NRGBA) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	for y := a.Bounds().Min.Y; y < a.Bounds().Max.Y; y++ {
		for x := a.Bounds().Min.X; x < a.Bounds().Max.X; x++ {
			if a.NRGBAAt(x, y) != b.NRGBAAt(x, y) {
				return false
			}
		}
	}
	return true
}

func containsLine(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
