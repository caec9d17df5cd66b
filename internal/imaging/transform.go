package imaging

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrInvalidSize is returned for malformed or non-positive resize targets.
var ErrInvalidSize = errors.New("invalid size")

// Rotate90 rotates img 90 degrees clockwise.
func Rotate90(img *image.NRGBA) *image.NRGBA {
	return imaging.Rotate270(img)
}

// FlipHorizontal mirrors img left to right.
func FlipHorizontal(img *image.NRGBA) *image.NRGBA {
	return imaging.FlipH(img)
}

// FlipVertical mirrors img top to bottom.
func FlipVertical(img *image.NRGBA) *image.NRGBA {
	return imaging.FlipV(img)
}

// Resize smooth-scales img to exactly w x h using a Lanczos filter.
func Resize(img *image.NRGBA, w, h int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return imaging.Resize(img, w, h, imaging.Lanczos), nil
}

// ParseSize parses the textual "W,H" form. Whitespace around either number
// is allowed; both must be positive integers.
func ParseSize(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q is not of the form W,H", ErrInvalidSize, s)
	}

	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: width %q: %v", ErrInvalidSize, parts[0], err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: height %q: %v", ErrInvalidSize, parts[1], err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d must be positive", ErrInvalidSize, w, h)
	}
	return w, h, nil
}
