package imaging

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrInvalidBlendMode is returned by ParseBlendMode for unknown names.
var ErrInvalidBlendMode = errors.New("invalid blend mode")

// BlendMode selects how a pasted pixel combines with the pixel under it.
type BlendMode int

const (
	// BlendAverage stores the integer-truncated mean (dst+src)/2. It is the default.
	BlendAverage BlendMode = iota
	// BlendAnd stores dst & src.
	BlendAnd
	// BlendOr stores dst | src.
	BlendOr
	// BlendXor stores dst ^ src.
	BlendXor
)

var blendNames = map[BlendMode]string{
	BlendAverage: "blend",
	BlendAnd:     "and",
	BlendOr:      "or",
	BlendXor:     "xor",
}

func (m BlendMode) String() string {
	if s, ok := blendNames[m]; ok {
		return s
	}
	return fmt.Sprintf("BlendMode(%d)", int(m))
}

// ParseBlendMode maps "and", "or", "xor" or "blend" (case-insensitive) to a
// mode. The empty string selects BlendAverage.
func ParseBlendMode(s string) (BlendMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "blend", "average":
		return BlendAverage, nil
	case "and":
		return BlendAnd, nil
	case "or":
		return BlendOr, nil
	case "xor":
		return BlendXor, nil
	}
	return BlendAverage, fmt.Errorf("%w: %q", ErrInvalidBlendMode, s)
}

func (m BlendMode) combine(dst, src uint8) uint8 {
	switch m {
	case BlendAnd:
		return dst & src
	case BlendOr:
		return dst | src
	case BlendXor:
		return dst ^ src
	default:
		return uint8((uint16(dst) + uint16(src)) / 2)
	}
}

// Paste returns a copy of dst with src composited at offset at.
//
// Every src pixel (x,y) lands on (at.X+x, at.Y+y); destinations outside dst
// are skipped without error. The R, G and B channels are combined with mode;
// the destination alpha is kept.
func Paste(dst, src *image.NRGBA, at image.Point, mode BlendMode) *image.NRGBA {
	out := imaging.Clone(dst)
	bounds := out.Bounds()
	sb := src.Bounds()

	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		ty := at.Y + (y - sb.Min.Y)
		if ty < bounds.Min.Y || ty >= bounds.Max.Y {
			continue
		}
		for x := sb.Min.X; x < sb.Max.X; x++ {
			tx := at.X + (x - sb.Min.X)
			if tx < bounds.Min.X || tx >= bounds.Max.X {
				continue
			}
			si := src.PixOffset(x, y)
			di := out.PixOffset(tx, ty)
			for c := 0; c < 3; c++ {
				out.Pix[di+c] = mode.combine(out.Pix[di+c], src.Pix[si+c])
			}
		}
	}
	return out
}

// Fill returns a copy of img with region r (clipped to the image) set to
// value on every channel, alpha included.
func Fill(img *image.NRGBA, r image.Rectangle, value uint8) *image.NRGBA {
	out := imaging.Clone(img)
	r = r.Intersect(out.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := out.Pix[out.PixOffset(r.Min.X, y):out.PixOffset(r.Max.X-1, y)+4]
		for i := range row {
			row[i] = value
		}
	}
	return out
}
