package plugin

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/radial-viewer/internal/imaging"
)

// fromBild adapts a bild operation, which returns a new image, to the
// in-place filter contract.
func fromBild(op func(image.Image) *image.RGBA) Filter {
	return func(img *image.NRGBA) {
		out := op(img)
		draw.Draw(img, img.Bounds(), out, out.Bounds().Min, draw.Src)
	}
}

func builtins() map[string]Filter {
	return map[string]Filter{
		"invert":  fromBild(effect.Invert),
		"sharpen": fromBild(effect.Sharpen),
		"emboss":  fromBild(effect.Emboss),
		"sobel":   fromBild(effect.Sobel),
		"edges": fromBild(func(src image.Image) *image.RGBA {
			return effect.EdgeDetection(src, 1)
		}),
		"median": fromBild(func(src image.Image) *image.RGBA {
			return effect.Median(src, 1)
		}),
		"blur": fromBild(func(src image.Image) *image.RGBA {
			return blur.Gaussian(src, 2)
		}),
		"brighten": fromBild(func(src image.Image) *image.RGBA {
			return adjust.Brightness(src, 0.2)
		}),
		"darken": fromBild(func(src image.Image) *image.RGBA {
			return adjust.Brightness(src, -0.2)
		}),
		"contrast": fromBild(func(src image.Image) *image.RGBA {
			return adjust.Contrast(src, 0.2)
		}),
		"grayscale": grayscale,
		"canny":     canny,
	}
}

// grayscale replaces every pixel with its luminance, keeping alpha.
func grayscale(img *image.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			l := imaging.Luminance(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = l, l, l
		}
	}
}

func canny(img *image.NRGBA) {
	edges := imaging.EdgeDetect(img, 50, 150)
	draw.Draw(img, img.Bounds(), edges, image.Point{}, draw.Src)
}
