package session

import (
	"fmt"
	"image"

	"github.com/ironsheep/radial-viewer/internal/imaging"
	"github.com/ironsheep/radial-viewer/internal/results"
)

// Filterer runs a named filter on an image and returns the filtered copy.
type Filterer interface {
	Apply(name string, img *image.NRGBA) (*image.NRGBA, error)
}

// replace computes a new image from the current one and installs it as a
// history step. On error nothing changes.
func (s *Session) replace(op string, fn func(*image.NRGBA) (*image.NRGBA, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return ErrNoImage
	}
	out, err := fn(s.img)
	if err != nil {
		return err
	}
	s.install(out)
	b := out.Bounds()
	results.Postf(s.sink, "%s: %dx%d", op, b.Dx(), b.Dy())
	return nil
}

// Rotate90 rotates the image 90 degrees clockwise.
func (s *Session) Rotate90() error {
	return s.replace("rotate90", func(img *image.NRGBA) (*image.NRGBA, error) {
		return imaging.Rotate90(img), nil
	})
}

// FlipHorizontal mirrors the image left to right.
func (s *Session) FlipHorizontal() error {
	return s.replace("flip horizontal", func(img *image.NRGBA) (*image.NRGBA, error) {
		return imaging.FlipHorizontal(img), nil
	})
}

// FlipVertical mirrors the image top to bottom.
func (s *Session) FlipVertical() error {
	return s.replace("flip vertical", func(img *image.NRGBA) (*image.NRGBA, error) {
		return imaging.FlipVertical(img), nil
	})
}

// Crop makes region r (image space) the new image. r must be non-empty and
// inside the image; otherwise the image is untouched and the error wraps
// imaging.ErrInvalidSelection. The selection is cleared on success.
func (s *Session) Crop(r image.Rectangle) error {
	err := s.replace("crop", func(img *image.NRGBA) (*image.NRGBA, error) {
		return imaging.Crop(img, r)
	})
	if err != nil {
		return err
	}
	s.ClearSelection()
	return nil
}

// CropSelection crops to the current selection.
func (s *Session) CropSelection() error {
	sel := s.Selection()
	if sel.Empty() {
		return ErrEmptySelection
	}
	return s.Crop(sel)
}

// Resize parses a "W,H" target and smooth-scales the image to it. Malformed
// or non-positive sizes are rejected with imaging.ErrInvalidSize before
// anything changes.
func (s *Session) Resize(text string) error {
	w, h, err := imaging.ParseSize(text)
	if err != nil {
		return err
	}
	return s.ResizeTo(w, h)
}

// ResizeTo smooth-scales the image to w x h.
func (s *Session) ResizeTo(w, h int) error {
	err := s.replace("resize", func(img *image.NRGBA) (*image.NRGBA, error) {
		return imaging.Resize(img, w, h)
	})
	if err != nil {
		return err
	}
	s.ClearSelection()
	return nil
}

// ApplyFilter runs the named filter through f and installs its result.
func (s *Session) ApplyFilter(f Filterer, name string) error {
	return s.replace("filter "+name, func(img *image.NRGBA) (*image.NRGBA, error) {
		out, err := f.Apply(name, img)
		if err != nil {
			return nil, fmt.Errorf("failed to apply filter %s: %w", name, err)
		}
		return out, nil
	})
}
