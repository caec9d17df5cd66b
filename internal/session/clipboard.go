package session

import (
	"image"

	"github.com/ironsheep/radial-viewer/internal/imaging"
	"github.com/ironsheep/radial-viewer/internal/results"
)

// Copy stores the selected region in the clipboard, replacing its previous
// content.
func (s *Session) Copy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

func (s *Session) copyLocked() error {
	if s.img == nil {
		return ErrNoImage
	}
	if s.selection.Empty() {
		return ErrEmptySelection
	}
	clip, err := imaging.Crop(s.img, s.selection)
	if err != nil {
		return err
	}
	s.clipboard = clip
	results.Postf(s.sink, "copied %dx%d from (%d,%d)",
		clip.Bounds().Dx(), clip.Bounds().Dy(), s.selection.Min.X, s.selection.Min.Y)
	return nil
}

// Cut copies the selection and then erases it to the configured erase value
// on every channel. The erased image is installed as a new history step.
func (s *Session) Cut() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.copyLocked(); err != nil {
		return err
	}
	s.install(imaging.Fill(s.img, s.selection, uint8(s.cfg.EraseValue)))
	return nil
}

// Paste composites the clipboard onto the current image with its top-left
// corner at dest (image space). Pixels landing outside the image are
// dropped.
func (s *Session) Paste(dest image.Point, mode imaging.BlendMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return ErrNoImage
	}
	if s.clipboard == nil {
		return ErrClipboardEmpty
	}
	s.install(imaging.Paste(s.img, s.clipboard, dest, mode))
	results.Postf(s.sink, "pasted %dx%d at (%d,%d) mode %s",
		s.clipboard.Bounds().Dx(), s.clipboard.Bounds().Dy(), dest.X, dest.Y, mode)
	return nil
}

// Clipboard returns the clipboard image, or nil when empty. It must not be
// modified.
func (s *Session) Clipboard() *image.NRGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clipboard
}
