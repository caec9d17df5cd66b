package session

import (
	"errors"
	"fmt"

	"github.com/ironsheep/radial-viewer/internal/imaging"
)

var (
	// ErrNoImage is returned by operations that need a current image.
	ErrNoImage = errors.New("no image loaded")

	// ErrEmptySelection is returned by copy and crop when nothing is
	// selected. It matches imaging.ErrInvalidSelection under errors.Is.
	ErrEmptySelection = fmt.Errorf("empty selection: %w", imaging.ErrInvalidSelection)

	// ErrClipboardEmpty is returned by Paste before anything was copied.
	ErrClipboardEmpty = errors.New("clipboard is empty")
)
