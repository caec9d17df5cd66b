package session

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/radial-viewer/internal/imaging"
	"github.com/ironsheep/radial-viewer/internal/results"
)

// ZoomState describes the display scale.
type ZoomState struct {
	Factor float64 `json:"factor"`
	Fit    bool    `json:"fit"`
}

func percent(z float64) string {
	return fmt.Sprintf("%.0f%%", z*100)
}

// Zoom reports the current zoom state.
func (s *Session) Zoom() ZoomState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ZoomState{Factor: s.zoom, Fit: s.fit}
}

// ZoomIn enlarges the view by one zoom step and leaves fit mode.
func (s *Session) ZoomIn() ZoomState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fit = false
	s.zoom *= s.cfg.ZoomStep
	return s.zoomChanged()
}

// ZoomOut shrinks the view by one zoom step, never below the configured
// minimum, and leaves fit mode.
func (s *Session) ZoomOut() ZoomState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fit = false
	s.zoom /= s.cfg.ZoomStep
	if s.zoom < s.cfg.MinZoom {
		s.zoom = s.cfg.MinZoom
	}
	return s.zoomChanged()
}

// ZoomFit enters fit mode, scaling the image to the display area.
func (s *Session) ZoomFit() ZoomState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fit = true
	s.refit()
	return s.zoomChanged()
}

// SetDisplaySize records the size of the display area. In fit mode the zoom
// follows it.
func (s *Session) SetDisplaySize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", w, h)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.display = image.Pt(w, h)
	if s.fit {
		s.refit()
		s.zoomChanged()
	}
	return nil
}

func (s *Session) zoomChanged() ZoomState {
	results.Postf(s.sink, "zoom %s", percent(s.zoom))
	return ZoomState{Factor: s.zoom, Fit: s.fit}
}

// refit recomputes the fit-mode zoom, min(dw/w, dh/h). It is a no-op
// outside fit mode or without an image. The display size is always positive,
// so the result is too; MinZoom only bounds manual zooming.
func (s *Session) refit() {
	if !s.fit || s.img == nil {
		return
	}
	b := s.img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	s.zoom = math.Min(float64(s.display.X)/float64(b.Dx()), float64(s.display.Y)/float64(b.Dy()))
}

// DisplaySize returns the on-screen size of the current image,
// (floor(w*z), floor(h*z)). It is (0,0) without an image.
func (s *Session) DisplaySize() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.displaySize()
}

func (s *Session) displaySize() (int, int) {
	if s.img == nil {
		return 0, 0
	}
	return imaging.ScaledSize(s.img.Bounds(), s.zoom)
}

// ToImage maps a display coordinate to image space: floor(d/z) per axis.
// Every pointer position crossing the zoom boundary goes through here.
func (s *Session) ToImage(p image.Point) image.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.toImage(p)
}

func (s *Session) toImage(p image.Point) image.Point {
	return image.Pt(
		int(math.Floor(float64(p.X)/s.zoom)),
		int(math.Floor(float64(p.Y)/s.zoom)),
	)
}

// ToDisplay maps an image coordinate to display space: floor(i*z) per axis.
func (s *Session) ToDisplay(p image.Point) image.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return image.Pt(
		int(math.Floor(float64(p.X)*s.zoom)),
		int(math.Floor(float64(p.Y)*s.zoom)),
	)
}
