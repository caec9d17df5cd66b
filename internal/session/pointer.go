package session

import "image"

// Press starts a selection drag at a display coordinate.
func (s *Session) Press(display image.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return ErrNoImage
	}
	s.tracker.Press(s.toImage(display))
	return nil
}

// Move updates the live drag rectangle and returns it in image space. The
// ROI set is not touched.
func (s *Session) Move(display image.Point) (image.Rectangle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return image.Rectangle{}, ErrNoImage
	}
	return s.tracker.Move(s.toImage(display), s.img.Bounds()), nil
}

// Release finishes a drag at a display coordinate. A rectangle with area
// becomes the current selection and is appended to the ROI set; ok is
// false otherwise, and a click without drag clears the selection.
func (s *Session) Release(display image.Point) (r image.Rectangle, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return image.Rectangle{}, false, ErrNoImage
	}
	dragging := s.tracker.State() == Dragging
	r, ok = s.tracker.Release(s.toImage(display), s.img.Bounds())
	if !ok {
		if dragging {
			s.selection = image.Rectangle{}
		}
		return image.Rectangle{}, false, nil
	}
	s.selectLocked(r)
	return r, true, nil
}

// CancelDrag aborts a drag in progress.
func (s *Session) CancelDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.Cancel()
}

// Dragging reports whether a selection drag is in progress, and its live
// rectangle.
func (s *Session) Dragging() (image.Rectangle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracker.Live(), s.tracker.State() == Dragging
}

// Select sets the selection directly from an image-space rectangle, as if
// it had been dragged. The rectangle is normalized and clamped; one without
// area is rejected with ErrEmptySelection.
func (s *Session) Select(r image.Rectangle) (image.Rectangle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return image.Rectangle{}, ErrNoImage
	}
	r = spanRect(r.Min, r.Max, s.img.Bounds())
	if r.Empty() {
		return image.Rectangle{}, ErrEmptySelection
	}
	s.selectLocked(r)
	return r, nil
}

func (s *Session) selectLocked(r image.Rectangle) {
	s.selection = r
	s.rois = append(s.rois, r)
}

// ClearSelection drops the current selection. ROIs are kept.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = image.Rectangle{}
}

// Selection returns the current selection in image space; it is empty when
// nothing is selected.
func (s *Session) Selection() image.Rectangle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// ROIs returns a copy of the finalized selections, oldest first.
func (s *Session) ROIs() []image.Rectangle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]image.Rectangle, len(s.rois))
	copy(out, s.rois)
	return out
}
