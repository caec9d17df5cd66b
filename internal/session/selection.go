package session

import "image"

// TrackerState is the state of a Tracker.
type TrackerState int

const (
	// Idle means no drag is in progress.
	Idle TrackerState = iota
	// Dragging means a press was recorded and no release has happened yet.
	Dragging
)

func (s TrackerState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Tracker turns a press/move/release sequence of image-space points into a
// selection rectangle. The zero value is Idle.
type Tracker struct {
	state TrackerState
	start image.Point
	live  image.Rectangle
}

// State reports whether a drag is in progress.
func (t *Tracker) State() TrackerState { return t.state }

// Live returns the rectangle spanned by the current drag, or the empty
// rectangle when idle.
func (t *Tracker) Live() image.Rectangle { return t.live }

// Press starts a drag at p. A press while already dragging restarts it.
func (t *Tracker) Press(p image.Point) {
	t.state = Dragging
	t.start = p
	t.live = image.Rectangle{}
}

// Move updates the live rectangle while dragging and returns it. It is a
// no-op when idle.
func (t *Tracker) Move(p image.Point, bounds image.Rectangle) image.Rectangle {
	if t.state != Dragging {
		return image.Rectangle{}
	}
	t.live = spanRect(t.start, p, bounds)
	return t.live
}

// Release ends the drag at p and returns the normalized rectangle clamped to
// bounds. ok is false when no drag was in progress or the rectangle has no
// area.
func (t *Tracker) Release(p image.Point, bounds image.Rectangle) (r image.Rectangle, ok bool) {
	if t.state != Dragging {
		return image.Rectangle{}, false
	}
	r = spanRect(t.start, p, bounds)
	t.Cancel()
	return r, !r.Empty()
}

// Cancel aborts a drag without producing a rectangle.
func (t *Tracker) Cancel() {
	t.state = Idle
	t.start = image.Point{}
	t.live = image.Rectangle{}
}

// spanRect returns the canonical rectangle between two corner points,
// clipped to bounds.
func spanRect(a, b image.Point, bounds image.Rectangle) image.Rectangle {
	return image.Rectangle{Min: a, Max: b}.Canon().Intersect(bounds)
}
