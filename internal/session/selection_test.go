package session

import (
	"errors"
	"image"
	"testing"

	"github.com/ironsheep/radial-viewer/internal/imaging"
)

func TestTracker(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 50)

	tests := []struct {
		name       string
		start, end image.Point
		want       image.Rectangle
		wantOK     bool
	}{
		{"forward drag", image.Pt(10, 5), image.Pt(30, 20), image.Rect(10, 5, 30, 20), true},
		{"reverse drag", image.Pt(30, 20), image.Pt(10, 5), image.Rect(10, 5, 30, 20), true},
		{"mixed corners", image.Pt(30, 5), image.Pt(10, 20), image.Rect(10, 5, 30, 20), true},
		{"clamped", image.Pt(-10, -10), image.Pt(150, 80), bounds, true},
		{"same point", image.Pt(10, 10), image.Pt(10, 10), image.Rectangle{}, false},
		{"zero width", image.Pt(10, 10), image.Pt(10, 30), image.Rectangle{}, false},
		{"wholly outside", image.Pt(200, 200), image.Pt(300, 300), image.Rectangle{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr Tracker
			tr.Press(tt.start)
			if tr.State() != Dragging {
				t.Fatalf("state after Press: got %v", tr.State())
			}
			got, ok := tr.Release(tt.end, bounds)
			if ok != tt.wantOK {
				t.Errorf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("rect: got %v, want %v", got, tt.want)
			}
			if tr.State() != Idle {
				t.Errorf("state after Release: got %v", tr.State())
			}
		})
	}
}

func TestTracker_MoveAndCancel(t *testing.T) {
	bounds := image.Rect(0, 0, 10, 10)
	var tr Tracker

	if r := tr.Move(image.Pt(5, 5), bounds); !r.Empty() {
		t.Errorf("Move while idle should return empty, got %v", r)
	}
	if _, ok := tr.Release(image.Pt(5, 5), bounds); ok {
		t.Error("Release while idle should report false")
	}

	tr.Press(image.Pt(1, 1))
	if r := tr.Move(image.Pt(4, 3), bounds); r != image.Rect(1, 1, 4, 3) {
		t.Errorf("live rect: got %v", r)
	}
	if tr.Live() != image.Rect(1, 1, 4, 3) {
		t.Errorf("Live: got %v", tr.Live())
	}

	tr.Cancel()
	if tr.State() != Idle || !tr.Live().Empty() {
		t.Error("Cancel should return to idle and drop the live rect")
	}
}

func TestSession_PointerSelection(t *testing.T) {
	s, _ := newTestSession(t, 200, 200)
	s.Load("grad", createGradientImage(100, 100)) // fit zoom 2

	if err := s.Press(image.Pt(20, 20)); err != nil {
		t.Fatalf("Press failed: %v", err)
	}
	live, err := s.Move(image.Pt(41, 41))
	if err != nil || live != image.Rect(10, 10, 20, 20) {
		t.Errorf("Move: got %v, %v", live, err)
	}
	if len(s.ROIs()) != 0 {
		t.Error("ROI set must not change while dragging")
	}

	r, ok, err := s.Release(image.Pt(60, 40))
	if err != nil || !ok {
		t.Fatalf("Release: ok=%v err=%v", ok, err)
	}
	want := image.Rect(10, 10, 30, 20)
	if r != want || s.Selection() != want {
		t.Errorf("selection: got %v / %v, want %v", r, s.Selection(), want)
	}
	if rois := s.ROIs(); len(rois) != 1 || rois[0] != want {
		t.Errorf("ROIs: got %v", rois)
	}

	// A click without drag adds nothing and clears the selection
	_ = s.Press(image.Pt(50, 50))
	if _, ok, _ := s.Release(image.Pt(50, 50)); ok {
		t.Error("degenerate release should report false")
	}
	if len(s.ROIs()) != 1 {
		t.Errorf("degenerate release must not add an ROI, got %d", len(s.ROIs()))
	}
	if !s.Selection().Empty() {
		t.Error("click should clear the selection")
	}
}

func TestSession_PointerWithoutImage(t *testing.T) {
	s, _ := newTestSession(t, 100, 100)
	if err := s.Press(image.Pt(1, 1)); !errors.Is(err, ErrNoImage) {
		t.Errorf("Press: expected ErrNoImage, got %v", err)
	}
	if _, _, err := s.Release(image.Pt(1, 1)); !errors.Is(err, ErrNoImage) {
		t.Errorf("Release: expected ErrNoImage, got %v", err)
	}
}

func TestSession_Select(t *testing.T) {
	s, _ := newTestSession(t, 100, 100)
	s.Load("grad", createGradientImage(20, 20))

	r, err := s.Select(image.Rectangle{Min: image.Pt(15, 25), Max: image.Pt(5, 2)})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if r != image.Rect(5, 2, 15, 20) {
		t.Errorf("Select: got %v", r)
	}

	_, err = s.Select(image.Rect(3, 3, 3, 9))
	if !errors.Is(err, ErrEmptySelection) || !errors.Is(err, imaging.ErrInvalidSelection) {
		t.Errorf("expected ErrEmptySelection, got %v", err)
	}
	if s.Selection() != image.Rect(5, 2, 15, 20) {
		t.Error("rejected selection must not replace the current one")
	}

	s.ClearSelection()
	if !s.Selection().Empty() {
		t.Error("ClearSelection should empty the selection")
	}
	if len(s.ROIs()) != 1 {
		t.Errorf("ClearSelection must keep ROIs, got %d", len(s.ROIs()))
	}
}
