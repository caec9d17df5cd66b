package session

import "image"

// History is a bounded undo stack of image snapshots. When full, pushing
// evicts the oldest snapshot so the most recent Cap states stay undoable.
//
// History is not safe for concurrent use; Session guards it.
type History struct {
	entries  []*image.NRGBA
	capacity int
}

// NewHistory creates a history holding at most capacity snapshots. A
// capacity below 1 is raised to 1.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{entries: make([]*image.NRGBA, 0, capacity), capacity: capacity}
}

// Push records img as the newest snapshot. A nil image is ignored.
func (h *History) Push(img *image.NRGBA) {
	if img == nil {
		return
	}
	if len(h.entries) == h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries[len(h.entries)-1] = nil
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, img)
}

// Pop removes and returns the newest snapshot.
func (h *History) Pop() (*image.NRGBA, bool) {
	n := len(h.entries)
	if n == 0 {
		return nil, false
	}
	img := h.entries[n-1]
	h.entries[n-1] = nil
	h.entries = h.entries[:n-1]
	return img, true
}

// Len reports the number of stored snapshots.
func (h *History) Len() int { return len(h.entries) }

// Cap reports the maximum number of stored snapshots.
func (h *History) Cap() int { return h.capacity }

// Clear drops every snapshot.
func (h *History) Clear() {
	clear(h.entries)
	h.entries = h.entries[:0]
}
