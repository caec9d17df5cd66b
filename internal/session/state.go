package session

import (
	"image"
	"log/slog"
	"sync"

	"github.com/ironsheep/radial-viewer/internal/config"
	"github.com/ironsheep/radial-viewer/internal/results"
)

// Session owns the image, zoom, history, clipboard, selection and ROI set of
// one open document.
//
// Session is safe for concurrent use.
type Session struct {
	mu sync.RWMutex

	cfg  config.Config
	sink results.Sink

	name string
	img  *image.NRGBA

	zoom    float64
	fit     bool
	display image.Point

	history   *History
	clipboard *image.NRGBA
	selection image.Rectangle
	rois      []image.Rectangle
	tracker   Tracker
}

// New creates an empty session. Status lines go to sink, which may be nil.
func New(cfg config.Config, sink results.Sink) *Session {
	if sink == nil {
		sink = results.Discard
	}
	return &Session{
		cfg:     cfg,
		sink:    sink,
		zoom:    1,
		fit:     true,
		display: image.Pt(cfg.Display.Width, cfg.Display.Height),
		history: NewHistory(cfg.HistoryCapacity),
	}
}

// Load installs a freshly decoded image and reports it under name. The
// previous image, if any, becomes undoable.
func (s *Session) Load(name string, img *image.NRGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.name = name
	s.install(img)
	b := img.Bounds()
	results.Postf(s.sink, "loaded %s (%dx%d)", name, b.Dx(), b.Dy())
	slog.Debug("image loaded", "name", name, "width", b.Dx(), "height", b.Dy())
}

// SetImage replaces the current image, pushing the old one onto the history.
func (s *Session) SetImage(img *image.NRGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.install(img)
}

// install is SetImage with the write lock held.
func (s *Session) install(img *image.NRGBA) {
	if s.img != nil {
		s.history.Push(s.img)
	}
	s.swap(img)
}

// swap makes img current without touching the history, then refits the
// view and clamps the selection to the new bounds.
func (s *Session) swap(img *image.NRGBA) {
	s.img = img
	s.tracker.Cancel()
	s.selection = s.selection.Intersect(img.Bounds())
	s.fit = true
	s.refit()
	s.redisplay()
}

func (s *Session) redisplay() {
	w, h := s.displaySize()
	results.Postf(s.sink, "view %dx%d at zoom %s", w, h, percent(s.zoom))
}

// Name returns the name the current document was loaded under.
func (s *Session) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// Image returns the current image, or nil before the first load. The
// returned image must not be modified.
func (s *Session) Image() *image.NRGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img
}

// View runs fn on the current image under the read lock. fn must not
// modify the image.
func (s *Session) View(fn func(img *image.NRGBA) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.img == nil {
		return ErrNoImage
	}
	return fn(s.img)
}

// Sink returns the results feed the session reports to.
func (s *Session) Sink() results.Sink { return s.sink }

// HistoryLen reports how many undo steps are available.
func (s *Session) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Len()
}

// Undo reinstalls the newest history snapshot and refits the view. It
// reports false, and posts a notice, when there is nothing to undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.history.Pop()
	if !ok {
		s.sink.Post("nothing to undo")
		return false
	}
	s.swap(prev)
	b := prev.Bounds()
	results.Postf(s.sink, "undo: restored %dx%d, %d step(s) left", b.Dx(), b.Dy(), s.history.Len())
	return true
}

// Close drops the image, history and clipboard.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.img = nil
	s.name = ""
	s.history.Clear()
	s.clipboard = nil
	s.selection = image.Rectangle{}
	s.rois = nil
	s.tracker.Cancel()
}
