package plugin

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	goplugin "plugin"
	"sort"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// EntryPoint is the symbol a filter module must export.
const EntryPoint = "Filter"

var (
	// ErrUnknownFilter is returned by Apply for names that are not registered.
	ErrUnknownFilter = errors.New("unknown filter")

	// ErrMissingEntryPoint is returned by Load when a module does not export
	// a usable Filter symbol.
	ErrMissingEntryPoint = errors.New("missing filter entry point")

	// ErrPluginFault is returned when a filter panics.
	ErrPluginFault = errors.New("plugin fault")

	// ErrHostClosed is returned after Close.
	ErrHostClosed = errors.New("plugin host closed")
)

// Filter edits img in place.
type Filter func(img *image.NRGBA)

// Host owns the filter registry and the handles of loaded modules for the
// lifetime of one session.
//
// Host is safe for concurrent use.
type Host struct {
	mu      sync.RWMutex
	filters map[string]Filter
	modules map[string]*goplugin.Plugin
	closed  bool
}

// NewHost creates a host with the builtin filters registered.
func NewHost() *Host {
	h := &Host{
		filters: make(map[string]Filter),
		modules: make(map[string]*goplugin.Plugin),
	}
	for name, f := range builtins() {
		h.filters[name] = f
	}
	return h
}

// Register adds or replaces a filter under name.
func (h *Host) Register(name string, f Filter) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("filter name is required")
	}
	if f == nil {
		return fmt.Errorf("filter %s is nil", name)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHostClosed
	}
	h.filters[name] = f
	return nil
}

// Load opens a filter module and registers its entry point under the file
// name without extension, which is returned.
func (h *Host) Load(path string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		return "", ErrHostClosed
	}

	mod, err := goplugin.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open plugin %s: %w", path, err)
	}
	sym, err := mod.Lookup(EntryPoint)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMissingEntryPoint, path, err)
	}
	f, err := asFilter(sym)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMissingEntryPoint, path, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return "", ErrHostClosed
	}
	h.modules[path] = mod
	h.filters[name] = f
	slog.Info("filter plugin loaded", "name", name, "path", path)
	return name, nil
}

// asFilter accepts an exported function or an exported variable holding one.
func asFilter(sym goplugin.Symbol) (Filter, error) {
	switch f := sym.(type) {
	case func(*image.NRGBA):
		return f, nil
	case Filter:
		return f, nil
	case *func(*image.NRGBA):
		if f == nil || *f == nil {
			return nil, errors.New("entry point is nil")
		}
		return *f, nil
	case *Filter:
		if f == nil || *f == nil {
			return nil, errors.New("entry point is nil")
		}
		return *f, nil
	}
	return nil, fmt.Errorf("entry point has type %T, want func(*image.NRGBA)", sym)
}

// LoadDir loads every *.so module in dir. Modules that fail to load are
// logged and skipped; the names of those that loaded are returned.
func (h *Host) LoadDir(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.so"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan plugin dir: %w", err)
	}
	sort.Strings(paths)

	var names []string
	for _, p := range paths {
		name, err := h.Load(p)
		if err != nil {
			slog.Warn("skipping filter plugin", "path", p, "err", err)
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Names lists the registered filters in sorted order.
func (h *Host) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.filters))
	for name := range h.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply runs the named filter on a copy of img and returns the copy. img
// itself is never modified.
func (h *Host) Apply(name string, img *image.NRGBA) (*image.NRGBA, error) {
	h.mu.RLock()
	f, ok := h.filters[name]
	closed := h.closed
	h.mu.RUnlock()

	if closed {
		return nil, ErrHostClosed
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
	}

	out := imaging.Clone(img)
	if err := run(f, out); err != nil {
		slog.Error("filter failed", "name", name, "err", err)
		return nil, fmt.Errorf("filter %s: %w", name, err)
	}
	return out, nil
}

// run calls f, converting a panic into ErrPluginFault.
func run(f Filter, img *image.NRGBA) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPluginFault, r)
		}
	}()
	f(img)
	return nil
}

// Close releases the module handles and empties the registry. Loaded code
// stays mapped in the process since Go cannot unload plugins.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	slog.Debug("closing plugin host", "modules", len(h.modules))
	h.closed = true
	h.modules = nil
	h.filters = nil
	return nil
}
