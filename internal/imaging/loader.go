package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Loader decodes image files into *image.NRGBA and caches them by path.
//
// Files whose extension is listed as raw are decoded with the legacy raw
// layout; everything else goes through the registered codecs (PNG, JPEG,
// GIF, BMP, TIFF, WebP).
//
// Loader is safe for concurrent use by multiple goroutines. Cached images are
// shared values and must not be modified by callers.
type Loader struct {
	mu     sync.RWMutex
	images map[string]*image.NRGBA
	layout RawLayout
	rawExt map[string]bool
}

// NewLoader creates an empty loader using layout for raw files. rawExtensions
// are matched case-insensitively and may be given with or without the dot.
func NewLoader(layout RawLayout, rawExtensions []string) *Loader {
	ext := make(map[string]bool, len(rawExtensions))
	for _, e := range rawExtensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		ext[e] = true
	}
	return &Loader{
		images: make(map[string]*image.NRGBA),
		layout: layout,
		rawExt: ext,
	}
}

// IsRaw reports whether path is decoded with the legacy raw layout.
func (l *Loader) IsRaw(path string) bool {
	return l.rawExt[strings.ToLower(filepath.Ext(path))]
}

// Load returns the decoded image at path, reading the file only on a cache miss.
//
// # Errors
//
//   - the file does not exist or cannot be read
//   - the file is not a decodable image
//   - a raw file is shorter than header plus payload (wraps ErrTruncatedRaw)
func (l *Loader) Load(path string) (*image.NRGBA, error) {
	l.mu.RLock()
	if img, ok := l.images[path]; ok {
		l.mu.RUnlock()
		return img, nil
	}
	l.mu.RUnlock()

	var (
		img *image.NRGBA
		err error
	)
	if l.IsRaw(path) {
		img, err = LoadRaw(path, l.layout)
	} else {
		img, err = decodeFile(path)
	}
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.images[path] = img
	l.mu.Unlock()

	return img, nil
}

func decodeFile(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	src, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return imaging.Clone(src), nil
}

// Evict removes a single path from the cache. Unknown paths are ignored.
func (l *Loader) Evict(path string) {
	l.mu.Lock()
	delete(l.images, path)
	l.mu.Unlock()
}

// Clear empties the cache.
func (l *Loader) Clear() {
	l.mu.Lock()
	l.images = make(map[string]*image.NRGBA)
	l.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is "raw" for the legacy layout, otherwise the codec name derived
	// from the extension ("png", "jpeg", "gif", "tiff", "bmp", "webp") or
	// "unknown".
	Format string `json:"format"`

	// HasAlpha reports whether any pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Info loads path (through the cache) and describes it.
func (l *Loader) Info(path string) (*ImageInfo, error) {
	img, err := l.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	if l.IsRaw(path) {
		format = "raw"
	} else if f, err := imaging.FormatFromFilename(path); err == nil {
		format = strings.ToLower(f.String())
	} else if strings.EqualFold(filepath.Ext(path), ".webp") {
		format = "webp"
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		HasAlpha:      !img.Opaque(),
		FileSizeBytes: stat.Size(),
	}, nil
}
