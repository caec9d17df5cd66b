package imaging

import (
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// createTestImage writes a uniform PNG into dir and returns its path.
func createTestImage(t *testing.T, dir string, width, height int, c color.NRGBA) string {
	t.Helper()
	img := createInMemoryImage(width, height, c)

	f, err := os.CreateTemp(dir, "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return f.Name()
}

func newTestLoader() *Loader {
	return NewLoader(RawLayout{HeaderOffset: 4, Width: 2, Height: 1}, []string{".edf", "raw"})
}

func TestLoader_LoadPNG(t *testing.T) {
	path := createTestImage(t, t.TempDir(), 12, 7, color.NRGBA{255, 0, 0, 255})
	l := newTestLoader()

	img, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 7 {
		t.Errorf("dimensions: got %dx%d, want 12x7", img.Bounds().Dx(), img.Bounds().Dy())
	}
	if got := img.NRGBAAt(3, 3); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel: got %v", got)
	}
}

func TestLoader_Cache(t *testing.T) {
	path := createTestImage(t, t.TempDir(), 4, 4, color.NRGBA{1, 2, 3, 255})
	l := newTestLoader()

	first, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Remove the file: a cached load must not touch the disk
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}
	second, err := l.Load(path)
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if first != second {
		t.Error("cached Load should return the same image value")
	}

	l.Evict(path)
	if _, err := l.Load(path); err == nil {
		t.Error("Load after Evict should hit the (missing) file")
	}

	l.Clear()
	if len(l.images) != 0 {
		t.Error("Clear should empty the cache")
	}
}

func TestLoader_RawByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.RAW")
	data := rawBytes(4, [4]byte{0, 0, 0, 255}, [4]byte{255, 255, 255, 255})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write raw file: %v", err)
	}

	l := newTestLoader()
	if !l.IsRaw(path) {
		t.Fatal("IsRaw should match extensions case-insensitively")
	}

	img, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Errorf("dimensions: got %v", img.Bounds())
	}

	info, err := l.Info(path)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.Format != "raw" {
		t.Errorf("Format: got %s, want raw", info.Format)
	}
	if info.FileSizeBytes != int64(len(data)) {
		t.Errorf("FileSizeBytes: got %d, want %d", info.FileSizeBytes, len(data))
	}
}

func TestLoader_RawTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.edf")
	if err := os.WriteFile(path, make([]byte, 6), 0o644); err != nil {
		t.Fatalf("failed to write raw file: %v", err)
	}

	_, err := newTestLoader().Load(path)
	if !errors.Is(err, ErrTruncatedRaw) {
		t.Errorf("expected ErrTruncatedRaw, got %v", err)
	}
}

func TestLoader_Info(t *testing.T) {
	path := createTestImage(t, t.TempDir(), 20, 10, color.NRGBA{0, 0, 255, 128})

	info, err := newTestLoader().Info(path)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.Width != 20 || info.Height != 10 {
		t.Errorf("dimensions: got %dx%d", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if !info.HasAlpha {
		t.Error("HasAlpha should be true for a translucent image")
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	l := newTestLoader()

	if _, err := l.Load(filepath.Join(dir, "nope.png")); err == nil {
		t.Error("Load should fail for a missing file")
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := l.Load(garbage); err == nil {
		t.Error("Load should fail for an undecodable file")
	}
}

func TestLoader_ConcurrentLoad(t *testing.T) {
	path := createTestImage(t, t.TempDir(), 8, 8, color.NRGBA{9, 9, 9, 255})
	l := newTestLoader()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Load(path); err != nil {
				t.Errorf("Load failed: %v", err)
			}
		}()
	}
	wg.Wait()
}
