package imaging

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
)

// rawPixelDepth is the number of bytes per pixel in the legacy layout (B,G,R,A).
const rawPixelDepth = 4

// ErrTruncatedRaw is returned when a raw file is shorter than header + payload.
var ErrTruncatedRaw = errors.New("raw image truncated")

// RawLayout describes the fixed-layout legacy raw format: HeaderOffset bytes
// that are skipped, then Width*Height pixels of 4 bytes each in B,G,R,A order.
type RawLayout struct {
	HeaderOffset int `json:"header_offset"`
	Width        int `json:"width"`
	Height       int `json:"height"`
}

// PayloadSize is the number of pixel bytes following the header.
func (l RawLayout) PayloadSize() int {
	return l.Width * l.Height * rawPixelDepth
}

func (l RawLayout) validate() error {
	if l.HeaderOffset < 0 || l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("invalid raw layout: header %d, size %dx%d", l.HeaderOffset, l.Width, l.Height)
	}
	return nil
}

// LoadRaw opens path and decodes it with DecodeRaw.
func LoadRaw(path string, layout RawLayout) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raw image: %w", err)
	}
	defer f.Close()

	img, err := DecodeRaw(bufio.NewReader(f), layout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// DecodeRaw reads one legacy raw image from r.
//
// Every pixel is converted to grey using Luminance; the alpha byte is kept.
// Trailing bytes after the payload are ignored.
//
// # Errors
//
// A reader that ends before HeaderOffset+PayloadSize bytes yields an error
// wrapping ErrTruncatedRaw that states how many bytes were expected and found.
func DecodeRaw(r io.Reader, layout RawLayout) (*image.NRGBA, error) {
	if err := layout.validate(); err != nil {
		return nil, err
	}

	need := layout.HeaderOffset + layout.PayloadSize()

	skipped, err := io.CopyN(io.Discard, r, int64(layout.HeaderOffset))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrTruncatedRaw, need, skipped)
		}
		return nil, fmt.Errorf("failed to skip raw header: %w", err)
	}

	buf := make([]byte, layout.PayloadSize())
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrTruncatedRaw, need, layout.HeaderOffset+n)
		}
		return nil, fmt.Errorf("failed to read raw pixels: %w", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, layout.Width, layout.Height))
	for i := 0; i < layout.Width*layout.Height; i++ {
		src := buf[i*rawPixelDepth : i*rawPixelDepth+rawPixelDepth : i*rawPixelDepth+rawPixelDepth]
		grey := Luminance(src[2], src[1], src[0])
		dst := img.Pix[i*4 : i*4+4 : i*4+4]
		dst[0], dst[1], dst[2], dst[3] = grey, grey, grey, src[3]
	}
	return img, nil
}

// EncodeRaw writes img in the legacy layout with a zero-filled header of
// headerOffset bytes. Channels are written as stored (B,G,R,A byte order).
func EncodeRaw(w io.Writer, img *image.NRGBA, headerOffset int) error {
	if headerOffset < 0 {
		return fmt.Errorf("invalid raw header offset %d", headerOffset)
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(make([]byte, headerOffset)); err != nil {
		return fmt.Errorf("failed to write raw header: %w", err)
	}

	b := img.Bounds()
	px := make([]byte, rawPixelDepth)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			px[0], px[1], px[2], px[3] = c.B, c.G, c.R, c.A
			if _, err := bw.Write(px); err != nil {
				return fmt.Errorf("failed to write raw pixels: %w", err)
			}
		}
	}
	return bw.Flush()
}
