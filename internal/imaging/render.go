package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
)

// ScaledSize returns the displayed size of bounds at zoom factor z:
// (floor(width*z), floor(height*z)).
func ScaledSize(bounds image.Rectangle, z float64) (int, int) {
	return int(math.Floor(float64(bounds.Dx()) * z)), int(math.Floor(float64(bounds.Dy()) * z))
}

// ViewOptions controls what RenderView draws on top of the scaled image.
type ViewOptions struct {
	// Zoom is the display scale factor; it must be positive.
	Zoom float64

	// ROIs are outlined in ROIColor. Rectangles are in image space.
	ROIs     []image.Rectangle
	ROIColor string

	// Selection is outlined in SelectionColor when non-empty.
	Selection      image.Rectangle
	SelectionColor string

	// GridSpacing draws a coordinate grid every GridSpacing image pixels when
	// positive; ShowCoordinates labels each intersection.
	GridSpacing     int
	ShowCoordinates bool
	GridColor       string
}

// RenderResult contains the rendered view encoded as base64 PNG.
type RenderResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Zoom        float64 `json:"zoom"`
	ImageBase64 string  `json:"image_base64"`
	MimeType    string  `json:"mime_type"`
}

// RenderView scales img by opts.Zoom and overlays ROIs, the selection and an
// optional grid. Overlays are given in image space and mapped through the
// same zoom, so the drawing matches what ScaledSize reports.
func RenderView(img *image.NRGBA, opts ViewOptions) (*RenderResult, error) {
	if opts.Zoom <= 0 || math.IsNaN(opts.Zoom) {
		return nil, fmt.Errorf("invalid zoom factor %g", opts.Zoom)
	}

	w, h := ScaledSize(img.Bounds(), opts.Zoom)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	var scaled image.Image = img
	if w != img.Bounds().Dx() || h != img.Bounds().Dy() {
		scaled = imaging.Resize(img, w, h, imaging.Linear)
	}

	result := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(result, result.Bounds(), scaled, scaled.Bounds().Min, draw.Src)

	if opts.GridSpacing > 0 {
		gridColor := colorOrDefault(opts.GridColor, color.RGBA{255, 0, 0, 128})
		drawGrid(result, img.Bounds(), opts.Zoom, opts.GridSpacing, opts.ShowCoordinates, gridColor)
	}

	roiColor := colorOrDefault(opts.ROIColor, color.RGBA{0, 200, 255, 255})
	for _, r := range opts.ROIs {
		drawOutline(result, scaleRect(r, opts.Zoom), roiColor)
	}
	if !opts.Selection.Empty() {
		selColor := colorOrDefault(opts.SelectionColor, color.RGBA{255, 255, 0, 255})
		drawOutline(result, scaleRect(opts.Selection, opts.Zoom), selColor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, result); err != nil {
		return nil, fmt.Errorf("failed to encode view: %w", err)
	}

	return &RenderResult{
		Width:       w,
		Height:      h,
		Zoom:        opts.Zoom,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

func scaleRect(r image.Rectangle, z float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(r.Min.X)*z)),
		int(math.Floor(float64(r.Min.Y)*z)),
		int(math.Floor(float64(r.Max.X)*z)),
		int(math.Floor(float64(r.Max.Y)*z)),
	)
}

// drawOutline draws the 1-pixel border of r, clipped to dst.
func drawOutline(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	b := dst.Bounds()
	set := func(x, y int) {
		if image.Pt(x, y).In(b) {
			dst.SetRGBA(x, y, c)
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		set(x, r.Min.Y)
		set(x, r.Max.Y-1)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		set(r.Min.X, y)
		set(r.Max.X-1, y)
	}
}

func drawGrid(dst *image.RGBA, src image.Rectangle, z float64, spacing int, labels bool, c color.RGBA) {
	b := dst.Bounds()

	for ix := spacing; ix < src.Dx(); ix += spacing {
		x := int(math.Floor(float64(ix) * z))
		for y := b.Min.Y; y < b.Max.Y; y++ {
			dst.SetRGBA(x, y, c)
		}
	}
	for iy := spacing; iy < src.Dy(); iy += spacing {
		y := int(math.Floor(float64(iy) * z))
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x, y, c)
		}
	}

	if !labels {
		return
	}
	fg := color.RGBA{255, 255, 255, 255}
	bg := color.RGBA{0, 0, 0, 180}
	for iy := spacing; iy < src.Dy(); iy += spacing {
		for ix := spacing; ix < src.Dx(); ix += spacing {
			x := int(math.Floor(float64(ix) * z))
			y := int(math.Floor(float64(iy) * z))
			drawLabel(dst, x+2, y+2, fmt.Sprintf("%d,%d", ix, iy), fg, bg)
		}
	}
}

func colorOrDefault(hex string, def color.RGBA) color.RGBA {
	if hex == "" {
		return def
	}
	c, err := parseHexColor(hex)
	if err != nil {
		return def
	}
	return c
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

// glyphs is a 3x5 pixel font covering the characters of grid labels.
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	',': {"000", "000", "000", "010", "010"},
}

// drawLabel draws text with the 3x5 font on a filled background box.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	bounds := img.Bounds()
	const charWidth = 4
	const labelHeight = 7
	labelWidth := len(text) * charWidth

	plot := func(px, py int, c color.RGBA) {
		if image.Pt(px, py).In(bounds) {
			img.SetRGBA(px, py, c)
		}
	}

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			plot(x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		for row, line := range glyphs[ch] {
			for col, pixel := range line {
				if pixel == '1' {
					plot(cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}
