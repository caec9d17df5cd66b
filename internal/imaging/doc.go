// Package imaging provides the pixel-level building blocks of the viewer.
//
// It decodes images (general codecs and the legacy raw detector layout),
// computes luminance, and implements every pure image→image transform the
// session installs: crop, rotate, flip, resize, fill and clipboard paste with
// a per-channel blend rule. It also renders the zoomed view and inspects
// single pixels. Nothing here holds session state.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
//   - X increases rightward, Y increases downward
//   - Rectangles follow image.Rectangle: Min is inclusive, Max is exclusive
//
// # Image Values
//
// Functions accept and return *image.NRGBA with bounds starting at (0,0).
// Inputs are never modified; every transform allocates its result, so an
// image handed to the session can be shared freely without copying.
//
// # Luminance
//
// Grey levels use the ITU-R BT.601 weights, rounded and clamped to [0,255]:
//
//	L = round(0.299*R + 0.587*G + 0.114*B)
package imaging
