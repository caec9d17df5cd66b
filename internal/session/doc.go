// Package session holds the state of one open viewer document: the current
// image, zoom, undo history, clipboard, selection and the ROI set.
//
// # Value Semantics
//
// An installed image is never written again. Every editing operation
// computes a complete new *image.NRGBA from the current one and then swaps
// the pointer in a single step under the write lock. Readers obtained
// through Image or View therefore never observe a half-applied edit.
//
// # Coordinates
//
// Selections and ROIs are stored in image space. Zoom is applied only when
// drawing and when translating pointer positions with ToImage, which is the
// single inverse of the display transform.
//
// # Concurrency
//
// Mutating methods serialize on a write lock. View runs read-only analysis
// under the read lock, so several analyses may run together but never
// alongside a mutation.
package session
