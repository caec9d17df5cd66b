// Package plugin hosts image filters for a viewer session.
//
// A filter has the signature func(*image.NRGBA) and edits the image it is
// given in place. The Host never hands a filter the caller's image: it runs
// the filter on a private copy, so a filter that fails halfway leaves the
// session untouched, and a panic inside the filter is recovered and
// reported as ErrPluginFault while the host keeps running.
//
// Filters come from two places. Builtins wrap the bild effect, blur and
// adjust packages plus the Canny detector from internal/imaging. Shared
// objects built with -buildmode=plugin are loaded with Load and must export
// a symbol named Filter of the filter type.
package plugin
