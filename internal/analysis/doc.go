// Package analysis implements radial intensity profiling of an image: the
// single-radius circular average, multi-radius sweeps with CSV and Parquet
// export, the 256-bucket luminance histogram, and Hough ring finding to
// locate the profiling centre.
//
// Every function here reads its image without modifying it, so callers can
// run them concurrently under a shared read lock.
//
// Pixel values are luminance, L = round(0.299R + 0.587G + 0.114B), and
// sampling is nearest-pixel: each point on the circle is rounded to the
// closest integer coordinate and no interpolation is done.
package analysis
