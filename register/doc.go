// Package register recovers canonical sheet geometry from an
// arbitrary, possibly rotated, skewed, or rescaled capture of a
// composed sheet.
//
// Resolution proceeds in three phases. First an ordered list of
// search strategies (the whole image, then four corner regions) runs
// until a detected code parses as a metadata payload. If none does,
// one fallback is attempted: the three alignment markers alone, fitted
// against the input's own dimensions, rectify the image and the
// payload search runs once more. Second, the four corner regions are
// searched again for markers and the payload anchor, pairing each
// observed centroid with its canonical position. Third, a best-fit
// affine transform is solved from at least three pairs by least
// squares and the input is resampled through it with bicubic
// interpolation onto a white canonical canvas.
//
// All work is synchronous and order-deterministic; region search is
// never parallelized, trading latency for reproducible results.
package register
