// Package resize implements the bulk image utilities for a collection:
// resizing WebP source art to a fixed square size and generating PNG
// preview thumbnails.
//
// WebP processing is delegated to github.com/h2non/bimg (libvips), which
// handles lossless WebP re-encoding natively. Thumbnail generation stays
// in pure Go: stdlib codecs plus golang.org/x/image/draw for high-quality
// scaling, so it works without libvips at runtime.
//
// Both operations share the same error policy as the validator's per-file
// checks: a failure on one file is recorded and reported, and every
// remaining file is still processed.
package resize
