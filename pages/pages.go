// Package pages crops individual pages out of a canonical canvas and
// writes them to disk in reading order.
//
// Each page rectangle comes from the layout engine against the same
// settings the canvas was composed (or rectified) with, so extraction
// needs no state beyond the canvas and the recovered settings. Output
// files are named with zero-padded three-digit page numbers, e.g.
// 001.png.
//
// Extraction is non-atomic: the destination directory is cleared
// before any page is written, so a mid-run failure leaves a partially
// populated directory and concurrent extractions into one directory
// race. Both are documented caller responsibilities.
package pages

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/tsawler/folio/internal/imgio"
	"github.com/tsawler/folio/layout"
	"github.com/tsawler/folio/model"
)

// ErrOutOfBounds reports a page rectangle that exceeds the canvas.
// This is terminal: it means the canvas does not match the geometry it
// claims to have.
var ErrOutOfBounds = errors.New("page rectangle out of canvas bounds")

// Crop copies one page rectangle out of the canvas into a freshly
// allocated buffer using nearest-neighbor sampling at a half-pixel
// offset. Source and destination are pixel-aligned after
// rectification, so nearest-neighbor preserves sharp page edges where
// an interpolating filter would smear them.
func Crop(canvas *image.RGBA, r model.Rect, page int) (*image.RGBA, error) {
	b := canvas.Bounds()
	if !r.In(b.Dx(), b.Dy()) {
		return nil, fmt.Errorf("%w: page %d rectangle %s exceeds canvas %dx%d",
			ErrOutOfBounds, page, r, b.Dx(), b.Dy())
	}

	dst := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			// Sample at the pixel center; with integer rectangles this
			// resolves to a direct copy.
			sx := int(float64(r.X+x) + 0.5)
			sy := int(float64(r.Y+y) + 0.5)
			dst.SetRGBA(x, y, canvas.RGBAAt(sx, sy))
		}
	}
	return dst, nil
}

// Extract crops every page from the canvas and writes them into dir
// as zero-padded files with the given extension ("png" or "jpg"),
// returning the written paths in page order. The settings must be the
// user settings (without registration border); the border is folded in
// here, mirroring composition. dir is created if needed and cleared
// first.
func Extract(canvas *image.RGBA, s model.LayoutSettings, pg model.PageGeometry, dir, ext string) ([]string, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if !imgio.ValidExt(ext) {
		return nil, fmt.Errorf("%w: output format %q (want png or jpg)", model.ErrInvalidSettings, ext)
	}
	if err := clearDir(dir); err != nil {
		return nil, err
	}

	eff := s.WithRegistrationBorder()
	paths := make([]string, 0, s.TotalPages)
	for page := 1; page <= s.TotalPages; page++ {
		r, err := layout.SlotRect(eff, pg, page)
		if err != nil {
			return nil, err
		}
		img, err := Crop(canvas, r, page)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, fmt.Sprintf("%03d.%s", page, ext))
		if err := imgio.Write(path, img); err != nil {
			return nil, fmt.Errorf("writing page %d: %w", page, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// clearDir creates dir if absent and removes any existing entries.
// Not atomic; see the package documentation.
func clearDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
